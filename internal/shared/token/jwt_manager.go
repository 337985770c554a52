package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/changhyeonkim/ambient-toolbox/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("token: invalid token")
	ErrExpiredToken   = errors.New("token: expired token")
	ErrInvalidClaims  = errors.New("token: invalid claims")
	ErrWrongTokenType = errors.New("token: unexpected token type")
)

const (
	ACCESS  = "access"
	REFRESH = "refresh"
)

// Claims carries exp/iat only through RegisteredClaims; a second top-level
// "exp" field would shadow it and silently disable the expiry check.
type Claims struct {
	MemberID  string `json:"member_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type Manager interface {
	GenerateAccessToken(memberID string, email string) (string, error)
	GenerateRefreshToken(memberID string, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)

	// ValidateTokenOfType also rejects a valid token of the other type
	// (a refresh token presented as a bearer token, for example).
	ValidateTokenOfType(tokenString string, tokenType string) (*Claims, error)
}

type JWTManager struct {
	secret        []byte
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

var _ Manager = (*JWTManager)(nil)

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{
		secret:        []byte(cfg.JWT.Secret),
		issuer:        cfg.App.Name,
		accessExpiry:  cfg.JWT.Expiry,
		refreshExpiry: cfg.JWT.RefreshExpiry,
		now:           time.Now,
	}
}

func (m *JWTManager) GenerateAccessToken(memberID, email string) (string, error) {
	return m.sign(memberID, email, ACCESS, m.accessExpiry)
}

func (m *JWTManager) GenerateRefreshToken(memberID, email string) (string, error) {
	return m.sign(memberID, email, REFRESH, m.refreshExpiry)
}

func (m *JWTManager) sign(memberID, email, tokenType string, expiry time.Duration) (string, error) {
	now := m.now()
	expiresAt := now.Add(expiry)

	claims := Claims{
		MemberID:  memberID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   memberID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.MemberID == "" {
		return nil, ErrInvalidClaims
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (m *JWTManager) ValidateTokenOfType(tokenString string, tokenType string) (*Claims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
