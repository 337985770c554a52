package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/changhyeonkim/ambient-toolbox/internal/config"
	sharedContext "github.com/changhyeonkim/ambient-toolbox/internal/shared/context"
	sharedError "github.com/changhyeonkim/ambient-toolbox/internal/shared/error"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

// JWT error constants (errInfo)
const (
	missingToken  = "MISSING_TOKEN"
	invalidToken  = "INVALID_TOKEN"
	expiredToken  = "EXPIRED_TOKEN"
	invalidClaims = "INVALID_CLAIMS"
)

// Domain errors
var (
	ErrMissingToken  = sharedError.NewDomainError(missingToken)
	ErrInvalidToken  = sharedError.NewDomainError(invalidToken)
	ErrExpiredToken  = sharedError.NewDomainError(expiredToken)
	ErrInvalidClaims = sharedError.NewDomainError(invalidClaims)
)

// Every JWT failure answers with the same response
func init() {
	for _, errInfo := range []string{missingToken, invalidToken, expiredToken, invalidClaims} {
		sharedError.RegisterDomainErrorResponse(errInfo, sharedError.Unauthenticated)
	}
}

func JWT(cfg *config.Config) gin.HandlerFunc {
	tokenManager := token.NewJWTManager(cfg)

	return func(c *gin.Context) {
		if !authenticate(c, tokenManager) {
			return
		}
		c.Next()
	}
}

// OptionalJWT authenticates the request only when an Authorization header is present.
// Anonymous requests pass through; a present but invalid token is still rejected.
func OptionalJWT(cfg *config.Config) gin.HandlerFunc {
	tokenManager := token.NewJWTManager(cfg)

	return func(c *gin.Context) {
		if c.GetHeader(AuthorizationHeader) == "" {
			c.Next()
			return
		}
		if !authenticate(c, tokenManager) {
			return
		}
		c.Next()
	}
}

// authenticate validates the bearer token and stores the member in the gin context.
// Returns false if the request was aborted (error response already sent).
func authenticate(c *gin.Context, tokenManager token.Manager) bool {
	// 요청 정보 (로깅용)
	clientIP := c.ClientIP()
	method := c.Request.Method
	path := c.Request.URL.Path
	userAgent := c.Request.UserAgent()

	// Step 1: 토큰 추출
	tokenString, err := extractToken(c)
	if err != nil {
		// 에러 발생 지점에서 바로 로깅
		slog.Warn("JWT 토큰 추출 실패",
			"step", "extract_token",
			"error", err.Error(),
			"client_ip", clientIP,
			"method", method,
			"path", path,
			"user_agent", userAgent,
		)
		handleJWTError(c, err)
		return false
	}

	// Step 2: 토큰 검증
	claims, err := tokenManager.ValidateTokenOfType(tokenString, token.ACCESS)
	if err != nil {
		// 에러 발생 지점에서 바로 로깅
		slog.Warn("JWT 토큰 검증 실패",
			"step", "validate_token",
			"error", err.Error(),
			"client_ip", clientIP,
			"method", method,
			"path", path,
			"user_agent", userAgent,
		)
		handleJWTError(c, mapTokenError(err))
		return false
	}

	// 인증 성공 - Context에 사용자 정보 저장
	c.Set(sharedContext.MemberIDKey, claims.MemberID)
	c.Set(sharedContext.MemberEmailKey, claims.Email)
	return true
}

// handleJWTError handles JWT errors using the standardized error response format
// Logging already happened in authenticate
func handleJWTError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		c.JSON(resp.Status, resp)
	} else {
		// 예상치 못한 에러 → Fallback 응답
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-999",
			Message: "인증에 실패했습니다.",
		})
	}
	c.Abort()
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], BearerScheme) {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, token.ErrInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}
