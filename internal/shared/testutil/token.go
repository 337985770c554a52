package testutil

import (
	"strconv"
	"testing"

	"github.com/changhyeonkim/ambient-toolbox/internal/config"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/token"
)

// MockTokenManager lets service tests stub token issuing; unset funcs fall back to fixed values
type MockTokenManager struct {
	GenerateAccessTokenFunc  func(memberID, email string) (string, error)
	GenerateRefreshTokenFunc func(memberID, email string) (string, error)
	ValidateTokenFunc        func(tokenString string) (*token.Claims, error)
}

var _ token.Manager = (*MockTokenManager)(nil)

func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}

func (m *MockTokenManager) GenerateAccessToken(memberID, email string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(memberID, email)
	}
	return "mock-access-token", nil
}

func (m *MockTokenManager) GenerateRefreshToken(memberID, email string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(memberID, email)
	}
	return "mock-refresh-token", nil
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return nil, token.ErrInvalidToken
}

func (m *MockTokenManager) ValidateTokenOfType(tokenString string, tokenType string) (*token.Claims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, token.ErrWrongTokenType
	}
	return claims, nil
}

// BearerHeader issues a real access token signed with cfg's secret and
// returns it as request headers for ExecuteRequest
func BearerHeader(t *testing.T, cfg *config.Config, memberID uint32, email string) map[string]string {
	t.Helper()

	accessToken, err := token.NewJWTManager(cfg).GenerateAccessToken(strconv.FormatUint(uint64(memberID), 10), email)
	if err != nil {
		t.Fatalf("Failed to issue access token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + accessToken}
}
