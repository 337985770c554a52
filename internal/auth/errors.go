package auth

import (
	"net/http"

	sharedError "github.com/changhyeonkim/ambient-toolbox/internal/shared/error"
)

// errInfo keys
const (
	incorrectEmailPassword = "INCORRECT_EMAIL_PASSWORD"
	invalidRefreshToken    = "INVALID_REFRESH_TOKEN"
)

var (
	ErrInCorrectEmailPassword = sharedError.NewDomainError(incorrectEmailPassword)

	// ErrInvalidRefreshToken covers expired, forged and wrong-type tokens as well
	// as tokens of members that no longer exist
	ErrInvalidRefreshToken = sharedError.NewDomainError(invalidRefreshToken)
)

func init() {
	sharedError.RegisterDomainErrorResponse(incorrectEmailPassword, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-003",
		Message: "이메일 또는 비밀번호가 일치하지 않습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidRefreshToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-004",
		Message: "다시 로그인해 주세요.",
	})
}
