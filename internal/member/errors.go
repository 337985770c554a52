package member

import (
	"net/http"

	sharedError "github.com/changhyeonkim/ambient-toolbox/internal/shared/error"
)

// errInfo keys
const (
	memberAlreadyExists = "MEMBER_ALREADY_EXISTS"
	memberNotFound      = "MEMBER_NOT_FOUND"
	memberNoChanges     = "MEMBER_NO_CHANGES"
)

var (
	ErrMemberAlreadyExists = sharedError.NewDomainError(memberAlreadyExists)
	ErrMemberNotFound      = sharedError.NewDomainError(memberNotFound)

	// ErrNoProfileChanges rejects a profile PATCH without any updatable field,
	// which would otherwise only bump the audit columns
	ErrNoProfileChanges = sharedError.NewDomainError(memberNoChanges)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "회원 정보를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(memberAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-002",
		Message: "이미 가입된 사용자입니다.",
	})

	sharedError.RegisterDomainErrorResponse(memberNoChanges, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-003",
		Message: "변경할 항목이 없습니다.",
	})
}
