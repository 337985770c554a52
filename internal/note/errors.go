package note

import (
	"net/http"

	sharedError "github.com/changhyeonkim/ambient-toolbox/internal/shared/error"
)

const (
	noteNotFound = "NOTE_NOT_FOUND" // errInfo
)

var (
	ErrNoteNotFound = sharedError.NewDomainError(noteNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(noteNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "NOTE-001",
		Message: "노트를 찾을 수 없습니다.",
	})
}
