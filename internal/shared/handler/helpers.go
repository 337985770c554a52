package handler

import (
	"net/http"

	sharedError "github.com/changhyeonkim/ambient-toolbox/internal/shared/error"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/validator"
	"github.com/gin-gonic/gin"
)

// BindJSON parses and validates the request body.
// Returns false once the 400 response has been written.
//
// Usage:
//
//	var req CreateNoteRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		// picked up by the logger middleware
		c.Error(err)

		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(http.StatusBadRequest, resp)
		} else {
			c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
		}
		return false
	}
	return true
}

// RespondError records err on the gin context and writes errResp
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	c.Error(err)
	c.JSON(errResp.Status, errResp)
}

// RespondServiceError writes the registered response for a domain error found
// in err's chain, or a 500 for anything unexpected.
//
// Usage:
//
//	response, err := h.noteService.Get(ctx, noteID)
//	if err != nil {
//	    handler.RespondServiceError(c, err)
//	    return
//	}
func RespondServiceError(c *gin.Context, err error) {
	resp, _ := sharedError.Resolve(err)
	RespondError(c, err, resp)
}
