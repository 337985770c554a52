package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/changhyeonkim/ambient-toolbox/internal/member"
	"github.com/changhyeonkim/ambient-toolbox/internal/note"
	sharedError "github.com/changhyeonkim/ambient-toolbox/internal/shared/error"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/validator"
	"github.com/gin-gonic/gin/binding"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

func noteObject(response *note.NoteResponse) map[string]any {
	return map[string]any{
		"id":             response.ID,
		"title":          response.Title,
		"content":        response.Content,
		"createdAt":      response.CreatedAt,
		"createdBy":      response.CreatedBy,
		"lastModifiedAt": response.LastModifiedAt,
		"lastModifiedBy": response.LastModifiedBy,
	}
}

func memberObject(profile *member.GetProfileResponse) map[string]any {
	return map[string]any{
		"id":             profile.ID,
		"name":           profile.Name,
		"email":          profile.Email,
		"phoneNumber":    profile.PhoneNumber,
		"createdAt":      profile.CreatedAt,
		"createdBy":      profile.CreatedBy,
		"lastModifiedAt": profile.LastModifiedAt,
		"lastModifiedBy": profile.LastModifiedBy,
	}
}

func inputObject(args map[string]any) map[string]any {
	input, _ := args["input"].(map[string]any)
	return input
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// optionalString distinguishes an omitted (or null) field from an empty string
func optionalString(input map[string]any, key string) *string {
	v, ok := input[key].(string)
	if !ok {
		return nil
	}
	return &v
}

// parseID accepts the representations an ID argument can arrive in
// (literal string, JSON number variable, integer literal)
func parseID(v any) (uint32, error) {
	var (
		id  uint64
		err error
	)

	switch value := v.(type) {
	case string:
		id, err = strconv.ParseUint(value, 10, 32)
	case json.Number:
		id, err = strconv.ParseUint(value.String(), 10, 32)
	case int64:
		if value < 0 || value > math.MaxUint32 {
			err = strconv.ErrRange
		}
		id = uint64(value)
	case int:
		if value < 0 || int64(value) > math.MaxUint32 {
			err = strconv.ErrRange
		}
		id = uint64(value)
	default:
		err = fmt.Errorf("unsupported id type %T", v)
	}

	if err != nil || id == 0 {
		return 0, &gqlerror.Error{
			Message:    fmt.Sprintf("invalid id: %v", v),
			Extensions: map[string]interface{}{"code": sharedError.InvalidRequest.Code},
		}
	}
	return uint32(id), nil
}

// validateInput applies the same binding rules the REST handlers use
func validateInput(request any) error {
	err := binding.Validator.ValidateStruct(request)
	if err == nil {
		return nil
	}

	resp := sharedError.ValidationFailed
	if validationResp, ok := validator.ToErrorResponse(err); ok {
		resp = *validationResp
	}
	return &gqlerror.Error{
		Message:    resp.Message,
		Extensions: map[string]interface{}{"code": resp.Code},
	}
}

// toGraphQLError exposes registered domain errors with their client message
// and code; anything else is logged and reported as an internal error.
func toGraphQLError(ctx context.Context, err error) error {
	resp, expected := sharedError.Resolve(err)
	if !expected {
		logger.FromContext(ctx).Error("GraphQL resolver 실패", "error", err)
	}

	return &gqlerror.Error{
		Message:    resp.Message,
		Extensions: map[string]interface{}{"code": resp.Code},
	}
}
