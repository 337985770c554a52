package context

import (
	"strconv"

	sharedError "github.com/changhyeonkim/ambient-toolbox/internal/shared/error"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// Keys set by the JWT middlewares once a token has been accepted
const (
	MemberIDKey    = "member_id"
	MemberEmailKey = "member_email"
)

// GetMemberID parses the member id claim stored by the JWT middleware.
// A missing or non-numeric claim reports false.
func GetMemberID(c *gin.Context) (uint32, bool) {
	idStr := c.GetString(MemberIDKey)
	if idStr == "" {
		return 0, false
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint32(id), true
}

func GetMemberEmail(c *gin.Context) string {
	return c.GetString(MemberEmailKey)
}

// RequireMemberID is GetMemberID for handlers behind the JWT middleware.
// On failure the 401 response is already written and the request aborted, so
// callers only return.
func RequireMemberID(c *gin.Context) (uint32, bool) {
	memberID, ok := GetMemberID(c)
	if !ok {
		c.AbortWithStatusJSON(sharedError.Unauthenticated.Status, sharedError.Unauthenticated)
		logger.FromContext(c.Request.Context()).Error("[API] context에 회원 ID가 존재하지 않습니다.",
			"path", c.FullPath(),
		)
		return 0, false
	}
	return memberID, true
}
