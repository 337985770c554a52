package middleware

import (
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/audit"
	sharedContext "github.com/changhyeonkim/ambient-toolbox/internal/shared/context"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// CurrentUser copies the authenticated member from the gin context into the
// request context as an audit.Actor. Must run after JWT or OptionalJWT.
// Services receive the actor only through the ctx they are called with.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberID, ok := sharedContext.GetMemberID(c)
		if !ok {
			c.Next()
			return
		}

		actor := audit.Actor{
			ID:    memberID,
			Email: sharedContext.GetMemberEmail(c),
		}

		ctx := audit.WithActor(c.Request.Context(), actor)
		reqLogger := logger.FromContext(ctx).With("member_id", memberID)
		ctx = logger.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
