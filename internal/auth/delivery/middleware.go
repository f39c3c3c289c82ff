package delivery

import (
	authdomain "gitfeed/internal/auth/domain"
	"gitfeed/internal/auth/usecase"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	sessionUserKey  = "user_id"
	sessionStateKey = "oauth_state"
	userContextKey  = "currentUser"
)

// SessionMiddleware resolves the session's stored GitHub id to a user and
// places it in the request context. Every route runs behind it; routes that
// need authentication check CurrentUser themselves.
func SessionMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if v := session.Get(sessionUserKey); v != nil {
			if githubID, ok := v.(int64); ok {
				user, err := authUsecase.CurrentUser(githubID)
				if err != nil {
					logrus.WithError(err).Warn("failed to resolve session user")
				} else if user != nil {
					SetCurrentUser(c, user)
				}
			}
		}
		c.Next()
	}
}

// SetCurrentUser places the authenticated user in the request context.
func SetCurrentUser(c *gin.Context, user *authdomain.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the authenticated user for this request, or nil.
func CurrentUser(c *gin.Context) *authdomain.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*authdomain.User); ok {
			return user
		}
	}
	return nil
}
