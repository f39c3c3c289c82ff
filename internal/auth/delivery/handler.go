package delivery

import (
	"net/http"

	"gitfeed/internal/auth/usecase"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Login redirects to GitHub's authorize page, or straight to the feed when
// a session already exists.
func (h *AuthHandler) Login(c *gin.Context) {
	if CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/events")
		return
	}

	state := uuid.New().String()
	session := sessions.Default(c)
	session.Set(sessionStateKey, state)
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("failed to save session state")
	}

	c.Redirect(http.StatusFound, h.authUsecase.AuthorizationURL(state))
}

// Logout clears the session user and flashes a confirmation.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(sessionUserKey)
	session.AddFlash("Logged out!")
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("failed to save session")
	}
	c.Redirect(http.StatusFound, "/")
}

// OAuthCallback exchanges the provider's code for a token and logs the
// user in. A callback without an issued token redirects without error.
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	next := c.Query("next")
	if next == "" || next[0] != '/' {
		next = "/"
	}

	session := sessions.Default(c)
	storedState := session.Get(sessionStateKey)
	session.Delete(sessionStateKey)

	if expected, ok := storedState.(string); ok && c.Query("state") != expected {
		logrus.Warn("oauth callback with mismatched state")
		session.AddFlash("Login failed, please try again")
		_ = session.Save()
		c.Redirect(http.StatusFound, next)
		return
	}

	user, err := h.authUsecase.HandleCallback(c.Request.Context(), c.Query("code"))
	if err != nil {
		logrus.WithError(err).Error("oauth callback failed")
		session.AddFlash("Login failed, please try again")
		_ = session.Save()
		c.Redirect(http.StatusFound, next)
		return
	}
	if user == nil {
		// Grant denied; stay anonymous.
		_ = session.Save()
		c.Redirect(http.StatusFound, next)
		return
	}

	session.Set(sessionUserKey, user.GitHubID)
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("failed to save session")
	}
	logrus.WithField("login", user.Login).Info("user logged in")
	c.Redirect(http.StatusFound, next)
}
