package api

import (
	"html/template"
	"time"

	authdelivery "gitfeed/internal/auth/delivery"
	authusecase "gitfeed/internal/auth/usecase"
	"gitfeed/internal/feed/render"
	feedusecase "gitfeed/internal/feed/usecase"
	"gitfeed/pkg/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	authUsecase authusecase.AuthUsecase
	feedUsecase feedusecase.FeedUsecase
	config      *config.Config
}

func NewHandler(authUc authusecase.AuthUsecase, feedUc feedusecase.FeedUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase: authUc,
		feedUsecase: feedUc,
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	if !h.config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	store := cookie.NewStore([]byte(h.config.SessionSecret))
	r.Use(sessions.Sessions("gitfeed_session", store))
	r.Use(authdelivery.SessionMiddleware(h.authUsecase))

	// Func map must be set before templates are parsed.
	r.SetFuncMap(template.FuncMap{
		"humanize": render.Humanize,
	})
	r.LoadHTMLGlob("templates/*.html")

	SetupRoutes(r, h.authUsecase, h.feedUsecase)

	return r.Run(addr)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	}
}
