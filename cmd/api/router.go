package api

import (
	"net/http"

	authdelivery "gitfeed/internal/auth/delivery"
	authusecase "gitfeed/internal/auth/usecase"
	feeddelivery "gitfeed/internal/feed/delivery"
	feedusecase "gitfeed/internal/feed/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, authUsecase authusecase.AuthUsecase, feedUsecase feedusecase.FeedUsecase) {
	authHandler := authdelivery.NewAuthHandler(authUsecase)
	feedHandler := feeddelivery.NewFeedHandler(feedUsecase)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// OAuth session lifecycle
	r.GET("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/oauth-callback", authHandler.OAuthCallback)

	// Feed and reminders
	r.GET("/", feedHandler.Index)
	r.GET("/events", feedHandler.Events)
	r.GET("/reminders", feedHandler.Reminders)
	r.POST("/snooze", feedHandler.Snooze)
	r.POST("/unsnooze", feedHandler.Unsnooze)
}
