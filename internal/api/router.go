package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wfunc/rgs-engine/internal/config"
	"github.com/wfunc/rgs-engine/internal/game"
	"github.com/wfunc/rgs-engine/internal/middleware"
)

// NewRouter 装配路由
func NewRouter(cfg *config.Config, svc *game.Service) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := NewHandler(svc)
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(cfg.Security.JWT.Secret))
	{
		v1.POST("/spin", h.Spin)
		v1.POST("/gamble", h.Gamble)
		v1.GET("/state", h.State)
		v1.GET("/history", h.History)
	}
	return r
}
