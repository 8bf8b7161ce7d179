package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"timerdash/internal/handler"
	"timerdash/internal/middleware"
	"timerdash/internal/service"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func New(
	tokens *service.TokenService,
	itemHandler *handler.ItemHandler,
	historyHandler *handler.HistoryHandler,
	registry *prometheus.Registry,
	logger *log.Logger,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestLogger(logger),
		gin.RecoveryWithWriter(logger.WriterLevel(log.ErrorLevel)),
		middleware.CORS(corsOrigins),
	)

	engine.GET("/health", handler.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := engine.Group("/api")
	api.Use(middleware.Auth(tokens))
	api.GET("/items", itemHandler.List)
	api.POST("/timers", itemHandler.AddTimer)
	api.POST("/stopwatches", itemHandler.AddStopwatch)
	api.POST("/items/:id/toggle", itemHandler.Toggle)
	api.POST("/items/:id/reset", itemHandler.Reset)
	api.POST("/items/:id/lap", itemHandler.Lap)
	api.DELETE("/items/:id", itemHandler.Remove)
	api.POST("/control/toggle-all", itemHandler.ToggleAll)
	api.POST("/control/lap", itemHandler.LapActive)
	api.GET("/history", historyHandler.Get)

	return engine
}
