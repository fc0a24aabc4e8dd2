package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/reqpay/reqpay/internal/server/http/handlers"
	"github.com/reqpay/reqpay/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PaymentFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	callbackHandler := handlers.NewCallbackHandler(facade, logger)
	orderHandler := handlers.NewOrderHandler(facade, logger)

	api := engine.Group("/api")
	callback := api.Group("/callback")
	callback.GET("/process", callbackHandler.Process)
	callback.GET("/txid", callbackHandler.Txid)

	api.POST("/orders", orderHandler.Create)

	return engine
}
