package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appsvc "echoai/internal/app"
	"echoai/internal/bootstrap"
	"echoai/internal/transport/http/handler"
	"echoai/internal/transport/http/middleware"
	"echoai/internal/transport/http/response"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(
		middleware.RequestLogger(),
		gin.CustomRecovery(func(c *gin.Context, _ any) {
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}),
		middleware.CORS(app.Config.App.CORSOrigins),
	)

	ragService := appsvc.NewRAGService(app.Store, app.Gateway)
	ragHandler := handler.NewRAGHandler(ragService, app.Config.MaxFileSizeBytes())
	healthHandler := handler.NewHealthHandler(app.Config)

	router.GET("/health", healthHandler.Check)

	api := router.Group("/api")
	api.Use(middleware.SessionID())
	api.POST("/upload", ragHandler.Upload)
	api.POST("/query", ragHandler.Query)
	api.GET("/status", ragHandler.Status)
	api.DELETE("/documents", ragHandler.ClearDocuments)

	return router
}
