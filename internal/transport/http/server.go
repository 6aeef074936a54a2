package http

import (
	"github.com/gin-gonic/gin"

	"pdfsearch/internal/bootstrap"
	"pdfsearch/internal/transport/http/handler"
	"pdfsearch/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = app.Config.MaxUploadBytes() + 1<<20

	healthHandler := handler.NewHealthHandler(app)
	authHandler := handler.NewAuthHandler(app.Auth)
	documentHandler := handler.NewDocumentHandler(app.Documents, app.Search, app.Config.MaxUploadBytes())

	router.GET("/healthz", healthHandler.Check)

	authGroup := router.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	docGroup := router.Group("/")
	docGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	docGroup.POST("/upload", documentHandler.Upload)
	docGroup.GET("/search", documentHandler.Search)
	docGroup.GET("/documents", documentHandler.Documents)

	return router
}
