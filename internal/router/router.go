package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"bizcardx/internal/config"
	"bizcardx/internal/handler"
	"bizcardx/internal/middleware"
	"bizcardx/internal/service"

	_ "bizcardx/docs"
)

// maxMultipartMemory bounds the in-memory part of multipart uploads.
const maxMultipartMemory = 16 << 20

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	log *zap.Logger,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	cardH *handler.CardHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = maxMultipartMemory

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	v1.POST("/auth/token", authH.Token)

	// Protected routes; open when auth is disabled
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	cards := protected.Group("/cards")
	cards.POST("/extract", cardH.Extract)
	cards.POST("/extract/detections", cardH.ExtractDetections)
	cards.POST("", cardH.Create)
	cards.GET("", cardH.List)
	cards.GET("/names", cardH.ListNames)
	cards.GET("/lookup", cardH.Lookup)
	cards.GET("/export", cardH.Export)
	cards.GET("/:id", cardH.GetByID)
	cards.PUT("/:id", cardH.Update)
	cards.DELETE("/:id", cardH.Delete)
	cards.GET("/:id/image", cardH.GetImage)
	cards.GET("/:id/image-url", cardH.GetImageURL)
	cards.POST("/:id/share", cardH.Share)

	return r
}
