package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/drivelane/carmarket/internal/adapters/transport/http/middleware"
	authsvc "github.com/drivelane/carmarket/internal/app/auth/service"
	catalogsvc "github.com/drivelane/carmarket/internal/app/catalog/service"
	"github.com/drivelane/carmarket/internal/domain/auth/jwt"
	"github.com/drivelane/carmarket/internal/infra/config"
)

// NewRouter assembles the full route table with its middleware chain.
func NewRouter(
	cfg *config.Config,
	log *zap.Logger,
	codec jwt.TokenCodec,
	auth authsvc.Service,
	cars catalogsvc.CarService,
	inquiries catalogsvc.InquiryService,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.RateLimitPerIP(50, 100, 10_000, time.Hour))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"Authorization",
			"X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	authH := NewAuth(auth, cfg, log)
	carH := NewCar(cars)
	inquiryH := NewInquiry(inquiries)

	authed := middleware.RequireAuth(codec)
	admin := middleware.RequireAdmin()
	optional := middleware.OptionalAuth(codec)

	a := router.Group("/auth")
	a.POST("/register", authH.Register)
	a.POST("/login", authH.Login)
	a.POST("/refresh", authH.Refresh)
	a.POST("/logout", authH.Logout)

	router.GET("/cars", optional, carH.List)
	router.GET("/cars/:id", optional, carH.Get)
	router.POST("/cars", authed, admin, carH.Create)
	router.PUT("/cars/:id", authed, admin, carH.Update)
	router.DELETE("/cars/:id", authed, admin, carH.Delete)

	router.POST("/inquiries", optional, inquiryH.Create)
	router.GET("/inquiries", authed, admin, inquiryH.List)
	router.GET("/cars/:id/inquiries", authed, admin, inquiryH.ListForCar)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	return router
}
