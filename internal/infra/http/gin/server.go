package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"gitecal/internal/infra/config"
	"gitecal/internal/infra/obs"
)

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
	Check(c *gin.Context)
}

type QuoteHTTP interface {
	Create(c *gin.Context)
}

type OverviewHTTP interface {
	Overview(c *gin.Context)
}

type AdminDaysHTTP interface {
	List(c *gin.Context)
	Upsert(c *gin.Context)
	Delete(c *gin.Context)
	Reset(c *gin.Context)
}

type Handlers struct {
	Availability AvailabilityHTTP
	Quote        QuoteHTTP
	Overview     OverviewHTTP
	AdminDays    AdminDaysHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Availability != nil {
		api.GET("/calendar", h.Availability.Calendar)
		api.GET("/availability", h.Availability.Check)
	}
	if h.Quote != nil {
		api.POST("/quote", h.Quote.Create)
	}
	if h.Overview != nil {
		api.GET("/calendar/overview", h.Overview.Overview)
	}
	if h.AdminDays != nil {
		adminGroup := api.Group("/admin/days")
		adminGroup.GET("", h.AdminDays.List)
		adminGroup.POST("", h.AdminDays.Upsert)
		adminGroup.DELETE("", h.AdminDays.Delete)
		adminGroup.POST("/reset", h.AdminDays.Reset)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
