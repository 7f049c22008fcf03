package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staycal/internal/infra/config"
	"staycal/internal/infra/obs"
)

type CalendarHTTP interface {
	Month(c *gin.Context)
}

type SelectionHTTP interface {
	Get(c *gin.Context)
	Select(c *gin.Context)
	Clear(c *gin.Context)
}

type ReservationHTTP interface {
	SubmitIntent(c *gin.Context)
}

type AvailabilityHTTP interface {
	PutRecords(c *gin.Context)
}

type Handlers struct {
	Calendar     CalendarHTTP
	Selection    SelectionHTTP
	Reservation  ReservationHTTP
	Availability AvailabilityHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg.CORSOrigins, obsMW, health, h),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// NewRouter registers every route; handlers left nil are not mounted.
func NewRouter(origins []string, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Idempotency-Key", HeaderSessionID},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			obs.HeaderRequestID,
			HeaderSessionID,
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	property := router.Group("/api/v1/properties/:id")
	if h.Calendar != nil {
		property.GET("/calendar", h.Calendar.Month)
	}
	if h.Selection != nil {
		property.GET("/selection", h.Selection.Get)
		property.POST("/selection", h.Selection.Select)
		property.DELETE("/selection", h.Selection.Clear)
	}
	if h.Reservation != nil {
		property.POST("/reservation-intents", h.Reservation.SubmitIntent)
	}
	if h.Availability != nil {
		property.PUT("/availability", h.Availability.PutRecords)
	}
	return router
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
