package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	appointmenthandler "github.com/hms-backend/hms-api/internal/handler/appointment"
	authhandler "github.com/hms-backend/hms-api/internal/handler/auth"
	healthhandler "github.com/hms-backend/hms-api/internal/handler/health"
	hospitalhandler "github.com/hms-backend/hms-api/internal/handler/hospital"
	patienthandler "github.com/hms-backend/hms-api/internal/handler/patient"
	paymenthandler "github.com/hms-backend/hms-api/internal/handler/payment"
	reviewhandler "github.com/hms-backend/hms-api/internal/handler/review"
	staffhandler "github.com/hms-backend/hms-api/internal/handler/staff"
	"github.com/hms-backend/hms-api/internal/middleware"
	"github.com/hms-backend/hms-api/pkg/metrics"
)

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

type Router struct {
	engine *gin.Engine
	auth   *middleware.AuthMiddleware

	authH        *authhandler.Handler
	appointmentH *appointmenthandler.Handler
	staffH       *staffhandler.Handler
	patientH     *patienthandler.Handler
	hospitalH    *hospitalhandler.Handler
	reviewH      *reviewhandler.Handler
	paymentH     *paymenthandler.Handler
	healthH      *healthhandler.Handler
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authhandler.Handler,
	appointmentH *appointmenthandler.Handler,
	staffH *staffhandler.Handler,
	patientH *patienthandler.Handler,
	hospitalH *hospitalhandler.Handler,
	reviewH *reviewhandler.Handler,
	paymentH *paymenthandler.Handler,
	healthH *healthhandler.Handler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	middleware.RegisterValidations()

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(m),
	)
	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return &Router{
		engine:       engine,
		auth:         auth,
		authH:        authH,
		appointmentH: appointmentH,
		staffH:       staffH,
		patientH:     patientH,
		hospitalH:    hospitalH,
		reviewH:      reviewH,
		paymentH:     paymentH,
		healthH:      healthH,
	}
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.healthH.RegisterRoutes(api)
	r.authH.RegisterRoutes(api)
	r.appointmentH.RegisterRoutes(api, r.auth)
	r.staffH.RegisterRoutes(api, r.auth)
	r.patientH.RegisterRoutes(api, r.auth)
	r.hospitalH.RegisterRoutes(api, r.auth)
	r.reviewH.RegisterRoutes(api, r.auth)
	r.paymentH.RegisterRoutes(api, r.auth)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
