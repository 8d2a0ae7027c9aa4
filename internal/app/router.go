package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"tripbook/internal/handler"
	"tripbook/internal/metrics"
	"tripbook/internal/middleware"
	internalRedis "tripbook/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler      *handler.UserHandler
	DriverHandler    *handler.DriverHandler
	TripHandler      *handler.TripHandler
	DB               handler.Pinger
	IdempotencyStore internalRedis.IdempotencyStoreInterface // nil disables idempotency
	NewRelicApp      *newrelic.Application
	Logger           *zap.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	handler.UseJSONFieldNames()

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NewRelicAttributes())
	}

	router.Use(middleware.IdempotencyMiddleware(deps.IdempotencyStore))

	router.GET("/", handler.Index)
	router.GET("/health", handler.Health(deps.DB))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// User routes.
	users := router.Group("/users")
	{
		collection(users, deps.UserHandler.GetAll, deps.UserHandler.Create)
		users.GET("/:id", deps.UserHandler.Get)
		users.PUT("/:id", deps.UserHandler.Replace)
		users.DELETE("/:id", deps.UserHandler.Delete)
	}

	// Driver routes.
	drivers := router.Group("/drivers")
	{
		collection(drivers, deps.DriverHandler.GetAll, deps.DriverHandler.Register)
		drivers.GET("/:id", deps.DriverHandler.Get)
		drivers.PUT("/:id", deps.DriverHandler.Replace)
		drivers.DELETE("/:id", deps.DriverHandler.Delete)
	}

	// Trip routes.
	trips := router.Group("/trips")
	{
		collection(trips, deps.TripHandler.GetAll, deps.TripHandler.CreateTrip)
		trips.GET("/:id", deps.TripHandler.GetTrip)
		trips.PUT("/:id", deps.TripHandler.PatchTrip)
		trips.PATCH("/:id", deps.TripHandler.PatchTrip)
		trips.DELETE("/:id", deps.TripHandler.DeleteTrip)
	}

	return router
}

// collection registers list and create on the group path both with and
// without the trailing slash, so neither form is redirected.
func collection(g *gin.RouterGroup, list, create gin.HandlerFunc) {
	for _, path := range []string{"", "/"} {
		g.GET(path, list)
		g.POST(path, create)
	}
}
