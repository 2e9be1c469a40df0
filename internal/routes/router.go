package routes

import (
	"net/http"
	"os"
	"time"

	"placement-experiment/praxis/internal/api"
	"placement-experiment/praxis/internal/common"
	"placement-experiment/praxis/internal/db"
	"placement-experiment/praxis/internal/logging"
	"placement-experiment/praxis/internal/metrics"
	"placement-experiment/praxis/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	r := chi.NewRouter()

	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	redisClient := common.NewRedisClient()

	deps, err := api.InitDependencies(db.DB, db.PgDB, redisClient, metricsReg, []byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, redisClient, upSince))

	RegisterAPIRoutes(r, deps)

	return r
}
