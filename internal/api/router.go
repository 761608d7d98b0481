package api

import (
	"net/http"

	_ "github.com/rohits-web03/robofriends/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rohits-web03/robofriends/internal/api/handlers"
	"github.com/rohits-web03/robofriends/internal/api/middleware"
	"github.com/rohits-web03/robofriends/internal/config"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func SetupRouter(store handlers.RobotStore, cfg config.Config, log *zap.Logger) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.CorsConfig(cfg.AllowedOrigins))

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /{$}", handlers.Root)
	mainMux.HandleFunc("GET /health", handlers.Health)
	mainMux.HandleFunc("GET /docs/", httpSwagger.WrapHandler)

	// ---------- ROBOTS ----------
	robots := handlers.NewRobotHandler(store, log)
	mainMux.HandleFunc("GET /api/robots", robots.ListRobots)
	mainMux.HandleFunc("POST /api/robots", robots.CreateRobot)
	mainMux.HandleFunc("GET /api/robots/check-phone/{phone}", robots.CheckPhone)

	log.Debug("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(log)(handler)
	handler = middleware.Recover(log)(handler)
	return handler
}
