package app

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/todoflow-labs/list-service/internal/auth"
	"github.com/todoflow-labs/list-service/internal/config"
	"github.com/todoflow-labs/list-service/internal/events"
	"github.com/todoflow-labs/list-service/internal/handler"
	"github.com/todoflow-labs/list-service/internal/logging"
	"github.com/todoflow-labs/list-service/internal/metrics"
	"github.com/todoflow-labs/list-service/internal/store"
)

func Run() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize logger and metrics
	logger := logging.New(cfg.LogLevel).With().Str("service", "list-service").Logger()
	metrics.Init(cfg.MetricsAddr)
	logger.Info().Msgf("metrics server listening on %s", cfg.MetricsAddr)

	// Connect to the document store
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	gateway := store.New(rdb, map[string]store.Table{
		cfg.TasksTable: {RangeAttr: "listId", Index: config.TaskListIndex},
	})

	// Connect to NATS and bootstrap the event stream
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to NATS")
	}
	js, err := nc.JetStream()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init JetStream")
	}
	publisher, err := events.New(js, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create event stream")
	}

	deps := handler.Deps{
		Store:  gateway,
		Events: publisher,
		Cfg:    cfg,
		Logger: &logger,
	}

	// Set up HTTP server and routes
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(jsonContentType)
	r.Use(auth.Middleware(auth.NewVerifier(cfg.JWKSURI, cfg.Audience)))

	// Routes
	r.Post("/list/create", handler.CreateList(deps))
	r.Post("/list", handler.GetList(deps))
	r.Post("/list/update", handler.UpdateList(deps))
	r.Post("/list/delete", handler.DeleteList(deps))
	r.Post("/task/create", handler.CreateTask(deps))
	r.Post("/task", handler.GetTask(deps))
	r.Post("/task/update", handler.UpdateTask(deps))
	r.Post("/task/delete", handler.DeleteTask(deps))

	// Error handlers
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
		logger.Warn().Str("path", r.URL.Path).Msg("404 not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		logger.Warn().Str("path", r.URL.Path).Msg("405 method not allowed")
	})

	logger.Info().Msgf("list-service listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal().Err(err).Msg("HTTP server failed")
	}
}

// Forces JSON Content-Type for all responses
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Writes a structured JSON error
func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}
