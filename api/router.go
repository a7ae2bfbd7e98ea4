package api

import (
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"

	"github.com/muhammadMilon/FruitPanda-sub001/api/middleware"
	"github.com/muhammadMilon/FruitPanda-sub001/config"
	"github.com/muhammadMilon/FruitPanda-sub001/database"
	"github.com/muhammadMilon/FruitPanda-sub001/services"
	"github.com/muhammadMilon/FruitPanda-sub001/storage"
)

func App() chi.Router {
	r := chi.NewRouter()

	// create loggers
	logLevel := gecho.ParseLogLevel(config.GetLogLevel())
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))

	db := database.GetInstance()
	cfg := config.GetConfig()

	store, err := storage.NewLocalStore(cfg.Storage.ReceiptDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		standardLogger.Fatal("Failed to initialize receipt storage", gecho.Field("error", err))
	}

	sm := services.NewServiceManager(standardLogger, cfg, db, store)
	mw := middleware.NewMiddleware(cfg, mwLogger)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(1 * 1024 * 1024))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(gecho.Handlers.CreateLoggingMiddleware(mwLogger))

	// CORS (must be before auth)
	r.Use(mw.SetupCORS().Handler)

	// Register all routes
	NewRouterManager(standardLogger, sm, mw).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the Fruit Panda API"),
			gecho.Send(),
		)
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
