package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fdg312/mealweek/internal/auth"
	"github.com/fdg312/mealweek/internal/auth/emailotp"
	"github.com/fdg312/mealweek/internal/blob"
	"github.com/fdg312/mealweek/internal/catalog"
	"github.com/fdg312/mealweek/internal/config"
	"github.com/fdg312/mealweek/internal/foodprefs"
	"github.com/fdg312/mealweek/internal/mailer"
	"github.com/fdg312/mealweek/internal/mealplans"
	"github.com/fdg312/mealweek/internal/profiles"
	"github.com/fdg312/mealweek/internal/reports"
	"github.com/fdg312/mealweek/internal/selection"
	"github.com/fdg312/mealweek/internal/storage"
	"github.com/fdg312/mealweek/internal/storage/memory"
	"github.com/fdg312/mealweek/internal/storage/postgres"
	"github.com/rs/zerolog/log"
)

// Server is the HTTP API server.
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	plan           *catalog.Catalog
	storage        storage.Storage
	blobStore      blob.Store
	sessions       *selection.Store
	authMiddleware *auth.Middleware
	handler        http.Handler
}

type Option func(*Server)

// WithStorage skips the DATABASE_URL lookup and uses st.
func WithStorage(st storage.Storage) Option {
	return func(s *Server) { s.storage = st }
}

// WithBlobStore skips the BLOB_MODE/REPORTS_MODE lookup and uses store.
func WithBlobStore(store blob.Store) Option {
	return func(s *Server) { s.blobStore = store }
}

// New wires storage, services and routes for the given plan catalog.
func New(ctx context.Context, cfg *config.Config, plan *catalog.Catalog, opts ...Option) (*Server, error) {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
		plan:   plan,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.storage == nil {
		s.initStorage(ctx)
	}
	if s.blobStore == nil {
		store, _, err := blob.NewBlobStore(ctx, cfg.Blob.EffectiveReportsMode(), cfg.Blob.S3, log.Logger)
		if err != nil {
			return nil, err
		}
		s.blobStore = store
	}

	if err := s.routes(); err != nil {
		return nil, err
	}

	// CORS → access log → rate limit → auth → router
	var handler http.Handler = s.mux
	handler = s.authMiddleware.Wrap(handler)
	handler = RateLimitMiddleware(cfg, handler)
	handler = AccessLogMiddleware(handler)
	handler = CORSMiddleware(cfg, handler)
	s.handler = handler

	return s, nil
}

// initStorage picks Postgres or in-memory storage.
func (s *Server) initStorage(ctx context.Context) {
	if s.config.DatabaseURL == "" {
		log.Info().Msg("using in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Info().Msg("connecting to PostgreSQL")
	pg, err := postgres.New(ctx, s.config.DatabaseURL)
	if err != nil {
		log.Error().Err(err).Msg("PostgreSQL unavailable, falling back to in-memory storage")
		s.storage = memory.New()
		return
	}
	log.Info().Msg("PostgreSQL connected")
	s.storage = pg
}

func (s *Server) routes() error {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	profileService := profiles.NewService(s.storage.Profiles(), s.config.DefaultCalorieTarget)

	// Auth
	authService := auth.NewService(s.config, profileService)
	emailSender, err := mailer.NewSenderFromConfig(s.config, &log.Logger)
	if err != nil {
		if s.config.EmailAuthEnabled {
			return fmt.Errorf("email sender: %w", err)
		}
		log.Warn().Err(err).Msg("email sender skipped (email auth disabled)")
		emailSender = mailer.NewLocalSender(&log.Logger)
	}
	authHandler := auth.NewHandlers(authService)
	if s.config.EmailAuthEnabled {
		otpService := emailotp.NewService(s.config, s.storage.EmailOTPs(), emailSender, authService).
			WithProfiles(profileService)
		authHandler = authHandler.WithEmailOTP(otpService)
	}
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)
	s.mux.HandleFunc("POST /v1/auth/email/request", authHandler.HandleEmailOTPRequest)
	s.mux.HandleFunc("POST /v1/auth/email/verify", authHandler.HandleEmailOTPVerify)

	// Profiles
	profileHandler := profiles.NewHandler(profileService)
	s.mux.HandleFunc("GET /v1/profiles/me", profileHandler.HandleGetMe)
	s.mux.HandleFunc("PATCH /v1/profiles/me", profileHandler.HandleUpdateMe)

	// Food preferences (onboarding)
	foodPrefsHandler := foodprefs.NewHandler(foodprefs.NewService(s.storage.FoodPrefs(), profileService))
	s.mux.HandleFunc("GET /v1/food-prefs/categories", foodPrefsHandler.HandleCategories)
	s.mux.HandleFunc("GET /v1/food-prefs", foodPrefsHandler.HandleGet)
	s.mux.HandleFunc("PUT /v1/food-prefs", foodPrefsHandler.HandleSave)

	// Weekly plan and selection sessions
	s.sessions = selection.NewStore(s.plan, time.Duration(s.config.SessionTTLMinutes)*time.Minute)
	planService := mealplans.NewService(s.plan, s.sessions, profileService)
	planHandler := mealplans.NewHandler(planService)
	s.mux.HandleFunc("GET /v1/plan/week", planHandler.HandleWeek)
	s.mux.HandleFunc("GET /v1/plan/slots", planHandler.HandleSlots)
	s.mux.HandleFunc("GET /v1/plan/days/{day}", planHandler.HandleDay)
	s.mux.HandleFunc("POST /v1/plan/sessions", planHandler.HandleCreateSession)
	s.mux.HandleFunc("GET /v1/plan/sessions/{id}", planHandler.HandleGetSession)
	s.mux.HandleFunc("DELETE /v1/plan/sessions/{id}", planHandler.HandleDeleteSession)
	s.mux.HandleFunc("PUT /v1/plan/sessions/{id}/day", planHandler.HandleSwitchDay)
	s.mux.HandleFunc("PUT /v1/plan/sessions/{id}/selections/{slot}", planHandler.HandleSelectOption)
	s.mux.HandleFunc("POST /v1/plan/sessions/{id}/selections/{slot}/cycle", planHandler.HandleCycle)

	// Print / export
	reportService := reports.NewService(s.storage.Reports(), planService, s.blobStore, s.config.Blob.S3, s.config.ReportsDefaultTTLHours)
	reportHandler := reports.NewHandlers(reportService)
	s.mux.HandleFunc("GET /v1/plan/days/{day}/print", reportHandler.HandlePrintDay)
	s.mux.HandleFunc("POST /v1/reports", reportHandler.HandleCreate)
	s.mux.HandleFunc("GET /v1/reports", reportHandler.HandleList)
	s.mux.HandleFunc("GET /v1/reports/{id}/download", reportHandler.HandleDownload)
	s.mux.HandleFunc("DELETE /v1/reports/{id}", reportHandler.HandleDelete)

	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// HTTPServer builds the listener for cfg.Port.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Close releases the storage.
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
