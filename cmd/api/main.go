package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/fdg312/mealweek/internal/catalog"
	"github.com/fdg312/mealweek/internal/config"
	"github.com/fdg312/mealweek/internal/dbmigrate"
	"github.com/fdg312/mealweek/internal/httpserver"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	plan, err := catalog.New(catalog.Default())
	if err != nil {
		log.Fatal().Err(err).Msg("plan catalog is invalid")
	}

	printStartupBanner(cfg, plan)
	validateProductionConfig(cfg)

	if cfg.RunMigrationsOnStartup {
		target, err := dbmigrate.SelectDatabaseURL(cfg, true)
		if err != nil {
			log.Fatal().Err(err).Msg("startup migrations")
		}
		log.Info().Str("using", target.Source).Msg("startup migrations: up")
		if err := dbmigrate.Run("up", target.URL, dbmigrate.DefaultMigrationsDir); err != nil {
			log.Fatal().Err(err).Msg("startup migrations failed")
		}
		log.Info().Msg("startup migrations completed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := httpserver.New(ctx, cfg, plan)
	if err != nil {
		log.Fatal().Err(err).Msg("server init failed")
	}
	defer server.Close()

	httpSrv := server.HTTPServer()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", httpSrv.Addr).Msgf("listening on http://localhost%s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Env == config.EnvLocal {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}

// printStartupBanner logs the resolved configuration once. Secrets are only
// reported as set / not set.
func printStartupBanner(cfg *config.Config, plan *catalog.Catalog) {
	log.Info().Str("env", cfg.Env).Int("port", cfg.Port).Str("log_level", cfg.LogLevel).Msg("========== MealWeek API ==========")

	log.Info().
		Str("runtime_url", describeDBURL(cfg.DatabaseURL, cfg.DatabaseURLPooled)).
		Str("pooled", setOrNot(cfg.DatabaseURLPooled)).
		Str("direct", setOrNot(cfg.DatabaseURLDirect)).
		Bool("migrations_on_startup", cfg.RunMigrationsOnStartup).
		Msg("---- database ----")

	log.Info().
		Str("auth_mode", cfg.AuthMode).
		Bool("auth_required", cfg.AuthRequired).
		Bool("email_auth", cfg.EmailAuthEnabled).
		Str("jwt_secret", secretStatus(cfg.JWTSecret, "change_me")).
		Str("otp_secret", setOrNot(cfg.OTPSecret)).
		Str("email_sender", cfg.EmailSenderMode).
		Msg("---- auth ----")
	if cfg.EmailSenderMode == config.EmailSenderSMTP {
		log.Info().
			Str("smtp_host", config.NonEmptyOrDash(cfg.SMTPHost)).
			Int("smtp_port", cfg.SMTPPort).
			Str("smtp_from", config.NonEmptyOrDash(cfg.SMTPFrom)).
			Str("smtp_username", setOrNot(cfg.SMTPUsername)).
			Str("smtp_password", setOrNot(cfg.SMTPPassword)).
			Bool("smtp_use_tls", cfg.SMTPUseTLS).
			Msg("---- mailer ----")
	}

	blobEv := log.Info().
		Str("blob_mode", cfg.Blob.Mode).
		Str("reports_mode", displayReportsMode(cfg)).
		Str("effective", cfg.Blob.EffectiveReportsMode()).
		Int("reports_ttl_hours", cfg.ReportsDefaultTTLHours)
	if cfg.Blob.EffectiveReportsMode() != config.BlobModeLocal {
		blobEv = blobEv.Str("s3", cfg.Blob.S3.DiagnosticsSummary())
	}
	blobEv.Msg("---- blob ----")

	log.Info().
		Int("days", len(plan.Week())).
		Int("foods", len(plan.Foods())).
		Int("session_ttl_minutes", cfg.SessionTTLMinutes).
		Int("default_calorie_target", cfg.DefaultCalorieTarget).
		Msg("---- plan catalog ----")
	for _, w := range plan.Warnings() {
		log.Warn().Str("component", "catalog").Msg(w)
	}
}

// validateProductionConfig performs fatal checks that only matter outside local.
func validateProductionConfig(cfg *config.Config) {
	isProd := cfg.Env == "production" || cfg.Env == "prod" || cfg.Env == "staging"

	if cfg.Blob.EffectiveReportsMode() == config.BlobModeS3 {
		if missing := cfg.Blob.S3.MissingRequired(); len(missing) > 0 {
			log.Fatal().Strs("missing", missing).Msg("REPORTS_MODE/BLOB_MODE is 's3' but S3 config is incomplete")
		}
	}

	if cfg.EmailAuthEnabled && cfg.EmailSenderMode == config.EmailSenderSMTP {
		var missing []string
		if strings.TrimSpace(cfg.SMTPHost) == "" {
			missing = append(missing, "SMTP_HOST")
		}
		if strings.TrimSpace(cfg.SMTPFrom) == "" {
			missing = append(missing, "SMTP_FROM")
		}
		if len(missing) > 0 {
			log.Fatal().Strs("missing", missing).Msg("EMAIL_SENDER_MODE=smtp but config is incomplete")
		}
	}

	if isProd && cfg.AuthRequired && cfg.JWTSecret == "change_me" {
		log.Fatal().Str("env", cfg.Env).Msg("JWT_SECRET must not be 'change_me' with AUTH_REQUIRED=1")
	}
	if isProd && cfg.DatabaseURL == "" {
		log.Fatal().Str("env", cfg.Env).Msg("no DATABASE_URL configured")
	}
}

func setOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}

func secretStatus(v, insecureDefault string) string {
	v = strings.TrimSpace(v)
	switch v {
	case "":
		return "not set"
	case insecureDefault:
		return fmt.Sprintf("set (DEFAULT, insecure '%s')", insecureDefault)
	default:
		return "set (custom)"
	}
}

func describeDBURL(runtime, pooled string) string {
	if runtime == "" {
		return "not set (in-memory storage)"
	}
	if pooled != "" && runtime == pooled {
		return "set (via DATABASE_URL_POOLED)"
	}
	return "set"
}

func displayReportsMode(cfg *config.Config) string {
	if cfg.Blob.ReportsModeSet {
		return cfg.Blob.ReportsMode
	}
	return fmt.Sprintf("(inherits BLOB_MODE=%s)", cfg.Blob.Mode)
}
