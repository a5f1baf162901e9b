package blob

import (
	"context"
	"fmt"
	"strings"

	appcfg "github.com/fdg312/mealweek/internal/config"
	"github.com/rs/zerolog"
)

// NewBlobStore builds a blob store for mode local|s3|auto. A nil Store with
// mode "local" means reports are kept inline in the database.
func NewBlobStore(ctx context.Context, mode string, s3cfg appcfg.S3Config, logger zerolog.Logger) (Store, string, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = appcfg.BlobModeLocal
	}
	l := logger.With().Str("component", "blob").Logger()

	switch mode {
	case appcfg.BlobModeLocal:
		l.Info().Str("mode", "local").Msg("blob store: local (forced)")
		return nil, appcfg.BlobModeLocal, nil

	case appcfg.BlobModeAuto:
		if !s3cfg.IsConfigured() {
			level, code, msg := s3cfg.Diagnostics()
			ev := l.Info()
			if level == "WARN" {
				ev = l.Warn()
			}
			ev.Str("code", code).Str("s3", s3cfg.DiagnosticsSummary()).Msg(msg)
			l.Info().Str("mode", "local").Msg("blob store: local (auto, S3 not configured)")
			return nil, appcfg.BlobModeLocal, nil
		}

		l.Info().Str("code", "s3_ready").Str("s3", s3cfg.DiagnosticsSummary()).Msg("s3 configured")
		store, err := NewS3Store(ctx, s3cfg.Endpoint, s3cfg.Region, s3cfg.Bucket, s3cfg.AccessKeyID, s3cfg.SecretAccessKey)
		if err != nil {
			l.Warn().Err(err).Str("code", "s3_init_failed").Msg("falling back to local")
			return nil, appcfg.BlobModeLocal, nil
		}
		l.Info().Str("mode", "s3").Msg("blob store: s3 (auto, configured)")
		return store, appcfg.BlobModeS3, nil

	case appcfg.BlobModeS3:
		if !s3cfg.IsConfigured() {
			missing := s3cfg.MissingRequired()
			l.Error().Str("code", "s3_config_incomplete").Strs("missing", missing).Str("s3", s3cfg.DiagnosticsSummary()).Msg("s3 mode requested")
			return nil, "", fmt.Errorf("BLOB_MODE=s3 requested but missing required config: %s", strings.Join(missing, ", "))
		}

		l.Info().Str("code", "s3_ready").Str("s3", s3cfg.DiagnosticsSummary()).Msg("s3 configured")
		store, err := NewS3Store(ctx, s3cfg.Endpoint, s3cfg.Region, s3cfg.Bucket, s3cfg.AccessKeyID, s3cfg.SecretAccessKey)
		if err != nil {
			l.Error().Err(err).Str("code", "s3_init_failed").Msg("s3 mode requested")
			return nil, "", fmt.Errorf("BLOB_MODE=s3 init failed: %w", err)
		}
		l.Info().Str("mode", "s3").Msg("blob store: s3 (forced)")
		return store, appcfg.BlobModeS3, nil

	default:
		return nil, "", fmt.Errorf("unsupported blob mode: %s", mode)
	}
}
