package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	BlobModeLocal = "local"
	BlobModeS3    = "s3"
	BlobModeAuto  = "auto"
)

// S3Config describes an S3-compatible bucket for rendered reports.
type S3Config struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKeyID       string
	SecretAccessKey   string
	PublicBaseURL     string
	PresignTTLSeconds int
	PreferPublicURL   bool
}

func (c S3Config) MissingRequired() []string {
	required := []struct {
		key   string
		value string
	}{
		{"S3_ENDPOINT", c.Endpoint},
		{"S3_REGION", c.Region},
		{"S3_BUCKET", c.Bucket},
		{"S3_ACCESS_KEY_ID", c.AccessKeyID},
		{"S3_SECRET_ACCESS_KEY", c.SecretAccessKey},
		{"S3_PUBLIC_BASE_URL", c.PublicBaseURL},
	}
	missing := make([]string, 0, len(required))
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}
	return missing
}

func (c S3Config) IsConfigured() bool {
	return len(c.MissingRequired()) == 0
}

// Diagnostics classifies the S3 settings for the startup banner.
func (c S3Config) Diagnostics() (level string, code string, msg string) {
	missing := c.MissingRequired()
	switch {
	case len(missing) == 6:
		return "INFO", "s3_not_configured", "not configured (all empty)"
	case len(missing) > 0:
		return "WARN", "s3_partial_config", fmt.Sprintf("partial config, missing=%v", missing)
	default:
		return "INFO", "s3_ready", "ready"
	}
}

// DiagnosticsSummary returns a loggable summary without secrets.
func (c S3Config) DiagnosticsSummary() string {
	return fmt.Sprintf("endpoint=%s region=%s bucket=%s public_base_url=%s presign_ttl=%ds prefer_public_url=%t access_key_id=%s secret_access_key=%s",
		NonEmptyOrDash(c.Endpoint),
		NonEmptyOrDash(c.Region),
		NonEmptyOrDash(c.Bucket),
		NonEmptyOrDash(c.PublicBaseURL),
		c.PresignTTLSeconds,
		c.PreferPublicURL,
		setOrNot(c.AccessKeyID),
		setOrNot(c.SecretAccessKey),
	)
}

type BlobConfig struct {
	Mode           string // local|s3|auto
	ReportsMode    string // overrides Mode for reports when set
	ReportsModeSet bool
	S3             S3Config
}

func (c BlobConfig) EffectiveReportsMode() string {
	if c.ReportsModeSet {
		return c.ReportsMode
	}
	return c.Mode
}

func loadBlobConfig() BlobConfig {
	reportsRaw := strings.TrimSpace(os.Getenv("REPORTS_MODE"))

	presignTTL := envInt("S3_PRESIGN_TTL_SECONDS", 900)
	if presignTTL <= 0 {
		presignTTL = 900
	}

	return BlobConfig{
		Mode:           parseBlobMode("BLOB_MODE", BlobModeLocal),
		ReportsMode:    parseBlobMode("REPORTS_MODE", BlobModeLocal),
		ReportsModeSet: reportsRaw != "",
		S3: S3Config{
			Endpoint:          strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			Region:            strings.TrimSpace(os.Getenv("S3_REGION")),
			Bucket:            strings.TrimSpace(os.Getenv("S3_BUCKET")),
			AccessKeyID:       strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
			SecretAccessKey:   strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
			PublicBaseURL:     strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")),
			PresignTTLSeconds: presignTTL,
			PreferPublicURL:   parseBoolEnv("S3_PREFER_PUBLIC_URL"),
		},
	}
}

func parseBlobMode(key string, defaultVal string) string {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if mode == "" {
		return defaultVal
	}
	switch mode {
	case BlobModeLocal, BlobModeS3, BlobModeAuto:
		return mode
	default:
		log.Warn().Str("key", key).Str("value", mode).Msgf("unknown blob mode, fallback to %s", defaultVal)
		return defaultVal
	}
}

// NonEmptyOrDash renders empty settings as "-" in logs.
func NonEmptyOrDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func setOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}
