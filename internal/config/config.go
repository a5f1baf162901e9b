package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	EnvLocal = "local"

	AuthModeNone = "none"
	AuthModeDev  = "dev"

	EmailSenderLocal = "local"
	EmailSenderSMTP  = "smtp"
)

// Config holds the application configuration.
type Config struct {
	Env      string // local | staging | prod
	Port     int
	LogLevel string

	// Database
	DatabaseURL       string // runtime connection (resolved: pooled > url > direct)
	DatabaseURLRaw    string
	DatabaseURLPooled string
	DatabaseURLDirect string // for migrations

	RunMigrationsOnStartup bool

	// HTTP edge
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	RateLimitRPS         int
	RateLimitBurst       int

	Blob BlobConfig

	// Reports (printable day plans)
	ReportsDefaultTTLHours int

	// Plan viewing
	SessionTTLMinutes    int
	DefaultCalorieTarget int

	// Authentication
	AuthMode            string // none | dev
	AuthRequired        bool
	EmailAuthEnabled    bool
	JWTSecret           string
	JWTIssuer           string
	JWTTTLMinutes       int
	OTPSecret           string
	OTPTTLSeconds       int
	OTPMaxAttempts      int
	OTPResendMinSeconds int
	OTPMaxSendPerHour   int
	OTPDebugReturnCode  bool

	// Email delivery for one-time codes
	EmailSenderMode string // local | smtp
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	SMTPUseTLS      bool
}

// AuthEnabled reports whether tokens are issued and checked at all.
func (c *Config) AuthEnabled() bool {
	return c.AuthMode != AuthModeNone
}

// Load reads configuration from the environment. Unknown enum values are
// logged and replaced with their defaults.
func Load() *Config {
	env := firstNonEmpty(os.Getenv("APP_ENV"), os.Getenv("ENV"), EnvLocal)

	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if logLevel == "" {
		logLevel = "debug"
	}

	// ---------- Database ----------
	// Runtime priority: DATABASE_URL_POOLED > DATABASE_URL > DATABASE_URL_DIRECT
	dbPooled := strings.TrimSpace(os.Getenv("DATABASE_URL_POOLED"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbDirect := strings.TrimSpace(os.Getenv("DATABASE_URL_DIRECT"))

	// ---------- Auth ----------
	authMode := strings.ToLower(strings.TrimSpace(os.Getenv("AUTH_MODE")))
	if authMode == "" {
		authMode = AuthModeNone
	}
	if authMode != AuthModeNone && authMode != AuthModeDev {
		log.Warn().Str("value", authMode).Msg("unknown AUTH_MODE, fallback to none")
		authMode = AuthModeNone
	}
	authRequired := authMode != AuthModeNone && parseBoolEnv("AUTH_REQUIRED")

	emailAuthEnabled := authMode != AuthModeNone
	if strings.TrimSpace(os.Getenv("EMAIL_AUTH_ENABLED")) != "" {
		emailAuthEnabled = parseBoolEnv("EMAIL_AUTH_ENABLED")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "change_me"
	}
	if jwtSecret == "change_me" && env != EnvLocal {
		log.Warn().Msg("JWT_SECRET is set to 'change_me' in non-local environment")
	}
	otpSecret := strings.TrimSpace(os.Getenv("OTP_SECRET"))
	if otpSecret == "" {
		otpSecret = jwtSecret
	}

	emailSenderMode := strings.ToLower(strings.TrimSpace(os.Getenv("EMAIL_SENDER_MODE")))
	if emailSenderMode == "" {
		emailSenderMode = EmailSenderLocal
	}
	if emailSenderMode != EmailSenderLocal && emailSenderMode != EmailSenderSMTP {
		log.Warn().Str("value", emailSenderMode).Msg("unknown EMAIL_SENDER_MODE, fallback to local")
		emailSenderMode = EmailSenderLocal
	}

	// ---------- Plan ----------
	defaultTarget := envInt("DEFAULT_CALORIE_TARGET", 1500)
	if defaultTarget < 1000 || defaultTarget > 4000 {
		log.Warn().Int("value", defaultTarget).Msg("DEFAULT_CALORIE_TARGET out of range [1000, 4000], using 1500")
		defaultTarget = 1500
	}

	return &Config{
		Env:      env,
		Port:     envInt("PORT", 8080),
		LogLevel: logLevel,

		DatabaseURL:       firstNonEmpty(dbPooled, dbURL, dbDirect),
		DatabaseURLRaw:    dbURL,
		DatabaseURLPooled: dbPooled,
		DatabaseURLDirect: dbDirect,

		RunMigrationsOnStartup: parseBoolEnv("RUN_MIGRATIONS_ON_STARTUP"),

		CORSAllowedOrigins:   parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), env),
		CORSAllowCredentials: parseBoolEnv("CORS_ALLOW_CREDENTIALS"),
		RateLimitRPS:         envInt("RATE_LIMIT_RPS", 0),
		RateLimitBurst:       envInt("RATE_LIMIT_BURST", 0),

		Blob: loadBlobConfig(),

		ReportsDefaultTTLHours: envPositiveInt("REPORTS_DEFAULT_TTL_HOURS", 168),

		SessionTTLMinutes:    envPositiveInt("SESSION_TTL_MINUTES", 720),
		DefaultCalorieTarget: defaultTarget,

		AuthMode:            authMode,
		AuthRequired:        authRequired,
		EmailAuthEnabled:    emailAuthEnabled,
		JWTSecret:           jwtSecret,
		JWTIssuer:           firstNonEmpty(os.Getenv("JWT_ISSUER"), "mealweek"),
		JWTTTLMinutes:       envPositiveInt("JWT_TTL_MINUTES", 10080),
		OTPSecret:           otpSecret,
		OTPTTLSeconds:       envPositiveInt("OTP_TTL_SECONDS", 600),
		OTPMaxAttempts:      envPositiveInt("OTP_MAX_ATTEMPTS", 5),
		OTPResendMinSeconds: envPositiveInt("OTP_RESEND_MIN_SECONDS", 60),
		OTPMaxSendPerHour:   envPositiveInt("OTP_MAX_SEND_PER_HOUR", 5),
		OTPDebugReturnCode:  parseBoolEnv("OTP_DEBUG_RETURN_CODE"),

		EmailSenderMode: emailSenderMode,
		SMTPHost:        strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort:        envPositiveInt("SMTP_PORT", 587),
		SMTPUsername:    strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
		SMTPPassword:    strings.TrimSpace(os.Getenv("SMTP_PASSWORD")),
		SMTPFrom:        firstNonEmpty(strings.TrimSpace(os.Getenv("SMTP_FROM")), "Plano Semanal <no-reply@localhost>"),
		SMTPUseTLS:      parseBoolEnv("SMTP_USE_TLS"),
	}
}

// parseCORSOrigins parses CORS_ALLOWED_ORIGINS.
// In local mode, defaults to localhost origins if empty.
func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == EnvLocal {
			return []string{"http://localhost:5173", "http://localhost:8080"}
		}
		return nil
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func envInt(key string, defaultVal int) int {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Warn().Str("key", key).Str("value", s).Msg("invalid integer, using default")
		return defaultVal
	}
	return v
}

// envPositiveInt is envInt that also rejects zero and negative values.
func envPositiveInt(key string, defaultVal int) int {
	v := envInt(key, defaultVal)
	if v <= 0 {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
