package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SheetBackendGoogle   = "google"
	SheetBackendPostgres = "postgres"
	SheetBackendNone     = "none"
)

type Config struct {
	Port     int
	AppEnv   string
	LogLevel string
	Timezone string

	Session SessionConfig
	Sheet   SheetConfig
	Mail    MailConfig

	SinkTimeout     time.Duration
	ContactWhatsApp string

	// AllowedOrigins may send credentialed cross-origin requests.
	AllowedOrigins []string
}

type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	CookieName      string
}

type SheetConfig struct {
	Backend         string
	CredentialsFile string
	SpreadsheetID   string
	Worksheet       string
	PostgresURL     string
}

type MailConfig struct {
	Host           string
	Port           int
	Username       string
	Password       string
	From           string
	FromName       string
	UseSSL         bool
	RequireTLS     bool
	Subject        string
	AttachmentPath string
	AgentWhatsApp  string
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Port:     5000,
		AppEnv:   "production",
		LogLevel: "info",
		Timezone: "Asia/Kuala_Lumpur",
		Session: SessionConfig{
			TTL:             30 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			CookieName:      "chat_session",
		},
		Sheet: SheetConfig{
			Backend:         SheetBackendGoogle,
			CredentialsFile: "ServiceAccount.json",
			Worksheet:       "Campaign5",
		},
		Mail: MailConfig{
			Host:           "smtp.gmail.com",
			Port:           587,
			FromName:       "KKMJP Superagent",
			RequireTLS:     true,
			Subject:        "😊 Your Insurance Chat Summary – KKMJP Superagent",
			AttachmentPath: "Benefits.pdf",
			AgentWhatsApp:  "60123456789",
		},
		SinkTimeout:     10 * time.Second,
		ContactWhatsApp: "60168357258",
	}
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv overlays the process environment on Default.
func FromEnv() (Config, error) {
	cfg := Default()
	var err error

	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return Config{}, err
	}
	cfg.AppEnv = envString("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.Timezone = envString("TIMEZONE", cfg.Timezone)

	if cfg.Session.TTL, err = envDuration("SESSION_TTL", cfg.Session.TTL); err != nil {
		return Config{}, err
	}
	if cfg.Session.CleanupInterval, err = envDuration("SESSION_CLEANUP_INTERVAL", cfg.Session.CleanupInterval); err != nil {
		return Config{}, err
	}
	cfg.Session.CookieName = envString("SESSION_COOKIE", cfg.Session.CookieName)
	if cfg.SinkTimeout, err = envDuration("SINK_TIMEOUT", cfg.SinkTimeout); err != nil {
		return Config{}, err
	}

	cfg.Sheet.Backend = strings.ToLower(envString("SHEET_BACKEND", cfg.Sheet.Backend))
	switch cfg.Sheet.Backend {
	case SheetBackendGoogle, SheetBackendPostgres, SheetBackendNone:
	default:
		return Config{}, fmt.Errorf("SHEET_BACKEND: unknown backend %q", cfg.Sheet.Backend)
	}
	cfg.Sheet.CredentialsFile = envString("GOOGLE_CREDENTIALS_FILE", cfg.Sheet.CredentialsFile)
	cfg.Sheet.SpreadsheetID = envString("SPREADSHEET_ID", cfg.Sheet.SpreadsheetID)
	cfg.Sheet.Worksheet = envString("WORKSHEET_NAME", cfg.Sheet.Worksheet)
	cfg.Sheet.PostgresURL = envString("POSTGRES_URL", cfg.Sheet.PostgresURL)

	cfg.Mail.Host = envString("SMTP_HOST", cfg.Mail.Host)
	if cfg.Mail.Port, err = envInt("SMTP_PORT", cfg.Mail.Port); err != nil {
		return Config{}, err
	}
	cfg.Mail.Username = envString("SMTP_USERNAME", cfg.Mail.Username)
	cfg.Mail.Password = envString("SMTP_PASSWORD", cfg.Mail.Password)
	cfg.Mail.From = envString("SMTP_FROM", cfg.Mail.Username)
	cfg.Mail.FromName = envString("SMTP_FROM_NAME", cfg.Mail.FromName)
	if cfg.Mail.UseSSL, err = envBool("SMTP_USE_SSL", cfg.Mail.UseSSL); err != nil {
		return Config{}, err
	}
	if cfg.Mail.RequireTLS, err = envBool("SMTP_REQUIRE_TLS", cfg.Mail.RequireTLS); err != nil {
		return Config{}, err
	}
	cfg.Mail.Subject = envString("MAIL_SUBJECT", cfg.Mail.Subject)
	cfg.Mail.AttachmentPath = envString("MAIL_ATTACHMENT", cfg.Mail.AttachmentPath)
	cfg.Mail.AgentWhatsApp = envString("AGENT_WHATSAPP", cfg.Mail.AgentWhatsApp)
	cfg.ContactWhatsApp = envString("CONTACT_WHATSAPP", cfg.ContactWhatsApp)
	cfg.AllowedOrigins = envList("CORS_ALLOWED_ORIGINS", cfg.AllowedOrigins)

	return cfg, nil
}

func (c Config) Development() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func envList(key string, def []string) []string {
	v := envString(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envInt(key string, def int) (int, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > 65535 {
		return 0, fmt.Errorf("%s: invalid port %q", key, v)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func envBool(key string, def bool) (bool, error) {
	v := envString(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid bool %q", key, v)
	}
	return b, nil
}
