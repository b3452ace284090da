package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the environment driven configuration for the portfolio server.
type Config struct {
	// Server
	Port            int           `env:"PORT" envDefault:"5000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins     string        `env:"CORS_ORIGINS" envDefault:"*"`

	// Database: a SQLite file path, or a postgres:// URL
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"portfolio.db"`
	RetentionDays int    `env:"RETENTION_DAYS" envDefault:"90"`

	// Site layout
	StaticDir          string `env:"STATIC_DIR" envDefault:"static"`
	StaticURLPrefix    string `env:"STATIC_URL_PREFIX" envDefault:"/static"`
	TemplateDir        string `env:"TEMPLATE_DIR" envDefault:"templates"`
	ProjectsKey        string `env:"PROJECTS_KEY" envDefault:"assets/projects"` // relative to StaticDir
	ProjectsMetadata   string `env:"PROJECTS_METADATA" envDefault:"backend/projects.json"`
	ResumeKey          string `env:"RESUME_KEY" envDefault:"assets/resume.pdf"` // relative to StaticDir
	ResumeDownloadName string `env:"RESUME_DOWNLOAD_NAME" envDefault:"resume.pdf"`

	// Contact form
	ContactRatePerMinute int `env:"CONTACT_RATE_PER_MINUTE" envDefault:"5"`
	TrustedProxyCount    int `env:"TRUSTED_PROXY_COUNT" envDefault:"1"`

	// Email
	MailServer        string        `env:"MAIL_SERVER" envDefault:"smtp.gmail.com"`
	MailPort          int           `env:"MAIL_PORT" envDefault:"587"`
	MailUseTLS        bool          `env:"MAIL_USE_TLS" envDefault:"true"`
	MailUsername      string        `env:"MAIL_USERNAME"`
	MailPassword      string        `env:"MAIL_PASSWORD"`
	MailDefaultSender string        `env:"MAIL_DEFAULT_SENDER"`
	MailTimeout       time.Duration `env:"MAIL_TIMEOUT" envDefault:"15s"`
	RecipientEmail    string        `env:"RECIPIENT_EMAIL"`
}

// Load reads .env files (missing files are ignored) and parses the
// environment into Config. Variables already set take precedence over
// .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.DatabasePath = strings.TrimSpace(cfg.DatabasePath)
	cfg.MailUsername = strings.TrimSpace(cfg.MailUsername)
	cfg.RecipientEmail = strings.TrimSpace(cfg.RecipientEmail)
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", cfg.Port)
	}
	if cfg.RetentionDays <= 0 {
		return nil, fmt.Errorf("RETENTION_DAYS must be positive, got %d", cfg.RetentionDays)
	}
	if cfg.ContactRatePerMinute <= 0 {
		cfg.ContactRatePerMinute = 5
	}
	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ProjectsURLPrefix returns the public path of the projects directory.
func (c *Config) ProjectsURLPrefix() string {
	return strings.TrimSuffix(c.StaticURLPrefix, "/") + "/" + strings.Trim(c.ProjectsKey, "/")
}

// IndexTemplate returns the path of the page template.
func (c *Config) IndexTemplate() string {
	return filepath.Join(c.TemplateDir, "index.html")
}
