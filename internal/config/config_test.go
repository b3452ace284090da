package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "portfolio.db", cfg.DatabasePath)
	assert.Equal(t, 90, cfg.RetentionDays)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, "/static/assets/projects", cfg.ProjectsURLPrefix())
	assert.Equal(t, filepath.Join("templates", "index.html"), cfg.IndexTemplate())
	assert.Equal(t, 587, cfg.MailPort)
	assert.True(t, cfg.MailUseTLS)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_PATH", " postgres://u:p@db/portfolio ")
	t.Setenv("MAIL_USE_TLS", "false")
	t.Setenv("RECIPIENT_EMAIL", "me@example.com")
	t.Setenv("STATIC_URL_PREFIX", "/assets/")
	t.Setenv("PROJECTS_KEY", "/work/")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "postgres://u:p@db/portfolio", cfg.DatabasePath)
	assert.False(t, cfg.MailUseTLS)
	assert.Equal(t, "me@example.com", cfg.RecipientEmail)
	assert.Equal(t, "/assets/work", cfg.ProjectsURLPrefix())
}

func TestLoad_DotEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORTFOLIO_TEST_ONLY=1\nRESUME_DOWNLOAD_NAME=Jane_Doe_Resume.pdf\n"), 0o644))
	t.Setenv("RESUME_DOWNLOAD_NAME", "")
	require.NoError(t, os.Unsetenv("RESUME_DOWNLOAD_NAME"))
	t.Cleanup(func() {
		_ = os.Unsetenv("PORTFOLIO_TEST_ONLY")
		_ = os.Unsetenv("RESUME_DOWNLOAD_NAME")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "Jane_Doe_Resume.pdf", cfg.ResumeDownloadName)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("PORT", "5000")
	t.Setenv("RETENTION_DAYS", "0")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
