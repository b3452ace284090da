package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/portfolio/backend/internal/catalog"
	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/storage"
	"github.com/portfolio/backend/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info")
		logging.Fatal("invalid configuration", "error", err)
	}
	logger := logging.Setup(cfg.LogLevel)

	ctx := context.Background()

	// The site stays up without a database; contact and stats answer 503.
	store, err := repository.Open(ctx, cfg.DatabasePath)
	if err != nil {
		slog.Error("database unavailable", "error", err)
	} else {
		defer store.Close()
		slog.Info("database initialized")
	}

	mailClient := mailer.NewClient(mailer.Config{
		Host:     cfg.MailServer,
		Port:     cfg.MailPort,
		UseTLS:   cfg.MailUseTLS,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		From:     cfg.MailDefaultSender,
		Timeout:  cfg.MailTimeout,
	})
	if !mailClient.Configured() {
		slog.Warn("mail not configured; contact notifications disabled")
	}

	files := storage.NewLocalStorage(cfg.StaticDir, cfg.StaticURLPrefix)
	aggregator := catalog.New(catalog.Config{
		Dir:          files.Path(cfg.ProjectsKey),
		MetadataPath: cfg.ProjectsMetadata,
		URLPrefix:    cfg.ProjectsURLPrefix(),
		Logger:       logger,
	})

	contactService := service.NewContactService(store, mailClient, service.ContactConfig{
		Recipient: cfg.RecipientEmail,
	})
	downloadService := service.NewDownloadService(store)
	statsService := service.NewStatsService(store)
	projectService := service.NewProjectService(aggregator)

	router := handler.NewRouter(handler.Routes{
		Base:         handler.New(store, cfg.CORSOrigins),
		Pages:        handler.NewPageHandler(cfg.IndexTemplate(), files),
		Contacts:     handler.NewContactHandler(contactService),
		Resume:       handler.NewResumeHandler(files, downloadService, cfg.ResumeKey, cfg.ResumeDownloadName, cfg.TrustedProxyCount),
		Stats:        handler.NewStatsHandler(statsService),
		Projects:     handler.NewProjectHandler(projectService),
		RateLimiter:  handler.NewRateLimiter(cfg.ContactRatePerMinute, cfg.TrustedProxyCount),
		StaticPrefix: cfg.StaticURLPrefix,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		slog.Info("server listening",
			"addr", server.Addr,
			"static_dir", filepath.Clean(cfg.StaticDir),
			"projects_dir", files.Path(cfg.ProjectsKey),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
