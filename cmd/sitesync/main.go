// Command sitesync keeps the search documents table in step with external
// sites, the quick-links configuration and the user directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/sitesync/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sitesync/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sitesync/internal/adapters/driving/cli"
	"github.com/custodia-labs/sitesync/internal/connectors/quicklinks"
	"github.com/custodia-labs/sitesync/internal/connectors/site"
	"github.com/custodia-labs/sitesync/internal/connectors/users"
	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
	"github.com/custodia-labs/sitesync/internal/core/services"
	"github.com/custodia-labs/sitesync/internal/logger"
	"github.com/custodia-labs/sitesync/internal/normalisers/document"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// SITESYNC_HOME relocates both the config file and the database.
	home := os.Getenv("SITESYNC_HOME")
	dataDir := ""
	if home != "" {
		dataDir = filepath.Join(home, "data")
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("settings: %v", err)
	}
	if settings == nil {
		defaults := domain.DefaultSettings()
		settings = &defaults
	}
	if err := logger.SetLevel(settings.LogLevel); err != nil {
		logger.Warn("log level: %v", err)
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	var connectors []driven.Connector
	if len(settings.Sites.Endpoints) > 0 {
		connectors = append(connectors, site.New(site.ConfigFromSettings(settings.Sites)))
	}
	if settings.QuickLinks.Path != "" {
		provider := file.NewLinkConfigFile(settings.QuickLinks.Path)
		connectors = append(connectors, quicklinks.New(provider, store.SyncStateStore()))
	}
	if settings.Users.Enabled {
		connectors = append(connectors, users.New(store.UserDirectory(), settings.Users.ProfileURL))
	}
	logger.Debug("database %s, %d connector(s)", store.Path(), len(connectors))

	syncOrchestrator := services.NewSyncOrchestrator(
		store.DocumentStore(),
		store.SyncStateStore(),
		document.New(),
		connectors...,
	)
	scheduler := services.NewScheduler(settings.Scheduler, store.SchedulerStore(), syncOrchestrator)

	return cli.Execute(ctx, version, cli.Services{
		Sync:      syncOrchestrator,
		Documents: services.NewDocumentService(store.DocumentStore(), nil),
		Settings:  settingsService,
		Scheduler: scheduler,
		Users:     services.NewUserService(store.UserDirectory()),
	})
}
