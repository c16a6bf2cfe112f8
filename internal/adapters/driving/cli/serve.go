package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sitesync/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/sitesync/internal/adapters/driving/watch"
	"github.com/custodia-labs/sitesync/internal/connectors/quicklinks"
	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sync on a schedule and serve the HTTP API",
	Long: `Runs the scheduled document sync, serves the document query API and
resyncs quick links whenever their configuration file changes.

Stops cleanly on interrupt, waiting for a running sync to finish.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if settingsService == nil || documentService == nil || syncOrchestrator == nil || scheduler == nil {
		return errors.New("services not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}

	api, err := httpapi.NewServer(documentService, syncOrchestrator)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		return api.ListenAndServe(ctx, addr)
	})

	g.Go(func() error {
		err := scheduler.Start(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if path := settings.QuickLinks.Path; path != "" {
		w, err := watch.NewFileWatcher(path, watch.DefaultDebounce, resyncQuickLinks)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	cmd.Printf("sitesync %s serving on %s\n", version, addr)
	return g.Wait()
}

func resyncQuickLinks(ctx context.Context) {
	logger.Info("quick links changed, resyncing")
	_, err := syncOrchestrator.Sync(ctx, quicklinks.ConnectorType)
	switch {
	case errors.Is(err, domain.ErrSyncInProgress):
		logger.Info("sync already running, quick links will be picked up next run")
	case err != nil:
		logger.Error("quick links resync: %v", err)
	}
}
