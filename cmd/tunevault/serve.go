package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ytget/tunevault/internal/catalog"
	"github.com/ytget/tunevault/internal/config"
	"github.com/ytget/tunevault/internal/download"
	"github.com/ytget/tunevault/internal/library"
	"github.com/ytget/tunevault/internal/meta"
	"github.com/ytget/tunevault/internal/platform"
	"github.com/ytget/tunevault/internal/util"
	"github.com/ytget/tunevault/internal/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backend server for the player front-end",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String(config.KeyListenAddr, config.DefaultListenAddr, "listen address")
	viper.BindPFlag(config.KeyListenAddr, serveCmd.Flags().Lookup(config.KeyListenAddr))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := catalog.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	settings := config.NewSettings(store)
	downloadDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadDir); err != nil {
		return err
	}

	supervisor := download.NewSupervisor(cfg.DownloaderBin)
	service := download.NewService(supervisor, store, meta.NewProber())

	hub := web.NewHub()
	service.SetUpdateCallback(func(event download.Event) {
		hub.Broadcast(event)
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The watcher stays bound to the directory resolved at startup; a changed
	// download_directory takes effect for it on restart
	watcher, err := library.New(downloadDir, store)
	if err != nil {
		util.WarnLog("library watcher disabled: %v", err)
	} else {
		go watcher.Run(ctx)
	}

	handlers := web.NewHandlers(ctx, store, service, settings, hub)
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: web.NewRouter(handlers, settings.GetDownloadDirectory),
	}

	errCh := make(chan error, 1)
	go func() {
		util.InfoLog("listening on %s (catalog %s, downloads in %s)", cfg.ListenAddr, cfg.DBPath, downloadDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	util.InfoLog("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
