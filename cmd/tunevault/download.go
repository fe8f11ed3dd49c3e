package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ytget/tunevault/internal/catalog"
	"github.com/ytget/tunevault/internal/download"
	"github.com/ytget/tunevault/internal/meta"
	"github.com/ytget/tunevault/internal/util"
)

var downloadCmd = &cobra.Command{
	Use:   "download <playlist-url>",
	Short: "Download one playlist and exit",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := catalog.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	supervisor := download.NewSupervisor(cfg.DownloaderBin)
	service := download.NewService(supervisor, store, meta.NewProber())

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	// The callback runs on the single session goroutine, so these counters
	// need no locking
	totalTracks := 0
	terminalTracks := 0
	trackProgress := 0.0

	service.SetUpdateCallback(func(event download.Event) {
		switch event.Kind {
		case download.KindPlaylistInfo:
			totalTracks = len(event.Playlist.Tracks)
			fmt.Printf("playlist: %s (%d tracks, by %s)\n",
				event.Playlist.Title, totalTracks, event.Playlist.Uploader)
		case download.KindProgress:
			trackProgress = event.Progress.Progress
			if event.Progress.Total > 0 {
				bar.Describe(fmt.Sprintf("%s  %s/%s  %s/s",
					event.Progress.TrackID,
					humanize.Bytes(uint64(event.Progress.Downloaded)),
					humanize.Bytes(uint64(event.Progress.Total)),
					humanize.Bytes(uint64(event.Progress.Speed))))
			}
		case download.KindTrackStatus:
			terminalTracks++
			trackProgress = 0
			if event.TrackStatus.Status == download.TrackOutcomeSuccess {
				fmt.Printf("done: %s -> %s\n", event.TrackStatus.TrackID, event.TrackStatus.FilePath)
			} else {
				fmt.Printf("failed: %s (%s)\n", event.TrackStatus.TrackID, event.TrackStatus.Error)
			}
		}
		if totalTracks > 0 {
			bar.Set(int((float64(terminalTracks)*100 + trackProgress) / float64(totalTracks)))
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := service.StartDownload(ctx, args[0])
	if err != nil {
		return err
	}

	session.Wait()
	bar.Finish()

	snapshot := session.Snapshot()
	if snapshot.Playlist != nil {
		fmt.Printf("finished: %d completed, %d failed of %d tracks\n",
			snapshot.Playlist.CompletedCount(), snapshot.Playlist.FailedCount(), len(snapshot.Playlist.Tracks))
	}
	if !snapshot.Success {
		if snapshot.LastError != "" {
			util.ErrorLog("session failed: %s", snapshot.LastError)
		}
		return fmt.Errorf("download session did not finish cleanly")
	}
	return nil
}
