package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/tunevault/internal/catalog"
	"github.com/ytget/tunevault/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the user settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update one settings key",
	Long: `Update one settings key. Known keys:
  ` + catalog.KeyDownloadDir + `
  ` + catalog.KeyCodec + `
  ` + catalog.KeyQuality + `
  ` + catalog.KeyMaxConcurrent,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	settings, err := store.GetSettings()
	if err != nil {
		return err
	}

	fmt.Printf("%s = %s\n", catalog.KeyDownloadDir, settings.DownloadDir)
	fmt.Printf("%s = %s\n", catalog.KeyCodec, settings.Codec)
	fmt.Printf("%s = %s\n", catalog.KeyQuality, settings.Quality)
	fmt.Printf("%s = %d\n", catalog.KeyMaxConcurrent, settings.MaxConcurrent)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	settings := config.NewSettings(store)
	if err := settings.Update(args[0], args[1]); err != nil {
		return fmt.Errorf("set %s: %w", args[0], err)
	}

	fmt.Printf("saved %s = %s\n", args[0], args[1])
	return nil
}
