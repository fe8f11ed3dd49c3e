package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ytget/tunevault/internal/config"
	"github.com/ytget/tunevault/internal/util"
)

var (
	// Version is set at build time
	Version = "dev"

	envFile string

	rootCmd = &cobra.Command{
		Use:   "tunevault",
		Short: "Download YouTube playlists as audio and manage the local library",
		Long: `tunevault is the headless backend of a playlist audio library. It drives an
external downloader executable, reconciles its progress stream into a local
SQLite catalog, and serves the catalog to a player front-end over HTTP and
websocket.`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			util.SetVerbose(viper.GetBool("verbose"))
			util.SetQuiet(viper.GetBool("quiet"))
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default is ./.env)")
	rootCmd.PersistentFlags().String(config.KeyDBPath, config.DefaultDBPath, "catalog database file")
	rootCmd.PersistentFlags().String(config.KeyDownloaderBin, config.DefaultDownloaderBin, "downloader executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	viper.BindPFlag(config.KeyDBPath, rootCmd.PersistentFlags().Lookup(config.KeyDBPath))
	viper.BindPFlag(config.KeyDownloaderBin, rootCmd.PersistentFlags().Lookup(config.KeyDownloaderBin))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func loadConfig() (*config.Config, error) {
	return config.Load(envFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
