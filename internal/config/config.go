package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ytget/tunevault/internal/util"
)

// Environment variable / flag keys (viper names)
const (
	KeyDBPath        = "db"
	KeyListenAddr    = "addr"
	KeyDownloaderBin = "downloader"
)

// Default values
const (
	DefaultDBPath        = "tunevault.db"
	DefaultListenAddr    = ":8765"
	DefaultDownloaderBin = "tunevault-dl"
)

// Config holds process-level configuration resolved from flags, environment
// variables and an optional .env file. User settings (codec, quality, paths)
// live in the catalog instead.
type Config struct {
	DBPath        string
	ListenAddr    string
	DownloaderBin string
}

// Load reads an optional .env file and resolves configuration through viper.
// Flag bindings are expected to be registered by the CLI before calling.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil {
		// Missing .env is fine; variables may come from the environment
		util.DebugLog("no .env file found, using environment variables and defaults")
	}

	viper.SetEnvPrefix("TUNEVAULT")
	viper.AutomaticEnv()

	viper.SetDefault(KeyDBPath, DefaultDBPath)
	viper.SetDefault(KeyListenAddr, DefaultListenAddr)
	viper.SetDefault(KeyDownloaderBin, DefaultDownloaderBin)

	cfg := &Config{
		DBPath:        viper.GetString(KeyDBPath),
		ListenAddr:    viper.GetString(KeyListenAddr),
		DownloaderBin: viper.GetString(KeyDownloaderBin),
	}

	if cfg.DBPath == "" {
		return nil, fmt.Errorf("%w: empty database path", util.ErrInvalidConfig)
	}
	if cfg.DownloaderBin == "" {
		return nil, fmt.Errorf("%w: empty downloader binary", util.ErrInvalidConfig)
	}

	return cfg, nil
}
