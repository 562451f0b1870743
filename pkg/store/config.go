package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultPath is where the activity log lives unless configured otherwise.
	DefaultPath = "~/Documents/activity_log.json"
	// DefaultInterval is the spinner frame interval.
	DefaultInterval = 250 * time.Millisecond
)

// DefaultFrames is the spinner animation.
var DefaultFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Config is the resolved configuration of a tracker invocation.
type Config struct {
	// Path is the activity log file, with ~ expanded.
	Path string
	// Interval between spinner frames.
	Interval time.Duration
	// Frames of the spinner animation.
	Frames []string
	// Source is the config file that was read, empty when none was found.
	Source string
}

// LoadConfig resolves the configuration from .tracker.{yaml,json,toml} found
// in dir, $TRACKER_CONFIG_PATH, the home directory or the working directory,
// with TRACKER_* environment variables taking precedence.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("frames", DefaultFrames)
	v.SetConfigName(".tracker")
	v.SetEnvPrefix("TRACKER")
	v.AutomaticEnv()

	if dir != "" {
		v.AddConfigPath(dir)
	}
	if override := os.Getenv("TRACKER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	cfg := &Config{
		Path:     path,
		Interval: v.GetDuration("interval"),
		Frames:   v.GetStringSlice("frames"),
		Source:   v.ConfigFileUsed(),
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if len(cfg.Frames) == 0 {
		cfg.Frames = DefaultFrames
	}
	log.Debug("resolved config", "path", cfg.Path, "interval", cfg.Interval, "source", cfg.Source)
	return cfg, nil
}
