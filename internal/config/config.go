// Package config loads the optional YAML settings file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forPelevin/lipsync/internal/domain/schedule"
)

// Config mirrors the CLI flags. Values left out of the file keep their
// defaults.
type Config struct {
	Timing struct {
		FrameRate      int     `yaml:"frame_rate"`
		MinGapSeconds  float64 `yaml:"min_gap_seconds"`
		SilenceSeconds float64 `yaml:"silence_seconds"`
		MinHoldFrames  int     `yaml:"min_hold_frames"`
	} `yaml:"timing"`

	Language  string `yaml:"language"`
	VisemeMap string `yaml:"viseme_map"`
	Output    string `yaml:"output"`
	Stats     bool   `yaml:"stats"`

	Espeak struct {
		Bin   string `yaml:"bin"`
		Voice string `yaml:"voice"`
	} `yaml:"espeak"`

	Whisper struct {
		Bin   string `yaml:"bin"`
		Model string `yaml:"model"`
	} `yaml:"whisper"`

	FFmpeg struct {
		Bin string `yaml:"bin"`
	} `yaml:"ffmpeg"`

	CacheDir string `yaml:"cache_dir"`
}

func DefaultConfig() *Config {
	cfg := &Config{}

	d := schedule.DefaultConfig()
	cfg.Timing.FrameRate = d.FrameRate
	cfg.Timing.MinGapSeconds = d.MinGapSeconds
	cfg.Timing.SilenceSeconds = d.SilenceSeconds
	cfg.Timing.MinHoldFrames = d.MinHoldFrames

	cfg.Language = "en"
	cfg.VisemeMap = "viseme_map.json"
	cfg.Output = "output.txt"

	cfg.Espeak.Bin = "espeak-ng"
	cfg.Espeak.Voice = "en-us"

	cfg.Whisper.Bin = ".cache/bin/whisper.cpp"
	cfg.Whisper.Model = ".cache/models/ggml-base.bin"

	cfg.FFmpeg.Bin = "ffmpeg"

	cfg.CacheDir = ".cache"
	return cfg
}

// Load reads path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadOnto(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOnto reads path over the values already in cfg.
func LoadOnto(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides tool locations from LIPSYNC_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Espeak.Bin, "LIPSYNC_ESPEAK_BIN")
	set(&c.Espeak.Voice, "LIPSYNC_ESPEAK_VOICE")
	set(&c.Whisper.Bin, "LIPSYNC_WHISPER_BIN")
	set(&c.Whisper.Model, "LIPSYNC_WHISPER_MODEL")
	set(&c.FFmpeg.Bin, "LIPSYNC_FFMPEG_BIN")
	set(&c.CacheDir, "LIPSYNC_CACHE_DIR")
}

func (c *Config) Schedule() schedule.Config {
	return schedule.Config{
		FrameRate:      c.Timing.FrameRate,
		MinGapSeconds:  c.Timing.MinGapSeconds,
		SilenceSeconds: c.Timing.SilenceSeconds,
		MinHoldFrames:  c.Timing.MinHoldFrames,
	}
}
