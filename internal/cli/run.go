package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/forPelevin/lipsync/internal/config"
	"github.com/forPelevin/lipsync/internal/logging"
	"github.com/forPelevin/lipsync/internal/pipeline"
	"github.com/forPelevin/lipsync/internal/types"
)

func run(cmd *cobra.Command, input string) error {
	flags := cmd.Flags()

	fc := config.DefaultConfig()
	fc.ApplyEnv(os.Getenv)
	if path, _ := flags.GetString("config"); path != "" {
		if err := config.LoadOnto(fc, path); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	applyFlags(flags, fc)

	level, _ := flags.GetString("log-level")
	logger := logging.New(cmd.ErrOrStderr(), level)

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	cfg := pipeline.Config{
		Input:     absIn,
		Output:    fc.Output,
		VisemeMap: fc.VisemeMap,
		Language:  types.Language(fc.Language),
		Timing:    fc.Schedule(),
		Logf:      logging.Logf(logger),

		CacheDir: fc.CacheDir,

		EspeakBin:   fc.Espeak.Bin,
		EspeakVoice: fc.Espeak.Voice,

		WhisperBin:   fc.Whisper.Bin,
		WhisperModel: fc.Whisper.Model,

		FFmpegBin: fc.FFmpeg.Bin,
	}
	if fc.Stats {
		cfg.Stats = cmd.OutOrStdout()
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if watch, _ := flags.GetBool("watch"); watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return pipeline.Watch(ctx, cfg)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	return pipeline.Run(ctx, cfg)
}

// applyFlags copies explicitly set flags over the file and env values.
func applyFlags(flags *pflag.FlagSet, fc *config.Config) {
	if flags.Changed("output") {
		fc.Output, _ = flags.GetString("output")
	}
	if flags.Changed("frame") {
		fc.Timing.FrameRate, _ = flags.GetInt("frame")
	}
	if flags.Changed("min-gap-seconds") {
		fc.Timing.MinGapSeconds, _ = flags.GetFloat64("min-gap-seconds")
	}
	if flags.Changed("silence-seconds") {
		fc.Timing.SilenceSeconds, _ = flags.GetFloat64("silence-seconds")
	}
	if flags.Changed("min-hold-frames") {
		fc.Timing.MinHoldFrames, _ = flags.GetInt("min-hold-frames")
	}
	if flags.Changed("viseme-map") {
		fc.VisemeMap, _ = flags.GetString("viseme-map")
	}
	if flags.Changed("language") {
		fc.Language, _ = flags.GetString("language")
	}
	if flags.Changed("stats") {
		fc.Stats, _ = flags.GetBool("stats")
	}
}
