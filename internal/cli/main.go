package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := newRootCmd()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lipsync <transcript.json|audio>",
		Short:        "Generate 2D lip-sync keyframes from a word-timestamped transcript",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SilenceErrors = true

	f := root.Flags()
	f.StringP("output", "o", "output.txt", "Output frame data file")
	f.IntP("frame", "f", 30, "Frame rate (fps)")
	f.Float64P("min-gap-seconds", "g", 0.05, "Minimum interval between keyframes in seconds")
	f.Float64P("silence-seconds", "s", 0.08, "Minimum gap that inserts a silence keyframe")
	f.Int("min-hold-frames", 3, "Minimum frames a viseme holds before changing (0 derives it from --min-gap-seconds)")
	f.StringP("viseme-map", "m", "viseme_map.json", "Viseme id map (JSON)")
	f.StringP("language", "l", "en", "Transcript language (en, zh, or an espeak-ng voice)")
	f.BoolP("stats", "t", false, "Print viseme frequency stats")
	f.String("config", "", "YAML config file")
	f.Bool("watch", false, "Re-render when the transcript or viseme map changes")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")

	return root
}
