package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
)

type runFunc func(ctx context.Context, bin string, args []string) ([]byte, error)

// Adapter converts audio or video files into the 16kHz mono wav whisper.cpp
// expects.
type Adapter struct {
	bin string
	run runFunc
}

func New(ffmpegPath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Adapter{bin: ffmpegPath, run: execRun}
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, in, outWav string) error {
	b, err := a.run(ctx, a.bin, extractArgs(in, outWav))
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

func extractArgs(in, outWav string) []string {
	return []string{
		"-y",
		"-i", in,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	}
}

func execRun(ctx context.Context, bin string, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).CombinedOutput()
}
