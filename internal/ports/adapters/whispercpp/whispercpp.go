package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/forPelevin/lipsync/internal/types"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

// Transcript runs whisper.cpp on a 16kHz wav with one word per segment and
// converts its full JSON output into a transcript.
func (a *Adapter) Transcript(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error) {
	outPrefix := filepath.Join(cacheDir, "whisper")
	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-ml", "1",
		"-sow",
		"-ojf",
		"-of", outPrefix,
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.Transcript{}, err
	}
	return parseFull(jb)
}

type fullOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseFull(b []byte) (types.Transcript, error) {
	var out fullOutput
	if err := json.Unmarshal(b, &out); err != nil {
		return types.Transcript{}, fmt.Errorf("parse whisper.cpp output: %w", err)
	}

	seg := types.Segment{}
	var text []string
	for _, t := range out.Transcription {
		w := strings.TrimSpace(t.Text)
		// whisper.cpp marks non-speech as [BLANK_AUDIO], (music) and similar.
		if w == "" || strings.HasPrefix(w, "[") || strings.HasPrefix(w, "(") {
			continue
		}
		start := float64(t.Offsets.From) / 1000
		end := float64(t.Offsets.To) / 1000
		if len(seg.Words) == 0 {
			seg.Start = start
		}
		seg.End = end
		seg.Words = append(seg.Words, types.Word{Start: start, End: end, Word: w})
		text = append(text, w)
	}
	seg.Text = strings.Join(text, " ")

	var tr types.Transcript
	if len(seg.Words) > 0 {
		tr.Segments = []types.Segment{seg}
	}
	return tr, nil
}
