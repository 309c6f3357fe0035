package whisperjson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/forPelevin/lipsync/internal/types"
)

// Adapter reads transcripts written by whisper with word timestamps.
type Adapter struct{}

func New() *Adapter { return &Adapter{} }

func (a *Adapter) Transcript(_ context.Context, input, _ string) (types.Transcript, error) {
	b, err := os.ReadFile(input)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("read transcript: %w", err)
	}
	tr, err := Parse(b)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("parse transcript %s: %w", input, err)
	}
	return tr, nil
}

// Parse decodes a whisper JSON document. The segments field is required.
func Parse(b []byte) (types.Transcript, error) {
	var probe struct {
		Segments json.RawMessage `json:"segments"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return types.Transcript{}, err
	}
	if len(bytes.TrimSpace(probe.Segments)) == 0 || string(probe.Segments) == "null" {
		return types.Transcript{}, errors.New("missing segments")
	}

	var tr types.Transcript
	if err := json.Unmarshal(b, &tr); err != nil {
		return types.Transcript{}, err
	}
	for i := range tr.Segments {
		tr.Segments[i].Text = strings.TrimSpace(tr.Segments[i].Text)
		for j := range tr.Segments[i].Words {
			tr.Segments[i].Words[j].Word = strings.TrimSpace(tr.Segments[i].Words[j].Word)
		}
	}
	return tr, nil
}
