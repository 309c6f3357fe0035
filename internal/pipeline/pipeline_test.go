package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/forPelevin/lipsync/internal/domain/schedule"
)

const testMap = `{"sli":0,"PP":1,"FF":2,"TH":3,"DD":4,"kk":5,"CH":6,"SS":7,"nn":8,"RR":9,"aa":10,"E":11,"ih":12,"oh":13,"ou":14}`

// Words without text never reach espeak, so these fixtures run without it.
const silentTranscript = `{"segments":[{"start":0,"end":1,"text":"","words":[{"word":"","start":0.5,"end":1.0}]}]}`

func writeFixtures(t *testing.T, mapDoc string) Config {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	vm := filepath.Join(dir, "viseme_map.json")
	if err := os.WriteFile(in, []byte(silentTranscript), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(vm, []byte(mapDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return Config{
		Input:     in,
		Output:    filepath.Join(dir, "out", "frames.txt"),
		VisemeMap: vm,
		Language:  "en",
		Timing:    schedule.DefaultConfig(),
		EspeakBin: filepath.Join(dir, "no-espeak"),
	}
}

func TestRun_WritesFrameDataAndStats(t *testing.T) {
	cfg := writeFixtures(t, testMap)
	var stats strings.Builder
	cfg.Stats = &stats

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(b) != "0 0" {
		t.Fatalf("unexpected frame data: %q", string(b))
	}
	if !strings.HasPrefix(stats.String(), "sli 3") {
		t.Fatalf("unexpected stats: %q", stats.String())
	}
}

func TestRun_InvalidVisemeMapWritesNothing(t *testing.T) {
	cfg := writeFixtures(t, strings.Replace(testMap, `"CH":6,`, "", 1))

	err := Run(context.Background(), cfg)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "missing CH") {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err=%v", err)
	}
}

func TestRun_MalformedTranscript(t *testing.T) {
	cfg := writeFixtures(t, testMap)
	if err := os.WriteFile(cfg.Input, []byte(`{"text":"x"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Run(context.Background(), cfg); err == nil || !strings.Contains(err.Error(), "missing segments") {
		t.Fatalf("expected parse error, got %v", err)
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err=%v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	base := writeFixtures(t, testMap)
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantSub string
	}{
		{"ok", func(c *Config) {}, ""},
		{"empty input", func(c *Config) { c.Input = "" }, "input is empty"},
		{"missing input", func(c *Config) { c.Input = c.Input + ".nope" }, "stat input"},
		{"empty output", func(c *Config) { c.Output = "" }, "output is empty"},
		{"empty map", func(c *Config) { c.VisemeMap = "" }, "viseme map"},
		{"bad frame rate", func(c *Config) { c.Timing.FrameRate = 0 }, "frame rate"},
		{"audio without model", func(c *Config) {
			wav := filepath.Join(filepath.Dir(c.Input), "a.wav")
			if err := os.WriteFile(wav, []byte("RIFF"), 0o644); err != nil {
				t.Fatal(err)
			}
			c.Input = wav
		}, "whisper model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantSub == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("expected error containing %q, got %v", tt.wantSub, err)
			}
		})
	}
}

func TestIsAudio(t *testing.T) {
	tests := map[string]bool{
		"a.wav":       true,
		"A.WAV":       true,
		"talk.mp3":    true,
		"clip.mp4":    true,
		"a.json":      false,
		"notes.txt":   false,
		"dir.wav/x.j": false,
	}
	for in, want := range tests {
		if got := isAudio(in); got != want {
			t.Fatalf("isAudio(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRelevant(t *testing.T) {
	targets, err := watchTargets("testdata/in.json")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: "testdata/in.json", Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: "testdata/in.json", Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: "testdata/in.json", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "testdata/out.txt", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relevant(tt.event, targets); got != tt.want {
				t.Fatalf("relevant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatch_RendersUntilCancelled(t *testing.T) {
	cfg := writeFixtures(t, testMap)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Watch(ctx, cfg) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(cfg.Output); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("output was not rendered")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watch did not stop after cancel")
	}
}
