// Package schedule places viseme keyframes on a frame timeline.
//
// A single forward pass walks the words in transcript order with a cursor
// that never moves backwards. Each word (or each syllable of a grouped word)
// gets its visemes spread over its time window by weight, silence keyframes
// are inserted at gaps, and a final pass sorts, collapses repeats and
// enforces the minimum hold between keyframes.
package schedule

import (
	"fmt"
	"sort"

	"github.com/forPelevin/lipsync/internal/domain/viseme"
	"github.com/forPelevin/lipsync/internal/types"
)

const (
	leadingSilenceEpsilon = 0.01
	firstWordLead         = 0.03
	gapSilenceDelay       = 0.02
)

type Scheduler struct {
	cfg Config
	ids viseme.Map
}

func New(cfg Config, ids viseme.Map) *Scheduler {
	return &Scheduler{cfg: cfg, ids: ids}
}

type Result struct {
	Events []types.FrameEvent
	Stats  Stats
}

// Schedule turns words and their per-syllable viseme sequences into frame
// events. seqs[i] belongs to words[i]; a length mismatch is a caller bug.
func (s *Scheduler) Schedule(words []types.Word, seqs [][][]viseme.Viseme) Result {
	if len(words) != len(seqs) {
		panic(fmt.Sprintf("schedule: %d words but %d viseme sequences", len(words), len(seqs)))
	}
	p := &pass{
		cfg:    s.cfg,
		hold:   s.cfg.HoldFrames(),
		ids:    s.ids,
		frames: make(map[int]int),
		stats:  make(Stats),
	}
	p.run(words, seqs)
	return Result{Events: p.normalize(), Stats: p.stats}
}

type pass struct {
	cfg    Config
	hold   int
	ids    viseme.Map
	cursor int
	frames map[int]int
	stats  Stats
}

func (p *pass) run(words []types.Word, seqs [][][]viseme.Viseme) {
	if len(words) == 0 {
		return
	}
	if words[0].Start > leadingSilenceEpsilon {
		p.emit(0, viseme.Sil)
	}

	for i, w := range words {
		p.silenceBefore(words, i)
		if f := p.cfg.Frame(w.Start); f > p.cursor {
			p.cursor = f
		}

		duration := w.End - w.Start
		if duration <= 0 {
			continue
		}
		syls := seqs[i]
		if len(syls) == 0 {
			continue
		}
		// Flat words arrive as a single sequence and take the whole span.
		window := duration / float64(len(syls))
		for k, vs := range syls {
			if len(vs) == 0 {
				continue
			}
			start := w.Start + float64(k)*window
			p.cursor = p.placeSyllable(vs, start, start+window)
		}
	}

	last := words[len(words)-1]
	f := p.cfg.Frame(last.End) + 1
	if c := p.cursor + p.hold; c > f {
		f = c
	}
	p.emit(f, viseme.Sil)
}

func (p *pass) silenceBefore(words []types.Word, i int) {
	w := words[i]
	if i == 0 {
		if w.Start <= p.cfg.SilenceSeconds {
			return
		}
		f := p.cfg.Frame(w.Start - firstWordLead)
		if c := p.cursor + p.hold; c > f {
			f = c
		}
		p.emit(f, viseme.Sil)
		p.cursor = f
		return
	}

	prev := words[i-1]
	if w.Start-prev.End < p.cfg.SilenceSeconds {
		return
	}
	f := p.cfg.Frame(prev.End + gapSilenceDelay)
	if c := p.cursor + p.hold; f < c {
		f = c
	}
	p.emit(f, viseme.Sil)
	p.cursor = f
}

// placeSyllable spreads vs over [start, end) and returns the new cursor.
// Visemes that would land past the window end are dropped.
func (p *pass) placeSyllable(vs []viseme.Viseme, start, end float64) int {
	if len(vs) == 0 {
		return p.cursor
	}
	startFrame, endFrame := p.cfg.Frame(start), p.cfg.Frame(end)
	effective := p.cursor
	if startFrame > effective {
		effective = startFrame
	}

	if endFrame-effective < p.hold {
		p.emit(effective, viseme.PrimaryVowel(vs))
		return effective
	}

	duration := end - start
	if duration <= 0 {
		return p.cursor
	}
	var total float64
	for _, v := range vs {
		total += v.Weight()
	}
	if total == 0 {
		total = float64(len(vs))
	}

	var elapsed float64
	last := effective
	for i, v := range vs {
		share := v.Weight() / total * duration
		if i == len(vs)-1 {
			share = duration - elapsed
		}

		f := p.cfg.Frame(start + elapsed)
		if i == 0 {
			if f < effective {
				f = effective
			}
		} else if f < last+p.hold {
			f = last + p.hold
		}
		if f > endFrame {
			break
		}

		p.emit(f, v)
		last = f
		elapsed += share
	}
	return last
}

// emit records v at frame f unless f is already taken.
func (p *pass) emit(f int, v viseme.Viseme) {
	p.stats[v]++
	if _, taken := p.frames[f]; taken {
		return
	}
	p.frames[f] = p.ids.ID(v)
}

func (p *pass) normalize() []types.FrameEvent {
	keys := make([]int, 0, len(p.frames))
	for f := range p.frames {
		keys = append(keys, f)
	}
	sort.Ints(keys)

	out := make([]types.FrameEvent, 0, len(keys))
	for _, f := range keys {
		id := p.frames[f]
		if n := len(out); n > 0 {
			prev := out[n-1]
			if prev.VisemeID == id || f-prev.Frame < p.hold {
				continue
			}
		}
		out = append(out, types.FrameEvent{Frame: f, VisemeID: id})
	}
	return out
}
