package schedule

import (
	"fmt"
	"io"
	"sort"

	"github.com/forPelevin/lipsync/internal/domain/viseme"
)

// Stats counts every viseme the scheduler emitted before normalization.
type Stats map[viseme.Viseme]int

type StatEntry struct {
	Viseme viseme.Viseme
	Count  int
}

// Sorted orders entries by descending count; ties keep viseme order.
func (s Stats) Sorted() []StatEntry {
	out := make([]StatEntry, 0, len(s))
	for v, n := range s {
		out = append(out, StatEntry{Viseme: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Viseme.Index() < out[j].Viseme.Index()
	})
	return out
}

func (s Stats) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range s.Sorted() {
		n, err := fmt.Fprintf(w, "%-3s %d\n", e.Viseme, e.Count)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
