package operation

import (
	"fmt"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
)

type Entry struct {
	Kind  Kind
	Count int
}

// Workload maps operation kinds to unit counts, keeping declaration order.
type Workload struct {
	entries []Entry
}

func NewWorkload(entries ...Entry) (Workload, error) {
	var w Workload
	for _, e := range entries {
		if err := w.Add(e.Kind, e.Count); err != nil {
			return Workload{}, err
		}
	}
	return w, nil
}

// Add appends a kind. Counts must be positive.
func (w *Workload) Add(kind Kind, count int) error {
	if _, ok := kindKeys[kind]; !ok {
		return apperr.NewValidation(fmt.Sprintf("unknown operation kind %d", int(kind)))
	}
	if count <= 0 {
		return apperr.NewValidation(fmt.Sprintf("operation %q: count must be positive, got %d", kind, count))
	}
	if w.Has(kind) {
		return apperr.NewValidation(fmt.Sprintf("operation %q declared twice", kind))
	}
	w.entries = append(w.entries, Entry{Kind: kind, Count: count})
	return nil
}

func (w Workload) Entries() []Entry {
	out := make([]Entry, len(w.entries))
	copy(out, w.entries)
	return out
}

func (w Workload) Has(kind Kind) bool {
	_, ok := w.Count(kind)
	return ok
}

func (w Workload) Count(kind Kind) (int, bool) {
	for _, e := range w.entries {
		if e.Kind == kind {
			return e.Count, true
		}
	}
	return 0, false
}

func (w Workload) Len() int {
	return len(w.entries)
}
