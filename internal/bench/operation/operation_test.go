package operation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_StringAndLabel(t *testing.T) {
	tests := []struct {
		kind  Kind
		key   string
		label string
	}{
		{Write, "write", "Write"},
		{Read, "read", "Read"},
		{Aggregate, "aggregate", "Aggregate"},
		{FullTextSearchSimple, "full_text_search_simple", "FullTextSearchSimple"},
		{FullTextSearchComplex, "full_text_search_complex", "FullTextSearchComplex"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.kind.String())
			assert.Equal(t, tt.label, tt.kind.Label())

			parsed, err := ParseKind(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, parsed)
		})
	}

	_, err := ParseKind("delete")
	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestWorkload(t *testing.T) {
	t.Run("keeps declaration order", func(t *testing.T) {
		w, err := NewWorkload(
			Entry{Kind: FullTextSearchSimple, Count: 5},
			Entry{Kind: Write, Count: 100},
			Entry{Kind: Read, Count: 10},
		)
		require.NoError(t, err)

		entries := w.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, FullTextSearchSimple, entries[0].Kind)
		assert.Equal(t, Write, entries[1].Kind)
		assert.Equal(t, Read, entries[2].Kind)

		n, ok := w.Count(Write)
		assert.True(t, ok)
		assert.Equal(t, 100, n)
		assert.False(t, w.Has(Aggregate))
	})

	t.Run("rejects zero count", func(t *testing.T) {
		_, err := NewWorkload(Entry{Kind: Read, Count: 0})
		var ve *apperr.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := NewWorkload(Entry{Kind: Read, Count: 1}, Entry{Kind: Read, Count: 2})
		assert.ErrorContains(t, err, "declared twice")
	})

	t.Run("entries are a copy", func(t *testing.T) {
		w, err := NewWorkload(Entry{Kind: Read, Count: 1})
		require.NoError(t, err)
		w.Entries()[0].Count = 99
		n, _ := w.Count(Read)
		assert.Equal(t, 1, n)
	})
}

func TestBound_InvokeOnce(t *testing.T) {
	calls := 0
	b := NewBound("memory", Read, 3, func(ctx context.Context) (Measurement, error) {
		calls++
		return Measurement{Elapsed: time.Millisecond, Label: Read.Label()}, nil
	})

	m, err := b.Invoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Read", m.Label)
	assert.True(t, b.Executed())

	_, err = b.Invoke(context.Background())
	assert.ErrorContains(t, err, "already executed")
	assert.Equal(t, 1, calls)
}

func TestTimer(t *testing.T) {
	timer := StartTimer(FullTextSearchComplex)
	for i := 0; i < 3; i++ {
		q := time.Now()
		timer.Observe(q)
	}
	m := timer.Stop()

	assert.Equal(t, "FullTextSearchComplex", m.Label)
	assert.Len(t, m.Latencies, 3)
	assert.GreaterOrEqual(t, m.Elapsed, time.Duration(0))
}

func TestSampler_DrawsFromSharedVocabulary(t *testing.T) {
	s := NewSampler(11)

	var byCategory, byPrice int
	for i := 0; i < 500; i++ {
		assert.Contains(t, SimpleTerms, s.Term())
		assert.Contains(t, ComplexScenarios, s.Scenario())
		if s.ByCategory() {
			byCategory++
		} else {
			byPrice++
		}
	}
	assert.Positive(t, byCategory)
	assert.Positive(t, byPrice)
}
