package spec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid spec keeps order", func(t *testing.T) {
		yaml := `
refresh: false
parallel: true
read_field: name
seed: 7
operations_count:
  write: 1000
  full_text_search_simple: 5
  read: 100
databases_to_test:
  pg: postgres
  es: elasticsearch
  mongo: mongo
`
		s, err := Parse([]byte(yaml))
		require.NoError(t, err)
		assert.False(t, s.RefreshEnabled())
		assert.True(t, s.Parallel)
		assert.Equal(t, "name", s.ReadField)
		assert.Equal(t, int64(7), s.Seed)

		assert.Equal(t, Databases{
			{Name: "pg", Type: "postgres"},
			{Name: "es", Type: "elasticsearch"},
			{Name: "mongo", Type: "mongo"},
		}, s.Databases)

		w, err := s.Workload()
		require.NoError(t, err)
		assert.Equal(t, []operation.Entry{
			{Kind: operation.Write, Count: 1000},
			{Kind: operation.FullTextSearchSimple, Count: 5},
			{Kind: operation.Read, Count: 100},
		}, w.Entries())
	})

	t.Run("refresh defaults to true", func(t *testing.T) {
		s, err := Parse([]byte("operations_count: {aggregate: 1}\ndatabases_to_test: {mem: memory}\n"))
		require.NoError(t, err)
		assert.True(t, s.RefreshEnabled())
	})

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no operations",
			yaml:    "databases_to_test: {pg: postgres}\n",
			wantErr: "no operations",
		},
		{
			name:    "no databases",
			yaml:    "operations_count: {read: 1}\n",
			wantErr: "no databases",
		},
		{
			name:    "zero count",
			yaml:    "operations_count: {write: 0}\ndatabases_to_test: {pg: postgres}\n",
			wantErr: "count must be positive",
		},
		{
			name:    "unknown kind",
			yaml:    "operations_count: {delete: 3}\ndatabases_to_test: {pg: postgres}\n",
			wantErr: "unknown operation kind",
		},
		{
			name:    "unknown database type",
			yaml:    "operations_count: {read: 3}\ndatabases_to_test: {r: redis}\n",
			wantErr: "invalid type",
		},
		{
			name:    "operations not a mapping",
			yaml:    "operations_count: [write]\ndatabases_to_test: {pg: postgres}\n",
			wantErr: "must be a mapping",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var ve *apperr.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}

	t.Run("unsupported read field", func(t *testing.T) {
		_, err := Parse([]byte("read_field: color\noperations_count: {read: 1}\ndatabases_to_test: {pg: postgres}\n"))
		var ue *apperr.UnsupportedFieldError
		assert.True(t, errors.As(err, &ue))
	})
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("operations_count: {write: 10}\ndatabases_to_test: {mem: memory}\n"), 0o644))

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Databases, 1)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
