package spec

import (
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
	"github.com/DjordjeVuckovic/polybench/internal/bench/fieldvalue"
	"github.com/DjordjeVuckovic/polybench/internal/bench/operation"
	"github.com/DjordjeVuckovic/polybench/internal/storage"
	"gopkg.in/yaml.v3"
)

func LoadFromFile(path string) (*BenchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*BenchSpec, error) {
	var s BenchSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, apperr.NewValidationWrap("parse spec YAML", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Workload converts operations_count into a validated workload.
func (s *BenchSpec) Workload() (operation.Workload, error) {
	var w operation.Workload
	for _, oc := range s.Operations {
		kind, err := operation.ParseKind(oc.Kind)
		if err != nil {
			return operation.Workload{}, err
		}
		if err := w.Add(kind, oc.Count); err != nil {
			return operation.Workload{}, err
		}
	}
	return w, nil
}

func validate(s *BenchSpec) error {
	if len(s.Operations) == 0 {
		return apperr.NewValidation("spec has no operations")
	}
	if _, err := s.Workload(); err != nil {
		return err
	}

	if len(s.Databases) == 0 {
		return apperr.NewValidation("spec has no databases")
	}
	seen := make(map[string]bool, len(s.Databases))
	for _, db := range s.Databases {
		if db.Name == "" {
			return apperr.NewValidation("database with empty name")
		}
		if seen[db.Name] {
			return apperr.NewValidation(fmt.Sprintf("database %q declared twice", db.Name))
		}
		seen[db.Name] = true
		if !storage.Type(db.Type).Valid() {
			return apperr.NewValidation(fmt.Sprintf("database %q has invalid type %q", db.Name, db.Type))
		}
	}

	if s.ReadField != "" {
		if err := fieldvalue.Default.Validate(s.ReadField); err != nil {
			return err
		}
	}
	return nil
}
