package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type BenchSpec struct {
	// Refresh clears every backend before and after the run. Defaults to true.
	Refresh   *bool  `yaml:"refresh"`
	Parallel  bool   `yaml:"parallel"`
	ReadField string `yaml:"read_field"`
	// Seed makes generated data and sampled queries reproducible; 0 is random.
	Seed       int64           `yaml:"seed"`
	Operations OperationCounts `yaml:"operations_count"`
	Databases  Databases       `yaml:"databases_to_test"`
}

func (s *BenchSpec) RefreshEnabled() bool {
	return s.Refresh == nil || *s.Refresh
}

type OperationCount struct {
	Kind  string
	Count int
}

// OperationCounts keeps the declaration order of the operations_count mapping.
type OperationCounts []OperationCount

func (o *OperationCounts) UnmarshalYAML(node *yaml.Node) error {
	return decodeOrdered(node, "operations_count", func(key string, value *yaml.Node) error {
		var n int
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("operations_count.%s: %w", key, err)
		}
		*o = append(*o, OperationCount{Kind: key, Count: n})
		return nil
	})
}

type Database struct {
	Name string
	Type string
}

// Databases keeps the declaration order of the databases_to_test mapping.
type Databases []Database

func (d *Databases) UnmarshalYAML(node *yaml.Node) error {
	return decodeOrdered(node, "databases_to_test", func(key string, value *yaml.Node) error {
		var typ string
		if err := value.Decode(&typ); err != nil {
			return fmt.Errorf("databases_to_test.%s: %w", key, err)
		}
		*d = append(*d, Database{Name: key, Type: typ})
		return nil
	})
}

func decodeOrdered(node *yaml.Node, field string, fn func(key string, value *yaml.Node) error) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%s must be a mapping (line %d)", field, node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
