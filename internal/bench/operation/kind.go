package operation

import (
	"fmt"

	"github.com/DjordjeVuckovic/polybench/internal/apperr"
)

// Kind identifies one entry of the fixed operation set.
type Kind int

const (
	Write Kind = iota
	Read
	Aggregate
	FullTextSearchSimple
	FullTextSearchComplex
)

// Kinds lists every operation kind in canonical order.
var Kinds = []Kind{Write, Read, Aggregate, FullTextSearchSimple, FullTextSearchComplex}

var kindKeys = map[Kind]string{
	Write:                 "write",
	Read:                  "read",
	Aggregate:             "aggregate",
	FullTextSearchSimple:  "full_text_search_simple",
	FullTextSearchComplex: "full_text_search_complex",
}

var kindLabels = map[Kind]string{
	Write:                 "Write",
	Read:                  "Read",
	Aggregate:             "Aggregate",
	FullTextSearchSimple:  "FullTextSearchSimple",
	FullTextSearchComplex: "FullTextSearchComplex",
}

// String returns the workload key, e.g. "full_text_search_simple".
func (k Kind) String() string {
	if s, ok := kindKeys[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Label returns the name reported in benchmark results, e.g. "FullTextSearchSimple".
func (k Kind) Label() string {
	if s, ok := kindLabels[k]; ok {
		return s
	}
	return k.String()
}

func ParseKind(s string) (Kind, error) {
	for k, key := range kindKeys {
		if key == s {
			return k, nil
		}
	}
	return 0, apperr.NewValidation(fmt.Sprintf("unknown operation kind %q", s))
}
