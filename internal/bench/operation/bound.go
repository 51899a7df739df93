package operation

import (
	"context"
	"fmt"
	"sync/atomic"
)

type InvokeFunc func(ctx context.Context) (Measurement, error)

// Bound is a fully parameterised operation for one backend. It runs at most once.
type Bound struct {
	Backend string
	Kind    Kind
	Units   int

	invoke InvokeFunc
	used   atomic.Bool
}

func NewBound(backend string, kind Kind, units int, fn InvokeFunc) *Bound {
	return &Bound{
		Backend: backend,
		Kind:    kind,
		Units:   units,
		invoke:  fn,
	}
}

func (b *Bound) Invoke(ctx context.Context) (Measurement, error) {
	if !b.used.CompareAndSwap(false, true) {
		return Measurement{}, fmt.Errorf("%s %s: operation already executed", b.Backend, b.Kind)
	}
	return b.invoke(ctx)
}

func (b *Bound) Executed() bool {
	return b.used.Load()
}

func (b *Bound) String() string {
	return fmt.Sprintf("%s/%s(%d)", b.Backend, b.Kind, b.Units)
}
