package collector

import (
	"context"

	"github.com/DjordjeVuckovic/polybench/internal/domain"
)

type Generator interface {
	Generate(count int) []domain.Record
}

// GeneratedCollector emits total synthetic records, generating chunk of them
// at a time.
type GeneratedCollector struct {
	gen   Generator
	total int
	chunk int
}

func NewGeneratedCollector(gen Generator, total, chunk int) *GeneratedCollector {
	if chunk <= 0 {
		chunk = total
	}
	return &GeneratedCollector{gen: gen, total: total, chunk: chunk}
}

func (gc *GeneratedCollector) Collect(ctx context.Context) (<-chan Result[domain.Record], error) {
	out := make(chan Result[domain.Record])

	go func() {
		defer close(out)

		for emitted := 0; emitted < gc.total; {
			n := min(gc.chunk, gc.total-emitted)
			for _, r := range gc.gen.Generate(n) {
				select {
				case out <- Result[domain.Record]{Result: r}:
				case <-ctx.Done():
					return
				}
			}
			emitted += n
		}
	}()

	return out, nil
}
