package operation

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Measurement is what a single operation invocation reports.
type Measurement struct {
	Elapsed time.Duration
	Label   string
	// Latencies holds per-query samples for multi-query operations.
	Latencies []time.Duration
}

type Timer struct {
	kind      Kind
	start     time.Time
	latencies []time.Duration
}

func StartTimer(kind Kind) *Timer {
	return &Timer{kind: kind, start: time.Now()}
}

// Observe records the latency of one query that began at since.
func (t *Timer) Observe(since time.Time) {
	t.latencies = append(t.latencies, time.Since(since))
}

func (t *Timer) Stop() Measurement {
	return Measurement{
		Elapsed:   time.Since(t.start),
		Label:     t.kind.Label(),
		Latencies: t.latencies,
	}
}

// Sampler draws query parameters from the shared vocabulary. It is not safe
// for concurrent use; every adapter owns one.
type Sampler struct {
	fake *gofakeit.Faker
}

// NewSampler seeds a sampler; seed 0 picks a random seed.
func NewSampler(seed int64) *Sampler {
	return &Sampler{fake: gofakeit.New(seed)}
}

// ByCategory chooses between the two canonical read shapes with equal odds.
func (s *Sampler) ByCategory() bool {
	return s.fake.Bool()
}

func (s *Sampler) Term() string {
	return s.fake.RandomString(SimpleTerms)
}

func (s *Sampler) Scenario() Scenario {
	return ComplexScenarios[s.fake.Number(0, len(ComplexScenarios)-1)]
}

func (s *Sampler) Faker() *gofakeit.Faker {
	return s.fake
}
