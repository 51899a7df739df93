package runner

const (
	DefaultRefresh  = true
	DefaultParallel = false
)

type Config struct {
	// Refresh clears every backend before and after the run.
	Refresh bool
	// Parallel runs different stores concurrently. Operations against the
	// same store always run one at a time.
	Parallel bool
	// Stores maps a backend name to the store it works on. Backends with the
	// same store never run concurrently. Unlisted backends are their own
	// store.
	Stores map[string]string
}

func (c Config) store(backend string) string {
	if s, ok := c.Stores[backend]; ok {
		return s
	}
	return backend
}

func DefaultConfig() Config {
	return Config{
		Refresh:  DefaultRefresh,
		Parallel: DefaultParallel,
	}
}
