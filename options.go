package resumable

// Option configures a [Coroutine] (and transitively a [Resumable] body;
// [CustomAsync] takes no options). Adapted from the teacher's functional-options
// pattern (LoopOption / loopOptionImpl / resolveLoopOptions) in the
// eventloop package.
type Option interface {
	apply(*config)
}

type config struct {
	stackSize  int
	logger     Logger
	readyQueue *ReadyQueue
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithStackSize sets the stack-size hint passed through to the underlying
// [internal/stackctx.Context]. It has no operational effect (goroutine
// stacks grow on demand) but is kept for API fidelity with code ported from
// a fixed-stack-size original.
func WithStackSize(bytes int) Option {
	return optionFunc(func(c *config) {
		c.stackSize = bytes
	})
}

// WithLogger attaches a structured logger to a single [Coroutine], taking
// precedence over the package-level logger installed via
// [SetStructuredLogger] for events this specific coroutine emits.
func WithLogger(logger Logger) Option {
	return optionFunc(func(c *config) {
		c.logger = logger
	})
}

// WithReadyQueue directs a [Resumable] body's awaits to schedule their
// resumptions on q instead of the package-level [DefaultReadyQueue].
func WithReadyQueue(q *ReadyQueue) Option {
	return optionFunc(func(c *config) {
		c.readyQueue = q
	})
}

func resolveOptions(opts []Option) config {
	cfg := config{
		stackSize: 64 * 1024,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = getGlobalLogger()
	}
	if cfg.readyQueue == nil {
		cfg.readyQueue = defaultReadyQueue
	}
	return cfg
}
