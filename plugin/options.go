package plugin

import "log/slog"

type config struct {
	logger *slog.Logger
}

// Option configures plugin loading and configuration.
type Option func(*config)

// WithLogger sets the logger for load and layout events. nil keeps the
// discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func applyOptions(opts []Option) config {
	c := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}
