package guardedqueue

import (
	"time"

	"github.com/rs/zerolog"
)

type options[T any] struct {
	initial           []T
	logger            zerolog.Logger
	contentionWarning time.Duration
}

type Option[T any] func(*options[T])

func defaultOptions[T any]() options[T] {
	return options[T]{logger: zerolog.Nop()}
}

// WithInitial seeds the queue with values, front to back.
func WithInitial[T any](values ...T) Option[T] {
	return func(opts *options[T]) {
		opts.initial = append(opts.initial[:0], values...)
	}
}

// WithLogger sets the logger used for contention warnings and misuse reports.
// The default discards everything.
func WithLogger[T any](logger zerolog.Logger) Option[T] {
	return func(opts *options[T]) {
		opts.logger = logger
	}
}

// WithContentionWarning enables a warn-level log line whenever a lock
// acquisition waited at least threshold before succeeding. A non-positive
// threshold disables the warning.
func WithContentionWarning[T any](threshold time.Duration) Option[T] {
	return func(opts *options[T]) {
		opts.contentionWarning = threshold
	}
}
