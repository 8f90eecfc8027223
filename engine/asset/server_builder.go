package asset

import (
	"log"
	"time"
)

// ServerBuilderOption configures a Server.
type ServerBuilderOption func(*server)

// WithWorkers sets the number of decode workers.
//
// Parameters:
//   - n: worker count, at least 1
//
// Returns:
//   - ServerBuilderOption: a function that sets the worker count
func WithWorkers(n int) ServerBuilderOption {
	return func(s *server) {
		s.workers = n
	}
}

// WithWatchDelay sets how long a file must stay unchanged before it is reloaded.
func WithWatchDelay(d time.Duration) ServerBuilderOption {
	return func(s *server) {
		s.watchDelay = d
	}
}

// WithLogger sets the logger load failures are written to.
func WithLogger(l *log.Logger) ServerBuilderOption {
	return func(s *server) {
		if l != nil {
			s.logger = l
		}
	}
}
