package monitor

import "time"

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithRetentionLimit bounds the number of events kept per kind. When the
// limit is reached the oldest entries are evicted first. Zero or negative
// means unbounded for the process lifetime.
func WithRetentionLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.retention = n
		}
	}
}

// WithClock injects a time source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}
