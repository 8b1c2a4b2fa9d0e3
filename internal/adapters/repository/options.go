// Package repository defines the profile, project, and document stores.
package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithNow overrides the time source used to stamp UpdatedAt on writes.
func WithNow(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}
