// Package timeouts provides centralized timeout values for handler operations.
//
// These are used with context.WithTimeout around database work in HTTP
// handlers, so a slow query cannot pin a request forever.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: single-row reads or lookups
//   - Medium: list queries, moderate writes, multi-step reads
//   - Long: multi-table transactions (cascade deletes, assignment replace)
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for simple single-row operations.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and moderate writes.
func Medium() time.Duration { return medium }

// Long returns the timeout for multi-table transactional flows.
func Long() time.Duration { return long }
