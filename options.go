// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package sockets

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds receives that were issued without an explicit
// timeout.
const DefaultTimeout = time.Second

// Stats receives connection and traffic events. Implementations must be
// safe for concurrent use; metrics.Registry is the Prometheus-backed one.
type Stats interface {
	ConnectionOpened()
	ConnectionClosed()
	BytesSent(n int)
	BytesReceived(n int)
}

type nopStats struct{}

func (nopStats) ConnectionOpened() {}
func (nopStats) ConnectionClosed() {}
func (nopStats) BytesSent(int)     {}
func (nopStats) BytesReceived(int) {}

type options struct {
	logger  zerolog.Logger
	stats   Stats
	timeout time.Duration
}

func defaultOptions() options {
	return options{
		logger:  zerolog.Nop(),
		stats:   nopStats{},
		timeout: DefaultTimeout,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a Listener or a dialed Conn.
type Option func(*options)

// WithLogger attaches a structured logger. The default discards all
// output.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStats attaches a stats recorder that is notified about connection
// lifecycle events and transferred bytes.
func WithStats(stats Stats) Option {
	return func(o *options) {
		if stats != nil {
			o.stats = stats
		}
	}
}

// WithDefaultTimeout overrides DefaultTimeout for receives issued without
// an explicit timeout.
func WithDefaultTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}
