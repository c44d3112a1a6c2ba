// Copyright (c) 2026 Biblion. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "biblion-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the keep-alive window for idle connections.
	DefaultIdleTimeout = 120 * time.Second

	// GlobalRequestTimeout bounds a single request end to end, including the
	// per-connection PostgreSQL statement timeout derived from it.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get to finish on SIGTERM.
	ShutdownTimeout = 15 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the sustained request rate allowed per client IP.
	DefaultRateLimitRPS = 20

	// DefaultRateLimitBurst is the short-term burst capacity per client IP.
	DefaultRateLimitBurst = 40

	// RateLimitClientTTL is how long an idle client entry is tracked.
	RateLimitClientTTL = 10 * time.Minute

	// RateLimitCleanupInterval is how often stale client entries are evicted.
	RateLimitCleanupInterval = time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID = "X-Request-ID"
	HeaderOrigin     = "Origin"
)
