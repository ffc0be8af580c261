// Package providers contains dependency injection providers for the BookCircle server.
package providers

import "time"

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 30 * time.Second
