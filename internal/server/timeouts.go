package server

import "time"

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout bounds how long an in-flight collection cycle may finish after a
// shutdown signal. A var so tests can shorten it.
var shutdownTimeout = 30 * time.Second
