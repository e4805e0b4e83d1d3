// Package server runs the HTTP listener of a conch service.
//
// A Server binds its address before serving, so bind failures are returned
// from Run rather than logged from a background goroutine. After the bind it
// marks itself ready, calls the OnListen callback with the bound address and
// notifies systemd (when NOTIFY_SOCKET is set). Run blocks until the context
// is cancelled and then shuts down gracefully within ShutdownTimeout.
//
// Routes:
//
//	/          service name, version, readiness and routes (JSON or YAML)
//	/health    liveness
//	/ready     readiness, 503 until the listener is bound
//	/metrics   Prometheus metrics
//
// plus every handler registered with WithHandler. All requests carry an
// X-Request-Id, echoed back and included in error responses.
package server
