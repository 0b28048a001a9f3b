package server

// Server is the process-level lifecycle of the hub API.
type Server interface {
	// RunServer serves until a termination signal arrives, then shuts down.
	RunServer()

	// Shutdown stops accepting connections and drains in-flight requests.
	Shutdown()
}
