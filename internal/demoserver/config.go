package demoserver

// Config controls the demo server.
type Config struct {
	// Port to listen on for Start(). Ignored when the handler is mounted on
	// a test server.
	Port int
}

// DefaultConfig returns development defaults.
func DefaultConfig() Config {
	return Config{Port: 3030}
}
