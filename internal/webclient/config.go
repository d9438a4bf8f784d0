package webclient

import "time"

type Backend string

const (
	BackendNetHTTP Backend = "nethttp"
)

// Config is the minimal set of options required for constructing a WebClient.
// Kept local to this package so app.Config can embed it without a cycle.
type Config struct {
	Backend Backend

	// Timeout bounds the whole exchange; zero means the 30s default.
	Timeout time.Duration
}
