package webclient

import "context"

// WebClient executes a single HTTP exchange. Implementations are safe for
// reuse across requests but the tool only ever issues one per run.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	Close() error
}
