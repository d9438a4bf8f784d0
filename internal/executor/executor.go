// Package executor assembles the single outgoing request, issues it through a
// webclient backend and classifies the outcome.
package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dhyeyp/restcli/internal/apperror"
	"github.com/dhyeyp/restcli/internal/cli"
	"github.com/dhyeyp/restcli/internal/logging"
	"github.com/dhyeyp/restcli/internal/webclient"
)

// Result is the classified outcome of the one request.
type Result struct {
	StatusCode int

	// Body is the raw response body; valid JSON once Classify has passed.
	Body []byte
}

// Build assembles the outgoing request from parsed args and the origin. The
// endpoint fragment is trusted as-is and concatenated onto baseURL without
// re-encoding. No network or filesystem access happens here.
func Build(args *cli.CLIArgs, baseURL string) (*webclient.Request, error) {
	req := &webclient.Request{
		Method: args.Method,
		URL:    baseURL + args.Endpoint,
	}

	if args.Method != cli.MethodPost {
		return req, nil
	}

	if args.Data == "" {
		return nil, apperror.ErrDataRequired
	}

	var payload any
	if err := json.Unmarshal([]byte(args.Data), &payload); err != nil {
		return nil, &apperror.InputError{Err: fmt.Errorf("payload is not valid JSON: %w", err)}
	}

	// Send the compact re-marshal of the parsed value, not the raw text.
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &apperror.InputError{Err: fmt.Errorf("encoding payload: %w", err)}
	}

	req.Body = body
	req.Headers = http.Header{}
	req.Headers.Set("Content-Type", "application/json")
	return req, nil
}

// Executor runs requests through a WebClient.
type Executor struct {
	client webclient.WebClient
	logger logging.Logger
}

func New(client webclient.WebClient, logger logging.Logger) *Executor {
	return &Executor{
		client: client,
		logger: logger.With(logging.Field{Key: "component", Value: "executor"}),
	}
}

// Execute issues the request once, blocking until a response or a transport
// failure. Transport failures are wrapped as NetworkError; no retry happens.
func (e *Executor) Execute(ctx context.Context, req *webclient.Request) (*Result, error) {
	resp, err := e.client.Do(ctx, req)
	if err != nil {
		return nil, &apperror.NetworkError{Err: err}
	}

	e.logger.Debug("received response",
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "bytes", Value: len(resp.Body)})

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}, nil
}

// Classify decides whether the response is a success. Non-2xx codes fail with
// StatusError; a success body that does not decode as JSON fails as invalid
// input. Nothing is written to disk before this passes.
func Classify(res *Result) error {
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &apperror.StatusError{Code: res.StatusCode}
	}
	if !json.Valid(res.Body) {
		return &apperror.InputError{Err: fmt.Errorf("response body is not valid JSON")}
	}
	return nil
}
