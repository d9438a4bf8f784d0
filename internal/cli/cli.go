package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dhyeyp/restcli/internal/apperror"
)

// Methods accepted by the first positional argument.
const (
	MethodGet  = "get"
	MethodPost = "post"
)

// CLIArgs are the command-line arguments for a single run. Constructed once
// per invocation and immutable afterwards.
type CLIArgs struct {
	// Method is the lower-cased HTTP method, one of MethodGet or MethodPost.
	Method string

	// Endpoint is the path fragment appended to the origin (e.g. /posts/1).
	Endpoint string

	// Data is the inline JSON payload for POST requests; empty means absent.
	Data string

	// Output is the save destination; empty means print to stdout. The file
	// extension selects the encoding.
	Output string

	// BaseURL overrides the fixed origin; empty means "use config default".
	BaseURL string

	// History records this invocation to the local history database.
	History bool

	// ShowHistory prints recent history entries instead of issuing a request.
	ShowHistory bool

	// Verbose enables debug logging.
	Verbose bool

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by
// passing arbitrary slices. The function is deterministic and does not read
// os.Args. Grammar: restcli <method> <endpoint> [flags].
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("restcli", flag.ContinueOnError)

	var (
		data        string
		output      string
		baseURL     string
		history     bool
		showHistory bool
		verbose     bool
	)
	fs.StringVar(&data, "d", "", "Data payload for POST request (JSON format)")
	fs.StringVar(&data, "data", "", "Data payload for POST request (JSON format)")
	fs.StringVar(&output, "o", "", "Save response to a .json or .csv file (default: print to console)")
	fs.StringVar(&output, "output", "", "Save response to a .json or .csv file (default: print to console)")
	fs.StringVar(&baseURL, "base", "", "Override the API origin (useful against a local demoserver)")
	fs.BoolVar(&history, "history", false, "Record this invocation to the history database")
	fs.BoolVar(&showHistory, "show-history", false, "Print recent history entries and exit")
	fs.BoolVar(&verbose, "v", false, "Enable verbose logging")

	// Keep Parse from writing to stderr in tests
	fs.SetOutput(io.Discard)

	// Positionals come first; everything after them is flags. An invocation
	// that starts with a flag (e.g. -show-history) has no positionals at all.
	var method, endpoint string
	rest := args
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		method = strings.ToLower(rest[0])
		rest = rest[1:]
	}
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		endpoint = rest[0]
		rest = rest[1:]
	}

	if err := fs.Parse(rest); err != nil {
		return nil, &apperror.UsageError{Detail: err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, &apperror.UsageError{Detail: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}

	parsed := &CLIArgs{
		Method:      method,
		Endpoint:    endpoint,
		Data:        data,
		Output:      output,
		BaseURL:     baseURL,
		History:     history,
		ShowHistory: showHistory,
		Verbose:     verbose,
		RawArgs:     args,
	}

	// History listing is a complete invocation on its own.
	if parsed.ShowHistory && method == "" && endpoint == "" {
		return parsed, nil
	}

	switch method {
	case "":
		return nil, &apperror.UsageError{Detail: apperror.ErrMissingMethod.Error()}
	case MethodGet, MethodPost:
	default:
		return nil, &apperror.UsageError{Detail: fmt.Sprintf("unsupported HTTP method %q (expected get or post)", method)}
	}

	if strings.TrimSpace(endpoint) == "" {
		return nil, &apperror.UsageError{Detail: apperror.ErrMissingEndpoint.Error()}
	}

	return parsed, nil
}

// Usage returns the one-screen help text.
func Usage() string {
	return `restcli - a simple command-line REST client

Usage:
  restcli <method> <endpoint> [flags]

Arguments:
  method      HTTP request method: get or post
  endpoint    API endpoint URI fragment (e.g. /posts/1)

Flags:
  -d, -data <json>    Data payload for POST request (JSON format)
  -o, -output <path>  Save response to a .json or .csv file
  -base <url>         Override the API origin
  -history            Record this invocation to the history database
  -show-history       Print recent history entries and exit
  -v                  Enable verbose logging
`
}
