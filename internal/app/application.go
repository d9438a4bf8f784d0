package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhyeyp/restcli/internal/cli"
	"github.com/dhyeyp/restcli/internal/executor"
	"github.com/dhyeyp/restcli/internal/history"
	"github.com/dhyeyp/restcli/internal/logging"
	"github.com/dhyeyp/restcli/internal/materialize"
	"github.com/dhyeyp/restcli/internal/webclient"
)

// Application is the runtime state container for one invocation. It holds
// config, parsed CLI args and the shared services. Pass Application into the
// pipeline stages rather than using package-level variables.
type Application struct {
	Config *Config
	Args   *cli.CLIArgs
	Logger logging.Logger
	Client webclient.WebClient

	out io.Writer
}

// NewApplication constructs an Application from already-built parts so it is
// easy to test and does not import heavy dependencies.
func NewApplication(cfg *Config, args *cli.CLIArgs, logger logging.Logger, client webclient.WebClient) *Application {
	return &Application{
		Config: cfg,
		Args:   args,
		Logger: logger,
		Client: client,
		out:    os.Stdout,
	}
}

// SetOutput redirects the human-facing output, mainly for tests.
func (a *Application) SetOutput(w io.Writer) {
	a.out = w
}

// Run executes the single pass: resolve has already happened, so this is
// Execute -> Classify -> Materialize (plus the opt-in history write). The
// first error aborts the run; main maps it to a diagnostic and exit code.
func (a *Application) Run(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}

	if a.Args.ShowHistory {
		return a.showHistory(ctx)
	}

	baseURL := a.Args.BaseURL
	if baseURL == "" {
		baseURL = a.Config.BaseURL
	}

	req, err := executor.Build(a.Args, baseURL)
	if err != nil {
		return err
	}

	a.Logger.Info("issuing request",
		logging.Field{Key: "method", Value: a.Args.Method},
		logging.Field{Key: "url", Value: req.URL})

	exec := executor.New(a.Client, a.Logger)
	res, err := exec.Execute(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "HTTP Status Code: %d\n", res.StatusCode)

	classifyErr := executor.Classify(res)

	if a.Args.History {
		if err := a.recordHistory(ctx, req.Method, req.URL, res.StatusCode); err != nil {
			// History is best-effort bookkeeping; the run's outcome wins.
			a.Logger.Warn("failed to record history", logging.Field{Key: "error", Value: err.Error()})
		}
	}

	if classifyErr != nil {
		return classifyErr
	}

	mat := materialize.New(a.Logger, a.out)
	return mat.Materialize(res.Body, a.Args.Output)
}

func (a *Application) recordHistory(ctx context.Context, method, url string, status int) error {
	store, err := a.openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(ctx, history.Entry{
		Method:     method,
		URL:        url,
		StatusCode: status,
		OutputPath: a.Args.Output,
	})
}

func (a *Application) showHistory(ctx context.Context) error {
	store, err := a.openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(ctx, a.Config.HistoryLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No history recorded yet.")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-4s  %s  %d",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			strings.ToUpper(e.Method), e.URL, e.StatusCode)
		if e.OutputPath != "" {
			line += "  -> " + e.OutputPath
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func (a *Application) openHistory() (*history.Store, error) {
	root, err := expandPath(a.Config.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("expanding storage root path: %w", err)
	}
	return history.Open(root, a.Logger)
}
