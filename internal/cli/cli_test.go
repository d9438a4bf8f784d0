package cli_test

import (
	"errors"
	"testing"

	"github.com/dhyeyp/restcli/internal/apperror"
	"github.com/dhyeyp/restcli/internal/cli"
)

func TestParseArgs_GetWithEndpoint(t *testing.T) {
	t.Parallel()
	args, err := cli.ParseArgs([]string{"get", "/posts/1"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if args.Method != cli.MethodGet {
		t.Errorf("expected method get, got %q", args.Method)
	}
	if args.Endpoint != "/posts/1" {
		t.Errorf("expected endpoint /posts/1, got %q", args.Endpoint)
	}
	if args.Output != "" || args.Data != "" {
		t.Errorf("expected empty flags, got output=%q data=%q", args.Output, args.Data)
	}
}

func TestParseArgs_MethodIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	args, err := cli.ParseArgs([]string{"POST", "/posts", "-d", `{"a":1}`})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if args.Method != cli.MethodPost {
		t.Errorf("expected method post, got %q", args.Method)
	}
	if args.Data != `{"a":1}` {
		t.Errorf("expected data preserved, got %q", args.Data)
	}
}

func TestParseArgs_FlagAliases(t *testing.T) {
	t.Parallel()
	short, err := cli.ParseArgs([]string{"post", "/posts", "-d", `{}`, "-o", "out.json"})
	if err != nil {
		t.Fatalf("ParseArgs short: %v", err)
	}
	long, err := cli.ParseArgs([]string{"post", "/posts", "-data", `{}`, "-output", "out.json"})
	if err != nil {
		t.Fatalf("ParseArgs long: %v", err)
	}
	if short.Data != long.Data || short.Output != long.Output {
		t.Errorf("aliases disagree: short=%+v long=%+v", short, long)
	}
}

func TestParseArgs_Failures(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"missing endpoint", []string{"get"}},
		{"unknown method", []string{"delete", "/posts/1"}},
		{"unknown flag", []string{"get", "/posts/1", "-x"}},
		{"trailing positional", []string{"get", "/posts/1", "-o", "a.json", "extra"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := cli.ParseArgs(tc.args)
			if err == nil {
				t.Fatalf("expected error for %v", tc.args)
			}
			var usageErr *apperror.UsageError
			if !errors.As(err, &usageErr) {
				t.Errorf("expected UsageError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseArgs_ShowHistoryNeedsNoPositionals(t *testing.T) {
	t.Parallel()
	args, err := cli.ParseArgs([]string{"-show-history"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if !args.ShowHistory {
		t.Error("expected ShowHistory set")
	}
}

func TestParseArgs_BaseOverrideAndVerbose(t *testing.T) {
	t.Parallel()
	args, err := cli.ParseArgs([]string{"get", "/posts", "-base", "http://localhost:3030", "-v", "-history"})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	if args.BaseURL != "http://localhost:3030" {
		t.Errorf("expected base override, got %q", args.BaseURL)
	}
	if !args.Verbose || !args.History {
		t.Errorf("expected verbose and history set, got %+v", args)
	}
}
