package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dhyeyp/restcli/internal/webclient"
)

// Config contains the runtime configuration for a run. Kept small; add
// fields as modules need them.
type Config struct {
	// BaseURL is the fixed origin all endpoint fragments are appended to.
	BaseURL string

	// StorageRoot is the base path where the history database is kept.
	StorageRoot string

	// WebClient configuration
	WebClientCfg webclient.Config

	// HistoryLimit caps how many entries -show-history prints.
	HistoryLimit int
}

// DefaultConfig returns a Config populated with the shipped defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://jsonplaceholder.typicode.com",
		StorageRoot: "~/.config/restcli",
		WebClientCfg: webclient.Config{
			Backend: webclient.BackendNetHTTP,
			Timeout: 30 * time.Second,
		},
		HistoryLimit: 20,
	}
}

func expandPath(p string) (string, error) {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
