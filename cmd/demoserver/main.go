package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dhyeyp/restcli/internal/demoserver"
	"github.com/dhyeyp/restcli/internal/logging"
)

func main() {
	cfg := demoserver.DefaultConfig()
	flag.IntVar(&cfg.Port, "port", cfg.Port, "Port to listen on")
	flag.Parse()

	logger := logging.NewStderrLogger("demoserver", logging.LevelInfo)
	srv := demoserver.New(cfg, logger)

	fmt.Printf("Demo API listening on http://localhost:%d\n", cfg.Port)
	fmt.Printf("Try: restcli -base http://localhost:%d get /posts/1\n", cfg.Port)

	if err := srv.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "demo server failed: %v\n", err)
		os.Exit(1)
	}
}
