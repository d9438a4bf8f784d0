package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dhyeyp/restcli/internal/app"
	"github.com/dhyeyp/restcli/internal/apperror"
	"github.com/dhyeyp/restcli/internal/cli"
	"github.com/dhyeyp/restcli/internal/logging"
	"github.com/dhyeyp/restcli/internal/webclient"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Println(apperror.Message(err))
		fmt.Print(cli.Usage())
		os.Exit(2)
	}

	level := logging.LevelWarn
	if args.Verbose {
		level = logging.LevelDebug
	}
	logger := logging.NewStderrLogger("restcli", level)

	webclient.RegisterDefaultBackends()

	cfg := app.DefaultConfig()
	client, err := webclient.New(cfg.WebClientCfg, logger)
	if err != nil {
		fmt.Println(apperror.Message(err))
		os.Exit(1)
	}
	defer client.Close()

	application := app.NewApplication(cfg, args, logger, client)
	if err := application.Run(context.Background()); err != nil {
		fmt.Println(apperror.Message(err))
		os.Exit(1)
	}
}
