package main

import (
	"context"
	"os"

	"github.com/buffsmarket/marketcli/internal/buildinfo"
	"github.com/buffsmarket/marketcli/internal/client/cli"
	"github.com/buffsmarket/marketcli/internal/client/config"
	"github.com/buffsmarket/marketcli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	log := logging.NewDefault(os.Stderr)

	app := cli.NewApp(cfg, log)
	app.Run(ctx)
}
