package main

import (
	"context"
	"log"
	"os"

	"github.com/mkuznecov/nutritrack/internal/buildinfo"
	"github.com/mkuznecov/nutritrack/internal/client/cli"
	"github.com/mkuznecov/nutritrack/internal/client/config"
	"github.com/mkuznecov/nutritrack/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer logger.Sync()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
