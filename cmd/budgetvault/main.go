package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/akarpov87/budgetvault/internal/buildinfo"
	"github.com/akarpov87/budgetvault/internal/cli"
	"github.com/akarpov87/budgetvault/internal/config"
	"github.com/akarpov87/budgetvault/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
