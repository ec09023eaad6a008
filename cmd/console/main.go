package main

import (
	"context"
	"os"

	"github.com/emre/sisgo/internal/bootstrap"
	"github.com/emre/sisgo/internal/console"
	"github.com/emre/sisgo/internal/pkg/logger"
)

func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup database")
		os.Exit(1)
	}
	defer dbPool.Close()

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup dependencies")
		os.Exit(1)
	}

	menu, err := console.NewMenu(deps.RegistrarService, deps.StudentService, os.Stdin, os.Stdout)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize console menu")
		os.Exit(1)
	}

	if err := menu.Run(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Console session ended with error")
		os.Exit(1)
	}
}
