package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/scanlist/internal/app"
	"github.com/RMahshie/scanlist/internal/config"
	"github.com/RMahshie/scanlist/internal/logging"
	"github.com/RMahshie/scanlist/internal/menu"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The console belongs to the menu; logs only go to the file
	logFile, err := logging.Setup(logging.Options{
		File:  cfg.Log.File,
		Level: cfg.Log.Level,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, prometheus.NewRegistry())
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize application")
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer application.Close()

	m := menu.New(application.Service, cfg.Log.File, os.Stdin, os.Stdout)
	if err := m.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Menu stopped")
	}
}
