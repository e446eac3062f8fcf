package main

import (
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/ericogr/tank-dashboard/pkg/config"
	"github.com/ericogr/tank-dashboard/pkg/dashboard"
	"github.com/ericogr/tank-dashboard/pkg/logging"
	"github.com/ericogr/tank-dashboard/pkg/output"
	"github.com/ericogr/tank-dashboard/pkg/output/console"
	"github.com/ericogr/tank-dashboard/pkg/sensor"
	"github.com/ericogr/tank-dashboard/pkg/store"
)

var outputFactories = map[string]output.Factory{
	"console": console.Factory,
}

func main() {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	logger, err := logging.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg, logger); err != nil {
		logger.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	src, err := sensor.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("sensor: %w", err)
	}
	defer src.Close()

	outs, err := output.Build(cfg.Outputs, outputFactories)
	if err != nil {
		return err
	}
	defer func() {
		for _, o := range outs {
			_ = o.Close()
		}
	}()

	a := app.New()
	win := dashboard.NewWindow(a, cfg.WindowTitle, cfg.ChartWidth, cfg.ChartHeight)
	dash := dashboard.New(src, store.NewCSVLog(cfg.DataDir), outs, win, dashboardOptions(cfg), logger)
	if err := dash.Start(); err != nil {
		return err
	}
	logger.Info("tank dashboard running", "source", cfg.Source, "data_dir", cfg.DataDir)
	win.Run(dash.Stop)
	return nil
}

func dashboardOptions(cfg config.Config) dashboard.Options {
	return dashboard.Options{
		TankDiameter:  cfg.TankDiameter,
		Interval:      cfg.Interval,
		HistoryPoints: cfg.HistoryPoints,
		ChartWidth:    cfg.ChartWidth,
		ChartHeight:   cfg.ChartHeight,
	}
}
