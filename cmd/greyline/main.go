package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/grey/greyline/internal/chart"
	"github.com/grey/greyline/internal/config"
	"github.com/grey/greyline/internal/ephemeris"
	"github.com/grey/greyline/internal/metrics"
	"github.com/grey/greyline/internal/runner"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML run configuration (or GREYLINE_CONFIG)")
	outDir := flag.String("out", "", "Override output directory for charts")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	path := *cfgPath
	if path == "" {
		path = os.Getenv("GREYLINE_CONFIG")
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: greyline -config run.yaml [-out charts/]")
		os.Exit(2)
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Error("invalid run configuration", "path", path, "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	src, err := ephemeris.New(cfg.Ephemeris.Backend)
	if err != nil {
		logger.Error("invalid ephemeris backend", "error", err)
		os.Exit(1)
	}

	render := &chart.Renderer{
		Dir:      cfg.Output.Dir,
		Format:   cfg.Output.Format,
		WidthIn:  cfg.Output.WidthIn,
		HeightIn: cfg.Output.HeightIn,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AdminAddr != "" {
		go metrics.ServeAdmin(ctx, cfg.AdminAddr, logger)
	}

	if err := runner.New(cfg, src, render, logger).Run(ctx); err != nil {
		logger.Error("run finished with failures", "error", err)
		os.Exit(1)
	}
	logger.Info("run complete", "output_dir", cfg.Output.Dir)
}

func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("GREYLINE_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
