package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vivabureaucracia/simulator-go/internal/config"
	"github.com/vivabureaucracia/simulator-go/internal/data"
	"github.com/vivabureaucracia/simulator-go/internal/runner"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	runs       = flag.Int("runs", 0, "override the number of simulations")
	seed       = flag.Int64("seed", 0, "override the base random seed")
	output     = flag.String("output", "", "override the summary output path")
	verbose    = flag.Bool("verbose", false, "force debug logging")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *runs > 0 {
		cfg.Runner.Runs = *runs
	}
	if *seed != 0 {
		cfg.Runner.Seed = *seed
	}
	if *output != "" {
		cfg.Runner.OutputPath = *output
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting balance simulator",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	cards, err := data.LoadCards(cfg.Data.CardsPath)
	if err != nil {
		logger.Fatal("failed to load cards", zap.Error(err))
	}
	profiles, err := data.LoadProfiles(cfg.Data.ProfilesPath)
	if err != nil {
		logger.Fatal("failed to load profiles", zap.Error(err))
	}
	goals, err := data.LoadGoals(cfg.Data.GoalsPath)
	if err != nil {
		logger.Fatal("failed to load goals", zap.Error(err))
	}
	logger.Info("data loaded",
		zap.Int("profiles", len(profiles)),
		zap.Int("goals", len(goals)),
	)

	r, err := runner.New(cfg, profiles, goals, cards, logger)
	if err != nil {
		logger.Fatal("failed to assemble runner", zap.Error(err))
	}

	summary, err := r.Run(ctx)
	if err != nil {
		logger.Fatal("simulation batch failed", zap.Error(err))
	}

	if err := summary.WriteFile(cfg.Runner.OutputPath); err != nil {
		logger.Fatal("failed to write summary", zap.Error(err))
	}
	logger.Info("summary written",
		zap.String("path", cfg.Runner.OutputPath),
		zap.Int("total_simulations", summary.TotalSimulations),
	)
}

func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
