// agenttrace renders an agentic retrieval trace for the terminal.
//
// Usage:
//
//	agenttrace show <trace.json>                   # render a processed trace
//	agenttrace show --config config.yaml t.json    # with a config file
//	agenttrace version                             # show version info
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/foundryiq/agenttrace/config"
	"github.com/foundryiq/agenttrace/trace"
	"github.com/foundryiq/agenttrace/types"
)

// Injected at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "show":
		runShow(os.Args[2:])
	case "version":
		fmt.Printf("agenttrace %s (%s)\n", Version, GitCommit)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	plain := fs.Bool("plain", false, "Strip citation markers from the answer")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "show requires exactly one trace file argument")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *plain {
		cfg.Display.ShowCitations = false
	}

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	runID := uuid.NewString()
	ctx := types.WithRunID(context.Background(), runID)

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		logger.Error("failed to read trace file", zap.String("run_id", runID), zap.Error(err))
		os.Exit(1)
	}

	resp, err := types.ParseRetrievalResponse(data)
	if err != nil {
		logger.Error("failed to parse trace file", zap.String("run_id", runID), zap.Error(err))
		os.Exit(1)
	}

	processed := trace.NewProcessor(trace.WithLogger(logger)).ProcessContext(ctx, resp)

	r := newRenderer(os.Stdout, cfg.Display)
	r.Render(processed)

	if processed.Status == trace.StatusFailed {
		os.Exit(2)
	}
}

func initLogger(cfg config.LogConfig) *zap.Logger {
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

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Format == "console",
		Encoding:         cfg.Format,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `agenttrace - agentic retrieval trace viewer

Commands:
  show <trace.json>   Render a retrieval trace
  version             Show version info
  help                Show this help

Flags for show:
  --config <path>     Config file (YAML)
  --plain             Strip citation markers from the answer`)
}
