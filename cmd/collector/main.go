package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/park-waits-service/internal/config"
	"github.com/preston-bernstein/park-waits-service/internal/logging"
	"github.com/preston-bernstein/park-waits-service/internal/server"
)

const appVersion = "dev"

type flagConfig struct {
	parksFile string
	once      bool
}

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})

	flags, err := parseFlags(os.Args[1:], cfg.ParksFile, os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, cfg, flags, logger); err != nil {
		logging.Error(logger, "collector exited with error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, defaultParks string, out io.Writer) (flagConfig, error) {
	var fc flagConfig
	fs := flag.NewFlagSet("collector", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&fc.parksFile, "parks", defaultParks, "path to the parks definition file (YAML or JSON)")
	fs.BoolVar(&fc.once, "once", false, "run a single collection cycle and exit")
	if err := fs.Parse(args); err != nil {
		return fc, err
	}
	return fc, nil
}

func run(ctx context.Context, stop context.CancelFunc, cfg config.Config, flags flagConfig, logger *slog.Logger) error {
	parkList, err := config.LoadParks(flags.parksFile)
	if err != nil {
		return fmt.Errorf("load parks: %w", err)
	}
	logging.Info(logger, "parks loaded", logging.FieldCount, len(parkList), logging.FieldFile, flags.parksFile)

	srv, err := server.New(cfg, parkList, logger)
	if err != nil {
		return err
	}
	if flags.once {
		return srv.RunOnce(ctx)
	}
	srv.Run(ctx, stop)
	return nil
}
