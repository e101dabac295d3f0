package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattmezza/airalert/internal/alerter"
	"github.com/mattmezza/airalert/internal/config"
	"github.com/mattmezza/airalert/internal/monitor"
	"github.com/mattmezza/airalert/internal/notifier"
	"github.com/mattmezza/airalert/internal/status"
)

var errMissingConfigPath = errors.New("missing config file path")

func init() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <config_file_path>\n", os.Args[0])
}

// run takes the first argument verbatim as the config path, so a file named
// "-h" or "-config.json" is still a path.
func run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errMissingConfigPath
	}
	configFile := args[0]

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Printf("Configuration loaded from %s. Region: %s, Interval: %s, Source: %s",
		configFile, cfg.Region, cfg.Interval, cfg.DataURL)
	if cfg.RequestTimeout == 0 {
		log.Println("Warning: request_timeout is not set; a stalled request pauses monitoring until it returns.")
	}

	configuredNotifiers, err := notifier.InitializeNotifiers(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize notifiers: %w", err)
	}
	log.Printf("%d notification channel(s) initialized.", len(configuredNotifiers))

	alertProcessor := alerter.NewAlerter(cfg.Region, configuredNotifiers, notifier.TemplatesFromConfig(cfg.Templates))
	fetcher := status.NewFetcher(cfg.DataURL, cfg.RequestTimeout)

	monitor.New(cfg.Region, cfg.Interval, fetcher, alertProcessor).Run(ctx)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errMissingConfigPath) {
			usage()
			os.Exit(1)
		}
		log.Fatalf("FATAL: %v", err)
	}
	log.Println("airalert shut down.")
}
