package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/urfave/cli/v2"

	paypulse "github.com/paypulse/showcase"
	"github.com/paypulse/showcase/config"
)

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "log in to a provider and print the paystubs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "provider base URL, overrides client.endpoint",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig(c)
			if err != nil {
				return err
			}
			if endpoint := c.String("endpoint"); endpoint != "" {
				cfg.Client.Endpoint = endpoint
			}

			return runScan(c.Context, newScanner(cfg, cfg.Client.Endpoint, logger), os.Stdout)
		},
	}
}

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "start a provider in-process and scan it",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig(c)
			if err != nil {
				return err
			}
			return runDemo(c.Context, cfg, logger, os.Stdout)
		},
	}
}

func newScanner(cfg *config.Config, endpoint string, logger *slog.Logger) *paypulse.Scanner {
	return paypulse.NewScanner(endpoint,
		paypulse.WithTimeout(cfg.Client.Timeout),
		paypulse.WithRetries(cfg.Client.Retries),
		paypulse.WithLogger(logger),
	)
}

// runScan authenticates and writes the paystub table to w
func runScan(ctx context.Context, client paypulse.Client, w io.Writer) error {
	if err := client.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	stubs, err := client.Paystubs(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch paystubs: %w", err)
	}

	fmt.Fprintln(w, "Retrieved payroll data:")
	paypulse.WritePaystubs(w, stubs)
	return nil
}

// runDemo serves the provider on a free local port and scans it once
func runDemo(ctx context.Context, cfg *config.Config, logger *slog.Logger, w io.Writer) error {
	handler, closeFn, err := buildServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	served := make(chan error, 1)
	go func() { served <- serve(ctx, ln, handler, logger) }()

	scanErr := runScan(ctx, newScanner(cfg, "http://"+ln.Addr().String(), logger), w)

	cancel()
	if err := <-served; err != nil {
		logger.Warn("provider stopped with error", "error", err)
	}
	return scanErr
}
