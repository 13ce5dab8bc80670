package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/paypulse/showcase/config"
	"github.com/paypulse/showcase/logging"
)

func main() {
	app := &cli.App{
		Name:  "paypulse",
		Usage: "OmniPay provider and payroll scanner",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML configuration file",
				EnvVars: []string{"PAYPULSE_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			scanCommand(),
			demoCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "paypulse: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the file named by --config and builds the logger
func loadConfig(c *cli.Context) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logging.New(cfg.Log, os.Stderr), nil
}
