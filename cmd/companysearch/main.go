package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/companysearch/internal/config"
	logpkg "github.com/kailas-cloud/companysearch/internal/logger"
	"github.com/kailas-cloud/companysearch/internal/version"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "companysearch:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "companysearch",
		Usage:   "Company search API over a structured search engine",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Environment name; selects config/<env>.yaml",
				EnvVars: []string{"ENV"},
				Value:   "local",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a config file (overrides --env lookup)",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
			},
			{
				Name:  "index",
				Usage: "Manage the company index",
				Subcommands: []*cli.Command{
					{
						Name:   "ensure",
						Usage:  "Create the company index if missing and push synonym groups",
						Action: ensureIndexCommand,
					},
					{
						Name:      "load",
						Usage:     "Load companies from a JSONL file into the index",
						ArgsUsage: "<file.jsonl>",
						Action:    loadCommand,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "batch-size",
								Usage: "Number of companies per engine write",
								Value: 500,
							},
						},
					},
				},
			},
			{
				Name:   "regions",
				Usage:  "Print the declared regions",
				Action: regionsCommand,
			},
		},
	}
}

// loadConfig resolves the config from --config or --env.
func loadConfig(c *cli.Context) (config.Config, string, error) {
	env := c.String("env")
	var (
		cfg config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return config.Config{}, "", fmt.Errorf("load config: %w", err)
	}
	return cfg, env, nil
}

func setup(c *cli.Context) (config.Config, *zap.Logger, error) {
	cfg, env, err := loadConfig(c)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
