package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"github.com/akarpz/dynup"
)

func main() {
	logger := dynup.NewLineLogger(os.Stdout)
	logger.Info("Running dynup")
	if err := run(context.Background(), os.Args[1:], logger); err != nil {
		logger.Error(err, "Run failed")
		os.Exit(1)
	}
	logger.Info("Run succeeded")
}

func run(ctx context.Context, args []string, logger logr.Logger) error {
	if len(args) != 1 {
		return fmt.Errorf("incorrect number of arguments: expected 1, received %d (usage: dynup <config-path>)", len(args))
	}

	path := args[0]
	logger.Info("Loading config", "path", path)
	cfg, err := dynup.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts := []dynup.Option{
		dynup.WithLogger(logger),
		dynup.WithTTL(cfg.TTL),
	}
	switch cfg.Provider {
	case "cloudflare":
		opts = append(opts, dynup.UsingCloudflare(cfg.PAT))
	default:
		opts = append(opts, dynup.UsingGandi(cfg.PAT))
		if cfg.APIURL != "" {
			opts = append(opts, dynup.WithAPIEndpoint(cfg.APIURL))
		}
	}
	switch cfg.Resolver {
	case "stun":
		opts = append(opts, dynup.UsingResolver(dynup.STUNResolver("")))
	case "dns":
		opts = append(opts, dynup.UsingResolver(dynup.DNSResolver("")))
	default:
		opts = append(opts, dynup.UsingResolver(dynup.WebResolver(cfg.IPService)))
	}

	client, err := dynup.New(cfg.Domain, opts...)
	if err != nil {
		return fmt.Errorf("error creating updater client: %w", err)
	}
	return client.Run(ctx)
}
