// Command caravel is the conversational command router CLI.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/caravel-ai/caravel/internal/catalog"
	"github.com/caravel-ai/caravel/internal/classifier"
	"github.com/caravel-ai/caravel/internal/command"
	"github.com/caravel-ai/caravel/internal/config"
	"github.com/caravel-ai/caravel/internal/handler"
	"github.com/caravel-ai/caravel/internal/model"
	"github.com/caravel-ai/caravel/internal/outbound"
	"github.com/caravel-ai/caravel/internal/router"
)

var (
	// Build information. Populated at build-time via -ldflags.
	version = "dev"
)

func main() {
	app := &cli.Command{
		Name:    "caravel",
		Usage:   "conversational command router for the agent marketplace",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "chat",
				Usage: "start an interactive session",
				Action: func(ctx context.Context, c *cli.Command) error {
					rt, store, err := buildRouter(c)
					if err != nil {
						return err
					}
					defer store.Close()
					return runChat(ctx, rt)
				},
			},
			{
				Name:      "ask",
				Usage:     "route a single utterance and exit",
				ArgsUsage: "<utterance>",
				Action: func(ctx context.Context, c *cli.Command) error {
					text := strings.Join(c.Args().Slice(), " ")
					if strings.TrimSpace(text) == "" {
						return fmt.Errorf("nothing to ask")
					}
					rt, store, err := buildRouter(c)
					if err != nil {
						return err
					}
					defer store.Close()

					console := outbound.NewConsole(os.Stdout)
					return console.Deliver(rt.ProcessUtterance(ctx, text))
				},
			},
			{
				Name:  "catalog",
				Usage: "catalog maintenance",
				Commands: []*cli.Command{
					{
						Name:  "seed",
						Usage: "insert the built-in marketplace records",
						Action: func(ctx context.Context, c *cli.Command) error {
							cfg, err := loadConfig(c)
							if err != nil {
								return err
							}
							store, err := openCatalog(cfg)
							if err != nil {
								return err
							}
							defer store.Close()

							n, err := store.Seed(ctx)
							if err != nil {
								return err
							}
							fmt.Printf("seeded %d agents\n", n)
							return nil
						},
					},
				},
			},
		},
	}

	setupLogging(os.Args)

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("caravel failed")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setupLogging(args []string) {
	level := zerolog.WarnLevel
	for i, a := range args {
		if a == "--log-level" && i+1 < len(args) {
			if parsed, err := zerolog.ParseLevel(args[i+1]); err == nil {
				level = parsed
			}
		}
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func loadConfig(c *cli.Command) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		homeDir, _ := os.UserHomeDir()
		path = filepath.Join(homeDir, ".caravel", "config.toml")
	}
	return config.Load(path)
}

func openCatalog(cfg *config.Config) (*catalog.Store, error) {
	if dir := filepath.Dir(cfg.Catalog.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return catalog.Open(cfg.Catalog.Path)
}

func buildRouter(c *cli.Command) (*router.Router, *catalog.Store, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	store, err := openCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Catalog.SeedOnStart {
		if _, err := store.Seed(context.Background()); err != nil {
			store.Close()
			return nil, nil, err
		}
	}

	registry := command.NewRegistry()

	var provider model.Provider
	if cfg.Provider.APIKey != "" {
		provider = model.NewOpenRouterClient(&model.OpenRouterConfig{
			APIKey:  cfg.Provider.APIKey,
			BaseURL: cfg.Provider.BaseURL,
			Model:   cfg.Provider.Model,
			Timeout: time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		})
	}

	handlers := handler.NewRegistry()
	handler.RegisterCatalogHandlers(handlers, store)

	rt := router.New(&router.Config{
		Registry: registry,
		Classifier: classifier.New(&classifier.Config{
			Registry: registry,
			Provider: provider,
			Timeout:  time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
			Logger:   log.Logger,
		}),
		Handlers:    handlers,
		ApprovalTTL: time.Duration(cfg.Approval.TTLSeconds) * time.Second,
		RecentTurns: cfg.Router.RecentTurns,
		Logger:      log.Logger,
	})

	return rt, store, nil
}

func runChat(ctx context.Context, rt *router.Router) error {
	console := outbound.NewConsole(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("caravel chat - type a request, or 'quit' to leave")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			break
		}

		resp := rt.ProcessUtterance(ctx, text)
		if err := console.Deliver(resp); err != nil {
			return err
		}
	}

	summary := rt.ConversationSummary()
	fmt.Printf("session over: %d turns, %d pending approvals\n",
		summary.TotalTurns, summary.PendingCount)
	return scanner.Err()
}
