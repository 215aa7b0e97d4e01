// Command headlines is a terminal news reader backed by generative providers.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/tesso57/headlines/internal/application/settings"
	"github.com/tesso57/headlines/internal/application/usecase"
	"github.com/tesso57/headlines/internal/domain/news"
	"github.com/tesso57/headlines/internal/infrastructure/ai"
	"github.com/tesso57/headlines/internal/infrastructure/config"
	"github.com/tesso57/headlines/internal/infrastructure/logging"
	"github.com/tesso57/headlines/internal/infrastructure/speech"
	"github.com/tesso57/headlines/internal/infrastructure/telemetry"
	"github.com/tesso57/headlines/internal/presentation/tui"
)

// CLI is the command line surface.
type CLI struct {
	Config string `help:"Path to the config file." type:"path" short:"c"`

	TUI  TUICmd  `cmd:"" default:"1" help:"Open the terminal reader."`
	List ListCmd `cmd:"" help:"Fetch one set of headlines and print them as a table."`
}

// TUICmd runs the interactive reader.
type TUICmd struct {
	Category []string `help:"Initially selected categories (overrides the config)." short:"C"`
}

// ListCmd prints one replace-mode fetch.
type ListCmd struct {
	Category []string `help:"Categories to fetch." short:"C"`
}

type app struct {
	ctx      context.Context
	settings settings.Settings
	log      *logrus.Logger
	metrics  *telemetry.Metrics
	stdout   io.Writer
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("headlines"),
		kong.Description("AI-written headlines by category, in your terminal."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := logging.New(logging.Options{File: store.Settings.Log.File, Level: store.Settings.Log.Level})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	metrics := telemetry.New()
	if addr := store.Settings.Metrics.Listen; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, logger); err != nil {
				logger.WithError(err).Error("metrics listener stopped")
			}
		}()
	}

	err = kctx.Run(&app{
		ctx:      ctx,
		settings: store.Settings,
		log:      logger,
		metrics:  metrics,
		stdout:   os.Stdout,
	})
	if err != nil {
		logger.WithError(err).Error("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// Run starts the bubbletea program.
func (c *TUICmd) Run(a *app) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("the reader needs a terminal; use `headlines list` for plain output")
	}

	cfg := a.settings
	if len(c.Category) > 0 {
		cfg.Categories = c.Category
	}

	providers, err := ai.NewProviders(a.ctx, cfg, a.log)
	if err != nil {
		return err
	}

	newsSvc := usecase.NewNewsService(providers.Text, a.log, nil)
	newsSvc.Observer = a.metrics
	articles := usecase.NewArticleService(providers.Image, a.log)
	articles.Observer = a.metrics

	narrator := usecase.NewNarrator(nil, usecase.Voice{Rate: cfg.Speech.Rate, Pitch: cfg.Speech.Pitch})
	if synth, err := speech.New(cfg.Speech.Command); err != nil {
		a.log.WithError(err).Warn("read aloud disabled")
	} else {
		narrator.Synth = synth
	}
	defer narrator.Stop()

	model := tui.NewModel(cfg, tui.Services{
		News:      newsSvc,
		Articles:  articles,
		Narrator:  narrator,
		Selection: news.NewSelection(cfg.Categories...),
	})
	a.log.WithField("provider", cfg.Provider).Info("starting reader")
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(a.ctx)).Run()
	return err
}

// Run fetches once and prints the result.
func (c *ListCmd) Run(a *app) error {
	cfg := a.settings
	categories := news.NewSelection(cfg.Categories...).Categories()
	if len(c.Category) > 0 {
		categories = news.NewSelection(c.Category...).Categories()
	}

	providers, err := ai.NewProviders(a.ctx, cfg, a.log)
	if err != nil {
		return err
	}
	newsSvc := usecase.NewNewsService(providers.Text, a.log, nil)
	newsSvc.Observer = a.metrics
	newsSvc.Refresh(a.ctx, categories)

	snapshot := newsSvc.Snapshot()
	if snapshot.Err != "" {
		fmt.Fprintln(os.Stderr, snapshot.Err)
	}
	_, err = fmt.Fprintln(a.stdout, renderItems(snapshot.Items, shouldColorize(a.stdout)))
	return err
}
