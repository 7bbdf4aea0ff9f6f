package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/sebastiantruijens/movierec/internal/config"
	"github.com/sebastiantruijens/movierec/internal/logging"
	"github.com/sebastiantruijens/movierec/internal/metrics"
	"github.com/sebastiantruijens/movierec/internal/recommend"
	"github.com/sebastiantruijens/movierec/internal/session"
	"github.com/sebastiantruijens/movierec/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Caller = cfg.Log.Caller
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		defer f.Close()
		logCfg.Output = f
	} else {
		// The terminal belongs to the UI
		logCfg.Level = "disabled"
	}
	logging.Init(logCfg)

	if envErr != nil {
		logging.Debug().Msg("no .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logging.Error().Err(err).Msg("metrics listener stopped")
			}
		}()
	}

	client := recommend.NewClient(cfg.API)
	sess := session.New(client, session.Posters{
		BaseURL:     cfg.UI.ImageBaseURL,
		Placeholder: cfg.UI.PlaceholderURL,
	})

	logging.Info().Str("backend", cfg.API.BaseURL).Msg("starting movierec")

	p := tea.NewProgram(ui.NewModel(ctx, sess, cfg.UI), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
