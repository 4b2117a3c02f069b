package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pocketpal/internal/config"
	"pocketpal/internal/game"
	"pocketpal/internal/storage"
	"pocketpal/internal/ui"
)

const Version = "v0.3.0"

// app carries what the commands share once startup has run
type app struct {
	configPath string
	backend    string
	dir        string

	cfg     *config.Config
	store   game.Store
	game    *game.Container
	logFile io.Closer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "pocketpal",
		Short:         "Pocket Pal - raise a pocket monster in your terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(a.game, a.cfg.UI.Tick)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.backend, "backend", "", "Storage backend (json, toml, sqlite)")
	rootCmd.PersistentFlags().StringVar(&a.dir, "dir", "", "Directory holding the saved game")

	rootCmd.AddCommand(
		a.statusCmd(),
		a.actionCmd("pet", "Pet your companion", (*game.Container).Pet),
		a.actionCmd("feed", "Feed your companion a berry", (*game.Container).Feed),
		a.trainCmd(),
		a.actionCmd("potion", "Use a potion to restore HP", (*game.Container).UsePotion),
		a.actionCmd("evolve", "Evolve your companion when it is ready", (*game.Container).Evolve),
		a.switchCmd(),
		a.teamCmd(),
		a.bagCmd(),
		a.dexCmd(),
		a.speciesCmd(),
		a.settingsCmd(),
		a.resetCmd(),
		a.watchCmd(),
	)

	return rootCmd
}

// setup loads the configuration, applies flag overrides, sends the log to a
// file and opens the game
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Storage.Backend = a.backend
	}
	if a.dir != "" {
		cfg.Storage.Dir = a.dir
	}
	if err := cfg.Resolve(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	// The TUI owns the terminal, so logging goes to a file
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := tea.LogToFile(cfg.Log.File, "pocketpal")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.logFile = f

	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	a.store = store

	a.game = game.NewContainer(cmd.Context(), game.Options{
		Store: store,
		Key:   cfg.Storage.Key,
	})
	return nil
}

func (a *app) close() error {
	var firstErr error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			firstErr = fmt.Errorf("close storage: %w", err)
		}
		a.store = nil
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close log file: %w", err)
		}
		a.logFile = nil
	}
	return firstErr
}
