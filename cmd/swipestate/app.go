package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/debemdeboas/swipestate/internal/config"
	"github.com/debemdeboas/swipestate/internal/db"
	"github.com/debemdeboas/swipestate/internal/drafts"
	"github.com/debemdeboas/swipestate/internal/interactions"
	"github.com/debemdeboas/swipestate/internal/logger"
	"github.com/debemdeboas/swipestate/internal/storage"
)

type app struct {
	configPath string
	envFile    string

	cfg          *config.Config
	store        *storage.Adapter
	drafts       *drafts.Store
	interactions *interactions.Cache
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "swipestate",
		Short:        "Inspect and edit local drafts, favorites and history",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "path to a YAML or TOML config file")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the config")

	root.AddCommand(
		newDraftsCmd(a),
		newLocalCmd(a),
		newSyncCmd(a),
		newFavoriteCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", a.envFile, err)
	}

	// The config logs before the real logger exists.
	config.SetLogger(logger.New("warn"))
	if err := config.LoadConfig(a.configPath); err != nil {
		return err
	}
	a.cfg = config.AppConfig

	l := logger.New(a.cfg.Logging.Level)
	setLoggers(l)

	store, err := storage.Open(ctx, a.cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	a.store = store

	a.drafts = drafts.NewStore(store,
		drafts.WithKeys(a.cfg.Keys.Drafts, a.cfg.Keys.LegacyDraft),
		drafts.WithPlaceholder(a.cfg.Drafts.UntitledTitle),
	)
	a.interactions = interactions.NewCache(store, interactions.WithKey(a.cfg.Keys.Interactions))
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func setLoggers(l zerolog.Logger) {
	config.SetLogger(l)
	db.SetLogger(l)
	storage.SetLogger(l)
	drafts.SetLogger(l)
	interactions.SetLogger(l)
}

// readJSON decodes a JSON document from path, or from stdin when path is "-".
func readJSON(cmd *cobra.Command, path string, v any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
