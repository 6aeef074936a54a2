package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pdfsearch/internal/bootstrap"
)

type rootOptions struct {
	configFile string
	userID     uint
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "pdfsearchctl",
		Short:        "Ingest and search PDF documents without the HTTP server",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is $CONFIG_FILE or configs/config.toml)")
	cmd.PersistentFlags().UintVarP(&opts.userID, "user", "u", 0, "id of the owning user")
	_ = cmd.MarkPersistentFlagRequired("user")

	cmd.AddCommand(
		newIngestCmd(opts),
		newSearchCmd(opts),
		newDocumentsCmd(opts),
	)
	return cmd
}

// withApp wires the application for one command and closes it afterwards.
func withApp(ctx context.Context, opts *rootOptions, run func(*bootstrap.App) error) error {
	if opts.configFile != "" {
		if err := os.Setenv("CONFIG_FILE", opts.configFile); err != nil {
			return fmt.Errorf("set config file failed: %w", err)
		}
	}

	app, err := bootstrap.New(ctx, bootstrap.Options{})
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			app.Logger.Warn("close resources failed", "error", err)
		}
	}()
	return run(app)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
