package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pdfsearch/internal/app"
	"pdfsearch/internal/bootstrap"
)

func newIngestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file.pdf>...",
		Short: "Store and index one or more PDF files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(a *bootstrap.App) error {
				var failed int
				for _, path := range args {
					content, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("read %s failed: %w", path, err)
					}
					doc, err := a.Documents.Ingest(cmd.Context(), app.IngestInput{
						UserID:       opts.userID,
						OriginalName: filepath.Base(path),
						Content:      content,
					})
					if err != nil {
						failed++
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: document %d, %d pages\n", path, doc.ID, doc.PageCount)
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d files failed", failed, len(args))
				}
				return nil
			})
		},
	}
}
