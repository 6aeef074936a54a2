package main

import (
	"github.com/spf13/cobra"

	"pdfsearch/internal/bootstrap"
)

func newDocumentsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "documents",
		Short: "List the user's documents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(a *bootstrap.App) error {
				docs, err := a.Documents.ListDocuments(cmd.Context(), opts.userID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{"documents": docs})
			})
		},
	}
}
