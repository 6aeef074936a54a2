package main

import (
	"github.com/spf13/cobra"

	"pdfsearch/internal/app"
	"pdfsearch/internal/bootstrap"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var documentID uint
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print matching snippets of one document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(a *bootstrap.App) error {
				results := a.Search.Search(cmd.Context(), app.SearchInput{
					UserID:     opts.userID,
					DocumentID: documentID,
					Query:      args[0],
				})
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{"results": results})
			})
		},
	}
	cmd.Flags().UintVarP(&documentID, "document", "d", 0, "document id to search")
	_ = cmd.MarkFlagRequired("document")
	return cmd
}
