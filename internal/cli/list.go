package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/evcraddock/comment-analyzer/internal/analysis"
)

func newListCmd() *cobra.Command {
	var langID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored analyses",
		Long:  "List stored analyses, newest first, optionally filtered by language.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, langID)
		},
	}

	cmd.Flags().StringVar(&langID, "lang", "", "only list analyses of this language")

	return cmd
}

func runList(cmd *cobra.Command, langID string) error {
	l, err := parseLang(langID)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	analyses, err := st.List(analysis.ListOptions{Language: l})
	if err != nil {
		return err
	}
	if analyses == nil {
		analyses = []*analysis.Analysis{}
	}

	return render(cmd.OutOrStdout(), analyses, func(w io.Writer) error {
		return printAnalysisTable(w, analyses)
	})
}
