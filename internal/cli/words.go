package cli

import (
	"io"

	"github.com/spf13/cobra"
)

func newWordsCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "words <id>",
		Short: "Show the word histogram of a stored analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWords(cmd, args[0], top)
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "number of words to show (0 = all)")

	return cmd
}

func runWords(cmd *cobra.Command, arg string, top int) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	words, err := st.Words(id, top)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), words, func(w io.Writer) error {
		return printWordTable(w, words)
	})
}
