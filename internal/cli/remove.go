package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a stored analysis",
		Long:  "Remove a stored analysis with all its comments and words.",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(id); err != nil {
		return err
	}

	result := map[string]interface{}{
		"id":      id,
		"removed": true,
	}
	return render(cmd.OutOrStdout(), result, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Analysis #%d removed.\n", id)
		return err
	})
}
