package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored analysis",
		Long:  "Show a stored analysis with its summary and every extracted comment.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	d, err := st.Get(id)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), d, func(w io.Writer) error {
		return printDetail(w, d)
	})
}

// parseID parses a positive analysis ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid analysis ID: %s", arg)
	}
	return id, nil
}
