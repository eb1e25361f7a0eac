package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/evcraddock/comment-analyzer/internal/analysis"
	"github.com/evcraddock/comment-analyzer/internal/lang"
)

type analyzeFlags struct {
	lang              string
	save              bool
	flushUnterminated bool
	countOpenLines    bool
	top               int
}

func newAnalyzeCmd() *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Extract comments from source files",
		Long: "Scan each file for comments and print its comment records, line counts, coverage and most frequent words. " +
			"The language is detected from the file unless --lang is given.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, f)
		},
	}

	cmd.Flags().StringVar(&f.lang, "lang", "", "source language (c|cpp|python|java|javascript); detected when empty")
	cmd.Flags().BoolVar(&f.save, "save", false, "store the analysis")
	cmd.Flags().BoolVar(&f.flushUnterminated, "flush-unterminated", false, "keep a multi-line comment left open at end of file")
	cmd.Flags().BoolVar(&f.countOpenLines, "count-open-lines", false, "count lines ending inside an open multi-line comment as comment lines")
	cmd.Flags().IntVar(&f.top, "top", 0, "number of most frequent words to report (default from config)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, paths []string, f analyzeFlags) error {
	l, err := parseLang(f.lang)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("flush-unterminated") {
		cfg.Scan.FlushUnterminated = f.flushUnterminated
	}
	if flags.Changed("count-open-lines") {
		cfg.Scan.CountOpenLines = f.countOpenLines
	}
	if flags.Changed("top") {
		cfg.Report.TopWords = f.top
	}

	if f.save {
		return analyzeAndSave(cmd.OutOrStdout(), paths, l)
	}

	reports := make([]*analysis.Report, 0, len(paths))
	for _, path := range paths {
		rep, err := analysis.ReadFile(path, l, cfg.ScanOptions(), cfg.Report.TopWords)
		if err != nil {
			return err
		}
		reports = append(reports, rep)
	}

	var v interface{} = reports
	if len(reports) == 1 {
		v = reports[0]
	}
	return render(cmd.OutOrStdout(), v, func(w io.Writer) error {
		for i, rep := range reports {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := printReport(w, rep); err != nil {
				return err
			}
		}
		return nil
	})
}

// analyzeAndSave stores each file's analysis. With a server configured the
// server scans the content under its own policies.
func analyzeAndSave(out io.Writer, paths []string, l lang.Language) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	saved := make([]*analysis.Analysis, 0, len(paths))
	for _, path := range paths {
		a, err := st.SubmitFile(path, l)
		if err != nil {
			return err
		}
		saved = append(saved, a)
	}

	var v interface{} = saved
	if len(saved) == 1 {
		v = saved[0]
	}
	return render(out, v, func(w io.Writer) error {
		for i, a := range saved {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "Analysis #%d saved.\n", a.ID)
			if err := printReport(w, &a.Report); err != nil {
				return err
			}
		}
		return nil
	})
}
