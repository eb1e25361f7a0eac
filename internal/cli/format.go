package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/evcraddock/comment-analyzer/internal/analysis"
	"github.com/evcraddock/comment-analyzer/internal/scanner"
	"github.com/evcraddock/comment-analyzer/internal/wordfreq"
)

// render writes v in the selected --format, using text for the text format.
func render(w io.Writer, v interface{}, text func(io.Writer) error) error {
	switch flagFormat {
	case "json":
		return printJSON(w, v)
	case "yaml":
		return printYAML(w, v)
	default:
		return text(w)
	}
}

// printJSON marshals v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printYAML marshals v as YAML.
func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// printSummary prints the counters and metrics of a report.
func printSummary(w io.Writer, rep *analysis.Report) {
	s := rep.Summary
	fmt.Fprintf(w, "File:      %s\n", rep.Name)
	fmt.Fprintf(w, "Language:  %s\n", rep.Language)
	fmt.Fprintf(w, "Lines:     %d total, %d blank, %d non-blank\n", s.TotalLines, s.BlankLines, s.NonBlankLines)
	fmt.Fprintf(w, "Code:      %d lines\n", s.NormalLines)
	fmt.Fprintf(w, "Comments:  %d lines in %d comments (%d single-line, %d multi-line records)\n",
		s.CommentLines, s.TotalComments, s.SingleLineRecords, s.MultiLineRecords)
	fmt.Fprintf(w, "Coverage:  %.2f%%\n", s.Coverage)
	fmt.Fprintf(w, "Avg len:   %.2f chars\n", s.AverageCommentLength)
}

// printReport prints a full report in text format.
func printReport(w io.Writer, rep *analysis.Report) error {
	printSummary(w, rep)
	fmt.Fprintln(w)
	if err := printRecordTable(w, rep.Records); err != nil {
		return err
	}
	if len(rep.Words) > 0 {
		fmt.Fprintln(w)
		return printWordTable(w, rep.Words)
	}
	return nil
}

// printRecordTable prints one row per comment text. Line numbers are 1-based.
func printRecordTable(w io.Writer, records []*scanner.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No comments found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "LINE\tKIND\tTEXT"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "----\t----\t----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}
	for _, r := range records {
		for _, text := range r.Texts {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n",
				lineRange(r.StartLine, r.EndLine), r.Kind, truncate(firstLine(text), 60)); err != nil {
				return fmt.Errorf("writing table row: %w", err)
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// printWordTable prints a word histogram.
func printWordTable(w io.Writer, words []wordfreq.WordCount) error {
	if len(words) == 0 {
		fmt.Fprintln(w, "No words.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "WORD\tCOUNT"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "----\t-----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}
	for _, wc := range words {
		if _, err := fmt.Fprintf(tw, "%s\t%d\n", wc.Word, wc.Count); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	return tw.Flush()
}

// printAnalysisTable prints stored analyses as a table.
func printAnalysisTable(w io.Writer, analyses []*analysis.Analysis) error {
	if len(analyses) == 0 {
		fmt.Fprintln(w, "No analyses found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tNAME\tLANGUAGE\tCOMMENTS\tCOVERAGE\tCREATED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t----\t--------\t--------\t--------\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}
	for _, a := range analyses {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.2f%%\t%s\n",
			a.ID, truncate(a.Name, 40), a.Language, a.Counters.TotalComments,
			a.Summary.Coverage, a.CreatedAt.Format("2006-01-02 15:04")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d analyses\n", len(analyses))
	return nil
}

// printDetail prints a stored analysis with its comments.
func printDetail(w io.Writer, d *analysis.Detail) error {
	fmt.Fprintf(w, "Analysis #%d (%s)\n", d.ID, d.RunID)
	fmt.Fprintf(w, "Created:   %s\n", d.CreatedAt.Format("2006-01-02 15:04"))
	printSummary(w, &d.Report)
	fmt.Fprintln(w)

	if len(d.Comments) == 0 {
		fmt.Fprintln(w, "No comments.")
		return nil
	}
	fmt.Fprintf(w, "Comments (%d):\n", len(d.Comments))
	for _, c := range d.Comments {
		fmt.Fprintf(w, "[%s] %s\n", lineRange(c.StartLine, c.EndLine), c.Kind)
		for _, line := range strings.Split(c.Text, "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}

// lineRange formats 0-based start and end lines as a 1-based range.
func lineRange(start, end int) string {
	if end <= start {
		return fmt.Sprintf("%d", start+1)
	}
	return fmt.Sprintf("%d-%d", start+1, end+1)
}

// firstLine returns text up to its first newline, marking any cut.
func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i] + " ..."
	}
	return text
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
