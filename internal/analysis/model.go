// Package analysis runs the comment pipeline over documents and stores the
// resulting reports.
package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/evcraddock/comment-analyzer/internal/lang"
	"github.com/evcraddock/comment-analyzer/internal/scanner"
	"github.com/evcraddock/comment-analyzer/internal/stats"
	"github.com/evcraddock/comment-analyzer/internal/wordfreq"
)

// Document is one source file supplied whole for analysis.
type Document struct {
	Name     string
	Language lang.Language
	Lines    []string
}

// SplitLines splits content into lines, dropping the carriage return of
// CRLF endings. A trailing newline does not start an extra line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Report is the full outcome of analyzing one document.
type Report struct {
	Name     string               `json:"name" yaml:"name"`
	Language lang.Language        `json:"language" yaml:"language"`
	Options  scanner.Options      `json:"options" yaml:"options"`
	Records  []*scanner.Record    `json:"records" yaml:"records"`
	Counters scanner.Counters     `json:"counters" yaml:"counters"`
	Summary  stats.Summary        `json:"summary" yaml:"summary"`
	Words    []wordfreq.WordCount `json:"words" yaml:"words"`
}

// Run scans doc and derives its summary and word histogram. topWords limits
// the number of words kept; zero or less keeps all.
func Run(doc Document, opts scanner.Options, topWords int) *Report {
	res := scanner.Scan(doc.Lines, doc.Language, opts)

	records := make([]*scanner.Record, 0, len(res.Records))
	for _, r := range res.Records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].StartLine < records[j].StartLine
	})

	return &Report{
		Name:     doc.Name,
		Language: doc.Language,
		Options:  opts,
		Records:  records,
		Counters: res.Counters,
		Summary:  stats.Summarize(res),
		Words:    wordfreq.Count(res.Records).Top(topWords),
	}
}

// Analysis is a stored report.
type Analysis struct {
	ID        int64     `json:"id" yaml:"id"`
	RunID     string    `json:"run_id" yaml:"run_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Report    `yaml:",inline"`
}

// Comment is one stored comment text, addressed by its 0-based start line.
type Comment struct {
	ID         int64        `json:"id" yaml:"id"`
	AnalysisID int64        `json:"analysis_id" yaml:"analysis_id"`
	StartLine  int          `json:"start_line" yaml:"start_line"`
	EndLine    int          `json:"end_line" yaml:"end_line"`
	Kind       scanner.Kind `json:"kind" yaml:"kind"`
	Text       string       `json:"text" yaml:"text"`
}

// Detail is an analysis together with its stored comments.
type Detail struct {
	Analysis `yaml:",inline"`
	Comments []*Comment `json:"comments" yaml:"comments"`
}
