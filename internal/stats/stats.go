// Package stats derives comment coverage and length metrics from a scan.
package stats

import (
	"unicode/utf8"

	"github.com/evcraddock/comment-analyzer/internal/scanner"
)

// Summary holds the derived metrics of one scan.
type Summary struct {
	TotalLines           int     `json:"total_lines" yaml:"total_lines"`
	BlankLines           int     `json:"blank_lines" yaml:"blank_lines"`
	NonBlankLines        int     `json:"non_blank_lines" yaml:"non_blank_lines"`
	NormalLines          int     `json:"normal_lines" yaml:"normal_lines"`
	CommentLines         int     `json:"comment_lines" yaml:"comment_lines"`
	TotalComments        int     `json:"total_comments" yaml:"total_comments"`
	SingleLineRecords    int     `json:"single_line_records" yaml:"single_line_records"`
	MultiLineRecords     int     `json:"multi_line_records" yaml:"multi_line_records"`
	TotalCharacters      int     `json:"total_characters" yaml:"total_characters"`
	Coverage             float64 `json:"coverage" yaml:"coverage"`
	AverageCommentLength float64 `json:"average_comment_length" yaml:"average_comment_length"`
}

// Summarize computes the Summary of res. Ratios with a zero denominator are
// zero. Coverage is capped at 100 since record spans include blank lines.
func Summarize(res *scanner.Result) Summary {
	c := res.Counters
	s := Summary{
		TotalLines:    c.TotalLines,
		BlankLines:    c.BlankLines,
		NonBlankLines: c.TotalNonBlankLines,
		NormalLines:   c.TotalNormalLines,
		CommentLines:  c.TotalCommentLines,
		TotalComments: c.TotalComments,
	}

	for _, r := range res.Records {
		switch r.Kind {
		case scanner.SingleLine:
			s.SingleLineRecords++
		case scanner.MultiLine:
			s.MultiLineRecords++
		}
		for _, text := range r.Texts {
			s.TotalCharacters += utf8.RuneCountInString(text)
		}
	}

	s.Coverage = Coverage(c.TotalCommentLines, c.TotalNonBlankLines)
	if c.TotalComments > 0 {
		s.AverageCommentLength = float64(s.TotalCharacters) / float64(c.TotalComments)
	}
	return s
}

// Coverage returns commentLines as a percentage of nonBlank lines, or 0
// when there are none. The result is capped at 100: comment spans count the
// blank lines inside a block, so the plain ratio can exceed it.
func Coverage(commentLines, nonBlank int) float64 {
	if nonBlank <= 0 {
		return 0
	}
	pct := 100 * float64(commentLines) / float64(nonBlank)
	if pct > 100 {
		return 100
	}
	return pct
}
