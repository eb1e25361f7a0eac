// Package scanner extracts line-addressed comment records from source text.
package scanner

// Kind distinguishes single-line from multi-line comments.
type Kind string

const (
	SingleLine Kind = "single_line"
	MultiLine  Kind = "multi_line"
)

// Record holds every comment that starts on one line. Lines are 0-based.
// EndLine equals StartLine unless a multi-line comment spans further.
type Record struct {
	StartLine int      `json:"start_line" yaml:"start_line"`
	EndLine   int      `json:"end_line" yaml:"end_line"`
	Kind      Kind     `json:"kind" yaml:"kind"`
	Texts     []string `json:"texts" yaml:"texts"`
}

// Span returns the number of lines the record covers.
func (r *Record) Span() int {
	return r.EndLine - r.StartLine + 1
}

// Counters aggregates line and comment counts for one scan.
type Counters struct {
	TotalLines         int `json:"total_lines" yaml:"total_lines"`
	TotalNonBlankLines int `json:"total_non_blank_lines" yaml:"total_non_blank_lines"`
	BlankLines         int `json:"blank_lines" yaml:"blank_lines"`
	TotalNormalLines   int `json:"total_normal_lines" yaml:"total_normal_lines"`
	CommentMarkedLines int `json:"comment_marked_lines" yaml:"comment_marked_lines"`
	TotalCommentLines  int `json:"total_comment_lines" yaml:"total_comment_lines"`
	TotalComments      int `json:"total_comments" yaml:"total_comments"`
	TotalSingleLine    int `json:"total_single_line" yaml:"total_single_line"`
	TotalMultiLine     int `json:"total_multi_line" yaml:"total_multi_line"`
}

// Result is the output of Scan. Records is keyed by start line and only
// contains lines on which a comment begins.
type Result struct {
	Records  map[int]*Record `json:"records" yaml:"records"`
	Counters Counters        `json:"counters" yaml:"counters"`
}
