package lang

import "strings"

// Grammar recognizes the comment delimiters of one language family.
// Positions are byte offsets into line.
type Grammar interface {
	// MatchSingleLineStart reports whether a single-line comment starts at pos.
	MatchSingleLineStart(line string, pos int) bool
	// MatchMultiLineStart returns the width of the opening delimiter at pos,
	// or 0 when no multi-line comment starts there.
	MatchMultiLineStart(line string, pos int) int
	// MatchMultiLineEnd reports whether an open multi-line comment closes at
	// pos. On a close, end is the offset just past the text consumed by it.
	// Otherwise end is the offset of the next possible close, or len(line)
	// if none remains, and the text up to end belongs to the comment.
	MatchMultiLineEnd(line string, pos int) (end int, ok bool)
}

// Grammar returns the comment grammar for l. It returns false for Unknown.
func (l Language) Grammar() (Grammar, bool) {
	switch l {
	case C, CPP, Java, JavaScript:
		return braceGrammar{}, true
	case Python:
		return pythonGrammar{}, true
	}
	return nil, false
}

// braceGrammar handles // and /* */ comments.
type braceGrammar struct{}

func (braceGrammar) MatchSingleLineStart(line string, pos int) bool {
	return strings.HasPrefix(line[pos:], "//")
}

func (braceGrammar) MatchMultiLineStart(line string, pos int) int {
	if strings.HasPrefix(line[pos:], "/*") {
		return 2
	}
	return 0
}

func (braceGrammar) MatchMultiLineEnd(line string, pos int) (int, bool) {
	switch i := strings.Index(line[pos:], "*/"); {
	case i == 0:
		return pos + 2, true
	case i > 0:
		return pos + i, false
	}
	return len(line), false
}

// pythonGrammar handles # comments and triple-quoted docstrings.
// A docstring opens only on a line that starts with the quotes, and closes
// on the first line whose remaining text contains triple quotes; the close
// consumes the rest of that line. The opening quotes themselves do not count
// as a close, so a line like '''abc leaves the docstring open even though the
// whole line contains triple quotes.
type pythonGrammar struct{}

var tripleQuotes = []string{`'''`, `"""`}

func (pythonGrammar) MatchSingleLineStart(line string, pos int) bool {
	return line[pos] == '#'
}

func (pythonGrammar) MatchMultiLineStart(line string, pos int) int {
	if pos != 0 {
		return 0
	}
	for _, q := range tripleQuotes {
		if strings.HasPrefix(line, q) {
			return len(q)
		}
	}
	return 0
}

func (pythonGrammar) MatchMultiLineEnd(line string, pos int) (int, bool) {
	rest := line[pos:]
	for _, q := range tripleQuotes {
		if strings.Contains(rest, q) {
			return len(line), true
		}
	}
	return len(line), false
}
