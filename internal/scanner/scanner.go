package scanner

import (
	"strings"

	"github.com/evcraddock/comment-analyzer/internal/lang"
)

// Options selects between the line-counting policies of Scan.
type Options struct {
	// FlushUnterminated emits a multi-line comment that is still open at the
	// end of the document. By default such a comment is dropped.
	FlushUnterminated bool `json:"flush_unterminated" yaml:"flush_unterminated"`
	// CountOpenLines marks every non-blank line that ends inside an open
	// multi-line comment as a comment line. By default those lines count as
	// neither comment nor normal lines.
	CountOpenLines bool `json:"count_open_lines" yaml:"count_open_lines"`
}

type state int

const (
	stateCode state = iota
	stateSingleLine
	stateMultiLine
)

type event int

const (
	eventNone event = iota
	eventSingleLine
	eventOpen
	eventText
	eventClose
)

// step is the outcome of one transition: the next state, the offset just
// past the consumed text and what happened to it.
type step struct {
	next  state
	end   int
	event event
}

// transition advances the machine from pos. In code it moves one byte at a
// time; delimiters are all ASCII, so that never splits one. Inside a
// multi-line comment it jumps to the next candidate close in one step.
func transition(g lang.Grammar, st state, line string, pos int) step {
	switch st {
	case stateCode:
		if g.MatchSingleLineStart(line, pos) {
			return step{next: stateSingleLine, end: len(line), event: eventSingleLine}
		}
		if w := g.MatchMultiLineStart(line, pos); w > 0 {
			return step{next: stateMultiLine, end: pos + w, event: eventOpen}
		}
		return step{next: stateCode, end: pos + 1, event: eventNone}
	case stateMultiLine:
		end, ok := g.MatchMultiLineEnd(line, pos)
		if ok {
			return step{next: stateCode, end: end, event: eventClose}
		}
		if end <= pos {
			end = pos + 1
		}
		return step{next: stateMultiLine, end: end, event: eventText}
	}
	// A single-line comment owns the rest of the line.
	return step{next: st, end: len(line), event: eventNone}
}

// pass holds the state of one Scan call.
type pass struct {
	grammar lang.Grammar
	state   state
	start   int
	buf     strings.Builder
	res     *Result
}

// Scan extracts comments from lines using the grammar of l. Unknown
// languages produce no records but still have their lines counted.
// Scan is a pure function of its inputs and safe for concurrent use.
func Scan(lines []string, l lang.Language, opts Options) *Result {
	res := &Result{Records: make(map[int]*Record)}
	g, supported := l.Grammar()
	p := &pass{grammar: g, res: res}
	c := &res.Counters

	for i, line := range lines {
		c.TotalLines++
		if strings.TrimSpace(line) == "" {
			c.BlankLines++
			if p.state == stateMultiLine {
				p.buf.WriteString(line)
				p.buf.WriteByte('\n')
			}
			continue
		}
		c.TotalNonBlankLines++

		marked := false
		if supported {
			marked = p.scanLine(i, line)
		}
		if p.state == stateMultiLine {
			p.buf.WriteByte('\n')
			if opts.CountOpenLines {
				marked = true
			}
		}

		switch {
		case marked:
			c.CommentMarkedLines++
		case p.state != stateMultiLine:
			c.TotalNormalLines++
		}
	}

	if p.state == stateMultiLine && opts.FlushUnterminated {
		p.emit(p.start, len(lines)-1, MultiLine, strings.TrimSuffix(p.buf.String(), "\n"))
	}

	for _, r := range res.Records {
		c.TotalCommentLines += r.Span()
	}
	return res
}

// scanLine runs the machine over one non-blank line and reports whether a
// comment ended on it.
func (p *pass) scanLine(i int, line string) bool {
	marked := false
	for pos := 0; pos < len(line); {
		st := transition(p.grammar, p.state, line, pos)
		switch st.event {
		case eventSingleLine:
			p.emit(i, i, SingleLine, line[pos:st.end])
			marked = true
		case eventOpen:
			p.start = i
			p.buf.Reset()
			p.buf.WriteString(line[pos:st.end])
		case eventText:
			p.buf.WriteString(line[pos:st.end])
		case eventClose:
			p.buf.WriteString(line[pos:st.end])
			p.emit(p.start, i, MultiLine, p.buf.String())
			p.buf.Reset()
			marked = true
		}
		p.state = st.next
		pos = st.end
	}
	if p.state == stateSingleLine {
		p.state = stateCode
	}
	return marked
}

// emit appends text to the record of line start, creating it if needed.
func (p *pass) emit(start, end int, kind Kind, text string) {
	c := &p.res.Counters
	c.TotalComments++
	if kind == SingleLine {
		c.TotalSingleLine++
	} else {
		c.TotalMultiLine++
	}

	rec, ok := p.res.Records[start]
	if !ok {
		rec = &Record{StartLine: start, EndLine: end, Kind: kind}
		p.res.Records[start] = rec
	}
	if end > rec.EndLine {
		rec.EndLine = end
	}
	if kind == MultiLine {
		rec.Kind = MultiLine
	}
	rec.Texts = append(rec.Texts, text)
}
