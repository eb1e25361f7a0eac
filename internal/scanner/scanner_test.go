package scanner

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/evcraddock/comment-analyzer/internal/lang"
)

func TestScanBraceSingleLine(t *testing.T) {
	res := Scan([]string{"int x; // comment"}, lang.C, Options{})

	rec, ok := res.Records[0]
	if !ok {
		t.Fatal("expected record on line 0")
	}
	if rec.Kind != SingleLine {
		t.Errorf("kind = %q, want %q", rec.Kind, SingleLine)
	}
	if rec.StartLine != 0 || rec.EndLine != 0 {
		t.Errorf("span = %d-%d, want 0-0", rec.StartLine, rec.EndLine)
	}
	if len(rec.Texts) != 1 || rec.Texts[0] != "// comment" {
		t.Errorf("texts = %q, want [\"// comment\"]", rec.Texts)
	}
	if res.Counters.TotalComments != 1 || res.Counters.TotalSingleLine != 1 {
		t.Errorf("counters = %+v", res.Counters)
	}
	if res.Counters.CommentMarkedLines != 1 || res.Counters.TotalNormalLines != 0 {
		t.Errorf("marked = %d, normal = %d, want 1, 0",
			res.Counters.CommentMarkedLines, res.Counters.TotalNormalLines)
	}
}

func TestScanBraceMultiLine(t *testing.T) {
	res := Scan([]string{"/* start", "middle", "end */"}, lang.CPP, Options{})

	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	rec := res.Records[0]
	if rec == nil {
		t.Fatal("expected record keyed by line 0")
	}
	if rec.Kind != MultiLine {
		t.Errorf("kind = %q, want %q", rec.Kind, MultiLine)
	}
	if rec.StartLine != 0 || rec.EndLine != 2 {
		t.Errorf("span = %d-%d, want 0-2", rec.StartLine, rec.EndLine)
	}
	want := "/* start\nmiddle\nend */"
	if rec.Texts[0] != want {
		t.Errorf("text = %q, want %q", rec.Texts[0], want)
	}

	c := res.Counters
	if c.TotalCommentLines != 3 {
		t.Errorf("comment lines = %d, want 3", c.TotalCommentLines)
	}
	if c.TotalMultiLine != 1 || c.TotalComments != 1 {
		t.Errorf("counters = %+v", c)
	}
	// Only the closing line is marked; the swallowed lines are neither.
	if c.CommentMarkedLines != 1 || c.TotalNormalLines != 0 {
		t.Errorf("marked = %d, normal = %d, want 1, 0", c.CommentMarkedLines, c.TotalNormalLines)
	}
}

func TestScanPythonDocstring(t *testing.T) {
	res := Scan([]string{"'''", "doc", "'''"}, lang.Python, Options{})

	rec := res.Records[0]
	if rec == nil {
		t.Fatal("expected record keyed by line 0")
	}
	if rec.Kind != MultiLine || rec.StartLine != 0 || rec.EndLine != 2 {
		t.Errorf("record = %+v, want multi-line 0-2", rec)
	}
	if rec.Texts[0] != "'''\ndoc\n'''" {
		t.Errorf("text = %q", rec.Texts[0])
	}
}

func TestScanPython(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  map[int]*Record
	}{
		{
			name:  "hash comment after code",
			lines: []string{"x = 1  # set x"},
			want:  map[int]*Record{0: {0, 0, SingleLine, []string{"# set x"}}},
		},
		{
			name:  "same line docstring",
			lines: []string{`"""one liner"""`},
			want:  map[int]*Record{0: {0, 0, MultiLine, []string{`"""one liner"""`}}},
		},
		{
			name:  "text after opening quotes",
			lines: []string{`"""Summary.`, "", `More."""`, "x = 1"},
			want:  map[int]*Record{0: {0, 2, MultiLine, []string{"\"\"\"Summary.\n\nMore.\"\"\""}}},
		},
		{
			name:  "close consumes rest of line",
			lines: []string{"'''", "doc''' trailing # not a comment"},
			want:  map[int]*Record{0: {0, 1, MultiLine, []string{"'''\ndoc''' trailing # not a comment"}}},
		},
		{
			name:  "opening quotes do not close their own line",
			lines: []string{"'''abc", "more", "'''"},
			want:  map[int]*Record{0: {0, 2, MultiLine, []string{"'''abc\nmore\n'''"}}},
		},
		{
			name:  "indented quotes are code",
			lines: []string{"    '''not detected'''"},
			want:  map[int]*Record{},
		},
		{
			name:  "hash inside docstring",
			lines: []string{"'''", "# still docstring", "'''"},
			want:  map[int]*Record{0: {0, 2, MultiLine, []string{"'''\n# still docstring\n'''"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Scan(tt.lines, lang.Python, Options{})
			if !reflect.DeepEqual(res.Records, tt.want) {
				t.Errorf("records = %s, want %s", dump(res.Records), dump(tt.want))
			}
		})
	}
}

func TestScanBrace(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  map[int]*Record
	}{
		{
			name:  "two block comments on one line",
			lines: []string{"/*a*/ code /*b*/"},
			want:  map[int]*Record{0: {0, 0, MultiLine, []string{"/*a*/", "/*b*/"}}},
		},
		{
			name:  "block then line comment",
			lines: []string{"/* a */ x++; // b"},
			want:  map[int]*Record{0: {0, 0, MultiLine, []string{"/* a */", "// b"}}},
		},
		{
			name:  "line comment hides block opener",
			lines: []string{"// see /* here", "int y;"},
			want:  map[int]*Record{0: {0, 0, SingleLine, []string{"// see /* here"}}},
		},
		{
			name:  "slash star slash does not close",
			lines: []string{"/*/ x", "*/"},
			want:  map[int]*Record{0: {0, 1, MultiLine, []string{"/*/ x\n*/"}}},
		},
		{
			name:  "close then line comment on the closing line",
			lines: []string{"/* a", "b */ // c"},
			want: map[int]*Record{
				0: {0, 1, MultiLine, []string{"/* a\nb */"}},
				1: {1, 1, SingleLine, []string{"// c"}},
			},
		},
		{
			name:  "blank line inside block keeps its newline",
			lines: []string{"/* a", "", "b */"},
			want:  map[int]*Record{0: {0, 2, MultiLine, []string{"/* a\n\nb */"}}},
		},
		{
			name:  "no comments",
			lines: []string{"int main() {", "  return 0;", "}"},
			want:  map[int]*Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Scan(tt.lines, lang.JavaScript, Options{})
			if !reflect.DeepEqual(res.Records, tt.want) {
				t.Errorf("records = %s, want %s", dump(res.Records), dump(tt.want))
			}
		})
	}
}

func TestScanLineCounters(t *testing.T) {
	lines := []string{
		"#include <stdio.h>",
		"",
		"/* header",
		"   still header",
		"*/",
		"int main() { // entry",
		"   ",
		"  return 0;",
		"}",
	}
	res := Scan(lines, lang.C, Options{})
	c := res.Counters

	if c.TotalLines != len(lines) {
		t.Errorf("total lines = %d, want %d", c.TotalLines, len(lines))
	}
	if c.BlankLines != 2 || c.TotalNonBlankLines != 7 {
		t.Errorf("blank = %d, non-blank = %d, want 2, 7", c.BlankLines, c.TotalNonBlankLines)
	}
	if c.TotalNonBlankLines+c.BlankLines != c.TotalLines {
		t.Error("non-blank + blank != total")
	}
	// Lines 0, 7 and 8 are code; lines 2 and 3 are swallowed by the open block.
	if c.TotalNormalLines != 3 {
		t.Errorf("normal lines = %d, want 3", c.TotalNormalLines)
	}
	if c.CommentMarkedLines != 2 {
		t.Errorf("marked lines = %d, want 2", c.CommentMarkedLines)
	}
	if c.TotalCommentLines != 4 {
		t.Errorf("comment lines = %d, want 4", c.TotalCommentLines)
	}
	if c.TotalComments != 2 || c.TotalSingleLine != 1 || c.TotalMultiLine != 1 {
		t.Errorf("comment counts = %+v", c)
	}
}

func TestScanCountOpenLines(t *testing.T) {
	lines := []string{"x = 1; /* open", "inside", "", "close */", "y = 2;"}

	def := Scan(lines, lang.Java, Options{}).Counters
	if def.CommentMarkedLines != 1 || def.TotalNormalLines != 1 {
		t.Errorf("default: marked = %d, normal = %d, want 1, 1", def.CommentMarkedLines, def.TotalNormalLines)
	}

	open := Scan(lines, lang.Java, Options{CountOpenLines: true}).Counters
	if open.CommentMarkedLines != 3 || open.TotalNormalLines != 1 {
		t.Errorf("count open: marked = %d, normal = %d, want 3, 1", open.CommentMarkedLines, open.TotalNormalLines)
	}
	if open.TotalNonBlankLines != 4 {
		t.Errorf("non-blank = %d, want 4", open.TotalNonBlankLines)
	}
}

func TestScanUnterminated(t *testing.T) {
	lines := []string{"int a; // ok", "/* never", "closed"}

	t.Run("dropped by default", func(t *testing.T) {
		res := Scan(lines, lang.C, Options{})
		if len(res.Records) != 1 {
			t.Fatalf("got %d records, want 1", len(res.Records))
		}
		if _, ok := res.Records[1]; ok {
			t.Error("unterminated comment should not be recorded")
		}
		if res.Counters.TotalComments != 1 {
			t.Errorf("total comments = %d, want 1", res.Counters.TotalComments)
		}
		if res.Counters.TotalNormalLines != 0 {
			t.Errorf("normal lines = %d, want 0", res.Counters.TotalNormalLines)
		}
	})

	t.Run("flushed at EOF", func(t *testing.T) {
		res := Scan(lines, lang.C, Options{FlushUnterminated: true})
		rec := res.Records[1]
		if rec == nil {
			t.Fatal("expected flushed record on line 1")
		}
		if rec.EndLine != 2 || rec.Kind != MultiLine {
			t.Errorf("record = %+v, want multi-line ending at 2", rec)
		}
		if rec.Texts[0] != "/* never\nclosed" {
			t.Errorf("text = %q", rec.Texts[0])
		}
		if res.Counters.TotalComments != 2 || res.Counters.TotalCommentLines != 3 {
			t.Errorf("counters = %+v", res.Counters)
		}
	})
}

func TestScanUnknownLanguage(t *testing.T) {
	lines := []string{"// looks like a comment", "", "# so does this"}
	res := Scan(lines, lang.Unknown, Options{})

	if len(res.Records) != 0 {
		t.Errorf("got %d records, want 0", len(res.Records))
	}
	if res.Counters.TotalComments != 0 {
		t.Errorf("total comments = %d, want 0", res.Counters.TotalComments)
	}
	if res.Counters.TotalLines != 3 || res.Counters.TotalNonBlankLines != 2 {
		t.Errorf("lines = %d, non-blank = %d, want 3, 2", res.Counters.TotalLines, res.Counters.TotalNonBlankLines)
	}
	if res.Counters.TotalNormalLines != 2 {
		t.Errorf("normal lines = %d, want 2", res.Counters.TotalNormalLines)
	}
}

func TestScanEmptyDocument(t *testing.T) {
	res := Scan(nil, lang.Python, Options{FlushUnterminated: true})
	if res.Records == nil {
		t.Fatal("expected non-nil records map")
	}
	if res.Counters != (Counters{}) {
		t.Errorf("counters = %+v, want zero", res.Counters)
	}
}

func TestScanIdempotent(t *testing.T) {
	lines := []string{"/* a */ b; // c", "/* d", "e */", "f;"}
	first := Scan(lines, lang.C, Options{})
	second := Scan(lines, lang.C, Options{})
	if !reflect.DeepEqual(first, second) {
		t.Error("scanning the same document twice gave different results")
	}
}

func TestScanConcurrent(t *testing.T) {
	lines := []string{"# a", "'''", "b", "'''"}
	want := Scan(lines, lang.Python, Options{})

	done := make(chan *Result)
	for i := 0; i < 8; i++ {
		go func() { done <- Scan(lines, lang.Python, Options{}) }()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; !reflect.DeepEqual(got, want) {
			t.Error("concurrent scan differs")
		}
	}
}

// countingGrammar counts close lookups of the grammar it wraps.
type countingGrammar struct {
	lang.Grammar
	closeCalls int
}

func (g *countingGrammar) MatchMultiLineEnd(line string, pos int) (int, bool) {
	g.closeCalls++
	return g.Grammar.MatchMultiLineEnd(line, pos)
}

func TestScanLongCommentLine(t *testing.T) {
	body := strings.Repeat("a", 1<<20)

	tests := []struct {
		name  string
		l     lang.Language
		lines []string
	}{
		{"python docstring", lang.Python, []string{"'''", body, "'''"}},
		{"brace block", lang.C, []string{"/*", body, "*/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := tt.l.Grammar()
			cg := &countingGrammar{Grammar: g}
			p := &pass{grammar: cg, res: &Result{Records: make(map[int]*Record)}}

			for i, line := range tt.lines {
				p.scanLine(i, line)
				if p.state == stateMultiLine {
					p.buf.WriteByte('\n')
				}
			}

			// One lookup per line: the body line is consumed in a single step.
			if cg.closeCalls > len(tt.lines) {
				t.Errorf("close lookups = %d, want at most %d", cg.closeCalls, len(tt.lines))
			}
			rec := p.res.Records[0]
			if rec == nil {
				t.Fatal("expected record on line 0")
			}
			if rec.EndLine != 2 || len(rec.Texts) != 1 || rec.Texts[0] != strings.Join(tt.lines, "\n") {
				t.Errorf("record spans %d-%d with %d texts", rec.StartLine, rec.EndLine, len(rec.Texts))
			}

			res := Scan(tt.lines, tt.l, Options{})
			if res.Counters.TotalComments != 1 || res.Counters.TotalCommentLines != 3 {
				t.Errorf("counters = %+v", res.Counters)
			}
		})
	}
}

func dump(records map[int]*Record) string {
	var b strings.Builder
	for k, r := range records {
		fmt.Fprintf(&b, "%d:%+v ", k, *r)
	}
	return "{" + b.String() + "}"
}
