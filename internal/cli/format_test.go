package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/evcraddock/comment-analyzer/internal/scanner"
	"github.com/evcraddock/comment-analyzer/internal/wordfreq"
)

func TestLineRange(t *testing.T) {
	tests := []struct {
		start, end int
		want       string
	}{
		{0, 0, "1"},
		{4, 4, "5"},
		{2, 6, "3-7"},
	}

	for _, tt := range tests {
		if got := lineRange(tt.start, tt.end); got != tt.want {
			t.Errorf("lineRange(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short", "abc", 10, "abc"},
		{"exact", "abcdefghij", 10, "abcdefghij"},
		{"long", "abcdefghijklmnop", 10, "abcdefg..."},
		{"runes", "ééééééééééé", 5, "éé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("/* a\n b */"); got != "/* a ..." {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("// a"); got != "// a" {
		t.Errorf("firstLine = %q", got)
	}
}

func TestPrintRecordTable(t *testing.T) {
	var buf bytes.Buffer
	records := []*scanner.Record{
		{StartLine: 0, EndLine: 1, Kind: scanner.MultiLine, Texts: []string{"/* one\n two */"}},
		{StartLine: 3, EndLine: 3, Kind: scanner.SingleLine, Texts: []string{"// three"}},
	}
	if err := printRecordTable(&buf, records); err != nil {
		t.Fatalf("print: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"LINE", "1-2", "multi_line", "/* one ...", "4", "// three"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintRecordTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := printRecordTable(&buf, nil); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "No comments found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintWordTable(t *testing.T) {
	var buf bytes.Buffer
	if err := printWordTable(&buf, []wordfreq.WordCount{{Word: "fix", Count: 2}}); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "fix") || !strings.Contains(buf.String(), "2") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRenderFormats(t *testing.T) {
	v := map[string]int{"total_comments": 3}
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"total_comments": 3`},
		{"yaml", "total_comments: 3"},
		{"text", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			old := flagFormat
			flagFormat = tt.format
			defer func() { flagFormat = old }()

			var buf bytes.Buffer
			err := render(&buf, v, func(w io.Writer) error {
				_, err := io.WriteString(w, "plain")
				return err
			})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
