package analysis

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/evcraddock/comment-analyzer/internal/lang"
	"github.com/evcraddock/comment-analyzer/internal/scanner"
)

// Build analyzes content without storing it. When l is Unknown the
// language is detected from name and content.
func Build(name string, content []byte, l lang.Language, opts scanner.Options, topWords int) *Report {
	if l == lang.Unknown {
		l = lang.Detect(filepath.Base(name), content)
	}
	doc := Document{Name: name, Language: l, Lines: SplitLines(string(content))}
	return Run(doc, opts, topWords)
}

// ReadFile analyzes the file at path without storing it.
func ReadFile(path string, l lang.Language, opts scanner.Options, topWords int) (*Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Build(path, content, l, opts, topWords), nil
}

// Service analyzes documents and stores the reports.
type Service struct {
	repo     *Repository
	opts     scanner.Options
	topWords int
}

// NewService creates an analysis service that scans with opts and keeps the
// topWords most frequent words of each report.
func NewService(repo *Repository, opts scanner.Options, topWords int) *Service {
	return &Service{repo: repo, opts: opts, topWords: topWords}
}

// Analyze runs the pipeline over content and stores the report.
func (s *Service) Analyze(name string, content []byte, l lang.Language) (*Analysis, error) {
	return s.save(Build(name, content, l, s.opts, s.topWords))
}

// AnalyzeFile reads, analyzes and stores the file at path.
func (s *Service) AnalyzeFile(path string, l lang.Language) (*Analysis, error) {
	rep, err := ReadFile(path, l, s.opts, s.topWords)
	if err != nil {
		return nil, err
	}
	return s.save(rep)
}

func (s *Service) save(rep *Report) (*Analysis, error) {
	if rep.Language == lang.Unknown {
		slog.Warn("unsupported language, no comments extracted", "name", rep.Name)
	}

	a, err := s.repo.Insert(rep)
	if err != nil {
		return nil, fmt.Errorf("saving analysis: %w", err)
	}

	slog.Info("analysis stored",
		"id", a.ID,
		"run_id", a.RunID,
		"name", a.Name,
		"language", a.Language.String(),
		"comments", a.Counters.TotalComments,
		"coverage", a.Summary.Coverage,
	)
	return a, nil
}
