package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/evcraddock/comment-analyzer/internal/analysis"
	"github.com/evcraddock/comment-analyzer/internal/client"
	"github.com/evcraddock/comment-analyzer/internal/lang"
	"github.com/evcraddock/comment-analyzer/internal/wordfreq"
)

// store is where analyses are kept: the local database or an API server.
type store interface {
	SubmitFile(path string, l lang.Language) (*analysis.Analysis, error)
	List(opts analysis.ListOptions) ([]*analysis.Analysis, error)
	Get(id int64) (*analysis.Detail, error)
	Words(id int64, limit int) ([]wordfreq.WordCount, error)
	Delete(id int64) error
	Close()
}

// openStore returns the API client when a server URL is configured and the
// local database otherwise.
func openStore() (store, error) {
	if cfg.Server.URL != "" {
		return remoteStore{client.New(cfg.Server.URL)}, nil
	}

	database, err := openDB()
	if err != nil {
		return nil, err
	}
	repo := analysis.NewRepository(database)
	return &localStore{
		db:   database,
		repo: repo,
		svc:  analysis.NewService(repo, cfg.ScanOptions(), cfg.Report.TopWords),
	}, nil
}

type localStore struct {
	db   *sql.DB
	repo *analysis.Repository
	svc  *analysis.Service
}

func (s *localStore) SubmitFile(path string, l lang.Language) (*analysis.Analysis, error) {
	return s.svc.AnalyzeFile(path, l)
}

func (s *localStore) List(opts analysis.ListOptions) ([]*analysis.Analysis, error) {
	return s.repo.List(opts)
}

func (s *localStore) Get(id int64) (*analysis.Detail, error) {
	return s.repo.GetDetail(id)
}

func (s *localStore) Words(id int64, limit int) ([]wordfreq.WordCount, error) {
	exists, err := s.repo.Exists(id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("analysis %d: %w", id, analysis.ErrNotFound)
	}
	return s.repo.ListWords(id, limit)
}

func (s *localStore) Delete(id int64) error {
	return s.repo.Delete(id)
}

func (s *localStore) Close() {
	closeDB(s.db)
}

type remoteStore struct {
	*client.Client
}

// SubmitFile sends the file content to the server, which scans it with its
// own policies.
func (s remoteStore) SubmitFile(path string, l lang.Language) (*analysis.Analysis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.Submit(path, content, l)
}

func (remoteStore) Close() {}

// parseLang resolves a --lang value. Empty means detect.
func parseLang(id string) (lang.Language, error) {
	if id == "" {
		return lang.Unknown, nil
	}
	l := lang.Parse(id)
	if l == lang.Unknown {
		return lang.Unknown, fmt.Errorf("unsupported language: %s", id)
	}
	return l, nil
}
