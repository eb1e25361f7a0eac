package analysis

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/evcraddock/comment-analyzer/internal/lang"
	"github.com/evcraddock/comment-analyzer/internal/scanner"
	"github.com/evcraddock/comment-analyzer/internal/wordfreq"
)

// ErrNotFound is returned when an analysis does not exist.
var ErrNotFound = errors.New("analysis not found")

// Repository stores analyses with their comments and words.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an analysis repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, run_id, name, language, flush_unterminated, count_open_lines, counters_json, summary_json, created_at`

// Insert stores a report and returns the saved analysis.
func (r *Repository) Insert(rep *Report) (*Analysis, error) {
	counters, err := json.Marshal(rep.Counters)
	if err != nil {
		return nil, fmt.Errorf("encoding counters: %w", err)
	}
	summary, err := json.Marshal(rep.Summary)
	if err != nil {
		return nil, fmt.Errorf("encoding summary: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// Rollback after Commit is a no-op.
		_ = tx.Rollback()
	}()

	result, err := tx.Exec(
		`INSERT INTO analyses
			(run_id, name, language, total_comments, coverage, flush_unterminated, count_open_lines, counters_json, summary_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), rep.Name, rep.Language.String(),
		rep.Counters.TotalComments, rep.Summary.Coverage,
		rep.Options.FlushUnterminated, rep.Options.CountOpenLines,
		string(counters), string(summary),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting analysis: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	for _, rec := range rep.Records {
		for _, text := range rec.Texts {
			if _, err := tx.Exec(
				"INSERT INTO comments (analysis_id, start_line, end_line, kind, text) VALUES (?, ?, ?, ?, ?)",
				id, rec.StartLine, rec.EndLine, string(rec.Kind), text,
			); err != nil {
				return nil, fmt.Errorf("inserting comment on line %d: %w", rec.StartLine, err)
			}
		}
	}

	for _, w := range rep.Words {
		if _, err := tx.Exec(
			"INSERT INTO words (analysis_id, word, count) VALUES (?, ?, ?)",
			id, w.Word, w.Count,
		); err != nil {
			return nil, fmt.Errorf("inserting word %q: %w", w.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing analysis: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns an analysis with its records and words.
func (r *Repository) GetByID(id int64) (*Analysis, error) {
	d, err := r.GetDetail(id)
	if err != nil {
		return nil, err
	}
	return &d.Analysis, nil
}

// GetDetail returns an analysis with its records, words and stored comments.
// The comments are read once and also rebuild the records.
func (r *Repository) GetDetail(id int64) (*Detail, error) {
	query := fmt.Sprintf("SELECT %s FROM analyses WHERE id = ?", selectColumns)
	a, err := scanAnalysis(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying analysis %d: %w", id, err)
	}

	comments, err := r.ListComments(id)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*Comment{}
	}
	a.Records = groupRecords(comments)

	words, err := r.ListWords(id, 0)
	if err != nil {
		return nil, err
	}
	a.Words = words

	return &Detail{Analysis: *a, Comments: comments}, nil
}

// Exists reports whether an analysis is stored.
func (r *Repository) Exists(id int64) (bool, error) {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM analyses WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking analysis %d: %w", id, err)
	}
	return true, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	Language lang.Language // Unknown = all
}

// List returns analyses newest first, without their records and words.
func (r *Repository) List(opts ListOptions) (analyses []*Analysis, err error) {
	query := fmt.Sprintf("SELECT %s FROM analyses", selectColumns)
	var args []interface{}
	var conditions []string

	if opts.Language != lang.Unknown {
		conditions = append(conditions, "language = ?")
		args = append(args, opts.Language.String())
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyses: %w", err)
	}

	return analyses, nil
}

// ListComments returns the comments of an analysis in document order.
func (r *Repository) ListComments(analysisID int64) (comments []*Comment, err error) {
	rows, err := r.db.Query(
		"SELECT id, analysis_id, start_line, end_line, kind, text FROM comments WHERE analysis_id = ? ORDER BY start_line, id",
		analysisID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var c Comment
		var kind string
		if err := rows.Scan(&c.ID, &c.AnalysisID, &c.StartLine, &c.EndLine, &kind, &c.Text); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		c.Kind = scanner.Kind(kind)
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// ListWords returns the most frequent words of an analysis. limit <= 0
// returns every word.
func (r *Repository) ListWords(analysisID int64, limit int) (words []wordfreq.WordCount, err error) {
	query := "SELECT word, count FROM words WHERE analysis_id = ? ORDER BY count DESC, word ASC"
	args := []interface{}{analysisID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing words: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	words = []wordfreq.WordCount{}
	for rows.Next() {
		var w wordfreq.WordCount
		if err := rows.Scan(&w.Word, &w.Count); err != nil {
			return nil, fmt.Errorf("scanning word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating words: %w", err)
	}

	return words, nil
}

// Delete removes an analysis. Its comments and words cascade.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("analysis %d: %w", id, ErrNotFound)
	}

	return nil
}

// scanAnalysis scans an analysis from a database row.
func scanAnalysis(row interface{ Scan(...interface{}) error }) (*Analysis, error) {
	var a Analysis
	var language, counters, summary string
	if err := row.Scan(
		&a.ID, &a.RunID, &a.Name, &language,
		&a.Options.FlushUnterminated, &a.Options.CountOpenLines,
		&counters, &summary, &a.CreatedAt,
	); err != nil {
		return nil, err
	}

	a.Language = lang.Parse(language)
	if err := json.Unmarshal([]byte(counters), &a.Counters); err != nil {
		return nil, fmt.Errorf("decoding counters: %w", err)
	}
	if err := json.Unmarshal([]byte(summary), &a.Summary); err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	a.Records = []*scanner.Record{}
	a.Words = []wordfreq.WordCount{}
	return &a, nil
}

// groupRecords rebuilds records from comments ordered by start line.
func groupRecords(comments []*Comment) []*scanner.Record {
	records := []*scanner.Record{}
	byLine := make(map[int]*scanner.Record)
	for _, c := range comments {
		rec, ok := byLine[c.StartLine]
		if !ok {
			rec = &scanner.Record{StartLine: c.StartLine, EndLine: c.EndLine, Kind: c.Kind}
			byLine[c.StartLine] = rec
			records = append(records, rec)
		}
		if c.EndLine > rec.EndLine {
			rec.EndLine = c.EndLine
		}
		if c.Kind == scanner.MultiLine {
			rec.Kind = scanner.MultiLine
		}
		rec.Texts = append(rec.Texts, c.Text)
	}
	return records
}
