// Package archive keeps a durable log of completed assessment results in SQLite.
// The live assessment state stays in memory; the archive only backs exports.
package archive

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"

	_ "modernc.org/sqlite"
)

// Archive is the SQLite store of completed assessment results.
type Archive struct {
	db *sql.DB
}

// New opens (creating if needed) the archive at dbPath.
func New(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return a, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessment_results (
		assessment_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		num_questions INTEGER NOT NULL,
		num_answered INTEGER NOT NULL,
		num_correct INTEGER NOT NULL,
		score REAL NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		completed_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS assessment_results_user_idx ON assessment_results(user_id);
	`
	_, err := a.db.Exec(schema)
	return err
}

// RecordResult inserts or replaces the archived result for an assessment.
func (a *Archive) RecordResult(r model.AssessmentResult) error {
	_, err := a.db.Exec(
		`INSERT INTO assessment_results
		 (assessment_id, user_id, difficulty, num_questions, num_answered, num_correct, score, started_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(assessment_id) DO UPDATE SET
		 num_answered = excluded.num_answered, num_correct = excluded.num_correct,
		 score = excluded.score, completed_at = excluded.completed_at`,
		r.AssessmentID, r.UserID, r.Difficulty, r.NumQuestions, r.NumAnswered, r.NumCorrect,
		r.Score, r.StartedAt.UTC(), r.CompletedAt.UTC(),
	)
	if err != nil {
		slog.Error("failed to archive result", "assessment_id", r.AssessmentID, "error", err)
		return err
	}
	return nil
}

// ListResults returns archived results ordered by completion time.
// An empty userID returns results for every user.
func (a *Archive) ListResults(userID string) ([]model.AssessmentResult, error) {
	query := `SELECT assessment_id, user_id, difficulty, num_questions, num_answered, num_correct, score, started_at, completed_at
		FROM assessment_results WHERE 1=1`
	var args []any
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY completed_at, assessment_id`

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []model.AssessmentResult
	for rows.Next() {
		var r model.AssessmentResult
		if err := rows.Scan(&r.AssessmentID, &r.UserID, &r.Difficulty, &r.NumQuestions, &r.NumAnswered,
			&r.NumCorrect, &r.Score, &r.StartedAt, &r.CompletedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ResultCount returns the number of archived results.
func (a *Archive) ResultCount() (int, error) {
	var count int
	err := a.db.QueryRow(`SELECT COUNT(*) FROM assessment_results`).Scan(&count)
	return count, err
}

// Export builds the export document for the archived results.
func (a *Archive) Export(userID string) (model.ResultsExport, error) {
	results, err := a.ListResults(userID)
	if err != nil {
		return model.ResultsExport{}, fmt.Errorf("list results: %w", err)
	}

	export := model.ResultsExport{
		GeneratedAt: time.Now().UTC(),
		UserID:      userID,
		Count:       len(results),
		Results:     results,
	}
	if export.Results == nil {
		export.Results = []model.AssessmentResult{}
	}
	var total float64
	for _, r := range results {
		total += r.Score
	}
	if len(results) > 0 {
		export.AverageScore = total / float64(len(results))
	}
	return export, nil
}
