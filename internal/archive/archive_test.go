package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestArchive: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func testResult(id, userID string, score float64, completed time.Time) model.AssessmentResult {
	return model.AssessmentResult{
		AssessmentID: id,
		UserID:       userID,
		Difficulty:   model.DifficultyBeginner,
		NumQuestions: 5,
		NumAnswered:  4,
		NumCorrect:   int(score * 5),
		Score:        score,
		StartedAt:    completed.Add(-10 * time.Minute),
		CompletedAt:  completed,
	}
}

func TestRecordAndList(t *testing.T) {
	a := newTestArchive(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	count, err := a.ResultCount()
	if err != nil {
		t.Fatalf("ResultCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 results, got %d", count)
	}

	if err := a.RecordResult(testResult("a2", "1", 0.6, base.Add(time.Hour))); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if err := a.RecordResult(testResult("a1", "1", 0.4, base)); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if err := a.RecordResult(testResult("a3", "2", 1, base.Add(2*time.Hour))); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}

	all, err := a.ListResults("")
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 results, got %d", len(all))
	}
	if all[0].AssessmentID != "a1" || all[2].AssessmentID != "a3" {
		t.Errorf("results not ordered by completion: %s, %s, %s",
			all[0].AssessmentID, all[1].AssessmentID, all[2].AssessmentID)
	}
	if all[0].Difficulty != model.DifficultyBeginner {
		t.Errorf("expected difficulty beginner, got %q", all[0].Difficulty)
	}
	if !all[0].CompletedAt.Equal(base) {
		t.Errorf("expected completed_at %v, got %v", base, all[0].CompletedAt)
	}

	mine, err := a.ListResults("1")
	if err != nil {
		t.Fatalf("ListResults(1): %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 results for user 1, got %d", len(mine))
	}
}

func TestRecordResultUpserts(t *testing.T) {
	a := newTestArchive(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if err := a.RecordResult(testResult("a1", "1", 0.2, now)); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if err := a.RecordResult(testResult("a1", "1", 0.8, now)); err != nil {
		t.Fatalf("RecordResult again: %v", err)
	}

	count, err := a.ResultCount()
	if err != nil {
		t.Fatalf("ResultCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 result after upsert, got %d", count)
	}
	results, _ := a.ListResults("")
	if results[0].Score != 0.8 {
		t.Errorf("expected score 0.8, got %v", results[0].Score)
	}
}

func TestExport(t *testing.T) {
	a := newTestArchive(t)

	empty, err := a.Export("")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if empty.Count != 0 || empty.Results == nil {
		t.Errorf("expected empty non-nil results, got %+v", empty)
	}

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	_ = a.RecordResult(testResult("a1", "1", 0.4, now))
	_ = a.RecordResult(testResult("a2", "1", 0.8, now.Add(time.Minute)))

	exp, err := a.Export("1")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if exp.Count != 2 {
		t.Errorf("expected count 2, got %d", exp.Count)
	}
	if diff := exp.AverageScore - 0.6; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected average 0.6, got %v", exp.AverageScore)
	}
	if exp.UserID != "1" {
		t.Errorf("expected user_id 1, got %q", exp.UserID)
	}
}

func TestNewAppliesPragmas(t *testing.T) {
	a, err := New(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	var mode string
	if err := a.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	var timeout int
	if err := a.db.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", timeout)
	}
}
