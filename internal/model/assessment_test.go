package model

import (
	"testing"
	"time"
)

func TestDifficultyMaxTier(t *testing.T) {
	tests := []struct {
		label  Difficulty
		want   int
		wantOK bool
	}{
		{DifficultyBeginner, 1, true},
		{DifficultyIntermediate, 2, true},
		{DifficultyAdvanced, 3, true},
		{"expert", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			got, ok := tt.label.MaxTier()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("MaxTier() = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestViewHidesAnswersUntilCompleted(t *testing.T) {
	a := Assessment{
		ID:     "a1",
		UserID: "1",
		Questions: []Question{
			{ID: "q1", Text: "What is Go?", Options: []string{"Language", "Game"}, CorrectAnswer: 0, Skill: "Go", Difficulty: 1},
		},
	}

	v := a.View()
	if len(v.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(v.Questions))
	}
	if v.Questions[0].CorrectAnswer != nil {
		t.Error("correct answer exposed before completion")
	}

	now := time.Now()
	a.CompletedAt = &now
	v = a.View()
	if v.Questions[0].CorrectAnswer == nil || *v.Questions[0].CorrectAnswer != 0 {
		t.Errorf("expected correct answer 0 after completion, got %v", v.Questions[0].CorrectAnswer)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	a := Assessment{
		Questions: []Question{{ID: "q1", Options: []string{"a", "b"}}},
		Responses: []Response{{QuestionID: "q1"}},
	}
	c := a.Clone()
	c.Questions[0].Options[0] = "changed"
	c.Responses[0].IsCorrect = true

	if a.Questions[0].Options[0] != "a" {
		t.Error("clone shares question options")
	}
	if a.Responses[0].IsCorrect {
		t.Error("clone shares responses")
	}
}

func TestResultCounts(t *testing.T) {
	done := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := Assessment{
		ID:         "a1",
		UserID:     "1",
		Difficulty: DifficultyBeginner,
		Questions:  make([]Question, 5),
		Responses: []Response{
			{QuestionID: "q1", IsCorrect: true},
			{QuestionID: "q2", IsCorrect: false},
			{QuestionID: "q3", IsCorrect: true},
		},
		Score:       0.4,
		CompletedAt: &done,
	}
	r := a.Result()
	if r.NumQuestions != 5 || r.NumAnswered != 3 || r.NumCorrect != 2 {
		t.Errorf("unexpected counts: %+v", r)
	}
	if !r.CompletedAt.Equal(done) {
		t.Errorf("expected completed_at %v, got %v", done, r.CompletedAt)
	}
}
