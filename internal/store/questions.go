package store

import (
	"fmt"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
)

// QuestionBank is the fixed, read-only set of assessment questions.
type QuestionBank struct {
	questions []model.Question
}

// NewQuestionBank validates questions and keeps them in the given order.
func NewQuestionBank(questions []model.Question) (*QuestionBank, error) {
	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question %d: missing id", i)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("question %s: duplicate id", q.ID)
		}
		seen[q.ID] = true
		if q.Difficulty < 1 || q.Difficulty > 3 {
			return nil, fmt.Errorf("question %s: difficulty %d out of range 1-3", q.ID, q.Difficulty)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %s: needs at least 2 options", q.ID)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("question %s: correct answer %d out of range", q.ID, q.CorrectAnswer)
		}
	}
	bank := &QuestionBank{questions: make([]model.Question, len(questions))}
	copy(bank.questions, questions)
	return bank, nil
}

// ListQuestionsUpToTier returns copies of the questions whose tier is at most
// maxTier, in bank order.
func (b *QuestionBank) ListQuestionsUpToTier(maxTier int) []model.Question {
	var out []model.Question
	for _, q := range b.questions {
		if q.Difficulty <= maxTier {
			q.Options = append([]string(nil), q.Options...)
			out = append(out, q)
		}
	}
	return out
}

// QuestionCount returns the number of questions in the bank.
func (b *QuestionBank) QuestionCount() int {
	return len(b.questions)
}
