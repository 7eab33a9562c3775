// Package assessment runs the assessment lifecycle: question selection on
// start, answer recording, and scoring on finish.
package assessment

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/store"
)

// DefaultMaxQuestions is the number of questions selected per assessment.
const DefaultMaxQuestions = 5

var (
	// ErrInvalidDifficulty is returned for labels other than beginner,
	// intermediate and advanced.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	// ErrCompleted is returned when answering a finished assessment.
	ErrCompleted = errors.New("assessment already completed")
)

// Recorder archives results of completed assessments.
type Recorder interface {
	RecordResult(r model.AssessmentResult) error
}

// Manager owns the assessment state machine.
type Manager struct {
	bank     *store.QuestionBank
	store    *store.AssessmentStore
	recorder Recorder
	config   model.AssessmentConfig
	now      func() time.Time
}

// NewManager returns a Manager. recorder may be nil.
func NewManager(bank *store.QuestionBank, s *store.AssessmentStore, recorder Recorder, cfg model.AssessmentConfig) *Manager {
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = DefaultMaxQuestions
	}
	return &Manager{
		bank:     bank,
		store:    s,
		recorder: recorder,
		config:   cfg,
		now:      time.Now,
	}
}

// Start creates an assessment for userID with up to MaxQuestions questions
// whose tier does not exceed the one mapped from difficulty.
func (m *Manager) Start(userID string, difficulty model.Difficulty) (model.Assessment, error) {
	maxTier, ok := difficulty.MaxTier()
	if !ok {
		return model.Assessment{}, fmt.Errorf("%w: %q", ErrInvalidDifficulty, difficulty)
	}

	questions := m.bank.ListQuestionsUpToTier(maxTier)
	if m.config.Shuffle {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}
	if len(questions) > m.config.MaxQuestions {
		questions = questions[:m.config.MaxQuestions]
	}

	a := m.store.Create(model.Assessment{
		ID:         uuid.NewString(),
		UserID:     userID,
		Questions:  questions,
		Responses:  []model.Response{},
		Score:      0,
		StartedAt:  m.now(),
		Difficulty: difficulty,
	})
	slog.Info("assessment started", "id", a.ID, "user_id", userID,
		"difficulty", difficulty, "questions", len(a.Questions))
	return a, nil
}

// Answer records a response to one question. A second answer to the same
// question replaces the first, so responses never outnumber questions.
func (m *Manager) Answer(assessmentID, userID, questionID string, selected, timeSpent int) (model.Assessment, error) {
	return m.store.Update(assessmentID, func(a *model.Assessment) error {
		if a.UserID != userID {
			return store.ErrNotFound
		}
		q, ok := a.Question(questionID)
		if !ok {
			return fmt.Errorf("question %s: %w", questionID, store.ErrNotFound)
		}
		if a.Completed() {
			return ErrCompleted
		}

		resp := model.Response{
			QuestionID:     questionID,
			SelectedAnswer: selected,
			TimeSpent:      timeSpent,
			IsCorrect:      selected == q.CorrectAnswer,
		}
		for i := range a.Responses {
			if a.Responses[i].QuestionID == questionID {
				a.Responses[i] = resp
				return nil
			}
		}
		a.Responses = append(a.Responses, resp)
		return nil
	})
}

// Finish scores the assessment as correct responses over total questions and
// marks it completed. Finishing a completed assessment returns it unchanged.
func (m *Manager) Finish(assessmentID, userID string) (model.Assessment, error) {
	firstCompletion := false
	a, err := m.store.Update(assessmentID, func(a *model.Assessment) error {
		if a.UserID != userID {
			return store.ErrNotFound
		}
		if a.Completed() {
			return nil
		}
		a.Score = Score(a.CorrectCount(), len(a.Questions))
		now := m.now()
		a.CompletedAt = &now
		firstCompletion = true
		return nil
	})
	if err != nil {
		return model.Assessment{}, err
	}

	if firstCompletion {
		slog.Info("assessment finished", "id", a.ID, "user_id", a.UserID,
			"score", a.Score, "answered", len(a.Responses), "questions", len(a.Questions))
		if m.recorder != nil {
			if err := m.recorder.RecordResult(a.Result()); err != nil {
				slog.Warn("failed to archive assessment result", "id", a.ID, "error", err)
			}
		}
	}
	return a, nil
}

// Latest returns the user's most recently completed assessment, or the most
// recently started one when none is completed.
func (m *Manager) Latest(userID string) (model.Assessment, error) {
	all := m.store.ListByUser(userID)
	if len(all) == 0 {
		return model.Assessment{}, store.ErrNotFound
	}
	if done, ok := LastCompleted(all); ok {
		return done, nil
	}
	return all[len(all)-1], nil
}

// ListForUser returns all of a user's assessments, oldest first.
func (m *Manager) ListForUser(userID string) []model.Assessment {
	return m.store.ListByUser(userID)
}

// LastCompleted picks the assessment with the latest completion time.
func LastCompleted(assessments []model.Assessment) (model.Assessment, bool) {
	var (
		last  model.Assessment
		found bool
	)
	for _, a := range assessments {
		if !a.Completed() {
			continue
		}
		if !found || a.CompletedAt.After(*last.CompletedAt) {
			last = a
			found = true
		}
	}
	return last, found
}

// Score returns correct/total, or 0 for an assessment without questions.
func Score(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}
