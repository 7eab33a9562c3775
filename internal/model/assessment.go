package model

import "time"

// Difficulty is the label a learner requests when starting an assessment.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// MaxTier returns the highest question tier admitted for the label, and false
// for unknown labels.
func (d Difficulty) MaxTier() (int, bool) {
	switch d {
	case DifficultyBeginner:
		return 1, true
	case DifficultyIntermediate:
		return 2, true
	case DifficultyAdvanced:
		return 3, true
	}
	return 0, false
}

// Question is an immutable multiple-choice question from the bank.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Skill         string   `json:"skill"`
	Difficulty    int      `json:"difficulty"` // tier 1-3
}

// Response records one answer given during an assessment.
type Response struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer int    `json:"selectedAnswer"`
	TimeSpent      int    `json:"timeSpent"` // seconds
	IsCorrect      bool   `json:"isCorrect"`
}

// Assessment is one learner attempt at a fixed set of questions.
type Assessment struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Questions   []Question `json:"questions"`
	Responses   []Response `json:"responses"`
	Score       float64    `json:"score"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
}

// Completed reports whether the assessment has been finished.
func (a Assessment) Completed() bool {
	return a.CompletedAt != nil
}

// Question returns the assessment's question with the given ID.
func (a Assessment) Question(id string) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// CorrectCount returns the number of correct responses.
func (a Assessment) CorrectCount() int {
	n := 0
	for _, r := range a.Responses {
		if r.IsCorrect {
			n++
		}
	}
	return n
}

// Clone returns a deep copy that shares no slices with a.
func (a Assessment) Clone() Assessment {
	c := a
	c.Questions = make([]Question, len(a.Questions))
	for i, q := range a.Questions {
		q.Options = cloneSlice(q.Options)
		c.Questions[i] = q
	}
	c.Responses = cloneSlice(a.Responses)
	if a.CompletedAt != nil {
		t := *a.CompletedAt
		c.CompletedAt = &t
	}
	return c
}

// PublicQuestion is a question as sent to clients. CorrectAnswer is only set
// once the owning assessment is completed.
type PublicQuestion struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer,omitempty"`
	Skill         string   `json:"skill"`
	Difficulty    int      `json:"difficulty"`
}

// AssessmentView is the client-facing form of an assessment.
type AssessmentView struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Questions   []PublicQuestion `json:"questions"`
	Responses   []Response       `json:"responses"`
	Score       float64          `json:"score"`
	StartedAt   time.Time        `json:"startedAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	Difficulty  Difficulty       `json:"difficulty"`
}

// View builds the client-facing form, hiding answer keys until completion.
func (a Assessment) View() AssessmentView {
	v := AssessmentView{
		ID:          a.ID,
		UserID:      a.UserID,
		Questions:   make([]PublicQuestion, 0, len(a.Questions)),
		Responses:   append([]Response{}, a.Responses...),
		Score:       a.Score,
		StartedAt:   a.StartedAt,
		CompletedAt: a.CompletedAt,
		Difficulty:  a.Difficulty,
	}
	for _, q := range a.Questions {
		pq := PublicQuestion{
			ID:         q.ID,
			Text:       q.Text,
			Options:    q.Options,
			Skill:      q.Skill,
			Difficulty: q.Difficulty,
		}
		if a.Completed() {
			correct := q.CorrectAnswer
			pq.CorrectAnswer = &correct
		}
		v.Questions = append(v.Questions, pq)
	}
	return v
}

// AssessmentResult is the archived summary of a completed assessment.
type AssessmentResult struct {
	AssessmentID string     `json:"assessment_id"`
	UserID       string     `json:"user_id"`
	Difficulty   Difficulty `json:"difficulty"`
	NumQuestions int        `json:"num_questions"`
	NumAnswered  int        `json:"num_answered"`
	NumCorrect   int        `json:"num_correct"`
	Score        float64    `json:"score"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  time.Time  `json:"completed_at"`
}

// Result summarises a completed assessment for archiving.
func (a Assessment) Result() AssessmentResult {
	r := AssessmentResult{
		AssessmentID: a.ID,
		UserID:       a.UserID,
		Difficulty:   a.Difficulty,
		NumQuestions: len(a.Questions),
		NumAnswered:  len(a.Responses),
		NumCorrect:   a.CorrectCount(),
		Score:        a.Score,
		StartedAt:    a.StartedAt,
	}
	if a.CompletedAt != nil {
		r.CompletedAt = *a.CompletedAt
	}
	return r
}
