package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/assessment"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/store"
)

type startRequest struct {
	Difficulty model.Difficulty `json:"difficulty"`
}

func (h *Handler) handleStartAssessment(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	difficulty := model.Difficulty(strings.ToLower(strings.TrimSpace(string(req.Difficulty))))
	if missingFields(w, r, map[string]string{"difficulty": string(difficulty)}, "difficulty") {
		return
	}

	id := model.IdentityFromContext(r.Context())
	a, err := h.assessments.Start(id.ID, difficulty)
	if errors.Is(err, assessment.ErrInvalidDifficulty) {
		writeError(w, r, http.StatusBadRequest, "InvalidDifficulty", map[string]any{"Difficulty": req.Difficulty})
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a.View())
}

type answerRequest struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer *int   `json:"selectedAnswer"`
	TimeSpent      int    `json:"timeSpent"`
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	selected := ""
	if req.SelectedAnswer != nil {
		selected = "set"
	}
	if missingFields(w, r, map[string]string{"questionId": req.QuestionID, "selectedAnswer": selected}, "questionId", "selectedAnswer") {
		return
	}

	id := model.IdentityFromContext(r.Context())
	a, err := h.assessments.Answer(chi.URLParam(r, "assessmentID"), id.ID, req.QuestionID, *req.SelectedAnswer, max(req.TimeSpent, 0))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.View())
}

func (h *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	id := model.IdentityFromContext(r.Context())
	a, err := h.assessments.Finish(chi.URLParam(r, "assessmentID"), id.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.View())
}

func (h *Handler) handleLatestAssessment(w http.ResponseWriter, r *http.Request) {
	id := model.IdentityFromContext(r.Context())
	a, err := h.assessments.Latest(id.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.View())
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	id := model.IdentityFromContext(r.Context())
	user, ok := h.users.GetUserByID(id.ID)
	if !ok {
		fail(w, r, store.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleLearnerDashboard(w http.ResponseWriter, r *http.Request) {
	id := model.IdentityFromContext(r.Context())
	view, err := h.dashboards.Learner(id.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handlePath(w http.ResponseWriter, r *http.Request) {
	id := model.IdentityFromContext(r.Context())
	user, ok := h.users.GetUserByID(id.ID)
	if !ok || user.LearningPath == nil {
		fail(w, r, store.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user.LearningPath)
}

func (h *Handler) handleGeneratePath(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		writeError(w, r, http.StatusServiceUnavailable, "GeneratorUnavailable", nil)
		return
	}

	id := model.IdentityFromContext(r.Context())
	user, ok := h.users.GetUserByID(id.ID)
	if !ok {
		fail(w, r, store.ErrNotFound)
		return
	}

	var last *model.Assessment
	if a, ok := assessment.LastCompleted(h.assessments.ListForUser(id.ID)); ok {
		last = &a
	}

	path, err := h.generator.GeneratePath(r.Context(), user, last)
	if err != nil {
		slog.Error("learning path generation failed", "user_id", id.ID, "error", err)
		writeError(w, r, http.StatusBadGateway, "GeneratorFailed", nil)
		return
	}

	updated, err := h.users.UpdateUser(id.ID, func(u *model.User) error {
		u.LearningPath = path
		u.WorkflowStatus.RecommendationsGenerated = true
		u.WorkflowStatus.CurrentStep = max(u.WorkflowStatus.CurrentStep, 4)
		u.WorkflowStatus.LastUpdated = time.Now()
		return nil
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	slog.Info("learning path generated", "user_id", id.ID, "path_id", path.ID,
		"modules", len(path.Modules), "estimated_time", path.EstimatedTime)
	writeJSON(w, http.StatusCreated, updated.LearningPath)
}
