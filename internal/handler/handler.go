package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/assessment"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/auth"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/dashboard"
	appI18n "github.com/George-Paul-Tony-C/Upskilling-Platform/internal/i18n"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/store"
)

const maxBodyBytes = 1 << 20

// PathGenerator produces a learning path from a learner's profile and their
// most recently completed assessment (nil when there is none).
type PathGenerator interface {
	GeneratePath(ctx context.Context, user model.User, last *model.Assessment) (*model.LearningPath, error)
}

// Config holds handler settings.
type Config struct {
	BcryptCost int // cost for passwords set through the admin API
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	users       *store.UserStore
	auth        *auth.Service
	assessments *assessment.Manager
	dashboards  *dashboard.Service
	generator   PathGenerator
	config      Config
}

// New creates a new Handler. generator may be nil, in which case path
// generation answers 503.
func New(users *store.UserStore, authSvc *auth.Service, assessments *assessment.Manager,
	dashboards *dashboard.Service, generator PathGenerator, cfg Config) (*Handler, error) {
	if users == nil || authSvc == nil || assessments == nil || dashboards == nil {
		return nil, errors.New("handler: missing dependency")
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Handler{
		users:       users,
		auth:        authSvc,
		assessments: assessments,
		dashboards:  dashboards,
		generator:   generator,
		config:      cfg,
	}, nil
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Post("/auth/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Route("/learner", func(r chi.Router) {
			r.Use(requireRole(model.RoleLearner))
			r.Post("/assessment/start", h.handleStartAssessment)
			r.Post("/assessment/{assessmentID}/answer", h.handleAnswer)
			r.Post("/assessment/{assessmentID}/finish", h.handleFinish)
			r.Get("/profile/me", h.handleProfile)
			r.Get("/dashboard/me", h.handleLearnerDashboard)
			r.Get("/path/me", h.handlePath)
			r.Post("/path/generate", h.handleGeneratePath)
			r.Get("/tracker/latest-assessment", h.handleLatestAssessment)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireRole(model.RoleAdmin))
			r.Get("/users", h.handleListUsers)
			r.Post("/users", h.handleCreateUser)
			r.Get("/users/{userID}", h.handleGetUser)
			r.Put("/users/{userID}", h.handleUpdateUser)
			r.Delete("/users/{userID}", h.handleDeleteUser)
			r.Get("/dashboard", h.handleAdminDashboard)
			r.Get("/agents", h.handleAgents)
			r.Get("/analytics", h.handleAnalytics)
		})
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError writes a localized {"message": ...} body. Not found responses
// carry no body.
func writeError(w http.ResponseWriter, r *http.Request, status int, msgID string, data map[string]any) {
	if status == http.StatusNotFound {
		w.WriteHeader(status)
		return
	}
	msg := appI18n.T(r.Context(), msgID)
	if data != nil {
		msg = appI18n.Td(r.Context(), msgID, data)
	}
	writeJSON(w, status, errorBody{Message: msg})
}

// fail maps a domain error onto an HTTP status.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "", nil)
	case errors.Is(err, assessment.ErrInvalidDifficulty):
		writeError(w, r, http.StatusBadRequest, "BadRequest", nil)
	case errors.Is(err, assessment.ErrCompleted):
		writeError(w, r, http.StatusConflict, "AssessmentCompleted", nil)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError", nil)
	}
}

// decodeJSON reads a JSON body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Debug("bad request body", "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusBadRequest, "BadRequest", nil)
		return false
	}
	return true
}

// missingFields answers 400 when any named field is empty.
func missingFields(w http.ResponseWriter, r *http.Request, fields map[string]string, order ...string) bool {
	var missing []string
	for _, name := range order {
		if fields[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return false
	}
	writeError(w, r, http.StatusBadRequest, "MissingFields", map[string]any{"Fields": strings.Join(missing, ", ")})
	return true
}
