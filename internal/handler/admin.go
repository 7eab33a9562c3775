package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/store"
)

// placeholderPassword is set on accounts created without a password.
const placeholderPassword = "changeme"

type createUserRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Department string     `json:"department"`
	Role       model.Role `json:"role"`
	Password   string     `json:"password"`
}

// updateUserRequest carries a shallow merge: nil fields are left unchanged.
type updateUserRequest struct {
	Name           *string               `json:"name"`
	Email          *string               `json:"email"`
	Department     *string               `json:"department"`
	Role           *model.Role           `json:"role"`
	Password       *string               `json:"password"`
	SkillProfile   *model.SkillProfile   `json:"skillProfile"`
	LearningPath   *model.LearningPath   `json:"learningPath"`
	WorkflowStatus *model.WorkflowStatus `json:"workflowStatus"`
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.users.ListUsers())
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.users.GetUserByID(chi.URLParam(r, "userID"))
	if !ok {
		fail(w, r, store.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Department = strings.TrimSpace(req.Department)
	fields := map[string]string{"name": req.Name, "email": req.Email, "department": req.Department}
	if missingFields(w, r, fields, "name", "email", "department") {
		return
	}
	if req.Role == "" {
		req.Role = model.RoleLearner
	}
	if !req.Role.Valid() {
		writeError(w, r, http.StatusBadRequest, "InvalidRole", map[string]any{"Role": req.Role})
		return
	}

	password := req.Password
	if password == "" {
		password = placeholderPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.config.BcryptCost)
	if err != nil {
		fail(w, r, err)
		return
	}

	user := h.users.CreateUser(model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Department:     req.Department,
		Role:           req.Role,
		WorkflowStatus: model.NewWorkflowStatus(time.Now()),
	})
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Role != nil && !req.Role.Valid() {
		writeError(w, r, http.StatusBadRequest, "InvalidRole", map[string]any{"Role": *req.Role})
		return
	}

	var hash []byte
	if req.Password != nil && *req.Password != "" {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(*req.Password), h.config.BcryptCost)
		if err != nil {
			fail(w, r, err)
			return
		}
	}

	id := chi.URLParam(r, "userID")
	user, err := h.users.UpdateUser(id, func(u *model.User) error {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.Department != nil {
			u.Department = *req.Department
		}
		if req.Role != nil {
			u.Role = *req.Role
		}
		if hash != nil {
			u.PasswordHash = string(hash)
		}
		if req.SkillProfile != nil {
			u.SkillProfile = req.SkillProfile
		}
		if req.LearningPath != nil {
			u.LearningPath = req.LearningPath
		}
		if req.WorkflowStatus != nil {
			u.WorkflowStatus = *req.WorkflowStatus
		}
		return nil
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	slog.Info("updated user", "id", id)
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteUser(chi.URLParam(r, "userID")); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboards.Admin())
}

func (h *Handler) handleAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboards.Agents())
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboards.Analytics())
}
