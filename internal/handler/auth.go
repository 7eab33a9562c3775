package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/auth"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
)

const bearerPrefix = "Bearer "

// requireAuth is middleware that checks for a valid bearer token.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			writeError(w, r, http.StatusUnauthorized, "MissingToken", nil)
			return
		}
		token := strings.TrimSpace(header[len(bearerPrefix):])
		if token == "" {
			writeError(w, r, http.StatusUnauthorized, "MissingToken", nil)
			return
		}

		id, err := h.auth.Verify(token)
		if err != nil {
			slog.Debug("rejected token", "path", r.URL.Path, "error", err)
			writeError(w, r, http.StatusUnauthorized, "InvalidToken", nil)
			return
		}

		ctx := model.ContextWithIdentity(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole returns middleware that admits only the given role.
func requireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := model.IdentityFromContext(r.Context())
			if id == nil {
				writeError(w, r, http.StatusUnauthorized, "MissingToken", nil)
				return
			}
			if id.Role != role {
				writeError(w, r, http.StatusForbidden, "Forbidden", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if missingFields(w, r, map[string]string{"email": req.Email, "password": req.Password}, "email", "password") {
		return
	}

	res, err := h.auth.Login(req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, r, http.StatusUnauthorized, "InvalidCredentials", nil)
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
