package handler

import (
	"errors"
	"net/http"
	"strings"

	"fleetdesk-go/internal/supabase"
	"fleetdesk-go/internal/transport/httpserver/middleware"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type sessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

type authMeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	user, err := h.Auth.SignUp(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		h.writeAuthError(w, "signup failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, signUpResponse{
		ID:      user.ID,
		Email:   user.Email,
		Message: "registration successful, check your email for a confirmation link",
	})
}

func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	session, err := h.Auth.SignIn(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		h.writeAuthError(w, "signin failed", err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    session.ExpiresIn,
		UserID:       session.User.ID,
		Email:        session.User.Email,
	})
}

func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerTokenFromHeader(r.Header.Get("Authorization"))
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Auth.SignOut(r.Context(), token); err != nil {
		h.writeAuthError(w, "signout failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	writeJSON(w, http.StatusOK, authMeResponse{ID: user.ID, Email: user.Email})
}

// writeAuthError forwards a GoTrue rejection inline (bad credentials,
// weak password, duplicate email) and hides everything else.
func (h *Handlers) writeAuthError(w http.ResponseWriter, message string, err error) {
	var authErr *supabase.AuthError
	if errors.As(err, &authErr) && authErr.Status >= 400 && authErr.Status < 500 {
		writeError(w, authErr.Status, "auth_rejected", authErr.Message)
		return
	}
	if errors.Is(err, supabase.ErrNotConfigured) {
		writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
		return
	}
	h.log.InternalError(message, err)
	writeError(w, http.StatusBadGateway, "auth_unavailable", "authentication service unavailable")
}

func bearerTokenFromHeader(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
