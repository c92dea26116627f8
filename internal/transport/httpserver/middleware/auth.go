package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"fleetdesk-go/internal/config"
	"fleetdesk-go/internal/supabase"
	"fleetdesk-go/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

// SupabaseAuth resolves the account owner behind the bearer token. With
// a configured JWT secret the Supabase access token is verified locally;
// otherwise each request is checked against the auth API.
type SupabaseAuth struct {
	auth      *supabase.AuthClient
	jwtSecret []byte
	skipAuth  bool
	mockUser  User
	log       logger.Logger
}

type User struct {
	ID    string
	Email string
}

type contextKey int

const userKey contextKey = iota

func NewSupabaseAuth(cfg config.SupabaseConfig, auth *supabase.AuthClient, log logger.Logger) *SupabaseAuth {
	return &SupabaseAuth{
		auth:      auth,
		jwtSecret: []byte(cfg.JWTSecret),
		skipAuth:  cfg.SkipAuth,
		mockUser: User{
			ID:    strings.TrimSpace(cfg.MockUserID),
			Email: strings.TrimSpace(cfg.MockUserEmail),
		},
		log: log,
	}
}

func (a *SupabaseAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			if a.mockUser.ID == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), a.mockUser)))
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		user, ok := a.resolve(r.Context(), token)
		if !ok {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (a *SupabaseAuth) resolve(ctx context.Context, token string) (User, bool) {
	if len(a.jwtSecret) > 0 {
		return a.verifyLocal(token)
	}

	authUser, err := a.auth.GetUser(ctx, token)
	if err != nil {
		a.log.Debug("auth: token check failed", "err", err)
		return User{}, false
	}
	if authUser.ID == "" {
		return User{}, false
	}
	return User{ID: authUser.ID, Email: authUser.Email}, true
}

// verifyLocal checks the HS256 signature and expiry of a Supabase access
// token without a network round trip. The sub claim is the user id.
func (a *SupabaseAuth) verifyLocal(token string) (User, bool) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return User{}, false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return User{}, false
	}

	email, _ := claims["email"].(string)
	return User{ID: sub, Email: email}, true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
