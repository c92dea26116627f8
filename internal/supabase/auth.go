// Package supabase talks to the Supabase GoTrue auth API. The backend
// never stores credentials itself; sign-up and sign-in are straight
// pass-throughs and the resulting access token is what every other
// endpoint authenticates with.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fleetdesk-go/internal/config"
)

var ErrNotConfigured = errors.New("supabase auth is not configured")

// AuthError carries a GoTrue rejection so handlers can surface the
// upstream message inline.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s (status %d)", e.Message, e.Status)
}

type AuthClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         AuthUser `json:"user"`
}

func NewAuthClient(cfg config.SupabaseConfig) *AuthClient {
	timeout := cfg.AuthTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &AuthClient{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.PublishableKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *AuthClient) configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// SignUp registers a new account. GoTrue may require an email
// confirmation before the first sign-in succeeds.
func (c *AuthClient) SignUp(ctx context.Context, email, password string) (*AuthUser, error) {
	var user AuthUser
	err := c.post(ctx, "/auth/v1/signup", "", map[string]string{
		"email":    email,
		"password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SignIn exchanges credentials for a session using the password grant.
func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.post(ctx, "/auth/v1/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut revokes the session behind the access token.
func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.post(ctx, "/auth/v1/logout", accessToken, struct{}{}, nil)
}

// GetUser resolves the user behind an access token.
func (c *AuthClient) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAuthError(resp)
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *AuthClient) post(ctx context.Context, path, accessToken string, payload, out any) error {
	if !c.configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAuthError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeAuthError handles the several error payload shapes GoTrue emits.
func decodeAuthError(resp *http.Response) error {
	var payload struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorCode        string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	message := payload.Msg
	if message == "" {
		message = payload.Message
	}
	if message == "" {
		message = payload.ErrorDescription
	}
	if message == "" {
		message = payload.ErrorCode
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &AuthError{Status: resp.StatusCode, Message: message}
}
