// Package auth talks to the hosted GoTrue-style identity API and persists the
// session through the preference store. It is constructed once at process
// start and passed to whoever needs it; there is no package-level client.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Snehil208001/QuoteVault/internal/prefs"
)

// Client implements the session provider contract consumed by the startup
// router, plus the sign-up / sign-in / recovery operations the UI drives.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	prefs   *prefs.Store
	log     *slog.Logger
}

// session is the persisted GoTrue session payload.
type session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		Email string `json:"email"`
	} `json:"user"`
}

func NewClient(projectURL, anonKey string, store *prefs.Store, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(projectURL, "/") + "/auth/v1",
		anonKey: anonKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		prefs:   store,
		log:     log,
	}
}

// HasActiveSession reports whether a persisted session exists. Local only,
// like the provider SDK's current-user check; validity is the refresh call's
// concern.
func (c *Client) HasActiveSession(ctx context.Context) (bool, error) {
	_, ok := c.prefs.Session()
	return ok, nil
}

// CurrentEmail returns the signed-in user's email, if a session is persisted.
func (c *Client) CurrentEmail() (string, bool) {
	s, ok := c.loadSession()
	if !ok || s.User.Email == "" {
		return "", false
	}
	return s.User.Email, true
}

// SignIn performs the password grant and persists the returned session.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var s session
	if err := c.post(ctx, "/token?grant_type=password", body, "", &s); err != nil {
		return err
	}
	return c.saveSession(s)
}

// SignUp registers a new account. The provider sends a confirmation email;
// no session is persisted until the user signs in.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.post(ctx, "/signup", body, "", nil)
}

// SignOut revokes the session server-side (best effort) and always clears the
// local one.
func (c *Client) SignOut(ctx context.Context) error {
	if s, ok := c.loadSession(); ok {
		if err := c.post(ctx, "/logout", nil, s.AccessToken, nil); err != nil {
			c.log.Warn("remote logout failed", "error", err)
		}
	}
	return c.prefs.ClearSession()
}

// AdoptSession persists a session from tokens delivered out of band, such as
// the fragment of a recovery link. This is what lets UpdatePassword work for
// a signed-out user completing recovery.
func (c *Client) AdoptSession(accessToken, refreshToken string) error {
	if accessToken == "" {
		return fmt.Errorf("auth: empty access token")
	}
	var s session
	s.AccessToken = accessToken
	s.RefreshToken = refreshToken
	return c.saveSession(s)
}

// ResetPassword asks the provider to send a recovery email. The recovery link
// it contains is what the startup router later recognizes.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/recover", map[string]string{"email": email}, "", nil)
}

// UpdatePassword completes the recovery flow for the signed-in (or
// recovery-authenticated) user.
func (c *Client) UpdatePassword(ctx context.Context, newPassword string) error {
	s, ok := c.loadSession()
	if !ok {
		return fmt.Errorf("auth: no session to update password for")
	}
	return c.put(ctx, "/user", map[string]string{"password": newPassword}, s.AccessToken)
}

// RefreshSession exchanges the stored refresh token for a new session.
// Callers treat failure as best-effort; the stored session is only replaced
// on success.
func (c *Client) RefreshSession(ctx context.Context) error {
	s, ok := c.loadSession()
	if !ok || s.RefreshToken == "" {
		return fmt.Errorf("auth: no refresh token")
	}
	body := map[string]string{"refresh_token": s.RefreshToken}
	var next session
	if err := c.post(ctx, "/token?grant_type=refresh_token", body, "", &next); err != nil {
		return err
	}
	return c.saveSession(next)
}

func (c *Client) loadSession() (session, bool) {
	raw, ok := c.prefs.Session()
	if !ok {
		return session{}, false
	}
	var s session
	if err := json.Unmarshal(raw, &s); err != nil || s.AccessToken == "" {
		return session{}, false
	}
	return s, true
}

func (c *Client) saveSession(s session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("auth: encoding session: %w", err)
	}
	return c.prefs.SaveSession(raw)
}

func (c *Client) post(ctx context.Context, path string, body any, bearer string, out any) error {
	return c.do(ctx, http.MethodPost, path, body, bearer, out)
}

func (c *Client) put(ctx context.Context, path string, body any, bearer string) error {
	return c.do(ctx, http.MethodPut, path, body, bearer, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, bearer string, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("auth: encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("auth: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("auth: decoding response: %w", err)
		}
	}
	return nil
}

// apiError extracts the provider's error message so Categorize can match it.
func apiError(resp *http.Response) error {
	var e struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&e)
	msg := e.ErrorDescription
	if msg == "" {
		msg = e.Msg
	}
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = resp.Status
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("auth: rate limit: %s", msg)
	}
	return fmt.Errorf("auth: %s", msg)
}
