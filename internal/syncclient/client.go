// Package syncclient talks to the footprint backend: today's log, saving a
// log, the weekly window, account stats and the session endpoints.
package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/footprint/internal/model"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
	userAgent      = "github.com/theirongolddev/footprint/1.0"

	// SessionCookieName is the backend's session cookie.
	SessionCookieName = "session"
)

var (
	// ErrUnauthorized indicates there is no valid session.
	ErrUnauthorized = errors.New("syncclient: unauthorized (not logged in or session expired)")
	// ErrNoData indicates a read endpoint answered success:false.
	ErrNoData = errors.New("syncclient: no data")
	// ErrRejected indicates a write endpoint answered success:false.
	ErrRejected = errors.New("syncclient: rejected by server")
)

// Client is a session-holding client for one backend.
type Client struct {
	base *url.URL
	jar  http.CookieJar
	http *http.Client
}

// NewClient creates a client for baseURL, optionally resuming a stored
// session cookie value.
func NewClient(baseURL, session string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("syncclient: parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("syncclient: base url %q must be http or https", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("syncclient: creating cookie jar: %w", err)
	}
	if session = strings.TrimSpace(session); session != "" {
		jar.SetCookies(u, []*http.Cookie{{Name: SessionCookieName, Value: session, Path: "/"}})
	}

	return &Client{
		base: u,
		jar:  jar,
		http: &http.Client{
			Jar: jar,
			// The backend redirects to its landing page when the session is
			// missing; surface that instead of following it.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// SessionCookie returns the current session cookie value, or "" when there
// is none.
func (c *Client) SessionCookie() string {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == SessionCookieName {
			return ck.Value
		}
	}
	return ""
}

// FetchToday returns today's stored log merged with defaults, and its score.
func (c *Client) FetchToday(ctx context.Context) (*Today, error) {
	var resp TodayResponse
	if err := c.getJSON(ctx, "/api/get-today", &resp, "today"); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Log == nil {
		return nil, ErrNoData
	}
	today := &Today{
		Log:   model.MergeWithDefaults(resp.Log.Partial()),
		Score: resp.Log.CO2.Score(),
	}
	return today, nil
}

// SaveLog persists log as today's entry and returns the computed score.
func (c *Client) SaveLog(ctx context.Context, log model.DailyLog) (model.CO2Score, error) {
	payload, err := json.Marshal(log)
	if err != nil {
		return model.CO2Score{}, fmt.Errorf("syncclient: encoding log: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, "/api/save-log", payload)
	if err != nil {
		return model.CO2Score{}, err
	}
	if err := checkStatus(status); err != nil {
		return model.CO2Score{}, err
	}

	var resp SaveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.CO2Score{}, fmt.Errorf("syncclient: parsing save response: %w", err)
	}
	if !resp.Success {
		return model.CO2Score{}, rejected(resp.Message)
	}
	return resp.CO2.Score(), nil
}

// FetchWeekly returns the stored entries of the recent window, in server order.
func (c *Client) FetchWeekly(ctx context.Context) ([]model.WeeklyLogEntry, error) {
	var resp WeeklyResponse
	if err := c.getJSON(ctx, "/api/get-weekly", &resp, "weekly logs"); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, ErrNoData
	}

	logs := make([]model.WeeklyLogEntry, 0, len(resp.Logs))
	for _, e := range resp.Logs {
		logs = append(logs, model.WeeklyLogEntry{Date: e.Date, CO2: e.CO2.Score()})
	}
	return logs, nil
}

// FetchStats returns the account aggregates.
func (c *Client) FetchStats(ctx context.Context) (model.Stats, error) {
	var resp StatsResponse
	if err := c.getJSON(ctx, "/api/get-stats", &resp, "stats"); err != nil {
		return model.Stats{}, err
	}
	if !resp.Success || resp.Stats == nil {
		return model.Stats{}, ErrNoData
	}
	return resp.Stats.Stats(), nil
}

// Login starts a session. Bad credentials yield ErrRejected with the
// server's message.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.account(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.account(ctx, "/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Logout ends the session on the server and drops the local cookie.
func (c *Client) Logout(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodGet, "/logout", nil)
	c.jar.SetCookies(c.base, []*http.Cookie{{Name: SessionCookieName, Path: "/", MaxAge: -1}})
	return err
}

// account posts to a session endpoint. These answer 400/401 with a normal
// JSON envelope, so the body is read before the status is judged.
func (c *Client) account(ctx context.Context, path string, body map[string]string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("syncclient: encoding request: %w", err)
	}

	status, raw, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}

	var env envelope
	if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil {
		if env.Success {
			return nil
		}
		if status < 500 {
			return rejected(env.Message)
		}
	}
	if err := checkStatus(status); err != nil {
		return err
	}
	return fmt.Errorf("syncclient: unexpected %s response", path)
}

// getJSON performs a GET and decodes the body into dst.
func (c *Client) getJSON(ctx context.Context, path string, dst any, what string) error {
	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := checkStatus(status); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("syncclient: parsing %s: %w", what, err)
	}
	return nil
}

// do performs one request and returns the status and body.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, rdr)
	if err != nil {
		return 0, nil, fmt.Errorf("syncclient: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("syncclient: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, fmt.Errorf("syncclient: reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func checkStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status >= 300 && status < 400:
		return ErrUnauthorized
	case status < 200 || status >= 300:
		return fmt.Errorf("syncclient: unexpected status %d", status)
	}
	return nil
}

func rejected(msg string) error {
	if msg == "" {
		return ErrRejected
	}
	return fmt.Errorf("%w: %s", ErrRejected, msg)
}

// ServerMessage returns the server's message carried by a rejection, or the
// error text for any other error.
func ServerMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrRejected) {
		if msg := strings.TrimPrefix(err.Error(), ErrRejected.Error()+": "); msg != err.Error() {
			return msg
		}
	}
	return err.Error()
}
