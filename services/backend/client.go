package backendsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/darasahub/njia/core"
	"github.com/darasahub/njia/core/session"
)

var (
	// errors
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrBackendUnavailable   = errors.New("backend unavailable")
)

// Client is the thin collaborator for the HTTP backend: it authenticates,
// carries the bearer token on every request through Transport, and hands
// token persistence to the session manager.
type Client struct {
	baseURL string
	http    *http.Client
	mgr     *session.Manager
	log     core.Logger
}

func NewClient(conf *core.Config, mgr *session.Manager, observe RateLimitObserver, log core.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.BackendBaseURL, "/"),
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: NewTransport(nil, mgr, observe, log),
		},
		mgr: mgr,
		log: log,
	}
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Login authenticates against the backend and stores the returned token in
// the tier selected by creds.RememberMe. A storage write failure surfaces:
// it blocks the login.
func (c *Client) Login(ctx context.Context, creds session.Credentials) (*session.TokenRecord, error) {
	creds.Username = core.CleanString(creds.Username, true /* lower */)
	if err := core.Validate.Struct(creds); err != nil {
		return nil, err
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "backend: marshal credentials")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "backend: build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(ErrBackendUnavailable, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return nil, ErrAuthenticationFailed
	default:
		return nil, pkgerrors.Wrapf(ErrBackendUnavailable, "status %d", resp.StatusCode)
	}

	var lr loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&lr); err != nil {
		return nil, pkgerrors.Wrap(err, "backend: decode login response")
	}
	if lr.Token == "" || lr.UserID == "" {
		return nil, ErrAuthenticationFailed
	}
	if err := c.mgr.Store(lr.Token, lr.UserID, creds.RememberMe); err != nil {
		return nil, err
	}
	return c.mgr.Read(), nil
}

// Logout tells the backend (best effort) and purges local session state
// unconditionally.
func (c *Client) Logout(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err == nil {
		if resp, err := c.http.Do(req); err == nil {
			resp.Body.Close()
		} else {
			c.log.Debug("backend: logout call failed", map[string]interface{}{"err": err.Error()})
		}
	}
	c.mgr.Clear()
}

// Get performs an authenticated GET against the backend; the bearer token
// is attached by Transport.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "backend: build request")
	}
	return c.http.Do(req)
}
