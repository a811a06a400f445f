// Package api is the HTTP client for the remote banana authority. Every
// call is a single request/response round trip with a bounded timeout; an
// expired timeout surfaces as an ordinary transport error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// RejectionError is a business rejection reported by the authority:
// insufficient funds, unknown upgrade, empty name, invalid session. It is
// surfaced to the caller with the server's message and never retried.
type RejectionError struct {
	Op      string
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Op, e.Message)
}

// IsRejection reports whether err is a business rejection rather than a
// transport failure.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}

// Client talks to the remote authority.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a client for the given base URL with the default
// request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("server returned status: %s", res.Status)
	}
	return decodeJSON(res.Body, out)
}

func decodeJSON(reader io.Reader, target any) error {
	decoder := json.NewDecoder(reader)
	return decoder.Decode(target)
}

// Init loads or mints a session. An empty sessionID asks the authority to
// create a new ledger row and return its identifier.
func (c *Client) Init(ctx context.Context, sessionID string) (*InitResponse, error) {
	var res InitResponse
	if err := c.post(ctx, "/init", InitRequest{SessionID: sessionID}, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, &RejectionError{Op: "init", Message: res.Error}
	}
	return &res, nil
}

// Sync reconciles pending optimistic clicks against the ledger and returns
// the complete authoritative state.
func (c *Client) Sync(ctx context.Context, req SyncRequest) (*SyncResponse, error) {
	var res SyncResponse
	if err := c.post(ctx, "/sync", req, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, &RejectionError{Op: "sync", Message: res.Error}
	}
	return &res, nil
}

// Upgrade purchases one copy of an upgrade. Affordability is confirmed
// server-side; a rejection carries the server's message.
func (c *Client) Upgrade(ctx context.Context, req UpgradeRequest) (*UpgradeResponse, error) {
	var res UpgradeResponse
	if err := c.post(ctx, "/upgrade", req, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, &RejectionError{Op: "upgrade", Message: firstNonEmpty(res.Message, res.Error)}
	}
	return &res, nil
}

// Prestige trades the current run for golden bananas.
func (c *Client) Prestige(ctx context.Context, req PrestigeRequest) (*PrestigeResponse, error) {
	var res PrestigeResponse
	if err := c.post(ctx, "/prestige", req, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, &RejectionError{Op: "prestige", Message: firstNonEmpty(res.Message, res.Error)}
	}
	return &res, nil
}

// BuySkin purchases a cosmetic.
func (c *Client) BuySkin(ctx context.Context, req BuySkinRequest) (*BuySkinResponse, error) {
	var res BuySkinResponse
	if err := c.post(ctx, "/buy-skin", req, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, &RejectionError{Op: "buy-skin", Message: firstNonEmpty(res.Message, res.Error)}
	}
	return &res, nil
}

// ClickEvent claims the reward of an active time-boxed event.
func (c *Client) ClickEvent(ctx context.Context, req ClickEventRequest) (*ClickEventResponse, error) {
	var res ClickEventResponse
	if err := c.post(ctx, "/click-event", req, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, &RejectionError{Op: "click-event", Message: firstNonEmpty(res.Message, res.Error)}
	}
	return &res, nil
}

// SubmitScore puts the session on the leaderboard under the given name.
func (c *Client) SubmitScore(ctx context.Context, req SubmitScoreRequest) (*SubmitScoreResponse, error) {
	var res SubmitScoreResponse
	if err := c.post(ctx, "/submit-score", req, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, &RejectionError{Op: "submit-score", Message: firstNonEmpty(res.Message, res.Error)}
	}
	return &res, nil
}

// Reset wipes the session's ledger back to a fresh state.
func (c *Client) Reset(ctx context.Context, req ResetRequest) (*ResetResponse, error) {
	var res ResetResponse
	if err := c.post(ctx, "/reset", req, &res); err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, &RejectionError{Op: "reset", Message: res.Error}
	}
	return &res, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return "request refused"
}
