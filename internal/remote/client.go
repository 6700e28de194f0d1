package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/path2action/planwizard/internal/domain"
)

// ErrNotConfigured indicates the remote store has no usable credentials.
// Callers treat it as "remote sync disabled", never as a failure.
var ErrNotConfigured = errors.New("remote store not configured")

// Client talks to the Firestore REST document API. Documents live under a
// single collection, keyed by plan id.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the given configuration.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// Configured reports whether the client can reach a remote store.
func (c *Client) Configured() bool { return c.cfg.Configured() }

// docURL builds the document endpoint for a plan id, including the API key.
func (c *Client) docURL(planID string) string {
	return fmt.Sprintf("%s/projects/%s/databases/(default)/documents/%s/%s?key=%s",
		c.cfg.BaseURL,
		url.PathEscape(c.cfg.ProjectID),
		url.PathEscape(c.cfg.Collection),
		url.PathEscape(planID),
		url.QueryEscape(c.cfg.APIKey))
}

// Load fetches a plan document. A missing document and an unconfigured
// store both return (nil, nil): not having a remote copy is a normal state.
func (c *Client) Load(ctx context.Context, planID string) (*PlanSnapshot, error) {
	if planID == "" || !c.cfg.Configured() {
		return nil, nil
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.docURL(planID), nil)
	if err != nil {
		return nil, fmt.Errorf("building load request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("load", planID, start, false, "network")
		return nil, fmt.Errorf("loading plan %s: %w", planID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.observe("load", planID, start, true, "")
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.observe("load", planID, start, false, fmt.Sprintf("http_%d", resp.StatusCode))
		return nil, fmt.Errorf("loading plan %s: status %d: %s", planID, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe("load", planID, start, false, "read_body")
		return nil, fmt.Errorf("reading plan %s: %w", planID, err)
	}

	snap := decodeDoc(body)
	c.observe("load", planID, start, true, "")
	return &snap, nil
}

// Save writes the wizard aggregate, step, and timestamp to the plan
// document via a partial update that names exactly those three fields.
func (c *Client) Save(ctx context.Context, planID string, data domain.WizardData, step int) error {
	if planID == "" {
		return nil
	}
	if !c.cfg.Configured() {
		return ErrNotConfigured
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body, err := json.Marshal(encodeDoc(data, step, time.Now()))
	if err != nil {
		return fmt.Errorf("encoding plan %s: %w", planID, err)
	}

	u := c.docURL(planID)
	for _, f := range savedFields {
		u += "&updateMask.fieldPaths=" + f
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("save", planID, start, false, "network")
		return fmt.Errorf("saving plan %s: %w", planID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.observe("save", planID, start, false, fmt.Sprintf("http_%d", resp.StatusCode))
		return fmt.Errorf("saving plan %s: status %d: %s", planID, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	c.observe("save", planID, start, true, "")
	return nil
}

// Delete removes the plan document. Best-effort: failures are logged and
// swallowed, callers never depend on success.
func (c *Client) Delete(ctx context.Context, planID string) {
	if planID == "" || !c.cfg.Configured() {
		return
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.docURL(planID), nil)
	if err != nil {
		log.Printf("remote: building delete request for %s: %v", planID, err)
		return
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("delete", planID, start, false, "network")
		log.Printf("remote: deleting plan %s: %v", planID, err)
		return
	}
	resp.Body.Close()
	c.observe("delete", planID, start, resp.StatusCode < 300, "")
}

func (c *Client) observe(op, planID string, start time.Time, success bool, code string) {
	c.observer.OnSyncComplete(SyncEvent{
		Op:        op,
		PlanID:    planID,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   success,
		ErrorCode: code,
	})
}
