// Package assist improves user-written plan text through a chat-completion
// API. It is an optional collaborator: disabled without an API key, and
// every failure is local to the single field being improved.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrDisabled indicates no API key is configured.
	ErrDisabled = errors.New("ai assistant disabled")

	// ErrEmptyInput indicates there is no text to improve.
	ErrEmptyInput = errors.New("no text to improve")

	// ErrEmptyResponse indicates the model returned no usable text.
	ErrEmptyResponse = errors.New("empty response from model")
)

const systemPrompt = `You are an expert civic campaign planner and copywriter. Your task is to improve and enhance text for civic initiative planning documents.
Keep the core message but make it:
- More clear and professional
- More actionable and specific
- Better structured if needed
- More compelling and engaging

Respond with ONLY the improved text, no explanations or preamble.`

// Improver rewrites a field's text given its context.
type Improver interface {
	Improve(ctx context.Context, text, fieldContext, campaignContext string) (string, error)
}

// Client implements Improver against an OpenAI-compatible chat endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates an assistant Client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// Enabled reports whether the assistant can be used.
func (c *Client) Enabled() bool { return c.cfg.Enabled && c.cfg.APIKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Improve returns a rewritten version of text. The replacement fully
// substitutes the original; callers apply it only on success.
func (c *Client) Improve(ctx context.Context, text, fieldContext, campaignContext string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	userPrompt := fmt.Sprintf("Improve this text for a civic campaign planning document.\nField type: %s\n", fieldContext)
	if campaignContext != "" {
		userPrompt += fmt.Sprintf("Campaign context: %s\n", campaignContext)
	}
	userPrompt += fmt.Sprintf("\nOriginal text:\n%q\n\nProvide an improved version:", text)

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("encoding assist request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building assist request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling assistant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("assistant returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding assist response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	improved := strings.TrimSpace(parsed.Choices[0].Message.Content)
	improved = strings.Trim(improved, `"`)
	if improved == "" {
		return "", ErrEmptyResponse
	}
	return improved, nil
}
