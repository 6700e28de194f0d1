// Package booking sends venue booking requests. Bookings are emailed to
// the venue owner via an EmailJS-style REST endpoint; nothing is written
// back into the availability data.
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"
)

const placeholderID = "YOUR_EMAILJS_ID"

// Config holds the EmailJS credentials. Placeholders disable sending.
type Config struct {
	Endpoint   string
	PublicKey  string
	ServiceID  string
	TemplateID string
	TimeoutMs  int
}

// DefaultConfig returns a Config with placeholder credentials.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "https://api.emailjs.com/api/v1.0/email/send",
		PublicKey:  placeholderID,
		ServiceID:  placeholderID,
		TemplateID: placeholderID,
		TimeoutMs:  10000,
	}
}

// LoadConfig reads booking email configuration from the environment.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("PLANWIZARD_EMAILJS_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PLANWIZARD_EMAILJS_PUBLIC_KEY"); v != "" {
		cfg.PublicKey = v
	}
	if v := os.Getenv("PLANWIZARD_EMAILJS_SERVICE_ID"); v != "" {
		cfg.ServiceID = v
	}
	if v := os.Getenv("PLANWIZARD_EMAILJS_TEMPLATE_ID"); v != "" {
		cfg.TemplateID = v
	}
	return cfg
}

// Configured reports whether real credentials are present.
func (c Config) Configured() bool {
	return c.PublicKey != "" && c.PublicKey != placeholderID &&
		c.ServiceID != "" && c.ServiceID != placeholderID &&
		c.TemplateID != "" && c.TemplateID != placeholderID
}

// Request carries one booking request to the venue owner.
type Request struct {
	VenueName       string
	Date            string
	StartTime       string
	Hours           int
	RequesterEmail  string
	VenueOwnerEmail string
}

// Sender delivers booking requests.
type Sender interface {
	Send(ctx context.Context, req Request) error
}

// EmailSender implements Sender over the EmailJS REST API.
type EmailSender struct {
	cfg  Config
	http *http.Client
}

// NewEmailSender creates a Sender for the given configuration.
func NewEmailSender(cfg Config) *EmailSender {
	return &EmailSender{
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

// emailBody is the EmailJS send payload. Template params use the names the
// hosted email template expects.
type emailBody struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send delivers the booking request. An unconfigured sender reports a soft
// error; the booking flow shows it as "request not sent" and moves on.
func (s *EmailSender) Send(ctx context.Context, req Request) error {
	if !s.cfg.Configured() {
		return fmt.Errorf("booking email is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body, err := json.Marshal(emailBody{
		ServiceID:  s.cfg.ServiceID,
		TemplateID: s.cfg.TemplateID,
		UserID:     s.cfg.PublicKey,
		TemplateParams: map[string]string{
			"venue_name":    req.VenueName,
			"booking_date":  req.Date,
			"booking_time":  req.StartTime,
			"booking_hours": fmt.Sprintf("%d", req.Hours),
			"user_email":    req.RequesterEmail,
			"to_email":      req.VenueOwnerEmail,
		},
	})
	if err != nil {
		return fmt.Errorf("encoding booking email: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building booking email request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending booking email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("sending booking email: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}
