package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configuredConfig(endpoint string) Config {
	return Config{
		Endpoint:   endpoint,
		PublicKey:  "pub",
		ServiceID:  "svc",
		TemplateID: "tpl",
		TimeoutMs:  2000,
	}
}

func TestConfig_PlaceholdersDisableSending(t *testing.T) {
	assert.False(t, DefaultConfig().Configured())

	cfg := DefaultConfig()
	cfg.PublicKey = "pub"
	cfg.ServiceID = "svc"
	assert.False(t, cfg.Configured(), "all three credentials are required")

	cfg.TemplateID = "tpl"
	assert.True(t, cfg.Configured())
}

func TestSend_PostsTemplateParams(t *testing.T) {
	var got emailBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	s := NewEmailSender(configuredConfig(srv.URL))
	err := s.Send(context.Background(), Request{
		VenueName:       "Opera Garden",
		Date:            "2026-09-05",
		StartTime:       "14:00",
		Hours:           3,
		RequesterEmail:  "organizer@example.org",
		VenueOwnerEmail: "owner@example.org",
	})
	require.NoError(t, err)

	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, map[string]string{
		"venue_name":    "Opera Garden",
		"booking_date":  "2026-09-05",
		"booking_time":  "14:00",
		"booking_hours": "3",
		"user_email":    "organizer@example.org",
		"to_email":      "owner@example.org",
	}, got.TemplateParams)
}

func TestSend_Unconfigured(t *testing.T) {
	s := NewEmailSender(DefaultConfig())
	err := s.Send(context.Background(), Request{VenueName: "X"})
	assert.Error(t, err)
}

func TestSend_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad template", http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewEmailSender(configuredConfig(srv.URL))
	err := s.Send(context.Background(), Request{VenueName: "X"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
