package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greek-courier-tracker/internal/features/tracking/domain"
	"greek-courier-tracker/internal/features/tracking/ports"
)

const genikiCheckpointHTML = `<html><body>
<div class="tracking-checkpoint">
  <div class="checkpoint-status">Παραλαβή</div>
  <div class="checkpoint-location">ΑΘΗΝΑ</div>
  <div class="checkpoint-date">Τρίτη, 14/01/2025</div>
  <div class="checkpoint-time">09:15</div>
</div>
<div class="tracking-checkpoint">
  <div class="checkpoint-status">Παράδοση</div>
  <div class="checkpoint-location">ΠΑΤΡΑ</div>
  <div class="checkpoint-date">Τετάρτη, 15/01/2025</div>
  <div class="checkpoint-time">14:30</div>
</div>
</body></html>`

func TestGenikiAdapter_Supports(t *testing.T) {
	a := NewGenikiAdapter("https://www.taxydromiki.com")
	assert.True(t, a.Supports(domain.CourierGeniki))
	assert.False(t, a.Supports(domain.CourierCenter))
}

func TestGenikiAdapter_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/track/GT123456789", r.URL.Path)
		w.Write([]byte(genikiCheckpointHTML))
	}))
	defer server.Close()

	a := NewGenikiAdapter(server.URL)
	raw, err := a.Fetch(context.Background(), "GT123456789")
	require.NoError(t, err)
	require.Len(t, raw.Events, 2)

	// Weekday prefix dropped from the date cell.
	assert.Equal(t, "14/01/2025", raw.Events[0].Date)
	assert.Equal(t, "09:15", raw.Events[0].Time)
	assert.Equal(t, "ΑΘΗΝΑ", raw.Events[0].Location)
	assert.Equal(t, "Παραλαβή", raw.Events[0].RawStatus)
	assert.Equal(t, "Παράδοση", raw.Events[1].RawStatus)
}

func TestGenikiAdapter_Fetch_DateWithoutWeekday(t *testing.T) {
	page := `<html><body>
<div class="tracking-checkpoint">
  <div class="checkpoint-status">Μεταφορά</div>
  <div class="checkpoint-location">ΛΑΡΙΣΑ</div>
  <div class="checkpoint-date">14/01/2025</div>
  <div class="checkpoint-time">11:00</div>
</div>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	a := NewGenikiAdapter(server.URL)
	raw, err := a.Fetch(context.Background(), "GT123456789")
	require.NoError(t, err)
	require.Len(t, raw.Events, 1)
	assert.Equal(t, "14/01/2025", raw.Events[0].Date)
}

func TestGenikiAdapter_Fetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="empty-text">Δεν βρέθηκαν αποτελέσματα</div></body></html>`))
	}))
	defer server.Close()

	a := NewGenikiAdapter(server.URL)
	_, err := a.Fetch(context.Background(), "GT123456789")
	assert.True(t, errors.Is(err, ports.ErrNotFound))
}

func TestGenikiAdapter_Fetch_Transport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	a := NewGenikiAdapter(server.URL)
	_, err := a.Fetch(context.Background(), "GT123456789")
	assert.True(t, errors.Is(err, ports.ErrTransport))
}
