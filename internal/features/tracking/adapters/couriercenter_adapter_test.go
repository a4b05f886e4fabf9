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

const courierCenterResultHTML = `<html><body>
<div class="status">DeliveryCompleted</div>
<div class="tr">
  <div id="date">Ημερομηνία</div><div id="time">Ώρα</div><div id="area">Περιοχή</div><div id="action">Ενέργεια</div>
</div>
<div class="tr">
  <div id="date">14/01/2025</div><div id="time">09:15</div><div id="area">ΑΘΗΝΑ</div><div id="action">Received</div>
</div>
<div class="tr">
  <div id="date">15/01/2025</div><div id="time">14:30</div><div id="area">ΠΑΤΡΑ</div><div id="action">DeliveryCompleted</div>
</div>
<div class="tr">
  <div id="date"></div><div id="time"></div><div id="area"></div><div id="action"></div>
</div>
</body></html>`

func TestCourierCenterAdapter_Supports(t *testing.T) {
	a := NewCourierCenterAdapter("https://courier.gr/track/result")
	assert.True(t, a.Supports(domain.CourierCenter))
	assert.False(t, a.Supports(domain.CourierSpeedex))
}

func TestCourierCenterAdapter_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CC12345678", r.URL.Query().Get("tracknr"))
		w.Write([]byte(courierCenterResultHTML))
	}))
	defer server.Close()

	a := NewCourierCenterAdapter(server.URL)
	raw, err := a.Fetch(context.Background(), "CC12345678")
	require.NoError(t, err)

	// Header row and the empty-date row are skipped.
	require.Len(t, raw.Events, 2)
	assert.Equal(t, "14/01/2025", raw.Events[0].Date)
	assert.Equal(t, "09:15", raw.Events[0].Time)
	assert.Equal(t, "ΑΘΗΝΑ", raw.Events[0].Location)
	assert.Equal(t, "Received", raw.Events[0].RawStatus)

	assert.Equal(t, "DeliveryCompleted", raw.Status)
	assert.True(t, raw.Delivered)
}

func TestCourierCenterAdapter_Fetch_InTransitBanner(t *testing.T) {
	page := `<html><body>
<div class="status">InTransit</div>
<div class="tr"><div id="date">h</div></div>
<div class="tr">
  <div id="date">14/01/2025</div><div id="time">09:15</div><div id="area">ΑΘΗΝΑ</div><div id="action">InTransit</div>
</div>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	a := NewCourierCenterAdapter(server.URL)
	raw, err := a.Fetch(context.Background(), "CC12345678")
	require.NoError(t, err)
	assert.Equal(t, "InTransit", raw.Status)
	assert.False(t, raw.Delivered)
}

func TestCourierCenterAdapter_Fetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h4 class="error">Λάθος αριθμός αποστολής</h4></body></html>`))
	}))
	defer server.Close()

	a := NewCourierCenterAdapter(server.URL)
	_, err := a.Fetch(context.Background(), "CC12345678")
	assert.True(t, errors.Is(err, ports.ErrNotFound))
}
