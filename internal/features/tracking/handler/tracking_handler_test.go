package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"greek-courier-tracker/internal/features/tracking/domain"
	"greek-courier-tracker/internal/features/tracking/ports"
	"greek-courier-tracker/internal/features/tracking/service"
	"greek-courier-tracker/internal/features/tracking/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider serves a canned result for one courier.
type mockProvider struct {
	courier domain.Courier
	raw     *domain.RawTracking
	err     error
}

func (m *mockProvider) Supports(c domain.Courier) bool {
	return c == m.courier
}

func (m *mockProvider) Fetch(_ context.Context, _ string) (*domain.RawTracking, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.raw, nil
}

func newTestApp(providers []ports.CourierProvider) (*fiber.App, *service.Coordinator) {
	coordinator := service.NewCoordinator(providers, store.NewMemoryStore(), time.Second, 2)
	h := NewTrackingHandler(coordinator)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Get("/tracking", h.ListSnapshots)
	app.Post("/tracking", h.Register)
	app.Get("/tracking/:number", h.GetSnapshot)
	app.Delete("/tracking/:number", h.Deregister)
	app.Post("/refresh", h.Refresh)
	app.Get("/detect/:number", h.Detect)

	return app, coordinator
}

func TestTrackingHandler_ListSnapshots_Empty(t *testing.T) {
	app, _ := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/tracking", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result []domain.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Empty(t, result)
}

func TestTrackingHandler_Register_ThenList(t *testing.T) {
	provider := &mockProvider{
		courier: domain.CourierSpeedex,
		raw: &domain.RawTracking{Events: []domain.TrackingEvent{
			{Date: "15/01/2025", Time: "14:30", Location: "ΠΑΤΡΑ", RawStatus: "Η αποστολή παραδόθηκε"},
		}},
	}
	app, coordinator := newTestApp([]ports.CourierProvider{provider})

	body := `{"items":[{"tracking_number":"sp12345678","name":"Shoes"}]}`
	req := httptest.NewRequest("POST", "/tracking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []service.TrackedItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "SP12345678", items[0].TrackingNumber)
	assert.Equal(t, "Shoes", items[0].DisplayName)

	coordinator.RefreshCycle(context.Background())

	resp, err = app.Test(httptest.NewRequest("GET", "/tracking", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var snapshots []domain.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshots))
	require.Len(t, snapshots, 1)
	assert.Equal(t, "Delivered", snapshots[0].Status)
	assert.True(t, snapshots[0].Delivered)
}

func TestTrackingHandler_Register_UnrecognizedFormat(t *testing.T) {
	app, _ := newTestApp(nil)

	body := `{"items":[{"tracking_number":"NOPE-1"}]}`
	req := httptest.NewRequest("POST", "/tracking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Contains(t, result.Message, "NOPE-1")
	assert.Equal(t, "test-ray-id", result.RayID)
}

func TestTrackingHandler_Register_EmptyBody(t *testing.T) {
	app, _ := newTestApp(nil)

	req := httptest.NewRequest("POST", "/tracking", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTrackingHandler_GetSnapshot(t *testing.T) {
	provider := &mockProvider{courier: domain.CourierACS, raw: &domain.RawTracking{Delivered: true}}
	app, coordinator := newTestApp([]ports.CourierProvider{provider})

	require.NoError(t, coordinator.Configure(context.Background(),
		[]service.TrackedItem{{TrackingNumber: "1234567890"}}))
	coordinator.RefreshCycle(context.Background())

	resp, err := app.Test(httptest.NewRequest("GET", "/tracking/1234567890", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var snap domain.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "1234567890", snap.TrackingNumber)
	assert.Equal(t, domain.CourierACS, snap.Courier)
	assert.True(t, snap.Delivered)
}

func TestTrackingHandler_GetSnapshot_NotFound(t *testing.T) {
	app, _ := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/tracking/1234567890", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var result ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "test-ray-id", result.RayID)
}

func TestTrackingHandler_Deregister(t *testing.T) {
	provider := &mockProvider{courier: domain.CourierACS, raw: &domain.RawTracking{}}
	app, coordinator := newTestApp([]ports.CourierProvider{provider})

	require.NoError(t, coordinator.Configure(context.Background(),
		[]service.TrackedItem{{TrackingNumber: "1234567890"}}))
	coordinator.RefreshCycle(context.Background())

	resp, err := app.Test(httptest.NewRequest("DELETE", "/tracking/1234567890", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/tracking/1234567890", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTrackingHandler_Refresh(t *testing.T) {
	speedex := &mockProvider{
		courier: domain.CourierSpeedex,
		raw: &domain.RawTracking{Events: []domain.TrackingEvent{
			{Date: "15/01/2025", RawStatus: "Η αποστολή παραδόθηκε"},
		}},
	}
	app, coordinator := newTestApp([]ports.CourierProvider{speedex})

	require.NoError(t, coordinator.Configure(context.Background(), []service.TrackedItem{
		{TrackingNumber: "SP12345678"},
		{TrackingNumber: "GT123456789"},
	}))

	resp, err := app.Test(httptest.NewRequest("POST", "/refresh", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var results []RefreshItemResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	require.Len(t, results, 2)

	// Ordered by tracking number: GT before SP.
	assert.Equal(t, "GT123456789", results[0].TrackingNumber)
	assert.NotEmpty(t, results[0].Error)
	assert.Nil(t, results[0].Snapshot)

	assert.Equal(t, "SP12345678", results[1].TrackingNumber)
	assert.Empty(t, results[1].Error)
	require.NotNil(t, results[1].Snapshot)
	assert.Equal(t, "Delivered", results[1].Snapshot.Status)
}

func TestTrackingHandler_Detect(t *testing.T) {
	app, _ := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/detect/se123456789gr", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result DetectResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "SE123456789GR", result.TrackingNumber)
	assert.Equal(t, domain.CourierElta, result.Courier)
	assert.Equal(t, "ELTA Courier", result.CourierName)
}

func TestTrackingHandler_Detect_Unknown(t *testing.T) {
	app, _ := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/detect/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
