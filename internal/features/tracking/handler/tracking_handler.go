package handler

import (
	"fmt"

	"greek-courier-tracker/internal/features/tracking/detect"
	"greek-courier-tracker/internal/features/tracking/domain"
	"greek-courier-tracker/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
)

// TrackingHandler handles HTTP requests for shipment tracking.
type TrackingHandler struct {
	coordinator *service.Coordinator
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(coordinator *service.Coordinator) *TrackingHandler {
	return &TrackingHandler{
		coordinator: coordinator,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// RegisterRequest is the body of POST /tracking.
type RegisterRequest struct {
	Items []service.TrackedItem `json:"items"`
}

// DetectResponse is the body of GET /detect/{number}.
type DetectResponse struct {
	TrackingNumber string         `json:"tracking_number"`
	Courier        domain.Courier `json:"courier"`
	CourierName    string         `json:"courier_name"`
}

// RefreshItemResponse is the per-item outcome of POST /refresh.
type RefreshItemResponse struct {
	TrackingNumber string           `json:"tracking_number"`
	Courier        domain.Courier   `json:"courier"`
	Snapshot       *domain.Snapshot `json:"snapshot,omitempty"`
	Error          string           `json:"error,omitempty"`
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// ListSnapshots godoc
// @Summary List all tracking snapshots
// @Description Returns the latest known snapshot for every tracked shipment
// @Tags tracking
// @Produce json
// @Success 200 {array} domain.Snapshot
// @Failure 500 {object} ErrorResponse
// @Router /tracking [get]
func (h *TrackingHandler) ListSnapshots(c *fiber.Ctx) error {
	snapshots, err := h.coordinator.Snapshots(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}
	return c.JSON(snapshots)
}

// GetSnapshot godoc
// @Summary Get the snapshot for one tracking number
// @Tags tracking
// @Produce json
// @Param number path string true "Tracking Number"
// @Success 200 {object} domain.Snapshot
// @Failure 404 {object} ErrorResponse
// @Router /tracking/{number} [get]
func (h *TrackingHandler) GetSnapshot(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "tracking number is required",
			RayID:   rayID(c),
		})
	}

	snap, err := h.coordinator.Snapshot(c.Context(), number)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}
	if snap == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "no snapshot for tracking number",
			RayID:   rayID(c),
		})
	}
	return c.JSON(snap)
}

// Register godoc
// @Summary Register tracking numbers
// @Description Adds tracking numbers to the tracked set. Numbers whose format matches no known courier are rejected.
// @Tags tracking
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Tracking numbers to register"
// @Success 200 {array} service.TrackedItem
// @Failure 400 {object} ErrorResponse
// @Router /tracking [post]
func (h *TrackingHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "at least one tracking number is required",
			RayID:   rayID(c),
		})
	}

	for _, item := range req.Items {
		if detect.Detect(item.TrackingNumber) == domain.CourierUnknown {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: fmt.Sprintf("unrecognized tracking number format: %s", item.TrackingNumber),
				RayID:   rayID(c),
			})
		}
	}

	h.coordinator.Register(req.Items)
	return c.JSON(h.coordinator.Items())
}

// Deregister godoc
// @Summary Deregister a tracking number
// @Description Removes a tracking number and its stored snapshot
// @Tags tracking
// @Param number path string true "Tracking Number"
// @Success 204
// @Failure 500 {object} ErrorResponse
// @Router /tracking/{number} [delete]
func (h *TrackingHandler) Deregister(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "tracking number is required",
			RayID:   rayID(c),
		})
	}

	if err := h.coordinator.Deregister(c.Context(), number); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Refresh godoc
// @Summary Run one refresh cycle
// @Description Fetches every configured tracking number once and returns the per-item outcomes
// @Tags tracking
// @Produce json
// @Success 200 {array} RefreshItemResponse
// @Router /refresh [post]
func (h *TrackingHandler) Refresh(c *fiber.Ctx) error {
	results := h.coordinator.RefreshCycle(c.Context())

	out := make([]RefreshItemResponse, 0, len(results))
	for _, item := range h.coordinator.Items() {
		r, ok := results[item.TrackingNumber]
		if !ok {
			continue
		}
		resp := RefreshItemResponse{
			TrackingNumber: r.TrackingNumber,
			Courier:        r.Courier,
			Snapshot:       r.Snapshot,
		}
		if r.Err != nil {
			resp.Error = r.Err.Error()
		}
		out = append(out, resp)
	}
	return c.JSON(out)
}

// Detect godoc
// @Summary Detect the courier for a tracking number
// @Tags tracking
// @Produce json
// @Param number path string true "Tracking Number"
// @Success 200 {object} DetectResponse
// @Failure 404 {object} ErrorResponse
// @Router /detect/{number} [get]
func (h *TrackingHandler) Detect(c *fiber.Ctx) error {
	number := c.Params("number")
	courier := detect.Detect(number)
	if courier == domain.CourierUnknown {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: service.ErrUnrecognizedNumber.Error(),
			RayID:   rayID(c),
		})
	}
	return c.JSON(DetectResponse{
		TrackingNumber: detect.Normalize(number),
		Courier:        courier,
		CourierName:    courier.DisplayName(),
	})
}
