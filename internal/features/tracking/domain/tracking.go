package domain

import "time"

// Courier identifies one of the supported Greek courier networks.
type Courier string

const (
	// CourierElta is ELTA Courier (Hellenic Post subsidiary).
	CourierElta Courier = "elta"
	// CourierACS is ACS Courier.
	CourierACS Courier = "acs"
	// CourierSpeedex is SpeedEx.
	CourierSpeedex Courier = "speedex"
	// CourierBoxNow is the Box Now locker network.
	CourierBoxNow Courier = "boxnow"
	// CourierCenter is Courier Center (courier.gr).
	CourierCenter Courier = "couriercenter"
	// CourierGeniki is Geniki Taxydromiki.
	CourierGeniki Courier = "geniki"
	// CourierUnknown marks a tracking number whose format was not recognized.
	CourierUnknown Courier = "unknown"
)

var courierNames = map[Courier]string{
	CourierElta:    "ELTA Courier",
	CourierACS:     "ACS Courier",
	CourierSpeedex: "SpeedEx",
	CourierBoxNow:  "Box Now",
	CourierCenter:  "Courier Center",
	CourierGeniki:  "Geniki Taxydromiki",
	CourierUnknown: "Unknown Courier",
}

// DisplayName returns the human-readable courier name.
func (c Courier) DisplayName() string {
	if name, ok := courierNames[c]; ok {
		return name
	}
	return string(c)
}

// StatusCategory is the canonical lifecycle bucket for a shipment.
type StatusCategory string

const (
	// CategoryCreated means the shipment is registered but has not moved yet.
	CategoryCreated StatusCategory = "created"
	// CategoryInTransit means the shipment is moving through the network.
	CategoryInTransit StatusCategory = "in_transit"
	// CategoryDelivered means the shipment reached the recipient.
	CategoryDelivered StatusCategory = "delivered"
	// CategoryUnknown is used for unrecognized or absent status information.
	CategoryUnknown StatusCategory = "unknown"
)

// TrackingEvent is a single scan event in a shipment's history.
type TrackingEvent struct {
	// Date is the courier-local event date as reported by the source.
	Date string `json:"date"`
	// Time is the courier-local event time, empty when the source omits it.
	Time string `json:"time,omitempty"`
	// Location is free-text place information, may be empty.
	Location string `json:"location,omitempty"`
	// RawStatus is the original courier status string (usually Greek).
	RawStatus string `json:"raw_status"`
	// Status is the normalized English status text.
	Status string `json:"status"`
	// Timestamp is the parsed event time. Zero when Date/Time could not be
	// parsed; such events are excluded from ordering comparisons.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// RawTracking is what a courier adapter returns before normalization.
type RawTracking struct {
	// Events holds the scan events in the order the source emitted them.
	Events []TrackingEvent
	// Status is the courier-reported overall status, empty when the source
	// only reports per-event statuses.
	Status string
	// Delivered is set when the courier reports delivery explicitly
	// (e.g. the ACS isDelivered flag) rather than via status text.
	Delivered bool
}

// Snapshot is the latest normalized state for one tracking number.
// It is replaced wholesale on every successful refresh, never merged.
type Snapshot struct {
	// TrackingNumber is the courier-issued shipment identifier.
	TrackingNumber string `json:"tracking_number"`
	// Courier is the matched courier identifier.
	Courier Courier `json:"courier"`
	// CourierName is the human-readable courier name.
	CourierName string `json:"courier_name"`
	// Status is the normalized English text of the most recent status.
	Status string `json:"status"`
	// StatusCategory is the canonical lifecycle bucket of Status.
	StatusCategory StatusCategory `json:"status_category"`
	// Events is the event history, chronological ascending (most-recent-last).
	Events []TrackingEvent `json:"events"`
	// LatestDate is the date of the most recent event.
	LatestDate string `json:"latest_date,omitempty"`
	// LatestTime is the time of the most recent event.
	LatestTime string `json:"latest_time,omitempty"`
	// LatestPlace is the location of the most recent event.
	LatestPlace string `json:"latest_place,omitempty"`
	// Delivered is true iff StatusCategory is CategoryDelivered.
	Delivered bool `json:"delivered"`
	// LastUpdated is when this snapshot was produced.
	LastUpdated time.Time `json:"last_updated"`
}

// LatestEvent returns the most recent event, or nil when there are none.
func (s *Snapshot) LatestEvent() *TrackingEvent {
	if len(s.Events) == 0 {
		return nil
	}
	return &s.Events[len(s.Events)-1]
}
