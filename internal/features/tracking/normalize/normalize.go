package normalize

import (
	"sort"
	"strings"
	"time"

	"greek-courier-tracker/internal/features/tracking/domain"
)

// mapping is a normalized status entry: English display text plus category.
type mapping struct {
	text     string
	category domain.StatusCategory
}

// Per-courier exact tables, keyed by folded (lower-case, accent-stripped)
// raw status. Upper-case Greek drops accents while lower-case keeps them,
// so folding is required for exact matching to work at all.
var exactTables = map[domain.Courier]map[string]mapping{
	domain.CourierElta: {
		"αποστολη παραδοθηκε":                    {"Delivered", domain.CategoryDelivered},
		"αποστολη παραδοθηκε σε":                 {"Delivered to", domain.CategoryDelivered},
		"αποστολη βρισκεται σε σταδιο μεταφορασ": {"In Transit", domain.CategoryInTransit},
		"δημιουργια συ.δε.τα.":                   {"Shipment Created", domain.CategoryCreated},
		"παραλαβη απο":                           {"Picked up by", domain.CategoryInTransit},
	},
	domain.CourierACS: {
		"η αποστολη παρεληφθη":             {"Shipment Received", domain.CategoryCreated},
		"η αποστολη παραδοθηκε":            {"Delivered", domain.CategoryDelivered},
		"η αποστολη βρισκεται σε διακινηση": {"In Transit", domain.CategoryInTransit},
	},
	domain.CourierSpeedex: {
		"η αποστολη παραδοθηκε": {"Delivered", domain.CategoryDelivered},
		"σε μεταφορα":           {"In Transit", domain.CategoryInTransit},
		"παραλαβη":              {"Picked Up", domain.CategoryInTransit},
		"αποστολη":              {"Shipped", domain.CategoryInTransit},
	},
	domain.CourierGeniki: {
		"παραδοση":   {"Delivered", domain.CategoryDelivered},
		"μεταφορα":   {"In Transit", domain.CategoryInTransit},
		"παραλαβη":   {"Picked Up", domain.CategoryInTransit},
		"κρατηση":    {"Held", domain.CategoryInTransit},
		"επιστροφη":  {"Returned", domain.CategoryUnknown},
	},
	domain.CourierCenter: {
		"deliverycompleted": {"Delivered", domain.CategoryDelivered},
		"intransit":         {"In Transit", domain.CategoryInTransit},
		"received":          {"Received", domain.CategoryCreated},
		"outfordelivery":    {"Out for Delivery", domain.CategoryInTransit},
	},
	domain.CourierBoxNow: {
		"new":               {"New Order", domain.CategoryCreated},
		"in-depot":          {"In Depot", domain.CategoryInTransit},
		"final-destination": {"At Destination Locker", domain.CategoryInTransit},
		"delivered":         {"Delivered", domain.CategoryDelivered},
		"expired":           {"Expired", domain.CategoryUnknown},
		"returned":          {"Returned", domain.CategoryUnknown},
	},
}

// keywordRule is a substring fallback for courier wording drift. Rules are
// ordered: delivery confirmation wins over transit wins over creation.
type keywordRule struct {
	keyword  string
	category domain.StatusCategory
}

var keywordRules = []keywordRule{
	{"παραδοθηκ", domain.CategoryDelivered},
	{"παραδοση", domain.CategoryDelivered},
	{"deliverycompleted", domain.CategoryDelivered},
	{"delivered", domain.CategoryDelivered},
	{"μεταφορ", domain.CategoryInTransit},
	{"διανομ", domain.CategoryInTransit},
	{"διακινησ", domain.CategoryInTransit},
	{"παραλαβη", domain.CategoryInTransit},
	{"transit", domain.CategoryInTransit},
	{"depot", domain.CategoryInTransit},
	{"destination", domain.CategoryInTransit},
	{"δημιουργ", domain.CategoryCreated},
	{"συ.δε.τα", domain.CategoryCreated},
	{"καταχωρ", domain.CategoryCreated},
	{"παρεληφθη", domain.CategoryCreated},
	{"received", domain.CategoryCreated},
}

// accentFold maps accented Greek letters to their bare forms.
var accentFold = strings.NewReplacer(
	"ά", "α", "έ", "ε", "ή", "η", "ί", "ι", "ό", "ο", "ύ", "υ", "ώ", "ω",
	"ϊ", "ι", "ΐ", "ι", "ϋ", "υ", "ΰ", "υ", "ς", "σ",
)

// fold lower-cases a status string and strips Greek accents so that
// upper-case and lower-case source text compare equal.
func fold(s string) string {
	return accentFold.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Normalize maps a raw courier status string to an English display text
// and a canonical category. Exact per-courier matches are tried first,
// then the ordered keyword fallback. Unmatched strings pass through
// unchanged with CategoryUnknown, never dropped.
func Normalize(courier domain.Courier, raw string) (string, domain.StatusCategory) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", domain.CategoryUnknown
	}

	folded := fold(trimmed)

	if table, ok := exactTables[courier]; ok {
		if m, ok := table[folded]; ok {
			return m.text, m.category
		}
	}

	for _, r := range keywordRules {
		if strings.Contains(folded, r.keyword) {
			return trimmed, r.category
		}
	}

	return trimmed, domain.CategoryUnknown
}

// Event date layouts seen across the six couriers.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
}

// ParseEventTime combines courier-local date and time strings into a
// time.Time. The zero value is returned when the date is unparseable; a
// missing or unparseable time degrades to midnight of the parsed date.
func ParseEventTime(date, clock string) time.Time {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}
	}

	var day time.Time
	var err error
	for _, layout := range dateLayouts {
		day, err = time.Parse(layout, date)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}
	}

	clock = strings.TrimSpace(clock)
	if clock == "" {
		return day
	}
	for _, layout := range timeLayouts {
		t, terr := time.Parse(layout, clock)
		if terr == nil {
			return day.Add(time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second)
		}
	}
	return day
}

// SortEvents orders events chronologically ascending with a stable sort.
// Events without a parseable timestamp keep their original position; only
// events with valid timestamps participate in ordering comparisons.
func SortEvents(events []domain.TrackingEvent) []domain.TrackingEvent {
	out := make([]domain.TrackingEvent, len(events))
	copy(out, events)

	slots := make([]int, 0, len(events))
	valid := make([]domain.TrackingEvent, 0, len(events))
	for i, e := range out {
		if !e.Timestamp.IsZero() {
			slots = append(slots, i)
			valid = append(valid, e)
		}
	}

	sort.SliceStable(valid, func(a, b int) bool {
		return valid[a].Timestamp.Before(valid[b].Timestamp)
	})

	for k, i := range slots {
		out[i] = valid[k]
	}
	return out
}

// Apply fills the normalized Status and Timestamp fields of every event.
func Apply(courier domain.Courier, events []domain.TrackingEvent) []domain.TrackingEvent {
	out := make([]domain.TrackingEvent, len(events))
	for i, e := range events {
		e.Status, _ = Normalize(courier, e.RawStatus)
		if e.Timestamp.IsZero() {
			e.Timestamp = ParseEventTime(e.Date, e.Time)
		}
		out[i] = e
	}
	return out
}
