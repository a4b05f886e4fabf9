package detect

import (
	"regexp"
	"strings"

	"greek-courier-tracker/internal/features/tracking/domain"
)

// rule pairs a tracking-number pattern with the courier it identifies.
type rule struct {
	pattern *regexp.Regexp
	courier domain.Courier
}

// Rules are evaluated in order because the formats overlap: prefixed
// formats must win over bare-digit ones, and the 10-digit ACS rule must be
// tried before the 12-digit SpeedEx rule.
var rules = []rule{
	{regexp.MustCompile(`^(SE|EL)\d{9}GR$`), domain.CourierElta},
	{regexp.MustCompile(`^SP\d{8,10}$`), domain.CourierSpeedex},
	{regexp.MustCompile(`^BN\d{8,10}$`), domain.CourierBoxNow},
	{regexp.MustCompile(`^CC\d{8,10}$`), domain.CourierCenter},
	{regexp.MustCompile(`^GT\d{9,11}$`), domain.CourierGeniki},
	{regexp.MustCompile(`^\d{10}$`), domain.CourierACS},
	{regexp.MustCompile(`^\d{12}$`), domain.CourierSpeedex},
}

// Detect infers the courier that owns a tracking number from its lexical
// shape. Matching is case-insensitive. It returns CourierUnknown rather
// than failing; callers decide how to surface unrecognized formats.
func Detect(raw string) domain.Courier {
	tn := strings.ToUpper(strings.TrimSpace(raw))
	if tn == "" {
		return domain.CourierUnknown
	}

	for _, r := range rules {
		if r.pattern.MatchString(tn) {
			return r.courier
		}
	}
	return domain.CourierUnknown
}

// Normalize returns the canonical form of a tracking number: trimmed and
// upper-cased, the way adapters and the store key it.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
