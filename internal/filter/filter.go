// Package filter provides client-side predicate filtering over a result
// set. It never calls upstream; it only narrows what a search collected.
package filter

import (
	"sort"
	"strings"

	"github.com/jonathan/lead-prospector/internal/types"
)

// WhatsAppMode narrows results by messaging-app availability.
type WhatsAppMode string

// WhatsApp filter modes.
const (
	WhatsAppAll     WhatsAppMode = "all"
	WhatsAppWith    WhatsAppMode = "with_whatsapp"
	WhatsAppWithout WhatsAppMode = "no_whatsapp"
)

// RatingMode narrows results by rating band.
type RatingMode string

// Rating filter modes. Positive means rating >= 4.0.
const (
	RatingAll      RatingMode = "all"
	RatingPositive RatingMode = "positive"
	RatingNegative RatingMode = "negative"
)

// positiveRatingThreshold splits the positive/negative rating bands.
const positiveRatingThreshold = 4.0

// Filters is the composed predicate applied to a result set.
type Filters struct {
	Name       string
	DDD        string // two-digit Brazilian area code prefix
	WhatsApp   WhatsAppMode
	Rating     RatingMode
	MinReviews int
}

// Apply returns the contacts matching every active filter.
func Apply(contacts []types.ContactRecord, f Filters) []types.ContactRecord {
	out := make([]types.ContactRecord, 0, len(contacts))
	for _, c := range contacts {
		if matches(c, f) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c types.ContactRecord, f Filters) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Name)) {
		return false
	}

	if f.DDD != "" && !strings.HasPrefix(phoneDigits(c.Phone), f.DDD) {
		return false
	}

	switch f.WhatsApp {
	case WhatsAppWith:
		if !c.HasWhatsApp {
			return false
		}
	case WhatsAppWithout:
		if c.HasWhatsApp {
			return false
		}
	}

	switch f.Rating {
	case RatingPositive:
		if c.Rating < positiveRatingThreshold {
			return false
		}
	case RatingNegative:
		if c.Rating >= positiveRatingThreshold {
			return false
		}
	}

	if f.MinReviews > 0 && c.ReviewCount < f.MinReviews {
		return false
	}

	return true
}

// AvailableDDDs returns the sorted set of two-digit area codes present in
// the results, for building the filter dropdown.
func AvailableDDDs(contacts []types.ContactRecord) []string {
	seen := make(map[string]bool)
	for _, c := range contacts {
		digits := phoneDigits(c.Phone)
		if len(digits) >= 2 {
			seen[digits[:2]] = true
		}
	}

	ddds := make([]string, 0, len(seen))
	for ddd := range seen {
		ddds = append(ddds, ddd)
	}
	sort.Strings(ddds)
	return ddds
}

// phoneDigits strips everything but digits from a phone field. Sentinel
// values produce an empty string and never match a DDD filter.
func phoneDigits(phone string) string {
	if types.IsSentinel(phone) {
		return ""
	}
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
