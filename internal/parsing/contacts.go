// Package parsing turns raw model output into validated contact records.
// The model responds with a JSON array of businesses, usually (but not
// reliably) inside a fenced code block; this package locates the array,
// repairs the common formatting defects models emit, and maps each entry
// to a ContactRecord with sentinel defaults for missing fields.
package parsing

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/lead-prospector/internal/types"
)

var fencedArrayRe = regexp.MustCompile("(?s)```json\\s*(\\[.*?\\])\\s*```")

// ExtractContacts parses raw model output into contact records. It never
// fails: any malformed input yields an empty slice. Use
// ExtractContactsWithReport when the caller wants the parse diagnostic.
func ExtractContacts(raw string) []types.ContactRecord {
	contacts, _ := ExtractContactsWithReport(raw)
	return contacts
}

// ExtractContactsWithReport parses raw model output into contact records and
// reports the cause when nothing could be parsed. The returned error is a
// non-fatal diagnostic for logging; callers must treat an empty result as a
// valid outcome either way.
func ExtractContactsWithReport(raw string) ([]types.ContactRecord, error) {
	arrayText := locateArray(raw)
	if arrayText == "" {
		return []types.ContactRecord{}, &ParseDiagnostic{Message: "no JSON array found in response"}
	}

	cleaned := Sanitize(arrayText)

	var entries []any
	if err := json.Unmarshal([]byte(cleaned), &entries); err != nil {
		return []types.ContactRecord{}, &ParseDiagnostic{Message: "response array is not valid JSON", Cause: err}
	}

	contacts := make([]types.ContactRecord, 0, len(entries))
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name := stringValue(obj, "nome", "name")
		if name == "" {
			// Model noise, not an error.
			continue
		}
		contacts = append(contacts, mapContact(name, obj))
	}

	return contacts, nil
}

// locateArray finds the first JSON array in the text, preferring a fenced
// ```json block and falling back to the first bracket-delimited literal
// anywhere in the prose. Only the first match is used even when the
// response contains several arrays.
func locateArray(raw string) string {
	if m := fencedArrayRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if start := strings.IndexByte(raw, '['); start >= 0 {
		return scanArray(raw[start:])
	}
	return ""
}

// scanArray extracts a balanced bracket-delimited array from the start of
// text, tracking string literals and escapes so brackets inside values do
// not terminate the scan. Returns "" if the array never closes.
func scanArray(text string) string {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}

	return ""
}

// mapContact builds a ContactRecord from one parsed entry, applying the
// sentinel and default rules.
func mapContact(name string, obj map[string]any) types.ContactRecord {
	c := types.ContactRecord{
		Name:        name,
		Phone:       stringOrSentinel(obj, "telefone", types.NotAvailable),
		HasWhatsApp: truthy(obj["whatsapp"]),
		Email:       stringOrSentinel(obj, "email", types.NotAvailable),
		Website:     stringOrSentinel(obj, "website", types.NotAvailable),
		Instagram:   stringOrSentinel(obj, "instagram", types.NotAvailable),
		Facebook:    stringOrSentinel(obj, "facebook", types.NotAvailable),
		LinkedIn:    stringOrSentinel(obj, "linkedin", types.NotAvailable),
		Address:     stringOrSentinel(obj, "endereco", types.NotAvailable),
		MapsLink:    stringOrSentinel(obj, "link_maps", types.NotAvailableOnMaps),
		WebSummary:  stringValue(obj, "web_summary"),
	}

	// Numeric fields accept JSON numbers only; strings stay at the default.
	if rating, ok := obj["rating"].(float64); ok {
		c.Rating = clampRating(rating)
	}
	if reviews, ok := obj["reviewCount"].(float64); ok && reviews > 0 {
		c.ReviewCount = int(reviews)
	}

	return c
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

// stringValue returns the first non-empty string value among the given keys.
func stringValue(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// stringOrSentinel returns the string value for key, or the sentinel when
// the field is absent, empty, or not a string.
func stringOrSentinel(obj map[string]any, key, sentinel string) string {
	if s, ok := obj[key].(string); ok && s != "" {
		return s
	}
	return sentinel
}

// truthy applies loose boolean coercion to whatever the model supplied for
// a flag field: false, 0, "", "false" and null are false, anything else true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != "" && t != "false" && t != "não" && t != "nao"
	default:
		return true
	}
}
