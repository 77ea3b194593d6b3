// Package types defines the shared data model for the lead prospector.
package types

// Sentinel values the model is instructed to use for fields it cannot fill.
// Downstream consumers (enrichment, filters, export) must treat these as absent.
const (
	// NotAvailable marks a textual field the model could not source.
	NotAvailable = "Não disponível"
	// NotAvailableOnMaps marks a maps-derived field missing from the maps tool output.
	NotAvailableOnMaps = "Não disponível no Maps"
)

// IsSentinel reports whether a field value is one of the absent-value sentinels.
func IsSentinel(v string) bool {
	return v == "" || v == NotAvailable || v == NotAvailableOnMaps
}

// ContactRecord is one business lead returned by a prospecting search.
type ContactRecord struct {
	Name        string  `json:"nome"`
	Phone       string  `json:"telefone"`
	HasWhatsApp bool    `json:"whatsapp"`
	Email       string  `json:"email"`
	Website     string  `json:"website"`
	Instagram   string  `json:"instagram"`
	Facebook    string  `json:"facebook"`
	LinkedIn    string  `json:"linkedin,omitempty"`
	Address     string  `json:"endereco"`
	MapsLink    string  `json:"link_maps"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	WebSummary  string  `json:"web_summary,omitempty"`
}

// CompletenessScore counts how many social/web fields hold real values.
// Used to surface the most enriched leads first when deep search is active.
func (c ContactRecord) CompletenessScore() int {
	score := 0
	for _, v := range []string{c.Website, c.Instagram, c.Facebook, c.LinkedIn} {
		if !IsSentinel(v) {
			score++
		}
	}
	return score
}
