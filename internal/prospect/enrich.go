package prospect

import (
	"strings"

	"github.com/jonathan/lead-prospector/internal/llm"
	"github.com/jonathan/lead-prospector/internal/types"
)

// EnrichFromCitations cross-references grounding citations against the
// parsed contacts and backfills MapsLink/Website from matched citations.
// A field is only filled while it still holds the absent sentinel; a value
// the model supplied is never overwritten. Matching is best-effort: no
// match is not an error.
func EnrichFromCitations(contacts []types.ContactRecord, citations []llm.Citation) {
	for i := range contacts {
		match := matchCitation(contacts[i].Name, citations)
		if match == nil {
			continue
		}
		if match.Source == "maps" && types.IsSentinel(contacts[i].MapsLink) {
			contacts[i].MapsLink = match.URI
		}
		if match.Source == "web" && types.IsSentinel(contacts[i].Website) {
			contacts[i].Website = match.URI
		}
	}
}

// matchCitation finds the first citation whose title fuzzily matches the
// contact name (case-insensitive substring in either direction). Returns
// nil when nothing matches.
func matchCitation(name string, citations []llm.Citation) *llm.Citation {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return nil
	}

	for i := range citations {
		title := strings.ToLower(strings.TrimSpace(citations[i].Title))
		if title == "" {
			continue
		}
		if strings.Contains(target, title) || strings.Contains(title, target) {
			return &citations[i]
		}
	}
	return nil
}
