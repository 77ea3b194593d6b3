package prospect

import (
	"context"

	"github.com/jonathan/lead-prospector/internal/types"
)

// SiteEnricher augments contacts by visiting their websites. It is only
// consulted when the search requests deep cross-referencing.
// *websearch.Enricher satisfies it.
type SiteEnricher interface {
	Enrich(ctx context.Context, contacts []types.ContactRecord, params types.SearchParams) []types.ContactRecord
}

// Service is the full search pipeline: accumulate batches from the
// grounded model, then optionally scrape prospect sites for channels the
// model missed.
type Service struct {
	accumulator *Accumulator
	enricher    SiteEnricher
}

// NewService composes an accumulator with an optional site enricher.
func NewService(accumulator *Accumulator, enricher SiteEnricher) *Service {
	return &Service{accumulator: accumulator, enricher: enricher}
}

// Search runs one accumulated search and, for deep searches, enriches the
// collected contacts from their websites.
func (s *Service) Search(ctx context.Context, params types.SearchParams) ([]types.ContactRecord, error) {
	contacts, err := s.accumulator.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	if s.enricher != nil && params.DeepSearchEnabled() && len(contacts) > 0 {
		contacts = s.enricher.Enrich(ctx, contacts, params)
	}

	return contacts, nil
}
