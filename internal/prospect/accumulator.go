package prospect

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/jonathan/lead-prospector/internal/types"
)

// BatchFetcher is the single-round contract the accumulator drives.
// *Client satisfies it; tests substitute fakes.
type BatchFetcher interface {
	FetchBatch(ctx context.Context, params types.SearchParams, exclusions []string, targetCount int) ([]types.ContactRecord, error)
}

// AccumulatorOptions holds the tunable pagination policy. The invariants —
// no duplicate names, bounded upstream calls — hold for any values.
type AccumulatorOptions struct {
	// StandardTarget is the contact goal for plain searches.
	StandardTarget int
	// DeepTarget is the lower goal used when deep search is active, since
	// enrichment is slower and costlier per item.
	DeepTarget int
	// MaxRounds bounds the number of upstream calls per search.
	MaxRounds int
	// RoundPause is the wait between rounds while under target.
	RoundPause time.Duration
	// Sleep is injectable for tests; defaults to a context-aware wait.
	Sleep func(ctx context.Context, d time.Duration)
	// Verbose enables per-round progress logging.
	Verbose bool
}

// DefaultAccumulatorOptions returns the production pagination policy.
func DefaultAccumulatorOptions() *AccumulatorOptions {
	return &AccumulatorOptions{
		StandardTarget: 50,
		DeepTarget:     30,
		MaxRounds:      3,
		RoundPause:     1500 * time.Millisecond,
	}
}

// minBatchRequest is the floor for a round's requested count; requesting
// fewer is not worth an upstream call.
const minBatchRequest = 10

// overRequestMargin is added to the needed count to absorb duplicate and
// invalid entries the model returns.
const overRequestMargin = 5

// Accumulator drives the prospect client across multiple rounds to reach a
// target contact count, deduplicating by business name and growing the
// exclusion list each round.
type Accumulator struct {
	fetcher BatchFetcher
	opts    AccumulatorOptions
}

// NewAccumulator creates a search accumulator over the given fetcher.
func NewAccumulator(fetcher BatchFetcher, opts *AccumulatorOptions) *Accumulator {
	if opts == nil {
		opts = DefaultAccumulatorOptions()
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	return &Accumulator{fetcher: fetcher, opts: *opts}
}

// Search collects contacts until the target count is reached, the round
// budget is exhausted, or a round makes no forward progress. Partial
// results are a valid outcome: the model has no completeness guarantee.
// An error thrown mid-round aborts the whole search; rounds are atomic.
func (a *Accumulator) Search(ctx context.Context, params types.SearchParams) ([]types.ContactRecord, error) {
	target := a.opts.StandardTarget
	deep := params.DeepSearchEnabled()
	if deep {
		target = a.opts.DeepTarget
	}

	collected := make([]types.ContactRecord, 0, target)
	exclusions := make([]string, len(params.ExcludeNames))
	copy(exclusions, params.ExcludeNames)
	seen := make(map[string]bool, len(exclusions))
	for _, name := range exclusions {
		seen[name] = true
	}

	for round := 1; round <= a.opts.MaxRounds && len(collected) < target; round++ {
		needed := target - len(collected)
		request := needed + overRequestMargin
		if request < minBatchRequest {
			request = minBatchRequest
		}

		if a.opts.Verbose {
			log.Printf("[SEARCH] round %d/%d: requesting %d contacts (%d collected, %d excluded)",
				round, a.opts.MaxRounds, request, len(collected), len(exclusions))
		}

		batch, err := a.fetcher.FetchBatch(ctx, params, exclusions, request)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			// No forward progress possible.
			if a.opts.Verbose {
				log.Printf("[SEARCH] round %d returned nothing, stopping", round)
			}
			break
		}

		fresh := dedupe(batch, seen)
		if len(fresh) == 0 {
			if a.opts.Verbose {
				log.Printf("[SEARCH] round %d returned only known names, stopping", round)
			}
			break
		}

		if deep {
			// Surface the most enriched leads first within this round.
			sort.SliceStable(fresh, func(i, j int) bool {
				return fresh[i].CompletenessScore() > fresh[j].CompletenessScore()
			})
		}

		collected = append(collected, fresh...)
		for _, c := range fresh {
			exclusions = append(exclusions, c.Name)
			seen[c.Name] = true
		}

		if len(collected) < target && round < a.opts.MaxRounds {
			a.opts.Sleep(ctx, a.opts.RoundPause)
		}
	}

	return collected, nil
}

// dedupe filters a batch to names not yet seen, using case-sensitive exact
// matching against the model's self-reported name strings. Duplicates
// within the batch itself are also dropped.
func dedupe(batch []types.ContactRecord, seen map[string]bool) []types.ContactRecord {
	fresh := make([]types.ContactRecord, 0, len(batch))
	inBatch := make(map[string]bool, len(batch))
	for _, c := range batch {
		if seen[c.Name] || inBatch[c.Name] {
			continue
		}
		inBatch[c.Name] = true
		fresh = append(fresh, c)
	}
	return fresh
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
