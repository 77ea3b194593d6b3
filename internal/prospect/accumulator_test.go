package prospect

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lead-prospector/internal/types"
)

// fakeFetcher replays scripted batches and records every call it receives.
type fakeFetcher struct {
	batches [][]types.ContactRecord
	err     error

	calls      int
	requests   []int
	exclusions [][]string
}

func (f *fakeFetcher) FetchBatch(_ context.Context, _ types.SearchParams, exclusions []string, targetCount int) ([]types.ContactRecord, error) {
	f.calls++
	f.requests = append(f.requests, targetCount)
	snapshot := make([]string, len(exclusions))
	copy(snapshot, exclusions)
	f.exclusions = append(f.exclusions, snapshot)

	if f.err != nil {
		return nil, f.err
	}
	if f.calls > len(f.batches) {
		return nil, nil
	}
	return f.batches[f.calls-1], nil
}

func contactsNamed(names ...string) []types.ContactRecord {
	out := make([]types.ContactRecord, len(names))
	for i, n := range names {
		out[i] = types.ContactRecord{Name: n}
	}
	return out
}

func numberedContacts(prefix string, n int) []types.ContactRecord {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s %d", prefix, i)
	}
	return contactsNamed(names...)
}

func testOptions() *AccumulatorOptions {
	return &AccumulatorOptions{
		StandardTarget: 50,
		DeepTarget:     30,
		MaxRounds:      3,
		RoundPause:     time.Millisecond,
		Sleep:          func(context.Context, time.Duration) {},
	}
}

func TestSearch_StopsWhenTargetReached(t *testing.T) {
	fetcher := &fakeFetcher{batches: [][]types.ContactRecord{
		numberedContacts("Empresa", 50),
	}}
	acc := NewAccumulator(fetcher, testOptions())

	contacts, err := acc.Search(context.Background(), types.SearchParams{Location: "Campinas, SP", Niche: "dentista"})

	require.NoError(t, err)
	assert.Len(t, contacts, 50)
	assert.Equal(t, 1, fetcher.calls)
}

func TestSearch_PaginatesUntilRoundBudget(t *testing.T) {
	fetcher := &fakeFetcher{batches: [][]types.ContactRecord{
		numberedContacts("A", 20),
		numberedContacts("B", 20),
		numberedContacts("C", 20),
	}}
	acc := NewAccumulator(fetcher, testOptions())

	contacts, err := acc.Search(context.Background(), types.SearchParams{Location: "Campinas, SP", Niche: "dentista"})

	require.NoError(t, err)
	// Three rounds: 20 + 20 + 20, capped by the round budget not the target.
	assert.Len(t, contacts, 60)
	assert.Equal(t, 3, fetcher.calls)
}

func TestSearch_NeverExceedsRoundBudget(t *testing.T) {
	fetcher := &fakeFetcher{batches: [][]types.ContactRecord{
		contactsNamed("Um"),
		contactsNamed("Dois"),
		contactsNamed("Três"),
		contactsNamed("Quatro"),
	}}
	acc := NewAccumulator(fetcher, testOptions())

	_, err := acc.Search(context.Background(), types.SearchParams{Location: "X", Niche: "y"})

	require.NoError(t, err)
	assert.Equal(t, 3, fetcher.calls)
}

func TestSearch_DeduplicatesAcrossRounds(t *testing.T) {
	fetcher := &fakeFetcher{batches: [][]types.ContactRecord{
		contactsNamed("Empresa A", "Empresa B"),
		contactsNamed("Empresa B", "Empresa C", "Empresa A", "Empresa C"),
	}}
	opts := testOptions()
	opts.StandardTarget = 4
	acc := NewAccumulator(fetcher, opts)

	contacts, err := acc.Search(context.Background(), types.SearchParams{Location: "X", Niche: "y"})

	require.NoError(t, err)
	names := make([]string, len(contacts))
	for i, c := range contacts {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Empresa A", "Empresa B", "Empresa C"}, names)
}

func TestSearch_OverRequestsWithFloor(t *testing.T) {
	tests := []struct {
		name        string
		target      int
		firstBatch  int
		wantSecond  int
		description string
	}{
		{"needs margin", 30, 10, 25, "needed 20 plus margin 5"},
		{"small remainder hits floor", 50, 48, 10, "needed 2 plus margin is below the floor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{batches: [][]types.ContactRecord{
				numberedContacts("A", tt.firstBatch),
				numberedContacts("B", 1),
			}}
			opts := testOptions()
			opts.StandardTarget = tt.target
			acc := NewAccumulator(fetcher, opts)

			_, err := acc.Search(context.Background(), types.SearchParams{Location: "X", Niche: "y"})

			require.NoError(t, err)
			require.GreaterOrEqual(t, fetcher.calls, 2)
			assert.Equal(t, tt.wantSecond, fetcher.requests[1], tt.description)
		})
	}
}

func TestSearch_DeepSearchUsesLowerTarget(t *testing.T) {
	fetcher := &fakeFetcher{batches: [][]types.ContactRecord{
		numberedContacts("Empresa", 30),
	}}
	acc := NewAccumulator(fetcher, testOptions())

	params := types.SearchParams{Location: "X", Niche: "y", DeepSearchInstagram: true}
	contacts, err := acc.Search(context.Background(), params)

	require.NoError(t, err)
	assert.Len(t, contacts, 30)
	assert.Equal(t, 1, fetcher.calls)
	// First request: 30 needed + 5 margin.
	assert.Equal(t, 35, fetcher.requests[0])
}

func TestSearch_DeepSearchSortsByCompleteness(t *testing.T) {
	rich := types.ContactRecord{Name: "Rica", Website: "https://rica.com", Instagram: "https://instagram.com/rica"}
	poor := types.ContactRecord{Name: "Pobre", Website: types.NotAvailable}
	medium := types.ContactRecord{Name: "Média", Website: "https://media.com"}

	fetcher := &fakeFetcher{batches: [][]types.ContactRecord{{poor, rich, medium}}}
	acc := NewAccumulator(fetcher, testOptions())

	params := types.SearchParams{Location: "X", Niche: "y", DeepSearchWeb: true}
	contacts, err := acc.Search(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.Equal(t, "Rica", contacts[0].Name)
	assert.Equal(t, "Média", contacts[1].Name)
	assert.Equal(t, "Pobre", contacts[2].Name)
}

func TestSearch_EmptyBatchStopsEarly(t *testing.T) {
	fetcher := &fakeFetcher{batches: [][]types.ContactRecord{
		contactsNamed("Empresa A"),
		{},
	}}
	acc := NewAccumulator(fetcher, testOptions())

	contacts, err := acc.Search(context.Background(), types.SearchParams{Location: "X", Niche: "y"})

	require.NoError(t, err)
	assert.Len(t, contacts, 1)
	assert.Equal(t, 2, fetcher.calls)
}

func TestSearch_AllKnownNamesStopsEarly(t *testing.T) {
	fetcher := &fakeFetcher{batches: [][]types.ContactRecord{
		contactsNamed("Empresa A", "Empresa B"),
		contactsNamed("Empresa A", "Empresa B"),
	}}
	acc := NewAccumulator(fetcher, testOptions())

	contacts, err := acc.Search(context.Background(), types.SearchParams{Location: "X", Niche: "y"})

	require.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.Equal(t, 2, fetcher.calls)
}

func TestSearch_ErrorAbortsWholeSearch(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("upstream exploded")}
	acc := NewAccumulator(fetcher, testOptions())

	contacts, err := acc.Search(context.Background(), types.SearchParams{Location: "X", Niche: "y"})

	require.Error(t, err)
	assert.Nil(t, contacts)
}

func TestSearch_InitialExclusionsRespected(t *testing.T) {
	fetcher := &fakeFetcher{batches: [][]types.ContactRecord{
		contactsNamed("Já Vista", "Nova Empresa"),
	}}
	opts := testOptions()
	opts.StandardTarget = 2
	acc := NewAccumulator(fetcher, opts)

	params := types.SearchParams{Location: "X", Niche: "y", ExcludeNames: []string{"Já Vista"}}
	contacts, err := acc.Search(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Nova Empresa", contacts[0].Name)
	// The fetcher saw the caller's exclusions on the first round.
	assert.Equal(t, []string{"Já Vista"}, fetcher.exclusions[0])
}

func TestSearch_ExclusionsGrowAcrossRounds(t *testing.T) {
	fetcher := &fakeFetcher{batches: [][]types.ContactRecord{
		contactsNamed("Empresa A"),
		contactsNamed("Empresa B"),
	}}
	acc := NewAccumulator(fetcher, testOptions())

	_, err := acc.Search(context.Background(), types.SearchParams{Location: "X", Niche: "y"})

	require.NoError(t, err)
	require.GreaterOrEqual(t, fetcher.calls, 2)
	assert.Contains(t, fetcher.exclusions[1], "Empresa A")
}
