// Package prospect implements the prospecting query orchestration: issuing
// grounded generation calls, parsing and enriching the returned contacts,
// and accumulating batches across pagination rounds.
package prospect

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/lead-prospector/internal/llm"
	"github.com/jonathan/lead-prospector/internal/parsing"
	"github.com/jonathan/lead-prospector/internal/prompts"
	"github.com/jonathan/lead-prospector/internal/retry"
	"github.com/jonathan/lead-prospector/internal/types"
)

// ClientOptions configures a prospect client.
type ClientOptions struct {
	MaxRetries   int
	InitialDelay time.Duration
	Verbose      bool
}

// DefaultClientOptions returns the production retry settings.
func DefaultClientOptions() *ClientOptions {
	return &ClientOptions{
		MaxRetries:   retry.DefaultMaxRetries,
		InitialDelay: retry.DefaultInitialDelay,
	}
}

// Client issues one grounded generation call per batch and turns the raw
// model output into contact records.
type Client struct {
	transport llm.Client
	builder   *prompts.Builder
	opts      ClientOptions
}

// NewClient creates a prospect client over the given transport.
func NewClient(transport llm.Client, builder *prompts.Builder, opts *ClientOptions) *Client {
	if opts == nil {
		opts = DefaultClientOptions()
	}
	return &Client{transport: transport, builder: builder, opts: *opts}
}

// FetchBatch runs one prospecting round: build the query, call the
// transport with transient-error retry, parse the text payload and backfill
// missing links from the grounding citations.
//
// A response that fails to parse yields an empty batch, not an error: the
// accumulator decides whether to continue based on progress. Transient
// failures that survive the retry budget escalate to an UpstreamError.
func (c *Client) FetchBatch(ctx context.Context, params types.SearchParams, exclusions []string, targetCount int) ([]types.ContactRecord, error) {
	req := c.builder.Build(params, exclusions, targetCount)

	result, err := retry.Do(ctx, func(ctx context.Context) (*llm.Result, error) {
		return c.transport.GenerateGrounded(ctx, req)
	}, c.opts.MaxRetries, c.opts.InitialDelay, llm.IsTransient)
	if err != nil {
		return nil, escalate(err)
	}

	contacts, diag := parsing.ExtractContactsWithReport(result.Text)
	if diag != nil && c.opts.Verbose {
		log.Printf("[PROSPECT] discarding unparseable response: %v", diag)
	}

	if len(result.Citations) > 0 {
		EnrichFromCitations(contacts, result.Citations)
	}

	if c.opts.Verbose {
		log.Printf("[PROSPECT] batch returned %d contacts (%d citations)", len(contacts), len(result.Citations))
	}

	return contacts, nil
}

// escalate converts a transient error whose retries were exhausted into the
// terminal upstream variant. Other errors pass through unchanged.
func escalate(err error) error {
	if transient, ok := err.(*llm.TransientError); ok {
		return &llm.UpstreamError{Message: transient.Message, Cause: transient}
	}
	return err
}
