package llm

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is the transport abstraction the prospecting pipeline calls.
type Client interface {
	// GenerateGrounded runs one grounded generation call and returns the raw
	// text payload plus any grounding citations.
	GenerateGrounded(ctx context.Context, req Request) (*Result, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client on the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini-backed transport. A missing API key is a
// ConfigError: it fails before any network call is attempted.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &ConfigError{Message: "API key is required"}
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &ConfigError{Message: "failed to create Gemini client: " + err.Error()}
	}

	return &GeminiClient{client: client, config: config}, nil
}

// GenerateGrounded runs one grounded generation call.
//
// The SDK exposes no grounding tool configuration, so the maps and
// web-search steering travels inside the prompt itself (the query builder
// emits the tool instructions). Request.Tools stays on the contract for an
// SDK that accepts grounding config natively.
func (c *GeminiClient) GenerateGrounded(ctx context.Context, req Request) (*Result, error) {
	model := c.client.GenerativeModel(c.config.GetModel(req.Tier))
	model.SetTemperature(req.Temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, classifyError(err)
	}

	// An empty response is empty text, not a hard failure; the parser
	// degrades it to zero contacts downstream.
	return &Result{
		Text:      extractText(resp),
		Citations: extractCitations(resp),
	}, nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractText joins the text parts of the first candidate. Missing
// candidates or parts yield an empty string.
func extractText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	return strings.Join(parts, "")
}

// extractCitations maps the candidate's citation metadata into the
// transport-neutral Citation shape. The API reports URIs without titles, so
// a display title is derived from the URI for the fuzzy-match enrichment.
func extractCitations(resp *genai.GenerateContentResponse) []Citation {
	if len(resp.Candidates) == 0 {
		return nil
	}
	meta := resp.Candidates[0].CitationMetadata
	if meta == nil {
		return nil
	}

	var citations []Citation
	for _, source := range meta.CitationSources {
		if source == nil || source.URI == nil || *source.URI == "" {
			continue
		}
		uri := *source.URI
		citations = append(citations, Citation{
			Source: citationSource(uri),
			Title:  titleFromURI(uri),
			URI:    uri,
		})
	}
	return citations
}

func citationSource(uri string) string {
	lower := strings.ToLower(uri)
	if strings.Contains(lower, "google.com/maps") || strings.Contains(lower, "maps.google") || strings.Contains(lower, "maps.app.goo.gl") {
		return "maps"
	}
	return "web"
}

// titleFromURI derives a human-comparable title from a citation URI: the
// last meaningful path segment, or the bare host.
func titleFromURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	path := strings.Trim(parsed.EscapedPath(), "/")
	if path != "" {
		segments := strings.Split(path, "/")
		last := segments[len(segments)-1]
		last = strings.NewReplacer("-", " ", "_", " ", "+", " ").Replace(last)
		if decoded, err := url.PathUnescape(last); err == nil {
			last = decoded
		}
		if last != "" {
			return last
		}
	}

	return strings.TrimPrefix(parsed.Host, "www.")
}
