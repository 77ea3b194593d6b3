// Package llm provides the grounded generative-AI transport used by the
// prospecting pipeline. It abstracts the Gemini client behind a narrow
// interface so the orchestration layer can be tested against fakes.
package llm

// ModelTier selects the latency/quality trade-off for one generation call.
type ModelTier string

const (
	// TierFast is the low-latency tier used by fast-mode searches.
	TierFast ModelTier = "fast"
	// TierStandard is the default tier. Maps grounding requires a flash-class
	// model, so this is also the ceiling.
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration for the transport.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierFast:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierStandard]
}

// WithModel returns a new Config with a specific model for a tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{Models: make(map[ModelTier]string, len(c.Models))}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}

// GeoPoint is an optional retrieval hint biasing maps grounding toward the
// user's coordinates.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ToolConfig describes which grounding capabilities a request needs.
type ToolConfig struct {
	MapsGrounding      bool
	WebSearchGrounding bool
	Location           *GeoPoint
}

// Request is one grounded generation call.
type Request struct {
	Prompt      string
	Tools       ToolConfig
	Tier        ModelTier
	Temperature float32
}

// Citation is one grounding reference attached to a response.
type Citation struct {
	Source string // "maps" or "web"
	Title  string
	URI    string
}

// Result carries the raw text payload and any grounding citations.
type Result struct {
	Text      string
	Citations []Citation
}
