package prompts

import (
	"strconv"
	"strings"

	"github.com/jonathan/lead-prospector/internal/llm"
	"github.com/jonathan/lead-prospector/internal/types"
)

const (
	promptFile = "prospecting.json"

	// maxEmbeddedExclusions caps how many already-collected names are
	// embedded in the prompt, bounding prompt size on long sessions.
	maxEmbeddedExclusions = 1000

	// defaultRadius applies when the user leaves the radius unscoped.
	defaultRadius = "5km"

	// extractionTemperature keeps the structured-output task deterministic
	// across both model tiers.
	extractionTemperature = 0.1
)

// Builder assembles the grounded generation request for one search round.
type Builder struct {
	location *llm.GeoPoint
}

// NewBuilder creates a query builder. The optional geographic coordinates
// are attached to every request as a maps retrieval hint.
func NewBuilder(location *llm.GeoPoint) *Builder {
	return &Builder{location: location}
}

// Build produces the prompt, tool configuration and model selection for one
// query given the search parameters, the exclusion list accumulated so far
// and the number of contacts to request.
func (b *Builder) Build(params types.SearchParams, exclusions []string, targetCount int) llm.Request {
	var sections []string

	sections = append(sections, Format(MustGet(promptFile, "mission"), map[string]string{
		"Niche":       params.Niche,
		"Location":    params.Location,
		"TargetCount": strconv.Itoa(targetCount),
	}))

	if params.Type != "" {
		sections = append(sections, Format(MustGet(promptFile, "business-type"), map[string]string{
			"Type": params.Type,
		}))
	}

	sections = append(sections, b.geoSection(params, exclusions))

	if len(exclusions) > 0 {
		sections = append(sections, exclusionSection(exclusions))
	}

	if params.DeepSearchEnabled() {
		sections = append(sections, Format(MustGet(promptFile, "deep-search"), map[string]string{
			"Platforms": strings.Join(params.DeepSearchPlatforms(), ", "),
		}))
	} else {
		sections = append(sections, MustGet(promptFile, "maps-only"))
	}

	if params.WhatsAppOnly {
		sections = append(sections, MustGet(promptFile, "whatsapp-only"))
	}

	sections = append(sections, MustGet(promptFile, "output-format"))

	tier := llm.TierStandard
	if params.FastMode {
		tier = llm.TierFast
	}

	return llm.Request{
		Prompt: strings.Join(sections, "\n\n"),
		Tools: llm.ToolConfig{
			MapsGrounding:      true,
			WebSearchGrounding: true,
			Location:           b.location,
		},
		Tier:        tier,
		Temperature: extractionTemperature,
	}
}

// geoSection picks the geographic instruction for the location's scope.
// City-scope searches respect the literal radius on the first pass, but
// once exclusions exist (a pagination round) the instruction expands to
// neighboring areas so the same result set is not exhausted again.
func (b *Builder) geoSection(params types.SearchParams, exclusions []string) string {
	radius := params.Radius
	if radius == "" {
		radius = defaultRadius
	}

	data := map[string]string{
		"Location": params.Location,
		"Radius":   radius,
	}

	switch ClassifyLocation(params.Location) {
	case ScopeCountry:
		return Format(MustGet(promptFile, "geo-country"), data)
	case ScopeState:
		return Format(MustGet(promptFile, "geo-state"), data)
	default:
		if len(exclusions) > 0 {
			return Format(MustGet(promptFile, "geo-city-expanded"), data)
		}
		return Format(MustGet(promptFile, "geo-city"), data)
	}
}

// exclusionSection embeds the tail of the exclusion list verbatim.
func exclusionSection(exclusions []string) string {
	tail := exclusions
	if len(tail) > maxEmbeddedExclusions {
		tail = tail[len(tail)-maxEmbeddedExclusions:]
	}
	return Format(MustGet(promptFile, "exclusions"), map[string]string{
		"ExcludedNames": strings.Join(tail, ", "),
	})
}
