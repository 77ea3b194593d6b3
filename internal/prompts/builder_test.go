package prompts

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lead-prospector/internal/llm"
	"github.com/jonathan/lead-prospector/internal/types"
)

func baseParams() types.SearchParams {
	return types.SearchParams{
		Location: "Campinas, SP",
		Niche:    "dentista",
	}
}

func TestBuild_MissionCarriesInputs(t *testing.T) {
	b := NewBuilder(nil)

	req := b.Build(baseParams(), nil, 50)

	assert.Contains(t, req.Prompt, "dentista")
	assert.Contains(t, req.Prompt, "Campinas, SP")
	assert.Contains(t, req.Prompt, "50 empresas")
}

func TestBuild_ToolsAndTemperature(t *testing.T) {
	location := &llm.GeoPoint{Latitude: -22.9, Longitude: -47.06}
	b := NewBuilder(location)

	req := b.Build(baseParams(), nil, 50)

	assert.True(t, req.Tools.MapsGrounding)
	assert.True(t, req.Tools.WebSearchGrounding)
	assert.Equal(t, location, req.Tools.Location)
	assert.InDelta(t, 0.1, float64(req.Temperature), 0.001)
}

func TestBuild_ModelTierFollowsFastMode(t *testing.T) {
	b := NewBuilder(nil)

	standard := b.Build(baseParams(), nil, 50)
	fast := b.Build(baseParams().WithFastMode(true), nil, 50)

	assert.Equal(t, llm.TierStandard, standard.Tier)
	assert.Equal(t, llm.TierFast, fast.Tier)
}

func TestBuild_RadiusDefaultsAndExpansion(t *testing.T) {
	b := NewBuilder(nil)

	first := b.Build(baseParams(), nil, 50)
	assert.Contains(t, first.Prompt, "Raio de busca: 5km")
	assert.NotContains(t, first.Prompt, "EXPANDA O RAIO")

	// A pagination round (non-empty exclusions) switches to the expanded
	// instruction so the same results are not exhausted again.
	followUp := b.Build(baseParams(), []string{"Empresa A"}, 50)
	assert.Contains(t, followUp.Prompt, "EXPANDA O RAIO")
	assert.Contains(t, followUp.Prompt, "Empresa A")
}

func TestBuild_ExplicitRadiusRespected(t *testing.T) {
	b := NewBuilder(nil)
	params := baseParams()
	params.Radius = "15km"

	req := b.Build(params, nil, 50)

	assert.Contains(t, req.Prompt, "15km")
}

func TestBuild_GeoScopeSections(t *testing.T) {
	b := NewBuilder(nil)

	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"country", "Brasil", "regiões metropolitanas"},
		{"state by name", "Minas Gerais", "principais cidades"},
		{"state by code", "SP", "principais cidades"},
		{"city", "Campinas, SP", "Raio de busca"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := baseParams()
			params.Location = tt.location
			req := b.Build(params, nil, 50)
			assert.Contains(t, req.Prompt, tt.want)
		})
	}
}

func TestBuild_DeepSearchInstruction(t *testing.T) {
	b := NewBuilder(nil)
	params := baseParams()
	params.DeepSearchInstagram = true
	params.DeepSearchLinkedin = true

	req := b.Build(params, nil, 30)

	assert.Contains(t, req.Prompt, "instagram, linkedin")
	assert.NotContains(t, req.Prompt, "SOMENTE a ferramenta de busca do Google Maps")
}

func TestBuild_MapsOnlyWhenNotDeep(t *testing.T) {
	b := NewBuilder(nil)

	req := b.Build(baseParams(), nil, 50)

	assert.Contains(t, req.Prompt, "SOMENTE a ferramenta de busca do Google Maps")
}

func TestBuild_WhatsAppOnlyInstruction(t *testing.T) {
	b := NewBuilder(nil)
	params := baseParams()
	params.WhatsAppOnly = true

	req := b.Build(params, nil, 50)

	assert.Contains(t, req.Prompt, "APENAS empresas cujo telefone seja um número de celular")
}

func TestBuild_ExclusionListCapped(t *testing.T) {
	b := NewBuilder(nil)

	exclusions := make([]string, 1200)
	for i := range exclusions {
		exclusions[i] = "Empresa " + strconv.Itoa(i)
	}
	exclusions[0] = "Primeira Empresa Unica"
	exclusions[len(exclusions)-1] = "Ultima Empresa Unica"

	req := b.Build(baseParams(), exclusions, 50)

	// Only the most recent names fit in the prompt.
	assert.Contains(t, req.Prompt, "Ultima Empresa Unica")
	assert.NotContains(t, req.Prompt, "Primeira Empresa Unica")
}

func TestBuild_OutputFormatAlwaysPresent(t *testing.T) {
	b := NewBuilder(nil)

	req := b.Build(baseParams(), nil, 50)

	require.Contains(t, req.Prompt, "array JSON")
	assert.Contains(t, req.Prompt, "Não disponível no Maps")
}

func TestClassifyLocation(t *testing.T) {
	tests := []struct {
		location string
		want     GeoScope
	}{
		{"Brasil", ScopeCountry},
		{"brasil", ScopeCountry},
		{"Portugal", ScopeCountry},
		{"Bahia", ScopeState},
		{"rj", ScopeState},
		{"Rio Grande do Sul", ScopeState},
		{"Campinas, SP", ScopeCity},
		{"Rio de Janeiro, RJ", ScopeCity},
		{"Moema", ScopeCity},
		{"", ScopeCity},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLocation(tt.location))
		})
	}
}
