package prompts

import "strings"

// GeoScope classifies how broad the user's location input is. The scope
// drives the geographic instruction: country-level inputs are biased toward
// major metro areas, state-level toward principal cities, and city-level
// inputs respect the literal radius.
type GeoScope int

const (
	// ScopeCity covers city or neighborhood inputs (the common case).
	ScopeCity GeoScope = iota
	// ScopeState covers state/province inputs.
	ScopeState
	// ScopeCountry covers whole-country inputs.
	ScopeCountry
)

// countryNames holds country inputs the product's audience actually types.
var countryNames = map[string]bool{
	"brasil":         true,
	"brazil":         true,
	"portugal":       true,
	"argentina":      true,
	"estados unidos": true,
	"eua":            true,
	"usa":            true,
	"united states":  true,
}

// brazilianStates maps lowercase state names and their two-letter codes.
var brazilianStates = map[string]bool{
	"acre": true, "ac": true,
	"alagoas": true, "al": true,
	"amapá": true, "amapa": true, "ap": true,
	"amazonas": true, "am": true,
	"bahia": true, "ba": true,
	"ceará": true, "ceara": true, "ce": true,
	"distrito federal": true, "df": true,
	"espírito santo": true, "espirito santo": true, "es": true,
	"goiás": true, "goias": true, "go": true,
	"maranhão": true, "maranhao": true, "ma": true,
	"mato grosso": true, "mt": true,
	"mato grosso do sul": true, "ms": true,
	"minas gerais": true, "mg": true,
	"pará": true, "para": true, "pa": true,
	"paraíba": true, "paraiba": true, "pb": true,
	"paraná": true, "parana": true, "pr": true,
	"pernambuco": true, "pe": true,
	"piauí": true, "piaui": true, "pi": true,
	"rio de janeiro (estado)": true, "rj": true,
	"rio grande do norte": true, "rn": true,
	"rio grande do sul": true, "rs": true,
	"rondônia": true, "rondonia": true, "ro": true,
	"roraima": true, "rr": true,
	"santa catarina": true, "sc": true,
	"são paulo (estado)": true, "sao paulo (estado)": true, "sp": true,
	"sergipe": true, "se": true,
	"tocantins": true, "to": true,
}

// ClassifyLocation infers the geographic scope of a location input.
// Inputs containing a comma (e.g. "Campinas, SP") are always city scope.
func ClassifyLocation(location string) GeoScope {
	normalized := strings.ToLower(strings.TrimSpace(location))
	if normalized == "" || strings.Contains(normalized, ",") {
		return ScopeCity
	}
	if countryNames[normalized] {
		return ScopeCountry
	}
	if brazilianStates[normalized] {
		return ScopeState
	}
	return ScopeCity
}
