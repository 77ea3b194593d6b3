package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lead-prospector/internal/types"
)

func TestExtractContacts_FencedBlock(t *testing.T) {
	raw := "Aqui estão os resultados:\n```json\n[{\"nome\": \"Padaria Central\", \"telefone\": \"(11) 99999-0000\", \"whatsapp\": true}]\n```\nEspero que ajude!"

	contacts := ExtractContacts(raw)

	require.Len(t, contacts, 1)
	assert.Equal(t, "Padaria Central", contacts[0].Name)
	assert.Equal(t, "(11) 99999-0000", contacts[0].Phone)
	assert.True(t, contacts[0].HasWhatsApp)
}

func TestExtractContacts_BareArrayInProse(t *testing.T) {
	raw := `Encontrei estas empresas: [{"nome": "Oficina do Zé"}, {"nome": "Auto Center Silva"}] entre outras.`

	contacts := ExtractContacts(raw)

	require.Len(t, contacts, 2)
	assert.Equal(t, "Oficina do Zé", contacts[0].Name)
	assert.Equal(t, "Auto Center Silva", contacts[1].Name)
}

func TestExtractContacts_BracketsInsideValues(t *testing.T) {
	// Brackets inside quoted strings must not terminate the array scan.
	raw := `[{"nome": "Bar [do Centro]", "endereco": "Rua A [esquina], 10"}]`

	contacts := ExtractContacts(raw)

	require.Len(t, contacts, 1)
	assert.Equal(t, "Bar [do Centro]", contacts[0].Name)
	assert.Equal(t, "Rua A [esquina], 10", contacts[0].Address)
}

func TestExtractContacts_SentinelDefaults(t *testing.T) {
	raw := `[{"nome": "Empresa X"}]`

	contacts := ExtractContacts(raw)

	require.Len(t, contacts, 1)
	c := contacts[0]
	assert.Equal(t, types.NotAvailable, c.Phone)
	assert.Equal(t, types.NotAvailable, c.Email)
	assert.Equal(t, types.NotAvailable, c.Website)
	assert.Equal(t, types.NotAvailable, c.Instagram)
	assert.Equal(t, types.NotAvailable, c.Facebook)
	assert.Equal(t, types.NotAvailable, c.LinkedIn)
	assert.Equal(t, types.NotAvailable, c.Address)
	assert.Equal(t, types.NotAvailableOnMaps, c.MapsLink)
	assert.False(t, c.HasWhatsApp)
	assert.Zero(t, c.Rating)
	assert.Zero(t, c.ReviewCount)
}

func TestExtractContacts_NeverFails(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty input", ""},
		{"plain prose", "Não encontrei nenhuma empresa nessa região."},
		{"bare literals without array", "blah None true"},
		{"unclosed array", `[{"nome": "Incompleta"`},
		{"array of scalars", `[1, 2, 3]`},
		{"object instead of array", `{"nome": "Empresa"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts := ExtractContacts(tt.raw)
			assert.NotNil(t, contacts)
			assert.Empty(t, contacts)
		})
	}
}

func TestExtractContactsWithReport_Diagnostics(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantDiag bool
	}{
		{"valid array", `[{"nome": "Empresa"}]`, false},
		{"no array at all", "nenhum resultado", true},
		{"unparseable array", `[{"nome": }]`, true},
		{"empty but valid array", `[]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts, diag := ExtractContactsWithReport(tt.raw)
			assert.NotNil(t, contacts)
			if tt.wantDiag {
				assert.Error(t, diag)
			} else {
				assert.NoError(t, diag)
			}
		})
	}
}

func TestExtractContacts_PythonLiterals(t *testing.T) {
	raw := "```json\n[{\"nome\": \"Clínica Bela\", \"rating\": None, \"whatsapp\": True, \"email\": False}]\n```"

	contacts := ExtractContacts(raw)

	require.Len(t, contacts, 1)
	c := contacts[0]
	assert.Zero(t, c.Rating)
	assert.True(t, c.HasWhatsApp)
	// A boolean in a string field falls back to the sentinel.
	assert.Equal(t, types.NotAvailable, c.Email)
}

func TestExtractContacts_TrailingCommas(t *testing.T) {
	raw := `[{"nome": "Empresa A", "telefone": "11 1234-5678",}, {"nome": "Empresa B",},]`

	contacts := ExtractContacts(raw)

	require.Len(t, contacts, 2)
	assert.Equal(t, "Empresa A", contacts[0].Name)
	assert.Equal(t, "11 1234-5678", contacts[0].Phone)
}

func TestExtractContacts_NamelessEntriesSkipped(t *testing.T) {
	raw := `[{"telefone": "11 99999-0000"}, {"nome": "Com Nome"}, {"nome": ""}]`

	contacts := ExtractContacts(raw)

	require.Len(t, contacts, 1)
	assert.Equal(t, "Com Nome", contacts[0].Name)
}

func TestExtractContacts_EnglishNameKeyFallback(t *testing.T) {
	raw := `[{"name": "English Keyed Business"}]`

	contacts := ExtractContacts(raw)

	require.Len(t, contacts, 1)
	assert.Equal(t, "English Keyed Business", contacts[0].Name)
}

func TestExtractContacts_NumericFields(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantRating  float64
		wantReviews int
	}{
		{"valid numbers", `[{"nome": "A", "rating": 4.5, "reviewCount": 120}]`, 4.5, 120},
		{"rating above scale clamped", `[{"nome": "A", "rating": 9.7}]`, 5, 0},
		{"negative rating clamped", `[{"nome": "A", "rating": -1}]`, 0, 0},
		{"string rating ignored", `[{"nome": "A", "rating": "4,5 estrelas"}]`, 0, 0},
		{"negative reviews ignored", `[{"nome": "A", "reviewCount": -3}]`, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts := ExtractContacts(tt.raw)
			require.Len(t, contacts, 1)
			assert.Equal(t, tt.wantRating, contacts[0].Rating)
			assert.Equal(t, tt.wantReviews, contacts[0].ReviewCount)
		})
	}
}

func TestExtractContacts_WhatsAppCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"bool true", `[{"nome": "A", "whatsapp": true}]`, true},
		{"bool false", `[{"nome": "A", "whatsapp": false}]`, false},
		{"absent", `[{"nome": "A"}]`, false},
		{"null", `[{"nome": "A", "whatsapp": null}]`, false},
		{"string sim", `[{"nome": "A", "whatsapp": "sim"}]`, true},
		{"string nao", `[{"nome": "A", "whatsapp": "nao"}]`, false},
		{"number one", `[{"nome": "A", "whatsapp": 1}]`, true},
		{"number zero", `[{"nome": "A", "whatsapp": 0}]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts := ExtractContacts(tt.raw)
			require.Len(t, contacts, 1)
			assert.Equal(t, tt.want, contacts[0].HasWhatsApp)
		})
	}
}

func TestSanitize_StringAwareLiteralRewrite(t *testing.T) {
	raw := `[{"nome": "None of the Above Bar", "rating": None}]`

	contacts := ExtractContacts(raw)

	require.Len(t, contacts, 1)
	assert.Equal(t, "None of the Above Bar", contacts[0].Name)
}
