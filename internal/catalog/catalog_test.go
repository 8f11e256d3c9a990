package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	ids := c.ClassIDs()
	assert.Len(t, ids, 16)
	assert.Equal(t, "armario", ids[0], "armario keywords must win keyword overlaps")

	entry, ok := c.Entry("silla")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(10).Equal(entry.BasePrice))
	assert.False(t, entry.RequiresAnchoring)

	entry, ok = c.Entry("cocina")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(500).Equal(entry.BasePrice))
	assert.True(t, entry.RequiresAnchoring)
}

func TestEntry_RequiredAttributes(t *testing.T) {
	c := Default()

	armario, _ := c.Entry("armario")
	assert.Equal(t, []string{AttrDoorMechanism, AttrDoorCount}, armario.RequiredAttributes())

	cama, _ := c.Entry("cama")
	assert.Equal(t, []string{AttrFrameWidth}, cama.RequiredAttributes())

	silla, _ := c.Entry("silla")
	assert.Empty(t, silla.RequiredAttributes())
}

func TestAttributeRule_Match(t *testing.T) {
	armario, _ := Default().Entry("armario")
	mechanism := &armario.AttributeRules[0]

	delta, ok := mechanism.Match("sliding")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(20).Equal(delta))

	delta, ok = mechanism.Match("Correderas")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(20).Equal(delta))

	delta, ok = mechanism.Match("hinged")
	require.True(t, ok)
	assert.True(t, delta.IsZero())

	_, ok = mechanism.Match("plegable")
	assert.False(t, ok)
}

func TestEntry_DisplayNameFor(t *testing.T) {
	armario, _ := Default().Entry("armario")

	assert.Equal(t, "Wardrobe", armario.DisplayNameFor("en"))
	assert.Equal(t, "Armario", armario.DisplayNameFor("es"))
	assert.Equal(t, "Armario", armario.DisplayNameFor("fr"))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty class id", []Entry{{ClassID: ""}}},
		{"duplicate class id", []Entry{{ClassID: "x"}, {ClassID: "x"}}},
		{"negative base price", []Entry{{ClassID: "x", BasePrice: decimal.NewFromInt(-1)}}},
		{"bad rule pattern", []Entry{{
			ClassID: "x",
			AttributeRules: []AttributeRule{{
				Attribute: "a",
				Values:    []ValueDelta{{Pattern: "("}},
			}},
		}}},
		{"no entries", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tarifa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
entries:
  - class_id: estanteria
    display_name:
      es: Estantería
    keywords: [estanteria, bookcase]
    base_price: 52.5
    requires_anchoring: true
  - class_id: armario
    display_name:
      es: Armario
    keywords: [armario]
    base_price: 95
    requires_anchoring: true
    attribute_rules:
      - attribute: door_mechanism
        required: true
        values:
          - pattern: sliding
            delta: 25
    countable_extra:
      attribute: door_count
      allowance: 2
      per_unit: 30
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, c.ClassIDs(), 2)

	est, ok := c.Entry("estanteria")
	require.True(t, ok)
	assert.True(t, decimal.NewFromFloat(52.5).Equal(est.BasePrice))

	arm, ok := c.Entry("armario")
	require.True(t, ok)
	assert.Equal(t, []string{"door_mechanism", "door_count"}, arm.RequiredAttributes())

	delta, matched := arm.AttributeRules[0].Match("sliding")
	require.True(t, matched)
	assert.True(t, decimal.NewFromInt(25).Equal(delta))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/tarifa.yaml")
	assert.Error(t, err)
}
