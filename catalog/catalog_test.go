package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3.7, c.PenToUsdRate())
	assert.Equal(t, "Departamento", c.PropertyTypeName("1"))
	assert.Equal(t, "Piscina", c.FacilityName("1"))

	usd, ok := c.ExchangeRate("USD")
	require.True(t, ok)
	assert.Equal(t, 1.0, usd.Arbitrage)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Path, "nope.txt")
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"whitespace", "   \n"},
		{"unbalanced", "{'Filter:price': {'options': ["},
		{"scalar", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			var loadErr *LoadError
			assert.True(t, errors.As(err, &loadErr), "got %v", err)
		})
	}
}

func TestParsePythonLiteral(t *testing.T) {
	doc := `{'Filter:price': {'options': [{'iso_code': 'PEN', 'arbitraje': 3.85, 'activo': True, 'extra': None}]},
 'Filter:propertyType': {'options': [{'property_type_id': 7, 'name': 'Duplex'}]},
 'Filter:facilities': {'options': [{'id': '3', 'nombre': 'Ascensor'}]}}`

	c, err := Parse("inline", []byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 3.85, c.PenToUsdRate())
	assert.Equal(t, "Duplex", c.PropertyTypeName("7"))
	assert.Equal(t, "Ascensor", c.FacilityName("3"))
}

func TestParseJSON(t *testing.T) {
	doc := `{"Filter:propertyType": {"options": [{"property_type_id": 2, "name": "Casa"}]}}`

	c, err := Parse("inline", []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "Casa", c.PropertyTypeName("2"))
	assert.Equal(t, DefaultPenToUsdRate, c.PenToUsdRate())
}

func TestParseIgnoresUnrelatedSections(t *testing.T) {
	doc := `{'version': 2,
 'Filter:bedrooms': {'options': [1, 2, 3]},
 'Filter:sort': 'price_asc',
 'Filter:price': {'options': ['PEN', {'iso_code': 'PEN', 'arbitraje': 3.9}, None]},
 'Filter:propertyType': {'options': [{'property_type_id': 2, 'name': 'Casa'}, [2, 'Casa']]},
 'Filter:facilities': {'options': [5, {'id': 5, 'nombre': 'Jardín'}, 'Piscina']}}`

	c, err := Parse("inline", []byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 3.9, c.PenToUsdRate())
	assert.Equal(t, "Casa", c.PropertyTypeName("2"))
	assert.Equal(t, "Jardín", c.FacilityName("5"))
	assert.Equal(t, UnknownFacility, c.FacilityName("1"))
}

func TestParseMisshapenSectionReadsEmpty(t *testing.T) {
	doc := `{'Filter:price': 'none', 'Filter:facilities': {'options': 7}}`

	c, err := Parse("inline", []byte(doc))
	require.NoError(t, err)

	assert.Equal(t, DefaultPenToUsdRate, c.PenToUsdRate())
	assert.Equal(t, UnknownFacility, c.FacilityName("7"))
}

func TestPenRateFallback(t *testing.T) {
	tests := []struct {
		name  string
		rates []ExchangeRate
		want  float64
	}{
		{"absent", nil, 3.7},
		{"other currencies only", []ExchangeRate{{ISOCode: "USD", Arbitrage: 1}}, 3.7},
		{"zero rate", []ExchangeRate{{ISOCode: "PEN", Arbitrage: 0}}, 3.7},
		{"present", []ExchangeRate{{ISOCode: "PEN", Arbitrage: 3.9}}, 3.9},
		{"first PEN wins", []ExchangeRate{{ISOCode: "PEN", Arbitrage: 3.6}, {ISOCode: "PEN", Arbitrage: 4}}, 3.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.rates, nil, nil)
			assert.Equal(t, tt.want, c.PenToUsdRate())
		})
	}
}

func TestLookupFallbacks(t *testing.T) {
	c := New(nil, map[string]string{"1": "Departamento"}, map[string]string{"2": "Gimnasio"})

	assert.Equal(t, UnknownPropertyType, c.PropertyTypeName("99"))
	assert.Equal(t, UnknownPropertyType, c.PropertyTypeName(""))
	assert.Equal(t, UnknownFacility, c.FacilityName("99"))
	assert.Equal(t, "Departamento", c.PropertyTypeName("1.0"))
	assert.Equal(t, "Gimnasio", c.FacilityName(" 2 "))
}

func TestCode(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{1, "1"},
		{"1", "1"},
		{"1.0", "1"},
		{2.5, "2.5"},
		{"abc", "abc"},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Code(tt.in), "Code(%v)", tt.in)
	}
}
