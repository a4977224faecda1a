// Package catalog holds the static lookup tables used to enrich listings:
// exchange rates, property-type names and facility names.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPenToUsdRate applies when the catalog carries no usable PEN rate.
	DefaultPenToUsdRate = 3.7

	// UnknownPropertyType is the name given to unmapped property-type codes.
	UnknownPropertyType = "No especificado"
	// UnknownFacility is the name given to unmapped facility codes.
	UnknownFacility = "Desconocido"

	penISOCode = "PEN"

	sectionPrice        = "Filter:price"
	sectionPropertyType = "Filter:propertyType"
	sectionFacilities   = "Filter:facilities"
)

//go:embed default_catalog.txt
var defaultCatalog []byte

// LoadError is returned when the catalog resource is missing or malformed.
// The dashboard cannot run without a catalog, so callers treat it as fatal.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ExchangeRate is one entry of the price section.
type ExchangeRate struct {
	ISOCode   string
	Arbitrage float64
}

// Catalog is an immutable set of lookup tables. It is safe for concurrent use.
type Catalog struct {
	rates         map[string]ExchangeRate
	propertyTypes map[string]string
	facilities    map[string]string
	penToUsd      float64
}

type section struct {
	Options []yaml.Node `yaml:"options"`
}

// Load reads the catalog at path. An empty path loads the catalog bundled
// with the binary.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	source := "embedded"
	if path != "" {
		source = path
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Path: source, Err: eris.Wrap(err, "read file")}
		}
		data = b
	}
	return Parse(source, data)
}

// Parse decodes a catalog document. The document is a dictionary literal;
// JSON and YAML flow syntax are both accepted.
func Parse(source string, data []byte) (*Catalog, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, &LoadError{Path: source, Err: eris.New("empty document")}
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: source, Err: eris.Wrap(err, "parse")}
	}
	if doc == nil {
		return nil, &LoadError{Path: source, Err: eris.New("document is not a mapping")}
	}

	var rates []ExchangeRate
	for _, opt := range options(doc, sectionPrice) {
		iso, _ := opt["iso_code"].(string)
		if iso == "" {
			continue
		}
		rate := toFloat(opt["arbitraje"])
		rates = append(rates, ExchangeRate{ISOCode: iso, Arbitrage: rate})
	}

	types := make(map[string]string)
	for _, opt := range options(doc, sectionPropertyType) {
		name, _ := opt["name"].(string)
		types[Code(opt["property_type_id"])] = name
	}

	facilities := make(map[string]string)
	for _, opt := range options(doc, sectionFacilities) {
		name, _ := opt["nombre"].(string)
		facilities[Code(opt["id"])] = name
	}

	return New(rates, types, facilities), nil
}

// options returns the mapping entries of the named section. Other sections
// are never decoded; a section or entry of an unexpected shape reads as empty.
func options(doc map[string]yaml.Node, name string) []map[string]any {
	node, ok := doc[name]
	if !ok {
		return nil
	}
	var sec section
	if err := node.Decode(&sec); err != nil {
		return nil
	}
	out := make([]map[string]any, 0, len(sec.Options))
	for i := range sec.Options {
		if sec.Options[i].Kind != yaml.MappingNode {
			continue
		}
		var opt map[string]any
		if err := sec.Options[i].Decode(&opt); err != nil {
			continue
		}
		out = append(out, opt)
	}
	return out
}

// New builds a catalog from in-memory tables. Keys of propertyTypes and
// facilities are normalised with Code.
func New(rates []ExchangeRate, propertyTypes, facilities map[string]string) *Catalog {
	c := &Catalog{
		rates:         make(map[string]ExchangeRate, len(rates)),
		propertyTypes: make(map[string]string, len(propertyTypes)),
		facilities:    make(map[string]string, len(facilities)),
		penToUsd:      DefaultPenToUsdRate,
	}
	for _, r := range rates {
		if _, dup := c.rates[r.ISOCode]; dup {
			continue
		}
		c.rates[r.ISOCode] = r
	}
	for k, v := range propertyTypes {
		c.propertyTypes[Code(k)] = v
	}
	for k, v := range facilities {
		c.facilities[Code(k)] = v
	}
	if pen, ok := c.rates[penISOCode]; ok && pen.Arbitrage > 0 {
		c.penToUsd = pen.Arbitrage
	}
	return c
}

// PenToUsdRate is the number of soles per US dollar.
func (c *Catalog) PenToUsdRate() float64 {
	return c.penToUsd
}

// ExchangeRate returns the rate record for an ISO currency code.
func (c *Catalog) ExchangeRate(iso string) (ExchangeRate, bool) {
	r, ok := c.rates[iso]
	return r, ok
}

// PropertyTypeName resolves a property-type code, falling back to
// UnknownPropertyType.
func (c *Catalog) PropertyTypeName(code string) string {
	if name, ok := c.propertyTypes[Code(code)]; ok {
		return name
	}
	return UnknownPropertyType
}

// FacilityName resolves a facility code, falling back to UnknownFacility.
func (c *Catalog) FacilityName(code string) string {
	if name, ok := c.facilities[Code(code)]; ok {
		return name
	}
	return UnknownFacility
}

// Code returns the canonical string form of a categorical code so that 1,
// "1" and "1.0" all address the same entry. Non-numeric codes are returned
// trimmed but otherwise untouched.
func Code(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s = t
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	if d, err := decimal.NewFromString(s); err == nil {
		return d.String()
	}
	return s
}

// toFloat reads a numeric catalog value; anything else reads as 0.
func toFloat(v any) float64 {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case float64:
		return t
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		f, _ := d.Float64()
		return f
	default:
		return 0
	}
}
