package services

import (
	"go.uber.org/zap"

	"property-dashboard/catalog"
	"property-dashboard/models"
)

// PENCurrencyID is the store's currency code for Peruvian soles.
const PENCurrencyID = "6"

// Enricher turns RawListings into normalised Listings: USD price, USD price
// per m2 and resolved category names.
type Enricher struct {
	catalog *catalog.Catalog
	logger  *zap.SugaredLogger
}

// NewEnricher creates an Enricher backed by the given catalog.
func NewEnricher(cat *catalog.Catalog, logger *zap.SugaredLogger) *Enricher {
	return &Enricher{catalog: cat, logger: logger}
}

// Enrich normalises every raw listing. Field-level anomalies are recovered
// in place and never abort the run.
func (e *Enricher) Enrich(raw []*models.RawListing) []*models.Listing {
	result := make([]*models.Listing, 0, len(raw))
	anomalies := 0

	for _, r := range raw {
		if r == nil {
			continue
		}
		l, n := e.enrichOne(r)
		anomalies += n
		result = append(result, l)
	}

	e.logger.Infof("[enricher] Enriched %d listings (%d numeric anomalies recovered)",
		len(result), anomalies)
	return result
}

func (e *Enricher) enrichOne(r *models.RawListing) (*models.Listing, int) {
	anomalies := 0
	number := func(field, raw string) float64 {
		v, _, err := parseNumber(raw)
		if err != nil {
			anomalies++
			e.logger.Warnw("[enricher] Numeric coercion failed, using 0",
				"id", r.ID, "field", field, "error", err)
		}
		return v
	}

	l := &models.Listing{
		ID:             r.ID,
		Price:          number("price", r.Price),
		CurrencyID:     catalog.Code(r.CurrencyID),
		M2:             number("m2", r.M2),
		Neighborhood:   r.Neighborhood,
		PropertyTypeID: catalog.Code(r.PropertyTypeID),
		Facilities:     r.Facilities,
		Bedrooms:       number("bedrooms", r.Bedrooms),
		Bathrooms:      number("bathrooms", r.Bathrooms),
	}

	l.PriceUSD = e.priceUSD(l)
	if l.PriceUSD < 0 {
		anomalies++
		e.logger.Warnw("[enricher] Negative price, using 0", "id", r.ID, "price_usd", l.PriceUSD)
		l.PriceUSD = 0
	}

	if l.M2 > 0 {
		l.PricePerM2USD = finite(l.PriceUSD / l.M2)
	}

	l.PropertyTypeName = e.catalog.PropertyTypeName(l.PropertyTypeID)
	l.FacilityNames = make([]string, 0, len(r.Facilities))
	for _, code := range r.Facilities {
		l.FacilityNames = append(l.FacilityNames, e.catalog.FacilityName(code))
	}

	return l, anomalies
}

// priceUSD converts soles with the catalog rate; any other currency is
// taken as already USD-denominated.
func (e *Enricher) priceUSD(l *models.Listing) float64 {
	if l.CurrencyID == PENCurrencyID {
		return finite(l.Price / e.catalog.PenToUsdRate())
	}
	return finite(l.Price)
}
