package services

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"property-dashboard/catalog"
	"property-dashboard/models"
)

func newTestLogger(t *testing.T) *zap.SugaredLogger {
	return zaptest.NewLogger(t).Sugar()
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]catalog.ExchangeRate{{ISOCode: "USD", Arbitrage: 1}, {ISOCode: "PEN", Arbitrage: 3.7}},
		map[string]string{"1": "Departamento", "2": "Casa", "3": "Oficina"},
		map[string]string{"1": "Piscina", "2": "Gimnasio", "3": "Ascensor", "4": "Terraza"},
	)
}

// listing builds an already enriched listing for aggregation tests.
func listing(hood, ptype string, priceUSD, m2 float64, facilities ...string) *models.Listing {
	l := &models.Listing{
		Neighborhood:     hood,
		PropertyTypeName: ptype,
		PriceUSD:         priceUSD,
		M2:               m2,
		FacilityNames:    facilities,
	}
	if m2 > 0 {
		l.PricePerM2USD = priceUSD / m2
	}
	return l
}
