package models

// RawListing is a listing exactly as a ListingSource delivers it.
// Numeric fields keep the store's textual (exact decimal) encoding; an empty
// string means the attribute was absent. Coercion to float64 happens once, in
// the enrichment stage.
type RawListing struct {
	ID             string
	Price          string
	CurrencyID     string
	M2             string
	Neighborhood   string
	PropertyTypeID string
	Facilities     []string
	Bedrooms       string
	Bathrooms      string
}

// Listing is a normalised listing ready for filtering and aggregation.
type Listing struct {
	ID             string
	Price          float64
	CurrencyID     string
	M2             float64
	Neighborhood   string
	PropertyTypeID string
	Facilities     []string
	Bedrooms       float64
	Bathrooms      float64

	PriceUSD         float64
	PricePerM2USD    float64
	PropertyTypeName string
	FacilityNames    []string
}
