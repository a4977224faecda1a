package models

// NoDataMessage is returned instead of a report when there is nothing to aggregate.
const NoDataMessage = "No hay propiedades en la base de datos."

// GeneralMetrics summarises the whole filtered population.
type GeneralMetrics struct {
	TotalProperties      int     `json:"total_properties"`
	AveragePriceUSD      float64 `json:"average_price_usd"`
	AverageM2            float64 `json:"average_m2"`
	AveragePricePerM2USD float64 `json:"average_price_per_m2_usd"`
}

// DistrictPrice is the mean price per m2 of one neighborhood.
type DistrictPrice struct {
	Neighborhood  string  `json:"neighborhood"`
	PricePerM2USD float64 `json:"price_per_m2_usd"`
}

// DistrictRanking holds the most expensive and most affordable neighborhoods.
type DistrictRanking struct {
	TopExpensive  []DistrictPrice `json:"top_expensive_by_m2"`
	TopAffordable []DistrictPrice `json:"top_affordable_by_m2"`
}

// PropertyTypeStats aggregates one property type.
type PropertyTypeStats struct {
	PropertyTypeName string  `json:"property_type_name"`
	Count            int     `json:"count"`
	AvgPriceUSD      float64 `json:"avg_price_usd"`
	AvgM2            float64 `json:"avg_m2"`
	AvgPricePerM2USD float64 `json:"avg_price_per_m2_usd"`
}

// FacilityCount is how many listings mention a facility.
type FacilityCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// BedroomPrice is the mean USD price of listings with a given bedroom count.
type BedroomPrice struct {
	Bedrooms float64 `json:"bedrooms"`
	PriceUSD float64 `json:"price_usd"`
}

// BathroomPrice is the mean USD price of listings with a given bathroom count.
type BathroomPrice struct {
	Bathrooms float64 `json:"bathrooms"`
	PriceUSD  float64 `json:"price_usd"`
}

// FeatureCorrelation relates room counts to price.
type FeatureCorrelation struct {
	ByBedrooms  []BedroomPrice  `json:"by_bedrooms"`
	ByBathrooms []BathroomPrice `json:"by_bathrooms"`
}

// DashboardReport is the finished analytics payload.
type DashboardReport struct {
	GeneralMetrics          GeneralMetrics      `json:"general_metrics"`
	Districts               DistrictRanking     `json:"districts"`
	PropertyTypeAnalysis    []PropertyTypeStats `json:"property_type_analysis"`
	FacilitiesAnalysis      []FacilityCount     `json:"facilities_analysis"`
	PriceFeatureCorrelation FeatureCorrelation  `json:"price_feature_correlation"`
}

// Result is the outcome of one dashboard run. Exactly one of Report or
// Message is set.
type Result struct {
	Report  *DashboardReport
	Message string
}

// NoData reports whether the run found nothing to aggregate.
func (r *Result) NoData() bool {
	return r.Report == nil
}
