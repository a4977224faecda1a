package services

import "property-dashboard/models"

// AssembleReport packages the aggregation outputs into a DashboardReport.
// It computes nothing; it only guarantees that every float is finite and
// every list serialises as an array, never null.
func AssembleReport(
	general models.GeneralMetrics,
	districts models.DistrictRanking,
	propertyTypes []models.PropertyTypeStats,
	facilities []models.FacilityCount,
	correlation models.FeatureCorrelation,
) *models.DashboardReport {
	report := &models.DashboardReport{
		GeneralMetrics: models.GeneralMetrics{
			TotalProperties:      general.TotalProperties,
			AveragePriceUSD:      finite(general.AveragePriceUSD),
			AverageM2:            finite(general.AverageM2),
			AveragePricePerM2USD: finite(general.AveragePricePerM2USD),
		},
		Districts: models.DistrictRanking{
			TopExpensive:  finiteDistricts(districts.TopExpensive),
			TopAffordable: finiteDistricts(districts.TopAffordable),
		},
		PropertyTypeAnalysis: make([]models.PropertyTypeStats, 0, len(propertyTypes)),
		FacilitiesAnalysis:   make([]models.FacilityCount, 0, len(facilities)),
		PriceFeatureCorrelation: models.FeatureCorrelation{
			ByBedrooms:  make([]models.BedroomPrice, 0, len(correlation.ByBedrooms)),
			ByBathrooms: make([]models.BathroomPrice, 0, len(correlation.ByBathrooms)),
		},
	}

	for _, t := range propertyTypes {
		report.PropertyTypeAnalysis = append(report.PropertyTypeAnalysis, models.PropertyTypeStats{
			PropertyTypeName: t.PropertyTypeName,
			Count:            t.Count,
			AvgPriceUSD:      finite(t.AvgPriceUSD),
			AvgM2:            finite(t.AvgM2),
			AvgPricePerM2USD: finite(t.AvgPricePerM2USD),
		})
	}
	report.FacilitiesAnalysis = append(report.FacilitiesAnalysis, facilities...)
	for _, b := range correlation.ByBedrooms {
		report.PriceFeatureCorrelation.ByBedrooms = append(report.PriceFeatureCorrelation.ByBedrooms,
			models.BedroomPrice{Bedrooms: finite(b.Bedrooms), PriceUSD: finite(b.PriceUSD)})
	}
	for _, b := range correlation.ByBathrooms {
		report.PriceFeatureCorrelation.ByBathrooms = append(report.PriceFeatureCorrelation.ByBathrooms,
			models.BathroomPrice{Bathrooms: finite(b.Bathrooms), PriceUSD: finite(b.PriceUSD)})
	}
	return report
}

func finiteDistricts(in []models.DistrictPrice) []models.DistrictPrice {
	out := make([]models.DistrictPrice, 0, len(in))
	for _, d := range in {
		out = append(out, models.DistrictPrice{Neighborhood: d.Neighborhood, PricePerM2USD: finite(d.PricePerM2USD)})
	}
	return out
}
