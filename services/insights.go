package services

import (
	"sort"

	"go.uber.org/zap"

	"property-dashboard/models"
)

const (
	districtRankSize = 5
	topFacilityCount = 10
)

// Aggregation holds every breakdown computed over the filtered listings.
type Aggregation struct {
	General       models.GeneralMetrics
	Districts     models.DistrictRanking
	PropertyTypes []models.PropertyTypeStats
	Facilities    []models.FacilityCount
	Correlation   models.FeatureCorrelation
}

// InsightService computes the dashboard aggregations.
type InsightService struct {
	logger *zap.SugaredLogger
}

func NewInsightService(logger *zap.SugaredLogger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate aggregates listings. An empty input yields zero metrics and empty
// breakdowns.
func (s *InsightService) Generate(listings []*models.Listing) *Aggregation {
	agg := &Aggregation{
		General:       generalMetrics(listings),
		Districts:     rankDistricts(listings),
		PropertyTypes: analysePropertyTypes(listings),
		Facilities:    countFacilities(listings),
		Correlation:   correlateRooms(listings),
	}

	s.logger.Debugf("[insights] %d listings → %d property types, %d facilities, %d/%d districts",
		agg.General.TotalProperties, len(agg.PropertyTypes), len(agg.Facilities),
		len(agg.Districts.TopExpensive), len(agg.Districts.TopAffordable))
	return agg
}

func generalMetrics(listings []*models.Listing) models.GeneralMetrics {
	var price, area, perM2 accumulator
	for _, l := range listings {
		price.add(l.PriceUSD)
		if l.M2 > 0 {
			area.add(l.M2)
		}
		if l.PricePerM2USD > 0 {
			perM2.add(l.PricePerM2USD)
		}
	}
	return models.GeneralMetrics{
		TotalProperties:      len(listings),
		AveragePriceUSD:      price.mean(),
		AverageM2:            area.mean(),
		AveragePricePerM2USD: perM2.mean(),
	}
}

// rankDistricts orders neighborhoods by mean price per m2. Groups are
// visited in ascending name order and sorted stably, so equal means keep
// alphabetical order. With fewer than ten neighborhoods the two lists overlap.
func rankDistricts(listings []*models.Listing) models.DistrictRanking {
	groups := make(map[string]*accumulator)
	for _, l := range listings {
		if l.PricePerM2USD <= 0 || l.Neighborhood == "" {
			continue
		}
		acc, ok := groups[l.Neighborhood]
		if !ok {
			acc = &accumulator{}
			groups[l.Neighborhood] = acc
		}
		acc.add(l.PricePerM2USD)
	}

	ranked := make([]models.DistrictPrice, 0, len(groups))
	for _, name := range sortedKeys(groups) {
		ranked = append(ranked, models.DistrictPrice{
			Neighborhood:  name,
			PricePerM2USD: groups[name].mean(),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PricePerM2USD > ranked[j].PricePerM2USD
	})

	n := districtRankSize
	if len(ranked) < n {
		n = len(ranked)
	}

	top := append([]models.DistrictPrice(nil), ranked[:n]...)
	bottom := append([]models.DistrictPrice(nil), ranked[len(ranked)-n:]...)
	sort.SliceStable(bottom, func(i, j int) bool {
		return bottom[i].PricePerM2USD < bottom[j].PricePerM2USD
	})

	return models.DistrictRanking{TopExpensive: top, TopAffordable: bottom}
}

type typeGroup struct {
	price, area, perM2 accumulator
}

// analysePropertyTypes groups by resolved type name, most common first.
// Equal counts keep ascending name order.
func analysePropertyTypes(listings []*models.Listing) []models.PropertyTypeStats {
	groups := make(map[string]*typeGroup)
	for _, l := range listings {
		g, ok := groups[l.PropertyTypeName]
		if !ok {
			g = &typeGroup{}
			groups[l.PropertyTypeName] = g
		}
		g.price.add(l.PriceUSD)
		g.area.add(l.M2)
		g.perM2.add(l.PricePerM2USD)
	}

	stats := make([]models.PropertyTypeStats, 0, len(groups))
	for _, name := range sortedKeys(groups) {
		g := groups[name]
		stats = append(stats, models.PropertyTypeStats{
			PropertyTypeName: name,
			Count:            g.price.n,
			AvgPriceUSD:      g.price.mean(),
			AvgM2:            g.area.mean(),
			AvgPricePerM2USD: g.perM2.mean(),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// countFacilities returns the most frequent facility names. Equal counts
// keep the order in which the names were first seen.
func countFacilities(listings []*models.Listing) []models.FacilityCount {
	index := make(map[string]int)
	var counts []models.FacilityCount
	for _, l := range listings {
		for _, name := range l.FacilityNames {
			i, ok := index[name]
			if !ok {
				i = len(counts)
				index[name] = i
				counts = append(counts, models.FacilityCount{Name: name})
			}
			counts[i].Count++
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > topFacilityCount {
		counts = counts[:topFacilityCount]
	}
	if counts == nil {
		counts = []models.FacilityCount{}
	}
	return counts
}

func correlateRooms(listings []*models.Listing) models.FeatureCorrelation {
	byBedrooms := meanPriceBy(listings, func(l *models.Listing) float64 { return l.Bedrooms })
	byBathrooms := meanPriceBy(listings, func(l *models.Listing) float64 { return l.Bathrooms })

	corr := models.FeatureCorrelation{
		ByBedrooms:  make([]models.BedroomPrice, 0, len(byBedrooms)),
		ByBathrooms: make([]models.BathroomPrice, 0, len(byBathrooms)),
	}
	for _, b := range byBedrooms {
		corr.ByBedrooms = append(corr.ByBedrooms, models.BedroomPrice{Bedrooms: b.key, PriceUSD: b.mean})
	}
	for _, b := range byBathrooms {
		corr.ByBathrooms = append(corr.ByBathrooms, models.BathroomPrice{Bathrooms: b.key, PriceUSD: b.mean})
	}
	return corr
}

type bucket struct {
	key  float64
	mean float64
}

// meanPriceBy groups listings with a positive key and returns the mean USD
// price per key in ascending key order.
func meanPriceBy(listings []*models.Listing, key func(*models.Listing) float64) []bucket {
	groups := make(map[float64]*accumulator)
	for _, l := range listings {
		k := key(l)
		if k <= 0 {
			continue
		}
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{}
			groups[k] = acc
		}
		acc.add(l.PriceUSD)
	}

	buckets := make([]bucket, 0, len(groups))
	for k, acc := range groups {
		buckets = append(buckets, bucket{key: k, mean: acc.mean()})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].key < buckets[j].key })
	return buckets
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
