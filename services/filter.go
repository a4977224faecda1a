package services

import (
	"go.uber.org/zap"

	"property-dashboard/models"
)

// Thresholds are the inclusive plausibility bounds a listing must satisfy
// to be aggregated.
type Thresholds struct {
	MinM2         float64
	MinPricePerM2 float64
	MaxPricePerM2 float64
}

// DefaultThresholds returns the standard bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{MinM2: 15, MinPricePerM2: 50, MaxPricePerM2: 15000}
}

// Accepts reports whether l lies within all bounds.
func (t Thresholds) Accepts(l *models.Listing) bool {
	return l.M2 >= t.MinM2 &&
		l.PricePerM2USD >= t.MinPricePerM2 &&
		l.PricePerM2USD <= t.MaxPricePerM2
}

// OutlierFilter drops implausible listings.
type OutlierFilter struct {
	thresholds Thresholds
	logger     *zap.SugaredLogger
}

// NewOutlierFilter creates an OutlierFilter with the given bounds.
func NewOutlierFilter(t Thresholds, logger *zap.SugaredLogger) *OutlierFilter {
	return &OutlierFilter{thresholds: t, logger: logger}
}

// Filter keeps the listings accepted by the thresholds, in input order.
func (f *OutlierFilter) Filter(listings []*models.Listing) []*models.Listing {
	kept := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if f.thresholds.Accepts(l) {
			kept = append(kept, l)
		}
	}

	f.logger.Infof("[filter] Filtered %d → %d listings (dropped %d outliers)",
		len(listings), len(kept), len(listings)-len(kept))
	return kept
}
