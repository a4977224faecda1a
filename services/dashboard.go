package services

import (
	"context"

	"go.uber.org/zap"

	"property-dashboard/catalog"
	"property-dashboard/models"
)

// ListingFetcher yields a full snapshot of raw listings.
type ListingFetcher interface {
	FetchAll(ctx context.Context) ([]*models.RawListing, error)
}

// Dashboard runs the analytics pipeline: fetch, enrich, filter, aggregate
// and assemble. It holds no per-run state and is safe for concurrent use.
type Dashboard struct {
	source   ListingFetcher
	enricher *Enricher
	filter   *OutlierFilter
	insights *InsightService
	logger   *zap.SugaredLogger
}

// NewDashboard wires the pipeline stages around a listing source.
func NewDashboard(source ListingFetcher, cat *catalog.Catalog, thresholds Thresholds, logger *zap.SugaredLogger) *Dashboard {
	return &Dashboard{
		source:   source,
		enricher: NewEnricher(cat, logger),
		filter:   NewOutlierFilter(thresholds, logger),
		insights: NewInsightService(logger),
		logger:   logger,
	}
}

// Run recomputes the report from scratch. When there is nothing to
// aggregate the Result carries models.NoDataMessage instead of a report.
// A failing source aborts the run with a *SourceFetchError.
func (d *Dashboard) Run(ctx context.Context) (*models.Result, error) {
	raw, err := d.source.FetchAll(ctx)
	if err != nil {
		return nil, &SourceFetchError{Err: err}
	}
	if len(raw) == 0 {
		d.logger.Warn("[dashboard] Listing source returned no records")
		return &models.Result{Message: models.NoDataMessage}, nil
	}

	listings := d.filter.Filter(d.enricher.Enrich(raw))
	if len(listings) == 0 {
		d.logger.Warnf("[dashboard] All %d listings were dropped as outliers", len(raw))
		return &models.Result{Message: models.NoDataMessage}, nil
	}

	agg := d.insights.Generate(listings)
	report := AssembleReport(agg.General, agg.Districts, agg.PropertyTypes, agg.Facilities, agg.Correlation)

	d.logger.Infof("[dashboard] Report ready, %d of %d listings aggregated", len(listings), len(raw))
	return &models.Result{Report: report}, nil
}
