package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"property-dashboard/catalog"
	"property-dashboard/config"
	"property-dashboard/services"
	"property-dashboard/storage"
)

// openSource returns the listing source selected by store.driver.
func openSource(ctx context.Context, c *config.Config, log *zap.SugaredLogger) (storage.ListingSource, error) {
	switch c.Store.Driver {
	case "csv":
		return storage.NewCSVSource(c.Store.CSVPath, log), nil
	case storage.DriverPostgres, storage.DriverSQLite:
		src, err := openSQLSource(ctx, c, log)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, eris.Errorf("unknown store driver %q", c.Store.Driver)
	}
}

func openSQLSource(ctx context.Context, c *config.Config, log *zap.SugaredLogger) (*storage.SQLSource, error) {
	if c.Store.Driver != storage.DriverPostgres && c.Store.Driver != storage.DriverSQLite {
		return nil, eris.Errorf("store driver %q is not a database", c.Store.Driver)
	}
	return storage.NewSQLSource(ctx, c.Store.Driver, c.Store.DSN(), storage.SQLOptions{
		Table:          c.Store.Table,
		PageSize:       c.Store.PageSize,
		ConnectRetries: c.Store.ConnectRetries,
	}, log)
}

// newDashboard loads the catalog once and wires the pipeline around source.
func newDashboard(c *config.Config, source storage.ListingSource, log *zap.SugaredLogger) (*services.Dashboard, error) {
	cat, err := catalog.Load(c.Catalog.Path)
	if err != nil {
		return nil, err
	}
	log.Infof("[catalog] Loaded catalog (PEN→USD rate %.4f)", cat.PenToUsdRate())

	thresholds := services.Thresholds{
		MinM2:         c.Filter.MinM2,
		MinPricePerM2: c.Filter.MinPricePerM2,
		MaxPricePerM2: c.Filter.MaxPricePerM2,
	}
	return services.NewDashboard(source, cat, thresholds, log), nil
}
