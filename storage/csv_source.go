package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"property-dashboard/models"
)

// CSVSource reads raw listings from a CSV export with a header row.
// Recognised columns: id, price, currency_id, m2, neighborhood,
// property_type_id, facilities, bedrooms, bathrooms. Unknown columns are
// ignored and missing ones are treated as absent.
type CSVSource struct {
	path   string
	logger *zap.SugaredLogger
}

// NewCSVSource creates a CSVSource for the file at path.
func NewCSVSource(path string, logger *zap.SugaredLogger) *CSVSource {
	return &CSVSource{path: path, logger: logger}
}

// FetchAll reads every row of the file.
func (c *CSVSource) FetchAll(ctx context.Context) ([]*models.RawListing, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: open %q", c.path)
	}
	defer f.Close()

	listings, err := c.read(ctx, f)
	if err != nil {
		return nil, err
	}
	c.logger.Debugf("[csv] Read %d listings from %s", len(listings), c.path)
	return listings, nil
}

func (c *CSVSource) read(ctx context.Context, r io.Reader) ([]*models.RawListing, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["id"]; !ok {
		return nil, eris.Errorf("csv: %s has no id column", c.path)
	}

	var listings []*models.RawListing
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "csv: read cancelled")
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "csv: read line %d", line)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		codes, err := ParseFacilities(field("facilities"))
		if err != nil {
			c.logger.Warnw("[csv] Unreadable facilities, treating as none", "line", line, "error", err)
			codes = nil
		}

		listings = append(listings, &models.RawListing{
			ID:             field("id"),
			Price:          field("price"),
			CurrencyID:     field("currency_id"),
			M2:             field("m2"),
			Neighborhood:   field("neighborhood"),
			PropertyTypeID: field("property_type_id"),
			Facilities:     codes,
			Bedrooms:       field("bedrooms"),
			Bathrooms:      field("bathrooms"),
		})
	}
	return listings, nil
}

// Close is a no-op; the file is opened and closed on every FetchAll.
func (c *CSVSource) Close() error { return nil }
