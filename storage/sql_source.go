package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"property-dashboard/models"
	"property-dashboard/utils"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	insertBatchSize = 50
	listingColumns  = 9
)

var tableNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLOptions tunes a SQLSource.
type SQLOptions struct {
	Table          string
	PageSize       int
	ConnectRetries int
}

// SQLSource reads raw listings from a PostgreSQL or SQLite table.
type SQLSource struct {
	db       *sql.DB
	driver   string
	table    string
	pageSize int
	logger   *zap.SugaredLogger
}

// NewSQLSource opens a connection, waits for the database to answer and
// returns a ready-to-use SQLSource.
func NewSQLSource(ctx context.Context, driver, dsn string, opts SQLOptions, logger *zap.SugaredLogger) (*SQLSource, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, eris.Wrapf(err, "sql: open %s", driver)
	}

	retry := &utils.RetryConfig{
		MaxAttempts: opts.ConnectRetries,
		BaseDelay:   500 * time.Millisecond,
		Logger:      logger,
	}
	if err := retry.Do(ctx, "sql: ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, err
	}

	src, err := NewSQLSourceFromDB(db, driver, opts, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return src, nil
}

// NewSQLSourceFromDB wraps an already opened database handle.
func NewSQLSourceFromDB(db *sql.DB, driver string, opts SQLOptions, logger *zap.SugaredLogger) (*SQLSource, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, eris.Errorf("sql: unsupported driver %q", driver)
	}
	table := opts.Table
	if table == "" {
		table = "listings"
	}
	if !tableNameRegexp.MatchString(table) {
		return nil, eris.Errorf("sql: invalid table name %q", table)
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 500
	}
	return &SQLSource{db: db, driver: driver, table: table, pageSize: pageSize, logger: logger}, nil
}

// Migrate creates the listings table when it does not exist yet.
func (s *SQLSource) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id               TEXT PRIMARY KEY,
			price            NUMERIC,
			currency_id      NUMERIC,
			m2               NUMERIC,
			neighborhood     TEXT,
			property_type_id NUMERIC,
			facilities       TEXT,
			bedrooms         NUMERIC,
			bathrooms        NUMERIC
		);

		CREATE INDEX IF NOT EXISTS idx_%[1]s_neighborhood ON %[1]s(neighborhood);
	`, s.table))
	return eris.Wrap(err, "sql: migrate")
}

// Insert batch-inserts raw listings. Rows whose id already exists are skipped.
func (s *SQLSource) Insert(ctx context.Context, listings []*models.RawListing) error {
	for i := 0; i < len(listings); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := s.insertBatch(ctx, listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLSource) insertBatch(ctx context.Context, batch []*models.RawListing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*listingColumns)

	for idx, l := range batch {
		base := idx * listingColumns
		holders := make([]string, listingColumns)
		for c := range holders {
			holders[c] = s.placeholder(base + c + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(holders, ",")+")")
		valueArgs = append(valueArgs,
			l.ID, nullable(l.Price), nullable(l.CurrencyID), nullable(l.M2),
			nullable(l.Neighborhood), nullable(l.PropertyTypeID),
			FormatFacilities(l.Facilities), nullable(l.Bedrooms), nullable(l.Bathrooms))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, price, currency_id, m2, neighborhood, property_type_id, facilities, bedrooms, bathrooms)
		VALUES %s
		ON CONFLICT (id) DO NOTHING
	`, s.table, strings.Join(valueStrings, ","))

	if _, err := s.db.ExecContext(ctx, query, valueArgs...); err != nil {
		return eris.Wrap(err, "sql: insert batch")
	}
	return nil
}

// FetchAll scans the whole table page by page, resuming each page after the
// last id of the previous one.
func (s *SQLSource) FetchAll(ctx context.Context) ([]*models.RawListing, error) {
	query := fmt.Sprintf(`
		SELECT id, price, currency_id, m2, neighborhood, property_type_id, facilities, bedrooms, bathrooms
		FROM %s
		WHERE id > %s
		ORDER BY id
		LIMIT %s
	`, s.table, s.placeholder(1), s.placeholder(2))

	var (
		listings []*models.RawListing
		cursor   string
		pages    int
	)
	for {
		page, err := s.fetchPage(ctx, query, cursor)
		if err != nil {
			return nil, err
		}
		pages++
		listings = append(listings, page...)

		if len(page) < s.pageSize {
			break
		}
		cursor = page[len(page)-1].ID
	}

	s.logger.Debugf("[sql] Scanned %d listings from %s in %d pages", len(listings), s.table, pages)
	return listings, nil
}

func (s *SQLSource) fetchPage(ctx context.Context, query, cursor string) ([]*models.RawListing, error) {
	rows, err := s.db.QueryContext(ctx, query, cursor, s.pageSize)
	if err != nil {
		return nil, eris.Wrap(err, "sql: fetch page")
	}
	defer rows.Close()

	page := make([]*models.RawListing, 0, s.pageSize)
	for rows.Next() {
		var (
			id                                           string
			price, currency, m2, hood, ptype, facilities sql.NullString
			bedrooms, bathrooms                          sql.NullString
		)
		if err := rows.Scan(&id, &price, &currency, &m2, &hood, &ptype, &facilities, &bedrooms, &bathrooms); err != nil {
			return nil, eris.Wrap(err, "sql: scan row")
		}

		codes, err := ParseFacilities(facilities.String)
		if err != nil {
			s.logger.Warnw("[sql] Unreadable facilities, treating as none", "id", id, "error", err)
			codes = nil
		}

		page = append(page, &models.RawListing{
			ID:             id,
			Price:          price.String,
			CurrencyID:     currency.String,
			M2:             m2.String,
			Neighborhood:   hood.String,
			PropertyTypeID: ptype.String,
			Facilities:     codes,
			Bedrooms:       bedrooms.String,
			Bathrooms:      bathrooms.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sql: iterate rows")
	}
	return page, nil
}

func (s *SQLSource) placeholder(n int) string {
	if s.driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}

func nullable(v string) any {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}
