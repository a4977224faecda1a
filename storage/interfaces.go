package storage

import (
	"context"

	"property-dashboard/models"
)

// ListingSource is the interface any listing store must satisfy.
// FetchAll returns a complete, unfiltered snapshot; order is not guaranteed.
type ListingSource interface {
	FetchAll(ctx context.Context) ([]*models.RawListing, error)
	Close() error
}
