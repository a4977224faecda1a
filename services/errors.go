package services

import "fmt"

// SourceFetchError means the listing source could not deliver a snapshot.
// The run is aborted; no partial report is produced.
type SourceFetchError struct {
	Err error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetch listings: %v", e.Err)
}

func (e *SourceFetchError) Unwrap() error { return e.Err }
