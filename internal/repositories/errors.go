package repositories

import "errors"

var (
	// ErrStorageUnavailable means the data file could not be read or written.
	ErrStorageUnavailable = errors.New("campaign storage unavailable")
	// ErrCorruptData means the data file exists but is not a campaign collection.
	ErrCorruptData = errors.New("campaign data is corrupt")
)
