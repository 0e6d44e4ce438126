package storage

import "spotify-behavior-analysis/models"

// RecordWriter is the interface any cleaned-dataset backend must satisfy.
type RecordWriter interface {
	Write(records []*models.UserRecord) error
	Close() error
}

// RecordFetcher reads the cleaned dataset back for downstream analysis.
type RecordFetcher interface {
	FetchAll() ([]*models.UserRecord, error)
}
