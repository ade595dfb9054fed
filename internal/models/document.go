package models

import "time"

// Document is the database representation of a document row.
type Document struct {
	DocumentID  string    `db:"document_id"`
	Name        string    `db:"name"`
	ContentType string    `db:"content_type"`
	StoragePath string    `db:"storage_path"`
	OperationID string    `db:"operation_id"`
	UploadedAt  time.Time `db:"uploaded_at"`
}
