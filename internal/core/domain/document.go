package domain

import "time"

// Document is a supporting file attached to an operation. Attaching one to a
// pending above-threshold operation triggers the external validation check.
type Document struct {
	DocumentID  string    `json:"documentID"` // Primary Key (UUID)
	Name        string    `json:"name"`       // Original filename
	ContentType string    `json:"contentType"`
	StoragePath string    `json:"-"` // Location on disk, not exposed
	OperationID string    `json:"operationID"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
