package repositories

import (
	"context"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// DocumentRepository defines persistence operations for document metadata.
// The bytes themselves live on disk under the configured upload path.
type DocumentRepository interface {
	// SaveDocument persists a new document row.
	SaveDocument(ctx context.Context, document domain.Document) error

	// FindDocumentByID retrieves a document by its unique identifier.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// FindDocumentsByOperationID retrieves the documents attached to an
	// operation, oldest first.
	FindDocumentsByOperationID(ctx context.Context, operationID string) ([]domain.Document, error)
}
