package services

import (
	"context"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
)

// DocumentSvcFacade handles supporting documents and the validation trigger
// they may fire.
type DocumentSvcFacade interface {
	// UploadDocument stores the file, persists the document row and, for
	// pending above-threshold operations, runs the validation trigger. The
	// trigger outcome may approve or reject the operation; trigger failures
	// leave it PENDING and never fail the upload.
	UploadDocument(ctx context.Context, operationID string, upload dto.DocumentUpload, uploaderUserID string) (*domain.Document, error)

	// ListDocumentsByOperation retrieves the documents attached to an operation.
	ListDocumentsByOperation(ctx context.Context, operationID string) ([]domain.Document, error)

	// DownloadDocument returns a document's metadata and its stored bytes.
	DownloadDocument(ctx context.Context, documentID string) (*domain.Document, []byte, error)
}
