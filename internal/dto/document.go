package dto

import (
	"time"

	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
)

// DocumentUpload carries the bytes and metadata of an uploaded file from the
// handler to the document service.
type DocumentUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID  string    `json:"documentID"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	OperationID string    `json:"operationID"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// ToDocumentResponse converts a domain.Document to a DocumentResponse DTO
func ToDocumentResponse(doc *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:  doc.DocumentID,
		Name:        doc.Name,
		ContentType: doc.ContentType,
		OperationID: doc.OperationID,
		UploadedAt:  doc.UploadedAt,
	}
}

// ToDocumentResponses converts a slice of domain.Document to response DTOs
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i])
	}
	return res
}
