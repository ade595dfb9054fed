package mapping

import (
	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	"github.com/albaraka/albaraka-digital-backend/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:  d.DocumentID,
		Name:        d.Name,
		ContentType: d.ContentType,
		StoragePath: d.StoragePath,
		OperationID: d.OperationID,
		UploadedAt:  d.UploadedAt,
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:  m.DocumentID,
		Name:        m.Name,
		ContentType: m.ContentType,
		StoragePath: m.StoragePath,
		OperationID: m.OperationID,
		UploadedAt:  m.UploadedAt,
	}
}

// ToDomainDocumentSlice converts a slice of model Documents to a slice of domain Documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}
