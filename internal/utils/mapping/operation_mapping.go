package mapping

import (
	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	"github.com/albaraka/albaraka-digital-backend/internal/models"
)

// ToModelOperation converts a domain Operation to a model Operation
func ToModelOperation(d domain.Operation) models.Operation {
	return models.Operation{
		OperationID:         d.OperationID,
		Kind:                models.OperationKind(d.Kind),
		Amount:              d.Amount,
		Status:              models.OperationStatus(d.Status),
		Description:         d.Description,
		SourceAccountID:     d.SourceAccountID,
		TargetAccountNumber: d.TargetAccountNumber,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOperation converts a model Operation to a domain Operation
func ToDomainOperation(m models.Operation) domain.Operation {
	return domain.Operation{
		OperationID:         m.OperationID,
		Kind:                domain.OperationKind(m.Kind),
		Amount:              m.Amount,
		Status:              domain.OperationStatus(m.Status),
		Description:         m.Description,
		SourceAccountID:     m.SourceAccountID,
		TargetAccountNumber: m.TargetAccountNumber,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOperationSlice converts a slice of model Operations to a slice of domain Operations
func ToDomainOperationSlice(ms []models.Operation) []domain.Operation {
	ds := make([]domain.Operation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOperation(m)
	}
	return ds
}
