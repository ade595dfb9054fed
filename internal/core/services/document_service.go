package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/albaraka/albaraka-digital-backend/internal/apperrors"
	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
	portssvc "github.com/albaraka/albaraka-digital-backend/internal/core/ports/services"
	"github.com/albaraka/albaraka-digital-backend/internal/dto"
	"github.com/albaraka/albaraka-digital-backend/internal/middleware"
)

// validationReviewerID marks approvals and rejections decided by the
// automated document check in the operation's audit trail.
const validationReviewerID = "system:document-validation"

type documentService struct {
	documentRepo portsrepo.DocumentRepository
	operationSvc portssvc.OperationSvcFacade
	validator    portssvc.DocumentValidatorSvc
	uploadPath   string
	allowedTypes []string
	maxSizeBytes int64
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo portsrepo.DocumentRepository, operationSvc portssvc.OperationSvcFacade, validator portssvc.DocumentValidatorSvc, uploadPath string, allowedTypes []string, maxSizeBytes int64) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		operationSvc: operationSvc,
		validator:    validator,
		uploadPath:   uploadPath,
		allowedTypes: allowedTypes,
		maxSizeBytes: maxSizeBytes,
	}
}

// Ensure documentService implements the portssvc.DocumentSvcFacade interface
var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// validateUpload checks size and file extension against the configured limits.
func (s *documentService) validateUpload(upload dto.DocumentUpload) error {
	if len(upload.Data) == 0 {
		return fmt.Errorf("%w: uploaded file is empty", apperrors.ErrValidation)
	}
	if int64(len(upload.Data)) > s.maxSizeBytes {
		return fmt.Errorf("%w: file exceeds the %d byte limit", apperrors.ErrValidation, s.maxSizeBytes)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(upload.FileName)), ".")
	for _, allowed := range s.allowedTypes {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: file type %q is not allowed", apperrors.ErrValidation, ext)
}

// UploadDocument stores the file on disk under a fresh UUID name, persists
// the document row and, for operations still pending review, runs the
// automated validation check. The check can finalize the operation; any
// failure in it leaves the operation untouched and never fails the upload.
func (s *documentService) UploadDocument(ctx context.Context, operationID string, upload dto.DocumentUpload, uploaderUserID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateUpload(upload); err != nil {
		return nil, err
	}

	op, err := s.operationSvc.GetOperationByID(ctx, operationID)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	documentID := uuid.NewString()
	storedName := documentID + strings.ToLower(filepath.Ext(upload.FileName))
	storagePath := filepath.Join(s.uploadPath, storedName)
	if err := os.WriteFile(storagePath, upload.Data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := domain.Document{
		DocumentID:  documentID,
		Name:        upload.FileName,
		ContentType: upload.ContentType,
		StoragePath: storagePath,
		OperationID: operationID,
		UploadedAt:  time.Now(),
	}
	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		if removeErr := os.Remove(storagePath); removeErr != nil {
			logger.Warn("Failed to remove orphaned file", slog.String("path", storagePath), slog.String("error", removeErr.Error()))
		}
		return nil, err
	}

	logger.Info("Document uploaded",
		slog.String("document_id", doc.DocumentID),
		slog.String("operation_id", operationID),
		slog.String("uploaded_by", uploaderUserID),
	)

	if op.Status == domain.Pending {
		s.runValidation(ctx, op, upload)
	}

	return &doc, nil
}

// runValidation asks the external collaborator for a verdict and finalizes
// the operation when it answers decisively. NEED_HUMAN_REVIEW and every
// failure mode leave the operation pending.
func (s *documentService) runValidation(ctx context.Context, op *domain.Operation, upload dto.DocumentUpload) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result, err := s.validator.ValidateDocument(ctx, upload.Data, upload.ContentType, op.Summary())
	if err != nil {
		logger.Warn("Document validation failed, operation left pending",
			slog.String("operation_id", op.OperationID),
			slog.String("error", err.Error()),
		)
		return
	}

	logger.Info("Document validation verdict",
		slog.String("operation_id", op.OperationID),
		slog.String("status", string(result.Status)),
		slog.Float64("confidence", result.Confidence),
		slog.String("reasoning", result.Reasoning),
	)

	switch result.Status {
	case domain.ValidationApprove:
		if _, err := s.operationSvc.ApproveOperation(ctx, op.OperationID, validationReviewerID); err != nil {
			logger.Warn("Automated approval failed, operation left pending",
				slog.String("operation_id", op.OperationID),
				slog.String("error", err.Error()),
			)
		}
	case domain.ValidationReject:
		if _, err := s.operationSvc.RejectOperation(ctx, op.OperationID, validationReviewerID); err != nil {
			logger.Warn("Automated rejection failed, operation left pending",
				slog.String("operation_id", op.OperationID),
				slog.String("error", err.Error()),
			)
		}
	case domain.ValidationNeedHumanReview:
		// Explicitly nothing. A human reviewer picks it up from the queue.
	}
}

// ListDocumentsByOperation retrieves the documents attached to an operation.
func (s *documentService) ListDocumentsByOperation(ctx context.Context, operationID string) ([]domain.Document, error) {
	return s.documentRepo.FindDocumentsByOperationID(ctx, operationID)
}

// DownloadDocument returns a document's metadata together with its stored
// bytes.
func (s *documentService) DownloadDocument(ctx context.Context, documentID string) (*domain.Document, []byte, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(doc.StoragePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: stored file for document %s", apperrors.ErrNotFound, documentID)
		}
		return nil, nil, fmt.Errorf("failed to read stored document %s: %w", documentID, err)
	}
	return doc, data, nil
}
