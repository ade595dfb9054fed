package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albaraka/albaraka-digital-backend/internal/apperrors"
	"github.com/albaraka/albaraka-digital-backend/internal/core/domain"
	portsrepo "github.com/albaraka/albaraka-digital-backend/internal/core/ports/repositories"
	"github.com/albaraka/albaraka-digital-backend/internal/models"
	"github.com/albaraka/albaraka-digital-backend/internal/utils/mapping"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document metadata.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepository
var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, name, content_type, storage_path, operation_id, uploaded_at`

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.Name,
		&m.ContentType,
		&m.StoragePath,
		&m.OperationID,
		&m.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	doc := mapping.ToDomainDocument(m)
	return &doc, nil
}

// SaveDocument persists a new document row.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	m := mapping.ToModelDocument(document)

	query := `
		INSERT INTO documents (document_id, name, content_type, storage_path, operation_id, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.Name,
		m.ContentType,
		m.StoragePath,
		m.OperationID,
		m.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", m.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a document by its ID.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`

	doc, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document by ID %s: %w", documentID, err)
	}
	return doc, nil
}

// FindDocumentsByOperationID retrieves the documents attached to an operation,
// oldest first.
func (r *PgxDocumentRepository) FindDocumentsByOperationID(ctx context.Context, operationID string) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE operation_id = $1 ORDER BY uploaded_at ASC;`

	rows, err := r.Pool.Query(ctx, query, operationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents for operation %s: %w", operationID, err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row for operation %s: %w", operationID, err)
		}
		docs = append(docs, *doc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows for operation %s: %w", operationID, rows.Err())
	}
	return docs, nil
}
