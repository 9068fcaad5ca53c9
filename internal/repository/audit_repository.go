package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/VanMinhNguyen21/api-web/internal/models"
)

// AuditRepository appends domain events to the audit_log table. Rows are
// insert-only; nothing in the API mutates or deletes them.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO audit_log (event_type, actor_id, subject_id, detail)
		VALUES ($1, NULLIF($2, 0), NULLIF($3, 0), NULLIF($4, '')::jsonb)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		entry.EventType, entry.ActorID, entry.SubjectID, entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}
