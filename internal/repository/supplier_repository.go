package repository

import (
	"database/sql"
	"fmt"

	"github.com/VanMinhNguyen21/api-web/internal/errs"
	"github.com/VanMinhNguyen21/api-web/internal/models"
)

type SupplierRepository struct {
	db *sql.DB
}

func NewSupplierRepository(db *sql.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) Create(s *models.Supplier) error {
	query := `
		INSERT INTO suppliers (name, description, email, telephone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(query,
		s.Name, s.Description, s.Email, s.Telephone, s.Address,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepository) GetByID(id int64) (*models.Supplier, error) {
	query := `
		SELECT id, name, description, email, telephone, address, created_at, updated_at
		FROM suppliers
		WHERE id = $1 AND deleted_at IS NULL
	`
	var s models.Supplier
	err := r.db.QueryRow(query, id).Scan(
		&s.ID, &s.Name, &s.Description, &s.Email, &s.Telephone, &s.Address,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepository) List(nameFilter string) ([]models.Supplier, error) {
	query := `
		SELECT id, name, description, email, telephone, address, created_at, updated_at
		FROM suppliers
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY id DESC
	`
	rows, err := r.db.Query(query, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		var s models.Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.Email, &s.Telephone, &s.Address,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read supplier rows: %w", err)
	}
	return suppliers, nil
}

func (r *SupplierRepository) Update(s *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, description = $3, email = $4, telephone = $5, address = $6,
		    updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at
	`
	err := r.db.QueryRow(query,
		s.ID, s.Name, s.Description, s.Email, s.Telephone, s.Address,
	).Scan(&s.UpdatedAt)
	if err == sql.ErrNoRows {
		return errs.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepository) Delete(id int64) error {
	query := `UPDATE suppliers SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return checkAffected(result)
}

func (r *SupplierRepository) Exists(id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM suppliers WHERE id = $1 AND deleted_at IS NULL)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check supplier: %w", err)
	}
	return exists, nil
}
