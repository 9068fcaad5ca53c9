package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/VanMinhNguyen21/api-web/internal/errs"
	"github.com/VanMinhNguyen21/api-web/internal/models"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *models.Product) error {
	query := `
		INSERT INTO products (supplier_id, name, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(query,
		p.SupplierID, p.Name, p.Description, p.Price,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		// 23503: the supplier foreign key does not resolve.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return errs.ErrSupplierNotFound
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(id int64) (*models.Product, error) {
	query := `
		SELECT id, supplier_id, name, description, price, created_at, updated_at
		FROM products
		WHERE id = $1 AND deleted_at IS NULL
	`
	var p models.Product
	err := r.db.QueryRow(query, id).Scan(
		&p.ID, &p.SupplierID, &p.Name, &p.Description, &p.Price,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// List filters by supplier when supplierID > 0 and by name substring when
// nameFilter is non-empty.
func (r *ProductRepository) List(supplierID int64, nameFilter string) ([]models.Product, error) {
	query := `
		SELECT id, supplier_id, name, description, price, created_at, updated_at
		FROM products
		WHERE deleted_at IS NULL
		  AND ($1 = 0 OR supplier_id = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY id DESC
	`
	rows, err := r.db.Query(query, supplierID, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.SupplierID, &p.Name, &p.Description, &p.Price,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Update(p *models.Product) error {
	query := `
		UPDATE products
		SET supplier_id = $2, name = $3, description = $4, price = $5, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at
	`
	err := r.db.QueryRow(query,
		p.ID, p.SupplierID, p.Name, p.Description, p.Price,
	).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return errs.ErrNotFound
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return errs.ErrSupplierNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Delete(id int64) error {
	query := `UPDATE products SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return checkAffected(result)
}
