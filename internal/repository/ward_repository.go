package repository

import (
	"database/sql"
	"fmt"

	"github.com/VanMinhNguyen21/api-web/internal/errs"
	"github.com/VanMinhNguyen21/api-web/internal/models"
)

// WardRepository serves the commune reference table. The data is imported
// once and read-only from the API's point of view.
type WardRepository struct {
	db *sql.DB
}

func NewWardRepository(db *sql.DB) *WardRepository {
	return &WardRepository{db: db}
}

func (r *WardRepository) List(districtCode, nameFilter string) ([]models.Ward, error) {
	query := `
		SELECT id, code, name, type, district_code
		FROM wards
		WHERE ($1 = '' OR district_code = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY code
	`
	rows, err := r.db.Query(query, districtCode, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list wards: %w", err)
	}
	defer rows.Close()

	wards := []models.Ward{}
	for rows.Next() {
		var w models.Ward
		if err := rows.Scan(&w.ID, &w.Code, &w.Name, &w.Type, &w.DistrictCode); err != nil {
			return nil, fmt.Errorf("failed to scan ward row: %w", err)
		}
		wards = append(wards, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ward rows: %w", err)
	}
	return wards, nil
}

func (r *WardRepository) GetByID(id int64) (*models.Ward, error) {
	query := `SELECT id, code, name, type, district_code FROM wards WHERE id = $1`
	var w models.Ward
	err := r.db.QueryRow(query, id).Scan(&w.ID, &w.Code, &w.Name, &w.Type, &w.DistrictCode)
	if err == sql.ErrNoRows {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ward: %w", err)
	}
	return &w, nil
}

// ShapeRepository serves the shape reference table.
type ShapeRepository struct {
	db *sql.DB
}

func NewShapeRepository(db *sql.DB) *ShapeRepository {
	return &ShapeRepository{db: db}
}

func (r *ShapeRepository) List() ([]models.Shape, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), created_at, updated_at
		FROM shapes
		WHERE deleted_at IS NULL
		ORDER BY id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shapes: %w", err)
	}
	defer rows.Close()

	shapes := []models.Shape{}
	for rows.Next() {
		var s models.Shape
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shape row: %w", err)
		}
		shapes = append(shapes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shape rows: %w", err)
	}
	return shapes, nil
}
