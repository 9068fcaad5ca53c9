package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/VanMinhNguyen21/api-web/internal/errs"
	"github.com/VanMinhNguyen21/api-web/internal/models"
)

// UserWriteRepository handles all state-mutating operations for users.
// It operates exclusively against the PostgreSQL write store (source of truth).
type UserWriteRepository struct {
	db *sql.DB
}

func NewUserWriteRepository(db *sql.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts the user and fills in the generated id and timestamps.
func (r *UserWriteRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (role, fullname, email, password_hash, avatar)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(query,
		user.Role, user.Fullname, user.Email, user.PasswordHash, user.Avatar,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errs.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID fetches the full write model (including PasswordHash) for internal operations.
func (r *UserWriteRepository) GetByID(id int64) (*models.User, error) {
	query := `
		SELECT id, role, fullname, email, password_hash, avatar, created_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	var user models.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID, &user.Role, &user.Fullname, &user.Email,
		&user.PasswordHash, &user.Avatar, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserWriteRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, role, fullname, email, password_hash, avatar, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1) AND deleted_at IS NULL
	`
	var user models.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID, &user.Role, &user.Fullname, &user.Email,
		&user.PasswordHash, &user.Avatar, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Update persists the allow-listed fields only and reads back the bumped
// updated_at so the projected view matches the row. The password column is
// untouchable here; UpdatePassword is the single write path for it.
func (r *UserWriteRepository) Update(user *models.User) error {
	query := `
		UPDATE users
		SET role = $2, fullname = $3, email = $4, avatar = $5, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at
	`
	err := r.db.QueryRow(query,
		user.ID, user.Role, user.Fullname, user.Email, user.Avatar,
	).Scan(&user.UpdatedAt)
	if err == sql.ErrNoRows {
		return errs.ErrNotFound
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errs.ErrEmailTaken
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserWriteRepository) UpdatePassword(id int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.Exec(query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return checkAffected(result)
}

// Delete soft-deletes the row so listings and lookups stop seeing it.
func (r *UserWriteRepository) Delete(id int64) error {
	query := `UPDATE users SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return checkAffected(result)
}

// EmailInUse reports whether another live account already holds the email.
// excludeID keeps the account being updated from conflicting with itself.
func (r *UserWriteRepository) EmailInUse(email string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE lower(email) = lower($1) AND id <> $2 AND deleted_at IS NULL
		)
	`
	var inUse bool
	if err := r.db.QueryRow(query, email, excludeID).Scan(&inUse); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return inUse, nil
}

func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return errs.ErrNotFound
	}
	return nil
}
