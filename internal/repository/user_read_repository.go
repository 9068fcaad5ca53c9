package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/VanMinhNguyen21/api-web/internal/errs"
	"github.com/VanMinhNguyen21/api-web/internal/models"
	"github.com/VanMinhNguyen21/api-web/internal/redisstore"
)

const userViewKeyPrefix = "user:view:"

// UserReadRepository handles all read operations for users. Single-row
// lookups go through Redis first with a PostgreSQL fallback; filtered
// listings always hit PostgreSQL since the filter space is unbounded.
type UserReadRepository struct {
	db    *sql.DB
	cache *redisstore.ViewCache[models.UserView]
}

func NewUserReadRepository(db *sql.DB, redisClient *goredis.Client) *UserReadRepository {
	return &UserReadRepository{
		db:    db,
		cache: redisstore.NewViewCache[models.UserView](redisClient, 0),
	}
}

// List returns every live account matching the optional substring filters,
// newest first. Filters are conjunctive; an empty filter matches all rows.
func (r *UserReadRepository) List(ctx context.Context, nameFilter, emailFilter string) ([]models.UserView, error) {
	query := `
		SELECT id, role, fullname, email, avatar, created_at, updated_at
		FROM users
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR fullname ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR email ILIKE '%' || $2 || '%')
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, nameFilter, emailFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	views := []models.UserView{}
	for rows.Next() {
		var v models.UserView
		if err := rows.Scan(
			&v.ID, &v.Role, &v.Fullname, &v.Email, &v.Avatar,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}
	return views, nil
}

// GetByID returns a UserView from Redis first, then PostgreSQL.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserView, error) {
	cacheKey := userViewKey(id)

	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	query := `
		SELECT id, role, fullname, email, avatar, created_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	var view models.UserView
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&view.ID, &view.Role, &view.Fullname, &view.Email, &view.Avatar,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Warm the cache
	r.CacheUserView(ctx, &view)
	return &view, nil
}

// CacheUserView stores or refreshes the Redis read model for a user.
// Called by the command service after every mutation.
func (r *UserReadRepository) CacheUserView(ctx context.Context, view *models.UserView) {
	r.cache.Set(ctx, userViewKey(view.ID), view)
}

// InvalidateUserView removes the Redis read model entry for a deleted user.
func (r *UserReadRepository) InvalidateUserView(ctx context.Context, userID int64) {
	r.cache.Delete(ctx, userViewKey(userID))
}

func userViewKey(id int64) string {
	return userViewKeyPrefix + strconv.FormatInt(id, 10)
}
