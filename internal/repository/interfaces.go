package repository

import (
	"context"

	"github.com/VanMinhNguyen21/api-web/internal/models"
)

// The command and query services depend on these interfaces rather than the
// concrete repositories so tests can substitute in-memory fakes.

type UserWriter interface {
	Create(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePassword(id int64, passwordHash string) error
	Delete(id int64) error
	EmailInUse(email string, excludeID int64) (bool, error)
}

type UserReader interface {
	List(ctx context.Context, nameFilter, emailFilter string) ([]models.UserView, error)
	GetByID(ctx context.Context, id int64) (*models.UserView, error)
	CacheUserView(ctx context.Context, view *models.UserView)
	InvalidateUserView(ctx context.Context, userID int64)
}

type SupplierStore interface {
	Create(s *models.Supplier) error
	GetByID(id int64) (*models.Supplier, error)
	List(nameFilter string) ([]models.Supplier, error)
	Update(s *models.Supplier) error
	Delete(id int64) error
	Exists(id int64) (bool, error)
}

type ProductStore interface {
	Create(p *models.Product) error
	GetByID(id int64) (*models.Product, error)
	List(supplierID int64, nameFilter string) ([]models.Product, error)
	Update(p *models.Product) error
	Delete(id int64) error
}

type WardReader interface {
	List(districtCode, nameFilter string) ([]models.Ward, error)
	GetByID(id int64) (*models.Ward, error)
}

type ShapeReader interface {
	List() ([]models.Shape, error)
}

type AuditStore interface {
	Record(ctx context.Context, entry *models.AuditEntry) error
}
