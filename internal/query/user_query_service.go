package query

import (
	"context"

	"github.com/VanMinhNguyen21/api-web/internal/cqrs"
	"github.com/VanMinhNguyen21/api-web/internal/models"
	"github.com/VanMinhNguyen21/api-web/internal/repository"
)

// UserQueryService serves the listing and lookup side of the account API.
type UserQueryService struct {
	readRepo  repository.UserReader
	writeRepo repository.UserWriter
}

func NewUserQueryService(readRepo repository.UserReader, writeRepo repository.UserWriter) *UserQueryService {
	return &UserQueryService{readRepo: readRepo, writeRepo: writeRepo}
}

// ListUsers returns the filtered listing, newest account first.
func (s *UserQueryService) ListUsers(q cqrs.ListUsersQuery) ([]models.UserView, error) {
	return s.readRepo.List(context.Background(), q.Name, q.Email)
}

// GetUser returns the outward-facing projection of one account.
func (s *UserQueryService) GetUser(q cqrs.GetUserQuery) (*models.UserView, error) {
	return s.readRepo.GetByID(context.Background(), q.UserID)
}

// GetProfile returns the raw write model. The handler gates this behind the
// admin check; the password hash is still never serialised.
func (s *UserQueryService) GetProfile(q cqrs.GetProfileQuery) (*models.User, error) {
	return s.writeRepo.GetByID(q.UserID)
}
