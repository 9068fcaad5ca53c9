package command

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/VanMinhNguyen21/api-web/internal/authz"
	"github.com/VanMinhNguyen21/api-web/internal/cqrs"
	"github.com/VanMinhNguyen21/api-web/internal/errs"
	"github.com/VanMinhNguyen21/api-web/internal/events"
	"github.com/VanMinhNguyen21/api-web/internal/models"
	"github.com/VanMinhNguyen21/api-web/internal/repository"
	"github.com/VanMinhNguyen21/api-web/internal/utils"
)

// EventPublisher is the slice of events.Publisher the command services use.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// UserCommandService writes account state to PostgreSQL and keeps the Redis
// read model up to date.
type UserCommandService struct {
	writeRepo repository.UserWriter
	readRepo  repository.UserReader
	publisher EventPublisher
}

func NewUserCommandService(
	writeRepo repository.UserWriter,
	readRepo repository.UserReader,
	publisher EventPublisher,
) *UserCommandService {
	return &UserCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
	}
}

// CreateUser hashes the password and inserts the account. The plaintext
// never reaches the repository or the event stream.
func (s *UserCommandService) CreateUser(cmd cqrs.CreateUserCommand) (*models.User, error) {
	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Role:         cmd.Role,
		Fullname:     cmd.Fullname,
		Email:        cmd.Email,
		PasswordHash: passwordHash,
		Avatar:       cmd.Avatar,
	}
	if err := s.writeRepo.Create(user); err != nil {
		return nil, err
	}
	ctx := context.Background()
	s.readRepo.CacheUserView(ctx, models.NewUserView(user))
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserCreated, events.UserCreatedEvent{
		UserID:   user.ID,
		Email:    user.Email,
		Fullname: user.Fullname,
		Role:     user.Role,
	}); err != nil {
		log.Printf("Failed to publish user.created event: %v", err)
	}
	return user, nil
}

// UpdateUser merges the allow-listed fields {fullname, email, role, avatar}
// into the existing record. Email uniqueness excludes the account itself so
// re-submitting the current address is not a conflict.
func (s *UserCommandService) UpdateUser(cmd cqrs.UpdateUserCommand) (*models.UserView, error) {
	user, err := s.writeRepo.GetByID(cmd.UserID)
	if err != nil {
		return nil, err
	}

	inUse, err := s.writeRepo.EmailInUse(cmd.Email, user.ID)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, emailTakenValidation()
	}

	user.Fullname = cmd.Fullname
	user.Email = cmd.Email
	user.Role = cmd.Role
	if cmd.Avatar != nil {
		user.Avatar = *cmd.Avatar
	}
	if err := s.writeRepo.Update(user); err != nil {
		// Constraint backstop for a concurrent claim of the same email.
		if errors.Is(err, errs.ErrEmailTaken) {
			return nil, emailTakenValidation()
		}
		return nil, err
	}

	view := models.NewUserView(user)
	s.readRepo.CacheUserView(context.Background(), view)
	if err := s.publisher.Publish(context.Background(), events.UserEventsStream, events.UserUpdated, events.UserUpdatedEvent{
		UserID:   user.ID,
		Email:    user.Email,
		Fullname: user.Fullname,
		Role:     user.Role,
	}); err != nil {
		log.Printf("Failed to publish user.updated event: %v", err)
	}
	return view, nil
}

func (s *UserCommandService) DeleteUser(cmd cqrs.DeleteUserCommand) error {
	if err := s.writeRepo.Delete(cmd.UserID); err != nil {
		return err
	}
	s.readRepo.InvalidateUserView(context.Background(), cmd.UserID)
	if err := s.publisher.Publish(context.Background(), events.UserEventsStream, events.UserDeleted, events.UserDeletedEvent{
		UserID: cmd.UserID,
	}); err != nil {
		log.Printf("Failed to publish user.deleted event: %v", err)
	}
	return nil
}

// ChangePassword runs the authorization decision once, then applies the
// chosen path. Admins set any account's password without proving the old
// one; everyone else must verify their current password first.
func (s *UserCommandService) ChangePassword(cmd cqrs.ChangePasswordCommand) error {
	decision := authz.DecidePasswordChange(
		authz.Caller{ID: cmd.CallerID, Role: cmd.CallerRole},
		cmd.TargetUserID,
	)
	if decision.Outcome == authz.Denied {
		return errs.ErrForbidden
	}

	target, err := s.writeRepo.GetByID(decision.TargetID)
	if err != nil {
		return err
	}

	if decision.Outcome == authz.SelfService {
		if !utils.CheckPassword(cmd.OldPassword, target.PasswordHash) {
			return errs.ErrPasswordMismatch
		}
	}

	passwordHash, err := utils.HashPassword(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.writeRepo.UpdatePassword(target.ID, passwordHash); err != nil {
		return err
	}

	ctx := context.Background()
	s.readRepo.InvalidateUserView(ctx, target.ID)
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserPasswordChanged, events.UserPasswordChangedEvent{
		UserID:  target.ID,
		ActorID: cmd.CallerID,
		ByAdmin: decision.Outcome == authz.AdminOverride,
	}); err != nil {
		log.Printf("Failed to publish user.password_changed event: %v", err)
	}
	return nil
}

func emailTakenValidation() error {
	return &errs.ValidationError{Fields: []errs.FieldError{{
		Field:   "Email",
		Message: "The email address is already in use.",
		Type:    "unique",
	}}}
}
