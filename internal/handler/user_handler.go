package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VanMinhNguyen21/api-web/internal/cqrs"
	"github.com/VanMinhNguyen21/api-web/internal/errs"
	"github.com/VanMinhNguyen21/api-web/internal/middleware"
	"github.com/VanMinhNguyen21/api-web/internal/models"
)

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	CreateUser(cqrs.CreateUserCommand) (*models.User, error)
	UpdateUser(cqrs.UpdateUserCommand) (*models.UserView, error)
	DeleteUser(cqrs.DeleteUserCommand) error
	ChangePassword(cqrs.ChangePasswordCommand) error
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	ListUsers(cqrs.ListUsersQuery) ([]models.UserView, error)
	GetUser(cqrs.GetUserQuery) (*models.UserView, error)
	GetProfile(cqrs.GetProfileQuery) (*models.User, error)
}

// UserHandler routes requests to the command or query service as appropriate.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
}

type CreateUserRequest struct {
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"required"`
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Avatar   string `json:"avatar"`
}

// UpdateUserRequest is the full allow-list of mutable account fields.
// A password submitted here is ignored by construction; the change-password
// endpoint is the only write path for it. Avatar is a pointer so a request
// that omits the key leaves the stored avatar alone.
type UpdateUserRequest struct {
	Fullname string  `json:"fullname" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Role     string  `json:"role" validate:"required"`
	Avatar   *string `json:"avatar"`
}

type ChangePasswordRequest struct {
	UserID      *int64 `json:"user_id"`
	OldPassword string `json:"password_old"`
	NewPassword string `json:"password" validate:"required"`
}

func NewUserHandler(commands UserCommander, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

// ListUsers returns every live account matching the optional name/email
// substring filters, newest first.
func (h *UserHandler) ListUsers(c *gin.Context) {
	views, err := h.queries.ListUsers(cqrs.ListUsersQuery{
		Name:  c.Query("name"),
		Email: c.Query("email"),
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	middleware.RespondWithData(c, views)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrors := middleware.ValidateRequest(req); fieldErrors != nil {
		middleware.RespondWithValidationError(c, fieldErrors)
		return
	}

	_, err := h.commands.CreateUser(cqrs.CreateUserCommand{
		Role:     req.Role,
		Password: req.Password,
		Fullname: req.Fullname,
		Email:    req.Email,
		Avatar:   req.Avatar,
	})
	if err != nil {
		middleware.RespondWithErrorDetail(c, http.StatusBadRequest,
			"account creation failed", storeErrorDetail(err))
		return
	}

	middleware.RespondWithMessage(c, "account created")
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	view, err := h.queries.GetUser(cqrs.GetUserQuery{UserID: userID})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "user not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithData(c, view)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrors := middleware.ValidateRequest(req); fieldErrors != nil {
		middleware.RespondWithValidationError(c, fieldErrors)
		return
	}

	_, err := h.commands.UpdateUser(cqrs.UpdateUserCommand{
		UserID:   userID,
		Fullname: req.Fullname,
		Email:    req.Email,
		Role:     req.Role,
		Avatar:   req.Avatar,
	})
	if err != nil {
		if ve, ok := errs.AsValidation(err); ok {
			middleware.RespondWithValidationError(c, ve.Fields)
			return
		}
		if errors.Is(err, errs.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "user not found")
			return
		}
		middleware.RespondWithErrorDetail(c, http.StatusBadRequest,
			"update failed", storeErrorDetail(err))
		return
	}

	middleware.RespondWithMessage(c, "update successful")
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.commands.DeleteUser(cqrs.DeleteUserCommand{UserID: userID}); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "user not found")
			return
		}
		middleware.RespondWithErrorDetail(c, http.StatusBadRequest,
			"delete failed", storeErrorDetail(err))
		return
	}

	middleware.RespondWithMessage(c, "delete successful")
}

// GetProfile returns the raw account record. Routed behind RequireAdmin: it
// exposes role and timestamps for administration screens, but never the
// password hash.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.queries.GetProfile(cqrs.GetProfileQuery{UserID: userID})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "user not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithData(c, user)
}

// ChangePassword resolves the caller from the token, decides the
// authorization path once and reports mismatches and denials with real
// forbidden statuses.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Authorization required")
		return
	}
	callerRole, _ := middleware.GetRole(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrors := middleware.ValidateRequest(req); fieldErrors != nil {
		middleware.RespondWithValidationError(c, fieldErrors)
		return
	}

	err := h.commands.ChangePassword(cqrs.ChangePasswordCommand{
		CallerID:     callerID,
		CallerRole:   callerRole,
		TargetUserID: req.UserID,
		OldPassword:  req.OldPassword,
		NewPassword:  req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrForbidden):
			middleware.RespondWithError(c, http.StatusForbidden, "no permission")
		case errors.Is(err, errs.ErrPasswordMismatch):
			middleware.RespondWithError(c, http.StatusForbidden, "password not correct")
		case errors.Is(err, errs.ErrNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "user not found")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	middleware.RespondWithMessage(c, "password updated")
}

// paramID parses the numeric path id, responding 404 on garbage so probing
// /users/abc behaves like any other missing resource.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.RespondWithError(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

// storeErrorDetail keeps failure envelopes diagnostic but safe: known store
// errors pass through, anything else collapses to a generic marker.
func storeErrorDetail(err error) string {
	if errors.Is(err, errs.ErrEmailTaken) {
		return errs.ErrEmailTaken.Error()
	}
	if errors.Is(err, errs.ErrSupplierNotFound) {
		return errs.ErrSupplierNotFound.Error()
	}
	return "store failure"
}
