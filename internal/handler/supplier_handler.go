package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VanMinhNguyen21/api-web/internal/cqrs"
	"github.com/VanMinhNguyen21/api-web/internal/errs"
	"github.com/VanMinhNguyen21/api-web/internal/middleware"
	"github.com/VanMinhNguyen21/api-web/internal/models"
)

type SupplierCommander interface {
	CreateSupplier(cqrs.CreateSupplierCommand) (*models.Supplier, error)
	UpdateSupplier(cqrs.UpdateSupplierCommand) (*models.Supplier, error)
	DeleteSupplier(cqrs.DeleteSupplierCommand) error
}

type SupplierQuerier interface {
	ListSuppliers(cqrs.ListSuppliersQuery) ([]models.Supplier, error)
	GetSupplier(cqrs.GetSupplierQuery) (*models.Supplier, error)
}

type SupplierHandler struct {
	commands SupplierCommander
	queries  SupplierQuerier
}

type SupplierRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Email       string `json:"email" validate:"omitempty,email"`
	Telephone   string `json:"telephone"`
	Address     string `json:"address"`
}

func NewSupplierHandler(commands SupplierCommander, queries SupplierQuerier) *SupplierHandler {
	return &SupplierHandler{commands: commands, queries: queries}
}

func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.queries.ListSuppliers(cqrs.ListSuppliersQuery{Name: c.Query("name")})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	middleware.RespondWithData(c, suppliers)
}

func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	supplierID, ok := paramID(c, "id")
	if !ok {
		return
	}

	supplier, err := h.queries.GetSupplier(cqrs.GetSupplierQuery{SupplierID: supplierID})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "supplier not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	middleware.RespondWithData(c, supplier)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrors := middleware.ValidateRequest(req); fieldErrors != nil {
		middleware.RespondWithValidationError(c, fieldErrors)
		return
	}

	supplier, err := h.commands.CreateSupplier(cqrs.CreateSupplierCommand{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		Telephone:   req.Telephone,
		Address:     req.Address,
	})
	if err != nil {
		middleware.RespondWithErrorDetail(c, http.StatusBadRequest,
			"supplier creation failed", storeErrorDetail(err))
		return
	}
	middleware.RespondWithData(c, supplier)
}

func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	supplierID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrors := middleware.ValidateRequest(req); fieldErrors != nil {
		middleware.RespondWithValidationError(c, fieldErrors)
		return
	}

	supplier, err := h.commands.UpdateSupplier(cqrs.UpdateSupplierCommand{
		SupplierID:  supplierID,
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		Telephone:   req.Telephone,
		Address:     req.Address,
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "supplier not found")
			return
		}
		middleware.RespondWithErrorDetail(c, http.StatusBadRequest,
			"update failed", storeErrorDetail(err))
		return
	}
	middleware.RespondWithData(c, supplier)
}

func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	supplierID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.commands.DeleteSupplier(cqrs.DeleteSupplierCommand{SupplierID: supplierID}); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "supplier not found")
			return
		}
		middleware.RespondWithErrorDetail(c, http.StatusBadRequest,
			"delete failed", storeErrorDetail(err))
		return
	}
	middleware.RespondWithMessage(c, "delete successful")
}
