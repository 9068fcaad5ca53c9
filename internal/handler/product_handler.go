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

type ProductCommander interface {
	CreateProduct(cqrs.CreateProductCommand) (*models.Product, error)
	UpdateProduct(cqrs.UpdateProductCommand) (*models.Product, error)
	DeleteProduct(cqrs.DeleteProductCommand) error
}

type ProductQuerier interface {
	ListProducts(cqrs.ListProductsQuery) ([]models.Product, error)
	GetProduct(cqrs.GetProductQuery) (*models.Product, error)
}

type ProductHandler struct {
	commands ProductCommander
	queries  ProductQuerier
}

type ProductRequest struct {
	SupplierID  int64   `json:"supplier_id" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

func NewProductHandler(commands ProductCommander, queries ProductQuerier) *ProductHandler {
	return &ProductHandler{commands: commands, queries: queries}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var supplierID int64
	if v := c.Query("supplier_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			middleware.RespondWithError(c, http.StatusBadRequest, "invalid supplier_id")
			return
		}
		supplierID = id
	}

	products, err := h.queries.ListProducts(cqrs.ListProductsQuery{
		SupplierID: supplierID,
		Name:       c.Query("name"),
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	middleware.RespondWithData(c, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	product, err := h.queries.GetProduct(cqrs.GetProductQuery{ProductID: productID})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "product not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	middleware.RespondWithData(c, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrors := middleware.ValidateRequest(req); fieldErrors != nil {
		middleware.RespondWithValidationError(c, fieldErrors)
		return
	}

	product, err := h.commands.CreateProduct(cqrs.CreateProductCommand{
		SupplierID:  req.SupplierID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, errs.ErrSupplierNotFound) {
			middleware.RespondWithError(c, http.StatusBadRequest, "supplier not found")
			return
		}
		middleware.RespondWithErrorDetail(c, http.StatusBadRequest,
			"product creation failed", storeErrorDetail(err))
		return
	}
	middleware.RespondWithData(c, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrors := middleware.ValidateRequest(req); fieldErrors != nil {
		middleware.RespondWithValidationError(c, fieldErrors)
		return
	}

	product, err := h.commands.UpdateProduct(cqrs.UpdateProductCommand{
		ProductID:   productID,
		SupplierID:  req.SupplierID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "product not found")
			return
		}
		if errors.Is(err, errs.ErrSupplierNotFound) {
			middleware.RespondWithError(c, http.StatusBadRequest, "supplier not found")
			return
		}
		middleware.RespondWithErrorDetail(c, http.StatusBadRequest,
			"update failed", storeErrorDetail(err))
		return
	}
	middleware.RespondWithData(c, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.commands.DeleteProduct(cqrs.DeleteProductCommand{ProductID: productID}); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "product not found")
			return
		}
		middleware.RespondWithErrorDetail(c, http.StatusBadRequest,
			"delete failed", storeErrorDetail(err))
		return
	}
	middleware.RespondWithMessage(c, "delete successful")
}
