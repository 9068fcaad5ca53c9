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

// ReferenceQuerier defines the read-only reference data operations.
type ReferenceQuerier interface {
	ListWards(cqrs.ListWardsQuery) ([]models.Ward, error)
	GetWard(cqrs.GetWardQuery) (*models.Ward, error)
	ListShapes() ([]models.Shape, error)
}

// ReferenceHandler serves the ward and shape lookup tables.
type ReferenceHandler struct {
	queries ReferenceQuerier
}

func NewReferenceHandler(queries ReferenceQuerier) *ReferenceHandler {
	return &ReferenceHandler{queries: queries}
}

func (h *ReferenceHandler) ListWards(c *gin.Context) {
	wards, err := h.queries.ListWards(cqrs.ListWardsQuery{
		DistrictCode: c.Query("district"),
		Name:         c.Query("name"),
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	middleware.RespondWithData(c, wards)
}

func (h *ReferenceHandler) GetWard(c *gin.Context) {
	wardID, ok := paramID(c, "id")
	if !ok {
		return
	}

	ward, err := h.queries.GetWard(cqrs.GetWardQuery{WardID: wardID})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "ward not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	middleware.RespondWithData(c, ward)
}

func (h *ReferenceHandler) ListShapes(c *gin.Context) {
	shapes, err := h.queries.ListShapes()
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	middleware.RespondWithData(c, shapes)
}
