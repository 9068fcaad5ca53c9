package query

import (
	"github.com/VanMinhNguyen21/api-web/internal/cqrs"
	"github.com/VanMinhNguyen21/api-web/internal/models"
	"github.com/VanMinhNguyen21/api-web/internal/repository"
)

type SupplierQueryService struct {
	repo repository.SupplierStore
}

func NewSupplierQueryService(repo repository.SupplierStore) *SupplierQueryService {
	return &SupplierQueryService{repo: repo}
}

func (s *SupplierQueryService) ListSuppliers(q cqrs.ListSuppliersQuery) ([]models.Supplier, error) {
	return s.repo.List(q.Name)
}

func (s *SupplierQueryService) GetSupplier(q cqrs.GetSupplierQuery) (*models.Supplier, error) {
	return s.repo.GetByID(q.SupplierID)
}

type ProductQueryService struct {
	repo repository.ProductStore
}

func NewProductQueryService(repo repository.ProductStore) *ProductQueryService {
	return &ProductQueryService{repo: repo}
}

func (s *ProductQueryService) ListProducts(q cqrs.ListProductsQuery) ([]models.Product, error) {
	return s.repo.List(q.SupplierID, q.Name)
}

func (s *ProductQueryService) GetProduct(q cqrs.GetProductQuery) (*models.Product, error) {
	return s.repo.GetByID(q.ProductID)
}

// ReferenceQueryService serves the read-only geographic and shape tables.
type ReferenceQueryService struct {
	wards  repository.WardReader
	shapes repository.ShapeReader
}

func NewReferenceQueryService(wards repository.WardReader, shapes repository.ShapeReader) *ReferenceQueryService {
	return &ReferenceQueryService{wards: wards, shapes: shapes}
}

func (s *ReferenceQueryService) ListWards(q cqrs.ListWardsQuery) ([]models.Ward, error) {
	return s.wards.List(q.DistrictCode, q.Name)
}

func (s *ReferenceQueryService) GetWard(q cqrs.GetWardQuery) (*models.Ward, error) {
	return s.wards.GetByID(q.WardID)
}

func (s *ReferenceQueryService) ListShapes() ([]models.Shape, error) {
	return s.shapes.List()
}
