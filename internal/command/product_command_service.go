package command

import (
	"context"
	"log"

	"github.com/VanMinhNguyen21/api-web/internal/cqrs"
	"github.com/VanMinhNguyen21/api-web/internal/errs"
	"github.com/VanMinhNguyen21/api-web/internal/events"
	"github.com/VanMinhNguyen21/api-web/internal/models"
	"github.com/VanMinhNguyen21/api-web/internal/repository"
)

type ProductCommandService struct {
	repo      repository.ProductStore
	suppliers repository.SupplierStore
	publisher EventPublisher
}

func NewProductCommandService(
	repo repository.ProductStore,
	suppliers repository.SupplierStore,
	publisher EventPublisher,
) *ProductCommandService {
	return &ProductCommandService{repo: repo, suppliers: suppliers, publisher: publisher}
}

// CreateProduct checks the supplier up front so the caller gets a specific
// error rather than a raw constraint violation.
func (s *ProductCommandService) CreateProduct(cmd cqrs.CreateProductCommand) (*models.Product, error) {
	ok, err := s.suppliers.Exists(cmd.SupplierID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrSupplierNotFound
	}

	product := &models.Product{
		SupplierID:  cmd.SupplierID,
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publishCatalog(events.ProductCreated, events.ProductEvent{
		ProductID:  product.ID,
		SupplierID: product.SupplierID,
		Name:       product.Name,
	})
	return product, nil
}

func (s *ProductCommandService) UpdateProduct(cmd cqrs.UpdateProductCommand) (*models.Product, error) {
	product, err := s.repo.GetByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}
	ok, err := s.suppliers.Exists(cmd.SupplierID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrSupplierNotFound
	}

	product.SupplierID = cmd.SupplierID
	product.Name = cmd.Name
	product.Description = cmd.Description
	product.Price = cmd.Price
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publishCatalog(events.ProductUpdated, events.ProductEvent{
		ProductID:  product.ID,
		SupplierID: product.SupplierID,
		Name:       product.Name,
	})
	return product, nil
}

func (s *ProductCommandService) DeleteProduct(cmd cqrs.DeleteProductCommand) error {
	if err := s.repo.Delete(cmd.ProductID); err != nil {
		return err
	}
	s.publishCatalog(events.ProductDeleted, events.ProductEvent{ProductID: cmd.ProductID})
	return nil
}

func (s *ProductCommandService) publishCatalog(eventType string, data any) {
	if err := s.publisher.Publish(context.Background(), events.CatalogEventsStream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
