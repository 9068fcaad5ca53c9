package command

import (
	"context"
	"log"

	"github.com/VanMinhNguyen21/api-web/internal/cqrs"
	"github.com/VanMinhNguyen21/api-web/internal/events"
	"github.com/VanMinhNguyen21/api-web/internal/models"
	"github.com/VanMinhNguyen21/api-web/internal/repository"
)

type SupplierCommandService struct {
	repo      repository.SupplierStore
	publisher EventPublisher
}

func NewSupplierCommandService(repo repository.SupplierStore, publisher EventPublisher) *SupplierCommandService {
	return &SupplierCommandService{repo: repo, publisher: publisher}
}

func (s *SupplierCommandService) CreateSupplier(cmd cqrs.CreateSupplierCommand) (*models.Supplier, error) {
	supplier := &models.Supplier{
		Name:        cmd.Name,
		Description: cmd.Description,
		Email:       cmd.Email,
		Telephone:   cmd.Telephone,
		Address:     cmd.Address,
	}
	if err := s.repo.Create(supplier); err != nil {
		return nil, err
	}
	s.publishCatalog(events.SupplierCreated, events.SupplierEvent{
		SupplierID: supplier.ID,
		Name:       supplier.Name,
	})
	return supplier, nil
}

func (s *SupplierCommandService) UpdateSupplier(cmd cqrs.UpdateSupplierCommand) (*models.Supplier, error) {
	supplier, err := s.repo.GetByID(cmd.SupplierID)
	if err != nil {
		return nil, err
	}
	supplier.Name = cmd.Name
	supplier.Description = cmd.Description
	supplier.Email = cmd.Email
	supplier.Telephone = cmd.Telephone
	supplier.Address = cmd.Address
	if err := s.repo.Update(supplier); err != nil {
		return nil, err
	}
	s.publishCatalog(events.SupplierUpdated, events.SupplierEvent{
		SupplierID: supplier.ID,
		Name:       supplier.Name,
	})
	return supplier, nil
}

func (s *SupplierCommandService) DeleteSupplier(cmd cqrs.DeleteSupplierCommand) error {
	if err := s.repo.Delete(cmd.SupplierID); err != nil {
		return err
	}
	s.publishCatalog(events.SupplierDeleted, events.SupplierEvent{SupplierID: cmd.SupplierID})
	return nil
}

func (s *SupplierCommandService) publishCatalog(eventType string, data any) {
	if err := s.publisher.Publish(context.Background(), events.CatalogEventsStream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
