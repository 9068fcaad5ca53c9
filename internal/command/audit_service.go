package command

import (
	"context"
	"encoding/json"
	"log"

	"github.com/VanMinhNguyen21/api-web/internal/events"
	"github.com/VanMinhNguyen21/api-web/internal/models"
	"github.com/VanMinhNguyen21/api-web/internal/repository"
)

// AuditService is the Redis stream subscriber handler. It appends one
// audit_log row per consumed domain event.
type AuditService struct {
	repo repository.AuditStore
}

func NewAuditService(repo repository.AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

// HandleEvent persists the event as an audit entry. Actor and subject ids
// are extracted when the payload carries them; the raw payload is kept as
// the detail column for everything else.
func (s *AuditService) HandleEvent(ctx context.Context, event events.Event) error {
	entry := &models.AuditEntry{EventType: event.Type}

	dataBytes, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	entry.Detail = string(dataBytes)

	var ids struct {
		UserID     int64 `json:"userId"`
		ActorID    int64 `json:"actorId"`
		SupplierID int64 `json:"supplierId"`
		ProductID  int64 `json:"productId"`
	}
	if err := json.Unmarshal(dataBytes, &ids); err == nil {
		entry.ActorID = ids.ActorID
		switch {
		case ids.UserID != 0:
			entry.SubjectID = ids.UserID
		case ids.ProductID != 0:
			entry.SubjectID = ids.ProductID
		case ids.SupplierID != 0:
			entry.SubjectID = ids.SupplierID
		}
	}

	if err := s.repo.Record(ctx, entry); err != nil {
		return err
	}
	log.Printf("Audited event: %s", event.Type)
	return nil
}
