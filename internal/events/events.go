package events

import "time"

// Event types
const (
	UserCreated         = "user.created"
	UserUpdated         = "user.updated"
	UserDeleted         = "user.deleted"
	UserPasswordChanged = "user.password_changed"

	SupplierCreated = "supplier.created"
	SupplierUpdated = "supplier.updated"
	SupplierDeleted = "supplier.deleted"

	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
)

// Stream names
const (
	UserEventsStream    = "user.events"
	CatalogEventsStream = "catalog.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// User events
type UserCreatedEvent struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
}

type UserUpdatedEvent struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
}

type UserDeletedEvent struct {
	UserID int64 `json:"userId"`
}

// UserPasswordChangedEvent records who changed whose password. The password
// itself never appears in any event payload.
type UserPasswordChangedEvent struct {
	UserID  int64 `json:"userId"`
	ActorID int64 `json:"actorId"`
	ByAdmin bool  `json:"byAdmin"`
}

// Catalog events
type SupplierEvent struct {
	SupplierID int64  `json:"supplierId"`
	Name       string `json:"name"`
}

type ProductEvent struct {
	ProductID  int64  `json:"productId"`
	SupplierID int64  `json:"supplierId"`
	Name       string `json:"name"`
}
