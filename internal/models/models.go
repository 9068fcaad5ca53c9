package models

import "time"

// Role values recognised by the authorization layer. Any other role string
// is stored verbatim and treated as a plain (non-admin) role.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is the write model for an administrator account. PasswordHash is
// never serialised, including on the privileged profile endpoint.
type User struct {
	ID           int64     `json:"id"`
	Role         string    `json:"role"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Supplier struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Email       string    `json:"email"`
	Telephone   string    `json:"telephone"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID          int64     `json:"id"`
	SupplierID  int64     `json:"supplier_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ward is an immutable geographic reference row (commune level).
// DistrictCode links it to its parent district.
type Ward struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	DistrictCode string `json:"district_code"`
}

// Shape is a read-only reference row describing a product shape.
type Shape struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuditEntry records a domain event consumed from the event streams.
type AuditEntry struct {
	ID        int64     `json:"id"`
	EventType string    `json:"event_type"`
	ActorID   int64     `json:"actor_id,omitempty"`
	SubjectID int64     `json:"subject_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
