package models

import "time"

// UserView is the read-optimised projection of a user returned by the
// listing and show endpoints. It never exposes the password hash and may be
// extended with derived/denormalised fields.
type UserView struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserView projects a write model onto its outward-facing shape.
func NewUserView(u *User) *UserView {
	return &UserView{
		ID:        u.ID,
		Role:      u.Role,
		Fullname:  u.Fullname,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
