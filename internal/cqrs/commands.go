package cqrs

type CreateUserCommand struct {
	Role     string
	Password string
	Fullname string
	Email    string
	Avatar   string
}

// UpdateUserCommand carries the allow-listed mutable fields. The password
// never travels through this command; use ChangePasswordCommand. A nil
// Avatar means the field was not submitted and the stored value is kept.
type UpdateUserCommand struct {
	UserID   int64
	Fullname string
	Email    string
	Role     string
	Avatar   *string
}

type DeleteUserCommand struct {
	UserID int64
}

// ChangePasswordCommand carries the caller identity alongside the request
// so the authorization decision is made once, in the command service.
type ChangePasswordCommand struct {
	CallerID     int64
	CallerRole   string
	TargetUserID *int64
	OldPassword  string
	NewPassword  string
}

type CreateSupplierCommand struct {
	Name        string
	Description string
	Email       string
	Telephone   string
	Address     string
}

type UpdateSupplierCommand struct {
	SupplierID  int64
	Name        string
	Description string
	Email       string
	Telephone   string
	Address     string
}

type DeleteSupplierCommand struct {
	SupplierID int64
}

type CreateProductCommand struct {
	SupplierID  int64
	Name        string
	Description string
	Price       float64
}

type UpdateProductCommand struct {
	ProductID   int64
	SupplierID  int64
	Name        string
	Description string
	Price       float64
}

type DeleteProductCommand struct {
	ProductID int64
}

type LoginCommand struct {
	Email    string
	Password string
}

type RefreshTokenCommand struct {
	Token string
}
