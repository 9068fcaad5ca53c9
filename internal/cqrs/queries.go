package cqrs

// ---------- User queries ----------

// ListUsersQuery filters the full account listing. Both filters are
// optional case-insensitive substrings and conjunctive when both set.
type ListUsersQuery struct {
	Name  string
	Email string
}

// GetUserQuery fetches the outward-facing projection of one user.
type GetUserQuery struct {
	UserID int64
}

// GetProfileQuery fetches the raw write model. Privileged callers only.
type GetProfileQuery struct {
	UserID int64
}

// ---------- Supplier queries ----------

type ListSuppliersQuery struct {
	Name string
}

type GetSupplierQuery struct {
	SupplierID int64
}

// ---------- Product queries ----------

type ListProductsQuery struct {
	SupplierID int64
	Name       string
}

type GetProductQuery struct {
	ProductID int64
}

// ---------- Reference data queries ----------

// ListWardsQuery filters communes by parent district code and name substring.
type ListWardsQuery struct {
	DistrictCode string
	Name         string
}

type GetWardQuery struct {
	WardID int64
}
