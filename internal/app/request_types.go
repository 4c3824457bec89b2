package app

// LinkRequest names the customer/supplier pair for linking and settlement.
type LinkRequest struct {
	CustomerID string `json:"customerId"`
	SupplierID string `json:"supplierId"`
}

// SetPasswordRequest enables or disables the password gate.
// CurrentPassword is required whenever a password is already set.
type SetPasswordRequest struct {
	Enabled         bool   `json:"enabled"`
	Password        string `json:"password"`
	CurrentPassword string `json:"currentPassword"`
}
