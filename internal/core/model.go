package core

import (
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentCredit PaymentMethod = "CREDIT"
)

type InvoiceType string

const (
	InvoiceSale     InvoiceType = "SALE"
	InvoicePurchase InvoiceType = "PURCHASE"
)

type VoucherType string

const (
	VoucherReceipt VoucherType = "RECEIPT"
	VoucherPayment VoucherType = "PAYMENT"
)

// SettlementMethod is the payment method label carried by vouchers that
// SettleAccounts creates.
const SettlementMethod = "SETTLEMENT"

// InventoryItem is a stocked product. Quantity is signed: overselling drives it
// below zero and nothing clamps it.
type InventoryItem struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name" validate:"required"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" validate:"gte=0"`
	SalePrice     decimal.Decimal `json:"salePrice" validate:"gte=0"`
	Quantity      int             `json:"quantity"`
	MinStockLevel int             `json:"minStockLevel" validate:"gte=0"`
	Currency      string          `json:"currency,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
}

// IsLowStock reports whether the item is at or below its reorder threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinStockLevel
}

// Person is a customer or a supplier; both collections share this shape.
//
// Balance follows the accounting convention of its collection: for a customer
// it is what the customer owes the business, for a supplier it is what the
// business owes the supplier.
type Person struct {
	ID             string          `json:"id"`
	Name           string          `json:"name" validate:"required"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email,omitempty" validate:"omitempty,email"`
	Address        string          `json:"address,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	LinkedPersonID string          `json:"linkedPersonId,omitempty"`
}

// InvoiceItem is one invoice line. UnitPrice is a snapshot taken when the
// invoice was written and does not follow later inventory price edits.
type InvoiceItem struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"itemId" validate:"required"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gte=0"`
	Total     decimal.Decimal `json:"total"`
}

type Invoice struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Date          string          `json:"date" validate:"required,datetime=2006-01-02"`
	Type          InvoiceType     `json:"type" validate:"oneof=SALE PURCHASE"`
	PersonID      string          `json:"personId" validate:"required"`
	Items         []InvoiceItem   `json:"items" validate:"dive"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount" validate:"gte=0"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" validate:"oneof=CASH CREDIT"`
	Currency      string          `json:"currency,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

type Voucher struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Date          string          `json:"date" validate:"required,datetime=2006-01-02"`
	Type          VoucherType     `json:"type" validate:"oneof=RECEIPT PAYMENT"`
	PersonID      string          `json:"personId" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentMethod string          `json:"paymentMethod"`
	Currency      string          `json:"currency,omitempty"`
	Notes         string          `json:"notes"`
}

type BackupInterval string

const (
	BackupOff     BackupInterval = "off"
	Backup12h     BackupInterval = "12h"
	BackupDaily   BackupInterval = "daily"
	BackupWeekly  BackupInterval = "weekly"
	BackupMonthly BackupInterval = "monthly"
	BackupYearly  BackupInterval = "yearly"
)

// Settings holds shop branding and preferences. Only Currency is read by the
// ledger; the rest belongs to presentation, the password gate and backups.
type Settings struct {
	ShopName            string         `json:"shopName"`
	ShopNameEn          string         `json:"shopNameEn"`
	LogoURL             string         `json:"logoUrl"`
	Phone               string         `json:"phone"`
	Website             string         `json:"website"`
	Address             string         `json:"address"`
	Currency            string         `json:"currency"`
	IsPasswordEnabled   bool           `json:"isPasswordEnabled"`
	PasswordHash        string         `json:"passwordHash,omitempty"`
	AutoBackupInterval  BackupInterval `json:"autoBackupInterval" validate:"omitempty,oneof=off 12h daily weekly monthly yearly"`
	LastBackupTimestamp int64          `json:"lastBackupTimestamp,omitempty"`
}

// DefaultSettings returns the settings a fresh book starts with.
func DefaultSettings() Settings {
	return Settings{
		ShopName:           "LedgerPro",
		ShopNameEn:         "LedgerPro",
		Currency:           "SAR",
		AutoBackupInterval: BackupDaily,
	}
}
