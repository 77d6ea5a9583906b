package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "unpaid"
	InvoicePaid   InvoiceStatus = "paid"
)

// Valid reports whether s is one of the declared statuses.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceUnpaid || s == InvoicePaid
}

// Display returns the human-readable form used in listings.
func (s InvoiceStatus) Display() string {
	switch s {
	case InvoiceUnpaid:
		return "Unpaid"
	case InvoicePaid:
		return "Paid"
	}
	return string(s)
}

// Invoice is a bill sent to a customer. InvoiceDate is set once at
// creation; DueDate stays editable until the invoice is settled.
type Invoice struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	CustomerName string        `gorm:"size:255;not null" json:"customer_name"`
	InvoiceDate  time.Time     `gorm:"not null" json:"invoice_date"`
	DueDate      time.Time     `gorm:"not null" json:"due_date"`
	Status       InvoiceStatus `gorm:"size:10;not null;default:'unpaid'" json:"status"`
	Items        []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// TotalPrice sums quantity * price_each over the loaded Items.
// Returns 0.00 when the invoice has no line items.
func (inv *Invoice) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range inv.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Overdue reports whether the invoice is unpaid past its due date.
// Recomputed on every read; never stored. Due today is not overdue.
func (inv *Invoice) Overdue(today time.Time) bool {
	return inv.Status == InvoiceUnpaid && !inv.DueDate.IsZero() && inv.DueDate.Before(DateOf(today))
}

// InvoiceItem is a single line on an invoice. PriceEach is the per-unit
// price at the time of invoicing; it is stored independently and may
// diverge from Product.UnitPrice.
type InvoiceItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	InvoiceID uint            `gorm:"index;not null" json:"invoice_id"`
	ProductID uint            `gorm:"index;not null" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	PriceEach decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_each"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LineTotal computes quantity * price_each for this line.
func (it *InvoiceItem) LineTotal() decimal.Decimal {
	return it.PriceEach.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
