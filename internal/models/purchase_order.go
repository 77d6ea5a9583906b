package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order.
// There is no enforced transition graph; any declared value may be
// assigned at any time.
type PurchaseOrderStatus string

const (
	PurchaseOrderPending   PurchaseOrderStatus = "pending"
	PurchaseOrderCompleted PurchaseOrderStatus = "completed"
	PurchaseOrderCanceled  PurchaseOrderStatus = "canceled"
)

// Valid reports whether s is one of the declared statuses.
func (s PurchaseOrderStatus) Valid() bool {
	switch s {
	case PurchaseOrderPending, PurchaseOrderCompleted, PurchaseOrderCanceled:
		return true
	}
	return false
}

// Display returns the human-readable form used in listings.
func (s PurchaseOrderStatus) Display() string {
	switch s {
	case PurchaseOrderPending:
		return "Pending"
	case PurchaseOrderCompleted:
		return "Completed"
	case PurchaseOrderCanceled:
		return "Canceled"
	}
	return string(s)
}

// PurchaseOrder is an order placed with a vendor. OrderDate is set once
// at creation and never updated afterwards.
type PurchaseOrder struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	Vendor    string              `gorm:"size:255;not null" json:"vendor"`
	OrderDate time.Time           `gorm:"not null" json:"order_date"`
	Status    PurchaseOrderStatus `gorm:"size:10;not null;default:'pending'" json:"status"`
	Items     []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// TotalCost sums the stored line costs over the loaded Items.
// Returns 0.00 when the order has no line items.
func (po *PurchaseOrder) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, it := range po.Items {
		total = total.Add(it.Cost)
	}
	return total
}

// PurchaseOrderItem is a single line on a purchase order. Cost is the
// total cost for the line as agreed with the vendor; it is stored
// independently and may diverge from Product.UnitPrice * Quantity.
type PurchaseOrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint            `gorm:"index;not null" json:"purchase_order_id"`
	ProductID       uint            `gorm:"index;not null" json:"product_id"`
	Product         *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Cost            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
