package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Name and SKU are each globally unique.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:255;not null;uniqueIndex" json:"name"`
	SKU       string          `gorm:"size:50;not null;uniqueIndex" json:"sku"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (p *Product) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.SKU)
}
