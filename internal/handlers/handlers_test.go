package handlers

import (
	"backoffice/internal/db"
	"backoffice/internal/models"
	"backoffice/internal/services"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedProduct(t *testing.T, conn *gorm.DB, name, sku, price string) models.Product {
	t.Helper()
	unit, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	p := models.Product{Name: name, SKU: sku, UnitPrice: unit}
	if err := conn.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func newInvoiceHandler(t *testing.T, conn *gorm.DB) *InvoiceHandler {
	t.Helper()
	svc := services.NewInvoiceService(conn)
	svc.Now = fixedClock(2025, time.June, 15)
	return NewInvoiceHandler(svc)
}
