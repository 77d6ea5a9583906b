package services

import (
	"backoffice/internal/models"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductCreateAndGet(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProductService(conn)

	p, err := svc.Create(ProductInput{Name: "Laptop", SKU: "LAP123", UnitPrice: mustDecimal(t, "1000.00")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := svc.Get(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Laptop" || got.SKU != "LAP123" || !got.UnitPrice.Equal(mustDecimal(t, "1000.00")) {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestProductCreateRequiredFields(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProductService(conn)

	_, err := svc.Create(ProductInput{Name: "", SKU: ""})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Violations["name"] != "required" || verr.Violations["sku"] != "required" {
		t.Fatalf("unexpected violations: %v", verr.Violations)
	}
	var count int64
	conn.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("no partial write expected, found %d rows", count)
	}
}

func TestProductUniqueSKU(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProductService(conn)
	seedProduct(t, conn, "Laptop", "LAP123", "1000.00")

	_, err := svc.Create(ProductInput{Name: "Other Laptop", SKU: "LAP123", UnitPrice: decimal.Zero})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Violations["sku"] != "already_taken" {
		t.Fatalf("unexpected violations: %v", verr.Violations)
	}
}

func TestProductUniqueName(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProductService(conn)
	seedProduct(t, conn, "Laptop", "LAP123", "1000.00")

	_, err := svc.Create(ProductInput{Name: "Laptop", SKU: "LAP999", UnitPrice: decimal.Zero})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Violations["name"] != "already_taken" {
		t.Fatalf("unexpected violations: %v", verr.Violations)
	}
}

func TestProductUpdateKeepsOwnUniqueValues(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProductService(conn)
	p := seedProduct(t, conn, "Laptop", "LAP123", "1000.00")

	// Re-saving the same name/sku on the same row is not a conflict.
	updated, err := svc.Update(p.ID, ProductInput{Name: "Laptop", SKU: "LAP123", UnitPrice: mustDecimal(t, "1100.00")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.UnitPrice.Equal(mustDecimal(t, "1100.00")) {
		t.Fatalf("unit price not updated: %v", updated.UnitPrice)
	}
}

func TestProductGetNotFound(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProductService(conn)

	if _, err := svc.Get(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestProductDeleteCascadesLineItems(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewProductService(conn)
	p := seedProduct(t, conn, "Laptop", "LAP123", "1000.00")

	poSvc := NewPurchaseOrderService(conn)
	po, err := poSvc.Create(PurchaseOrderInput{Vendor: "TechSupplier", Items: []OrderItemInput{
		{ProductID: p.ID, Quantity: 5, Cost: mustDecimal(t, "5000.00")},
	}})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	invSvc := NewInvoiceService(conn)
	inv, err := invSvc.Create(InvoiceInput{CustomerName: "John Doe", DueDate: invSvc.Now(), Items: []InvoiceItemInput{
		{ProductID: p.ID, Quantity: 2, PriceEach: mustDecimal(t, "1200.00")},
	}})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	if err := svc.Delete(p.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	var orderLines, invoiceLines int64
	conn.Model(&models.PurchaseOrderItem{}).Where("product_id = ?", p.ID).Count(&orderLines)
	conn.Model(&models.InvoiceItem{}).Where("product_id = ?", p.ID).Count(&invoiceLines)
	if orderLines != 0 || invoiceLines != 0 {
		t.Fatalf("expected referencing line items to cascade, got %d/%d", orderLines, invoiceLines)
	}
	// Parents survive the cascade.
	if _, err := poSvc.Get(po.ID); err != nil {
		t.Fatalf("order should survive product delete: %v", err)
	}
	if _, err := invSvc.Get(inv.ID); err != nil {
		t.Fatalf("invoice should survive product delete: %v", err)
	}
}
