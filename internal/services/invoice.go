package services

import (
	"backoffice/internal/models"
	"backoffice/internal/validation"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceService owns invoice CRUD, line item management, the derived
// total_price aggregate, the paid transition and the overdue report.
type InvoiceService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db, Now: time.Now}
}

type InvoiceInput struct {
	CustomerName string               `json:"customer_name"`
	DueDate      time.Time            `json:"due_date"`
	Status       models.InvoiceStatus `json:"status"`
	Items        []InvoiceItemInput   `json:"items"`
}

type InvoiceItemInput struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	PriceEach decimal.Decimal `json:"price_each"`
}

// Create records a new invoice with InvoiceDate set to today. Initial
// line items are optional; each one is validated like AddItem.
func (s *InvoiceService) Create(in InvoiceInput) (*models.Invoice, error) {
	status := in.Status
	if status == "" {
		status = models.InvoiceUnpaid
	}
	v := validation.Violations{}
	validation.Required("customer_name", in.CustomerName, v)
	if in.DueDate.IsZero() {
		v["due_date"] = "required"
	}
	if !status.Valid() {
		v["status"] = "invalid_status"
	}
	for _, it := range in.Items {
		validation.PositiveInt("quantity", it.Quantity, v)
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	inv := models.Invoice{
		CustomerName: in.CustomerName,
		InvoiceDate:  models.DateOf(s.Now()),
		DueDate:      models.DateOf(in.DueDate),
		Status:       status,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.checkProducts(tx, in.Items, v); err != nil {
			return err
		}
		if !v.Empty() {
			return &ValidationError{Violations: v}
		}
		if err := tx.Create(&inv).Error; err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		for _, it := range in.Items {
			item := models.InvoiceItem{
				InvoiceID: inv.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				PriceEach: it.PriceEach,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create invoice line: %w", err)
			}
			inv.Items = append(inv.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *InvoiceService) Get(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.Preload("Items.Product").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// List returns invoices with items preloaded so callers can show
// computed totals. A non-empty ids slice restricts the result.
func (s *InvoiceService) List(ids []uint) ([]models.Invoice, error) {
	q := s.DB.Preload("Items").Order("id asc")
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// Update edits customer name, due date and status. InvoiceDate is
// immutable once set and deliberately left out.
func (s *InvoiceService) Update(id uint, in InvoiceInput) (*models.Invoice, error) {
	inv, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = inv.Status
	}
	v := validation.Violations{}
	validation.Required("customer_name", in.CustomerName, v)
	if in.DueDate.IsZero() {
		v["due_date"] = "required"
	}
	if !status.Valid() {
		v["status"] = "invalid_status"
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	updates := map[string]any{
		"customer_name": in.CustomerName,
		"due_date":      models.DateOf(in.DueDate),
		"status":        status,
	}
	if err := s.DB.Model(inv).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return inv, nil
}

// Delete removes an invoice and cascades to its line items.
func (s *InvoiceService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load invoice: %w", err)
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return fmt.Errorf("delete invoice lines: %w", err)
		}
		if err := tx.Delete(&inv).Error; err != nil {
			return fmt.Errorf("delete invoice: %w", err)
		}
		return nil
	})
}

// AddItem appends a line to an existing invoice.
func (s *InvoiceService) AddItem(invoiceID uint, in InvoiceItemInput) (*models.InvoiceItem, error) {
	v := validation.Violations{}
	validation.PositiveInt("quantity", in.Quantity, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	var inv models.Invoice
	if err := s.DB.First(&inv, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load invoice: %w", err)
	}
	if err := s.checkProducts(s.DB, []InvoiceItemInput{in}, v); err != nil {
		return nil, err
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	item := models.InvoiceItem{
		InvoiceID: inv.ID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		PriceEach: in.PriceEach,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create invoice line: %w", err)
	}
	return &item, nil
}

// RemoveItem deletes a single line from an invoice.
func (s *InvoiceService) RemoveItem(invoiceID, itemID uint) error {
	res := s.DB.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceItem{}, itemID)
	if res.Error != nil {
		return fmt.Errorf("delete invoice line: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TotalPrice computes the exact decimal sum of quantity * price_each
// for one invoice.
func (s *InvoiceService) TotalPrice(id uint) (decimal.Decimal, error) {
	inv, err := s.Get(id)
	if err != nil {
		return decimal.Zero, err
	}
	return inv.TotalPrice(), nil
}

// MarkAsPaid sets the status to paid unconditionally. Marking an
// already-paid invoice again is a no-op observable result.
func (s *InvoiceService) MarkAsPaid(id uint) error {
	res := s.DB.Model(&models.Invoice{}).Where("id = ?", id).Update("status", models.InvoicePaid)
	if res.Error != nil {
		return fmt.Errorf("mark paid: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllAsPaid applies MarkAsPaid semantics to every id in one UPDATE
// so a multi-row update cannot be partially applied. Returns the number
// of rows mutated.
func (s *InvoiceService) MarkAllAsPaid(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.DB.Model(&models.Invoice{}).Where("id IN ?", ids).Update("status", models.InvoicePaid)
	if res.Error != nil {
		return 0, fmt.Errorf("mark all paid: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// OverdueAndAbove returns invoices whose due date is strictly before
// today, that carry at least one positive-quantity line item, and whose
// computed total is strictly greater than threshold. The threshold is
// checked against the derived total; there is no stored total field.
func (s *InvoiceService) OverdueAndAbove(today time.Time, threshold decimal.Decimal) ([]models.Invoice, error) {
	cutoff := models.DateOf(today)
	var candidates []models.Invoice
	err := s.DB.
		Select("invoices.*").
		Joins("JOIN invoice_items ON invoice_items.invoice_id = invoices.id AND invoice_items.quantity > 0").
		Where("invoices.due_date < ?", cutoff).
		Group("invoices.id").
		Preload("Items").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("overdue query: %w", err)
	}
	matched := make([]models.Invoice, 0, len(candidates))
	for _, inv := range candidates {
		if inv.TotalPrice().GreaterThan(threshold) {
			matched = append(matched, inv)
		}
	}
	return matched, nil
}

// checkProducts records a violation when any referenced product is
// missing.
func (s *InvoiceService) checkProducts(tx *gorm.DB, items []InvoiceItemInput, v validation.Violations) error {
	for _, it := range items {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", it.ProductID).Count(&count).Error; err != nil {
			return fmt.Errorf("check product: %w", err)
		}
		if count == 0 {
			v["product_id"] = "unknown_product"
		}
	}
	return nil
}
