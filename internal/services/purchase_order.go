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

// PurchaseOrderService owns purchase order CRUD, line item management
// and the derived total_cost aggregate.
type PurchaseOrderService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewPurchaseOrderService(db *gorm.DB) *PurchaseOrderService {
	return &PurchaseOrderService{DB: db, Now: time.Now}
}

type PurchaseOrderInput struct {
	Vendor string                     `json:"vendor"`
	Status models.PurchaseOrderStatus `json:"status"`
	Items  []OrderItemInput           `json:"items"`
}

type OrderItemInput struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
}

// Create records a new order with OrderDate set to today. Initial line
// items are optional; each one is validated like AddItem.
func (s *PurchaseOrderService) Create(in PurchaseOrderInput) (*models.PurchaseOrder, error) {
	status := in.Status
	if status == "" {
		status = models.PurchaseOrderPending
	}
	v := validation.Violations{}
	validation.Required("vendor", in.Vendor, v)
	if !status.Valid() {
		v["status"] = "invalid_status"
	}
	for _, it := range in.Items {
		validation.PositiveInt("quantity", it.Quantity, v)
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	po := models.PurchaseOrder{
		Vendor:    in.Vendor,
		OrderDate: models.DateOf(s.Now()),
		Status:    status,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.checkProducts(tx, in.Items, v); err != nil {
			return err
		}
		if !v.Empty() {
			return &ValidationError{Violations: v}
		}
		if err := tx.Create(&po).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for _, it := range in.Items {
			item := models.PurchaseOrderItem{
				PurchaseOrderID: po.ID,
				ProductID:       it.ProductID,
				Quantity:        it.Quantity,
				Cost:            it.Cost,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create order line: %w", err)
			}
			po.Items = append(po.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (s *PurchaseOrderService) Get(id uint) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	if err := s.DB.Preload("Items.Product").First(&po, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &po, nil
}

func (s *PurchaseOrderService) List() ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	if err := s.DB.Preload("Items").Order("id asc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Update edits vendor and status. OrderDate is immutable once set, so it
// is deliberately left out of the update. Status takes any declared
// value regardless of the previous one.
func (s *PurchaseOrderService) Update(id uint, in PurchaseOrderInput) (*models.PurchaseOrder, error) {
	po, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = po.Status
	}
	v := validation.Violations{}
	validation.Required("vendor", in.Vendor, v)
	if !status.Valid() {
		v["status"] = "invalid_status"
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	updates := map[string]any{"vendor": in.Vendor, "status": status}
	if err := s.DB.Model(po).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return po, nil
}

// Delete removes an order and cascades to its line items.
func (s *PurchaseOrderService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var po models.PurchaseOrder
		if err := tx.First(&po, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load order: %w", err)
		}
		if err := tx.Where("purchase_order_id = ?", id).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return fmt.Errorf("delete order lines: %w", err)
		}
		if err := tx.Delete(&po).Error; err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
}

// AddItem appends a line to an existing order. The order must exist
// (ErrNotFound otherwise); the product reference and quantity are
// validated before anything is written.
func (s *PurchaseOrderService) AddItem(orderID uint, in OrderItemInput) (*models.PurchaseOrderItem, error) {
	v := validation.Violations{}
	validation.PositiveInt("quantity", in.Quantity, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	var po models.PurchaseOrder
	if err := s.DB.First(&po, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	if err := s.checkProducts(s.DB, []OrderItemInput{in}, v); err != nil {
		return nil, err
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	item := models.PurchaseOrderItem{
		PurchaseOrderID: po.ID,
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		Cost:            in.Cost,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create order line: %w", err)
	}
	return &item, nil
}

// RemoveItem deletes a single line from an order.
func (s *PurchaseOrderService) RemoveItem(orderID, itemID uint) error {
	res := s.DB.Where("purchase_order_id = ?", orderID).Delete(&models.PurchaseOrderItem{}, itemID)
	if res.Error != nil {
		return fmt.Errorf("delete order line: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TotalCost computes the exact decimal sum of line costs for one order.
func (s *PurchaseOrderService) TotalCost(id uint) (decimal.Decimal, error) {
	po, err := s.Get(id)
	if err != nil {
		return decimal.Zero, err
	}
	return po.TotalCost(), nil
}

// checkProducts records a violation when any referenced product is
// missing.
func (s *PurchaseOrderService) checkProducts(tx *gorm.DB, items []OrderItemInput, v validation.Violations) error {
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
