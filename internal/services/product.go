package services

import (
	"backoffice/internal/models"
	"backoffice/internal/validation"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService owns catalog CRUD and the uniqueness invariants on
// name and SKU.
type ProductService struct {
	DB *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService { return &ProductService{DB: db} }

type ProductInput struct {
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (s *ProductService) Create(in ProductInput) (*models.Product, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("sku", in.SKU, v)
	if v.Empty() {
		if err := s.checkUnique(in.Name, in.SKU, 0, v); err != nil {
			return nil, err
		}
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	p := models.Product{Name: in.Name, SKU: in.SKU, UnitPrice: in.UnitPrice}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

func (s *ProductService) Get(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (s *ProductService) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.Order("id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Update(id uint, in ProductInput) (*models.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("sku", in.SKU, v)
	if v.Empty() {
		if err := s.checkUnique(in.Name, in.SKU, id, v); err != nil {
			return nil, err
		}
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	p.Name = in.Name
	p.SKU = in.SKU
	p.UnitPrice = in.UnitPrice
	if err := s.DB.Save(p).Error; err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete removes a product together with every line item that references
// it, in one transaction. Referencing line items cascade by design; this
// is not an integrity failure.
func (s *ProductService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load product: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return fmt.Errorf("delete order lines: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return fmt.Errorf("delete invoice lines: %w", err)
		}
		if err := tx.Delete(&p).Error; err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
}

// checkUnique records violations for a name or SKU already taken by
// another product. excludeID skips the product being updated.
func (s *ProductService) checkUnique(name, sku string, excludeID uint, v validation.Violations) error {
	var count int64
	q := s.DB.Model(&models.Product{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("check name uniqueness: %w", err)
	}
	if count > 0 {
		v["name"] = "already_taken"
	}
	q = s.DB.Model(&models.Product{}).Where("sku = ?", sku)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("check sku uniqueness: %w", err)
	}
	if count > 0 {
		v["sku"] = "already_taken"
	}
	return nil
}
