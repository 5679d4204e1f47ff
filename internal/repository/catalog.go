package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tour-admin/internal/models"

	"gorm.io/gorm"
)

// RateInput carries a rate as submitted. Pointers distinguish a missing
// amount from an explicit zero.
type RateInput struct {
	ProductID *uint
	Name      string
	NetAdult  *float64
	NetChild  *float64
	FeeType   string
	FeeAdult  *float64
	FeeChild  *float64
}

// Validate checks net prices, fee type and, for np/entrance, both fee
// amounts. Rates created alongside a product may omit the name.
func (in RateInput) Validate(requireName bool) error {
	if requireName && strings.TrimSpace(in.Name) == "" {
		return invalid("name", "is required")
	}
	if in.NetAdult == nil {
		return invalid("net_adult", "is required")
	}
	if in.NetChild == nil {
		return invalid("net_child", "is required")
	}
	feeType := strings.TrimSpace(in.FeeType)
	if feeType == "" {
		return invalid("fee_type", "is required")
	}
	if models.RequiresFees(feeType) {
		if in.FeeAdult == nil {
			return invalid("fee_adult", fmt.Sprintf("is required for fee type %q", feeType))
		}
		if in.FeeChild == nil {
			return invalid("fee_child", fmt.Sprintf("is required for fee type %q", feeType))
		}
	}
	return nil
}

func (in RateInput) model() models.Rate {
	return models.Rate{
		ProductID: in.ProductID,
		Name:      strings.TrimSpace(in.Name),
		NetAdult:  *in.NetAdult,
		NetChild:  *in.NetChild,
		FeeType:   strings.TrimSpace(in.FeeType),
		FeeAdult:  in.FeeAdult,
		FeeChild:  in.FeeChild,
	}
}

type ProductInput struct {
	SKU               string
	Program           string
	Remark            string
	ProductIDOptional *string
	SupplierID        *uint
	Rates             []RateInput
}

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// CreateProductWithRates inserts the product and its rates in one
// transaction. Nothing is persisted if any rate is invalid.
func (r *CatalogRepository) CreateProductWithRates(ctx context.Context, in ProductInput) (uint, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return 0, invalid("sku", "is required")
	}

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if in.SupplierID != nil {
		if err := supplierExists(tx, *in.SupplierID); err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	product := models.Product{
		SKU:               sku,
		Program:           in.Program,
		Remark:            in.Remark,
		ProductIDOptional: in.ProductIDOptional,
		SupplierID:        in.SupplierID,
	}
	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		return 0, duplicateAsInvalid(err, "sku", "failed to create product")
	}

	for i, rateIn := range in.Rates {
		if err := rateIn.Validate(false); err != nil {
			tx.Rollback()
			return 0, withFieldPrefix(fmt.Sprintf("rates[%d]", i), err)
		}
		rateIn.ProductID = &product.ID
		rate := rateIn.model()
		if err := tx.Create(&rate).Error; err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to create rate %d: %w", i, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, fmt.Errorf("failed to commit product: %w", err)
	}
	return product.ID, nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.WithContext(ctx).
		Preload("Rates").
		Preload("Supplier").
		Order("sku").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// AssignSupplier sets or, with a nil supplierID, clears a product's supplier.
func (r *CatalogRepository) AssignSupplier(ctx context.Context, productID uint, supplierID *uint) error {
	db := r.db.WithContext(ctx)

	var value interface{}
	if supplierID != nil {
		if err := supplierExists(db, *supplierID); err != nil {
			return err
		}
		value = *supplierID
	}

	res := db.Model(&models.Product{}).Where("id = ?", productID).Update("supplier_id", value)
	if res.Error != nil {
		return fmt.Errorf("failed to assign supplier: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRates returns all rates, or only those of productID when given.
func (r *CatalogRepository) ListRates(ctx context.Context, productID *uint) ([]models.Rate, error) {
	rates := []models.Rate{}
	q := r.db.WithContext(ctx).Order("id")
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	if err := q.Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	return rates, nil
}

func (r *CatalogRepository) CreateRate(ctx context.Context, in RateInput) (*models.Rate, error) {
	if err := in.Validate(true); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if in.ProductID != nil {
		var n int64
		if err := db.Model(&models.Product{}).Where("id = ?", *in.ProductID).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to check product: %w", err)
		}
		if n == 0 {
			return nil, invalid("product_id", "does not exist")
		}
	}

	rate := in.model()
	if err := db.Create(&rate).Error; err != nil {
		return nil, fmt.Errorf("failed to create rate: %w", err)
	}
	return &rate, nil
}

func (r *CatalogRepository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	if err := r.db.WithContext(ctx).Order("name").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *CatalogRepository) CreateSupplier(ctx context.Context, s *models.Supplier) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return invalid("name", "is required")
	}
	s.ID = 0
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return duplicateAsInvalid(err, "name", "failed to create supplier")
	}
	return nil
}

// DeleteSupplier detaches the supplier's products and removes it.
func (r *CatalogRepository) DeleteSupplier(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if err := tx.Model(&models.Product{}).
		Where("supplier_id = ?", id).
		Update("supplier_id", nil).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to detach products: %w", err)
	}

	res := tx.Delete(&models.Supplier{}, id)
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete supplier: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit supplier delete: %w", err)
	}
	return nil
}

func supplierExists(db *gorm.DB, id uint) error {
	var s models.Supplier
	err := db.Select("id").Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalid("supplier_id", "does not exist")
	}
	if err != nil {
		return fmt.Errorf("failed to check supplier: %w", err)
	}
	return nil
}
