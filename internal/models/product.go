package models

import (
	"time"
)

type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:191;not null;uniqueIndex:idx_suppliers_name" json:"name"`
	Contact   string    `gorm:"size:150" json:"contact"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Email     string    `gorm:"size:150" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Products  []Product `json:"-"`
}

type Product struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	SKU               string    `gorm:"column:sku;size:100;not null;uniqueIndex:idx_products_sku" json:"sku"`
	Program           string    `gorm:"type:text" json:"program"`
	Remark            string    `gorm:"type:text" json:"remark"`
	ProductIDOptional *string   `gorm:"column:product_id_optional;size:100" json:"product_id_optional"`
	SupplierID        *uint     `gorm:"index:idx_products_supplier_id" json:"supplier_id"`
	Supplier          *Supplier `gorm:"foreignKey:SupplierID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"supplier,omitempty"`
	Rates             []Rate    `gorm:"foreignKey:ProductID" json:"rates,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Fee types that carry per-person entrance/national-park fees.
const (
	FeeTypeFlat     = "flat"
	FeeTypeNP       = "np"
	FeeTypeEntrance = "entrance"
)

type Rate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID *uint     `gorm:"index:idx_rates_product_id" json:"product_id"`
	Name      string    `gorm:"size:150" json:"name"`
	NetAdult  float64   `gorm:"type:decimal(10,2);not null" json:"net_adult"`
	NetChild  float64   `gorm:"type:decimal(10,2);not null" json:"net_child"`
	FeeType   string    `gorm:"size:32;not null" json:"fee_type"`
	FeeAdult  *float64  `gorm:"type:decimal(10,2)" json:"fee_adult"`
	FeeChild  *float64  `gorm:"type:decimal(10,2)" json:"fee_child"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RequiresFees reports whether feeType needs fee_adult and fee_child.
func RequiresFees(feeType string) bool {
	return feeType == FeeTypeNP || feeType == FeeTypeEntrance
}
