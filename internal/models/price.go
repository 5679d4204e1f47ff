package models

// Price is a manually maintained supplier net price. It is not linked to
// Product or Rate.
type Price struct {
	ID       int64   `gorm:"primaryKey" db:"id" json:"id"`
	SKU      string  `gorm:"column:sku;size:100;not null;default:'';index:idx_prices_sku_tour,priority:1" db:"sku" json:"sku"`
	TourID   string  `gorm:"size:64;not null;default:''" db:"tour_id" json:"tour_id"`
	Company  string  `gorm:"size:150;not null;default:''" db:"company" json:"company"`
	Tour     string  `gorm:"size:191;not null;default:'';index:idx_prices_sku_tour,priority:2" db:"tour" json:"tour"`
	AdultNet float64 `gorm:"type:decimal(10,2);not null;default:0" db:"adult_net" json:"adult_net"`
	ChildNet float64 `gorm:"type:decimal(10,2);not null;default:0" db:"child_net" json:"child_net"`
	Remark   string  `gorm:"size:500;not null;default:''" db:"remark" json:"remark"`
}
