package models

import (
	"time"
)

// Settings rows are append-only; the most recently updated one is current.
type Settings struct {
	ID                        uint      `gorm:"primaryKey" json:"id,omitempty"`
	BokunAccessKey            string    `gorm:"size:255" json:"bokun_access_key"`
	BokunSecretKey            string    `gorm:"size:255" json:"bokun_secret_key"`
	WooCommerceConsumerKey    string    `gorm:"column:woocommerce_consumer_key;size:255" json:"woocommerce_consumer_key"`
	WooCommerceConsumerSecret string    `gorm:"column:woocommerce_consumer_secret;size:255" json:"woocommerce_consumer_secret"`
	UseDirectPricing          bool      `gorm:"not null;default:false" json:"use_direct_pricing"`
	CreatedAt                 time.Time `json:"created_at,omitempty"`
	UpdatedAt                 time.Time `gorm:"index:idx_settings_updated_at" json:"updated_at,omitempty"`
}
