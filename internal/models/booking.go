package models

import (
	"time"
)

type Booking struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	BookingNumber string     `gorm:"size:64;not null;uniqueIndex:idx_bookings_booking_number" json:"booking_number"`
	OrderNumber   string     `gorm:"size:64;index:idx_bookings_order_number" json:"order_number"`
	TourDate      *time.Time `gorm:"type:date;index:idx_bookings_tour_date" json:"tour_date"`
	CustomerName  string     `gorm:"size:150" json:"customer_name"`
	SKU           string     `gorm:"column:sku;size:100" json:"sku"`
	Program       string     `gorm:"type:text" json:"program"`
	Adult         int        `gorm:"default:0" json:"adult"`
	Child         int        `gorm:"default:0" json:"child"`
	Hotel         string     `gorm:"size:255" json:"hotel"`
	PhoneNumber   string     `gorm:"size:50" json:"phone_number"`
	Channel       *string    `gorm:"size:64" json:"channel"`
	Paid          float64    `gorm:"type:decimal(10,2);not null;default:0" json:"paid"`
	Op            bool       `gorm:"not null;default:false" json:"op"`
	Ri            bool       `gorm:"not null;default:false" json:"ri"`
	Customer      bool       `gorm:"not null;default:false" json:"customer"`
	Cancelled     bool       `gorm:"not null;default:false" json:"cancelled"`
	Deleted       bool       `gorm:"not null;default:false" json:"deleted"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
