package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tour-admin/internal/booking"
	"tour-admin/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// List returns every booking that is not soft-deleted, newest tour first.
func (r *BookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := r.db.WithContext(ctx).
		Where("deleted = ?", false).
		Order("tour_date DESC").
		Order("id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) Get(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	var b models.Booking
	err := r.db.WithContext(ctx).
		Where("booking_number = ? AND deleted = ?", bookingNumber, false).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking %s: %w", bookingNumber, err)
	}
	return &b, nil
}

// SetPaid stores the paid amount and returns how many rows matched.
// Callers decide whether zero matches is an error.
func (r *BookingRepository) SetPaid(ctx context.Context, bookingNumber string, paid float64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_number = ?", bookingNumber).
		Update("paid", paid)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update paid for %s: %w", bookingNumber, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *BookingRepository) SetCancelled(ctx context.Context, bookingNumber string, cancelled bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_number = ?", bookingNumber).
		Update("cancelled", cancelled)
	if res.Error != nil {
		return fmt.Errorf("failed to update cancelled for %s: %w", bookingNumber, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks the booking deleted. Rows are never removed.
func (r *BookingRepository) SoftDelete(ctx context.Context, bookingNumber string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_number = ? AND deleted = ?", bookingNumber, false).
		Update("deleted", true)
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking %s: %w", bookingNumber, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFlag flips one of op/ri/customer and returns the resulting triple.
// The write only succeeds if the row still holds the triple that was read.
func (r *BookingRepository) ToggleFlag(ctx context.Context, bookingNumber string, flag booking.FlagType) (booking.Flags, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return booking.Flags{}, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	var row models.Booking
	if err := tx.Select("id", "op", "ri", "customer").
		Where("booking_number = ?", bookingNumber).
		Take(&row).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return booking.Flags{}, ErrNotFound
		}
		return booking.Flags{}, fmt.Errorf("failed to load booking %s: %w", bookingNumber, err)
	}

	current := booking.Flags{Op: row.Op, RI: row.Ri, Customer: row.Customer}
	next, err := current.Toggle(flag)
	if err != nil {
		tx.Rollback()
		return current, err
	}

	res := tx.Model(&models.Booking{}).
		Where("id = ? AND op = ? AND ri = ? AND customer = ?", row.ID, current.Op, current.RI, current.Customer).
		Updates(map[string]interface{}{
			"op":       next.Op,
			"ri":       next.RI,
			"customer": next.Customer,
		})
	if res.Error != nil {
		tx.Rollback()
		return current, fmt.Errorf("failed to update flags for %s: %w", bookingNumber, res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return current, &booking.StateConflictError{Flag: flag, Err: booking.ErrConcurrentUpdate}
	}

	if err := tx.Commit().Error; err != nil {
		return current, fmt.Errorf("failed to commit flag toggle: %w", err)
	}
	return next, nil
}

// ClassifyChannels rewrites every non-canonical channel to Viator or
// Website in one statement. A second run updates nothing.
func (r *BookingRepository) ClassifyChannels(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("channel IS NOT NULL AND channel NOT IN ?", booking.CanonicalChannels).
		Update("channel", gorm.Expr("CASE WHEN channel IN ? THEN ? ELSE ? END",
			booking.ViatorSources, booking.ChannelViator, booking.ChannelWebsite))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to classify channels: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Import upserts bookings by booking_number. Only descriptive columns are
// written on conflict; paid and the workflow flags are left alone. When a
// batch repeats a booking_number the last row wins.
func (r *BookingRepository) Import(ctx context.Context, rows []models.Booking) (int, error) {
	if len(rows) == 0 {
		return 0, invalid("bookings", "must not be empty")
	}

	bookings := make([]models.Booking, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for i, b := range rows {
		b.BookingNumber = strings.TrimSpace(b.BookingNumber)
		if b.BookingNumber == "" {
			return 0, invalid(fmt.Sprintf("bookings[%d].booking_number", i), "is required")
		}
		b.ID = 0
		if at, dup := seen[b.BookingNumber]; dup {
			bookings[at] = b
			continue
		}
		seen[b.BookingNumber] = len(bookings)
		bookings = append(bookings, b)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "booking_number"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"order_number", "tour_date", "customer_name", "sku", "program",
				"adult", "child", "hotel", "phone_number", "channel", "updated_at",
			}),
		}).
		Create(&bookings).Error
	if err != nil {
		return 0, fmt.Errorf("failed to import bookings: %w", err)
	}
	return len(bookings), nil
}
