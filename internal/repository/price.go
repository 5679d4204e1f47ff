package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tour-admin/internal/models"

	"github.com/jmoiron/sqlx"
)

// PriceRepository serves the flat prices table. It is kept apart from the
// catalog rates on purpose: the two are maintained independently.
type PriceRepository struct {
	db *sqlx.DB
}

func NewPriceRepository(db *sqlx.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

const priceColumns = "id, sku, tour_id, company, tour, adult_net, child_net, remark"

func (r *PriceRepository) List(ctx context.Context) ([]models.Price, error) {
	prices := []models.Price{}
	query := "SELECT " + priceColumns + " FROM prices ORDER BY sku, tour"
	if err := r.db.SelectContext(ctx, &prices, query); err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	return prices, nil
}

func (r *PriceRepository) Get(ctx context.Context, id int64) (*models.Price, error) {
	var p models.Price
	query := r.db.Rebind("SELECT " + priceColumns + " FROM prices WHERE id = ?")
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load price %d: %w", id, err)
	}
	return &p, nil
}

// PriceUpdate holds the fields of a partial update; nil means unchanged.
type PriceUpdate struct {
	SKU      *string
	TourID   *string
	Company  *string
	Tour     *string
	AdultNet *float64
	ChildNet *float64
	Remark   *string
}

func (u PriceUpdate) assignments() ([]string, []interface{}) {
	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if u.SKU != nil {
		add("sku", *u.SKU)
	}
	if u.TourID != nil {
		add("tour_id", *u.TourID)
	}
	if u.Company != nil {
		add("company", *u.Company)
	}
	if u.Tour != nil {
		add("tour", *u.Tour)
	}
	if u.AdultNet != nil {
		add("adult_net", *u.AdultNet)
	}
	if u.ChildNet != nil {
		add("child_net", *u.ChildNet)
	}
	if u.Remark != nil {
		add("remark", *u.Remark)
	}
	return sets, args
}

// Update changes only the fields set in u and returns the stored row.
func (r *PriceRepository) Update(ctx context.Context, id int64, u PriceUpdate) (*models.Price, error) {
	if id <= 0 {
		return nil, invalid("id", "is required")
	}
	sets, args := u.assignments()
	if len(sets) == 0 {
		return nil, invalid("", "no fields to update")
	}

	query := r.db.Rebind("UPDATE prices SET " + strings.Join(sets, ", ") + " WHERE id = ?")
	res, err := r.db.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		return nil, fmt.Errorf("failed to update price %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update price %d: %w", id, err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}
