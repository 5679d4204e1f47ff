package repository

import (
	"context"
	"testing"

	"tour-admin/internal/dbtest"
	"tour-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceList(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewPriceRepository(conn.SQL)

	for _, p := range []models.Price{
		{SKU: "B", Tour: "Zeta"},
		{SKU: "A", Tour: "Yacht"},
		{SKU: "B", Tour: "Alpha"},
	} {
		require.NoError(t, conn.Gorm.Create(&p).Error)
	}

	prices, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 3)
	assert.Equal(t, []string{"A/Yacht", "B/Alpha", "B/Zeta"}, []string{
		prices[0].SKU + "/" + prices[0].Tour,
		prices[1].SKU + "/" + prices[1].Tour,
		prices[2].SKU + "/" + prices[2].Tour,
	})
}

func TestPricePartialUpdate(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewPriceRepository(conn.SQL)
	ctx := context.Background()

	p := models.Price{SKU: "HKT-01", TourID: "T1", Company: "Sea Star", Tour: "Phi Phi", AdultNet: 1500, ChildNet: 1100, Remark: "old"}
	require.NoError(t, conn.Gorm.Create(&p).Error)

	remark := "includes lunch"
	got, err := repo.Update(ctx, p.ID, PriceUpdate{Remark: &remark})
	require.NoError(t, err)
	assert.Equal(t, "includes lunch", got.Remark)
	assert.Equal(t, "HKT-01", got.SKU)
	assert.Equal(t, "T1", got.TourID)
	assert.Equal(t, "Sea Star", got.Company)
	assert.Equal(t, "Phi Phi", got.Tour)
	assert.InDelta(t, 1500, got.AdultNet, 0.001)
	assert.InDelta(t, 1100, got.ChildNet, 0.001)

	adult := 1600.0
	got, err = repo.Update(ctx, p.ID, PriceUpdate{AdultNet: &adult})
	require.NoError(t, err)
	assert.InDelta(t, 1600, got.AdultNet, 0.001)
	assert.Equal(t, "includes lunch", got.Remark)
}

func TestPriceUpdateErrors(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewPriceRepository(conn.SQL)
	ctx := context.Background()

	remark := "x"
	var verr *ValidationError

	_, err := repo.Update(ctx, 0, PriceUpdate{Remark: &remark})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)

	_, err = repo.Update(ctx, 1, PriceUpdate{})
	assert.ErrorAs(t, err, &verr)

	_, err = repo.Update(ctx, 77, PriceUpdate{Remark: &remark})
	assert.ErrorIs(t, err, ErrNotFound)
}
