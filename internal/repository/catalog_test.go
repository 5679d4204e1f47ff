package repository

import (
	"context"
	"testing"

	"tour-admin/internal/dbtest"
	"tour-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestRateInputValidate(t *testing.T) {
	valid := RateInput{Name: "Adult/Child", NetAdult: f64(900), NetChild: f64(700), FeeType: "flat"}
	require.NoError(t, valid.Validate(true))

	cases := map[string]RateInput{
		"name":      {NetAdult: f64(1), NetChild: f64(1), FeeType: "flat"},
		"net_adult": {Name: "x", NetChild: f64(1), FeeType: "flat"},
		"net_child": {Name: "x", NetAdult: f64(1), FeeType: "flat"},
		"fee_type":  {Name: "x", NetAdult: f64(1), NetChild: f64(1)},
		"fee_adult": {Name: "x", NetAdult: f64(1), NetChild: f64(1), FeeType: "np", FeeChild: f64(1)},
		"fee_child": {Name: "x", NetAdult: f64(1), NetChild: f64(1), FeeType: "entrance", FeeAdult: f64(1)},
	}
	for field, in := range map[string]RateInput{
		"fee_adult": {Name: "x", NetAdult: f64(1), NetChild: f64(1), FeeType: "np "},
		"fee_child": {Name: "x", NetAdult: f64(1), NetChild: f64(1), FeeType: " entrance", FeeAdult: f64(1)},
	} {
		err := in.Validate(true)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "padded fee type %q", in.FeeType)
		assert.Equal(t, field, verr.Field)
	}
	for field, in := range cases {
		err := in.Validate(true)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, field)
		assert.Equal(t, field, verr.Field)
	}

	noName := RateInput{NetAdult: f64(0), NetChild: f64(0), FeeType: "np", FeeAdult: f64(0), FeeChild: f64(0)}
	assert.NoError(t, noName.Validate(false))
}

func TestCreateProductWithRates(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewCatalogRepository(conn.Gorm)
	ctx := context.Background()

	id, err := repo.CreateProductWithRates(ctx, ProductInput{
		SKU:     "HKT-PP-01",
		Program: "Phi Phi speedboat",
		Rates: []RateInput{
			{NetAdult: f64(1200), NetChild: f64(900), FeeType: "flat"},
			{Name: "With park fee", NetAdult: f64(1200), NetChild: f64(900), FeeType: "np", FeeAdult: f64(400), FeeChild: f64(200)},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	rates, err := repo.ListRates(ctx, &id)
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}

func TestCreateProductWithInvalidRateRollsBack(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewCatalogRepository(conn.Gorm)
	ctx := context.Background()

	_, err := repo.CreateProductWithRates(ctx, ProductInput{
		SKU:     "HKT-JB-02",
		Program: "James Bond island",
		Rates: []RateInput{
			{NetAdult: f64(1000), NetChild: f64(800), FeeType: "flat"},
			{NetAdult: f64(1000), NetChild: f64(800), FeeType: "np", FeeChild: f64(200)},
		},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rates[1].fee_adult", verr.Field)

	var products, rates int64
	require.NoError(t, conn.Gorm.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, conn.Gorm.Model(&models.Rate{}).Count(&rates).Error)
	assert.Zero(t, products)
	assert.Zero(t, rates)
}

func TestCreateProductRequiresSKU(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewCatalogRepository(conn.Gorm)

	_, err := repo.CreateProductWithRates(context.Background(), ProductInput{Program: "no sku"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sku", verr.Field)
}

func TestCreateRate(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewCatalogRepository(conn.Gorm)
	ctx := context.Background()

	rate, err := repo.CreateRate(ctx, RateInput{Name: "Standalone", NetAdult: f64(500), NetChild: f64(300), FeeType: "flat"})
	require.NoError(t, err)
	assert.NotZero(t, rate.ID)
	assert.Nil(t, rate.ProductID)

	missing := uint(999)
	_, err = repo.CreateRate(ctx, RateInput{ProductID: &missing, Name: "Orphan", NetAdult: f64(1), NetChild: f64(1), FeeType: "flat"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "product_id", verr.Field)

	all, err := repo.ListRates(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSupplierLifecycle(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewCatalogRepository(conn.Gorm)
	ctx := context.Background()

	supplier := &models.Supplier{Name: "Andaman Sea Tours"}
	require.NoError(t, repo.CreateSupplier(ctx, supplier))

	id, err := repo.CreateProductWithRates(ctx, ProductInput{SKU: "KBV-4I", Program: "4 islands", SupplierID: &supplier.ID})
	require.NoError(t, err)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.NotNil(t, products[0].Supplier)
	assert.Equal(t, "Andaman Sea Tours", products[0].Supplier.Name)

	require.NoError(t, repo.DeleteSupplier(ctx, supplier.ID))
	assert.ErrorIs(t, repo.DeleteSupplier(ctx, supplier.ID), ErrNotFound)

	var p models.Product
	require.NoError(t, conn.Gorm.First(&p, id).Error)
	assert.Nil(t, p.SupplierID)

	other := &models.Supplier{Name: "Krabi Longtail"}
	require.NoError(t, repo.CreateSupplier(ctx, other))
	require.NoError(t, repo.AssignSupplier(ctx, id, &other.ID))
	require.NoError(t, conn.Gorm.First(&p, id).Error)
	require.NotNil(t, p.SupplierID)
	assert.Equal(t, other.ID, *p.SupplierID)

	require.NoError(t, repo.AssignSupplier(ctx, id, nil))
	require.NoError(t, conn.Gorm.First(&p, id).Error)
	assert.Nil(t, p.SupplierID)

	assert.ErrorIs(t, repo.AssignSupplier(ctx, 4242, nil), ErrNotFound)

	err = repo.CreateSupplier(ctx, &models.Supplier{Name: "  "})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
