package database

import (
	"context"
	"fmt"
	"time"

	"tour-admin/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Migration is one versioned schema step. Up must be idempotent: it is
// re-run if the process dies between applying it and recording it.
type Migration struct {
	Version uint
	Name    string
	Up      func(db *gorm.DB) error
}

type SchemaMigration struct {
	Version   uint      `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:191;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

type MigrationStatus struct {
	Version   uint       `json:"version"`
	Name      string     `json:"name"`
	AppliedAt *time.Time `json:"applied_at"`
}

var Migrations = []Migration{
	{Version: 1, Name: "create_core_tables", Up: createCoreTables},
	{Version: 2, Name: "add_supplier_support", Up: addSupplierSupport},
}

// Migrate applies every migration not yet recorded in schema_migrations
// and returns the versions it ran.
func Migrate(ctx context.Context, db *gorm.DB) ([]uint, error) {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return nil, fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}

	done, err := appliedVersions(db)
	if err != nil {
		return nil, err
	}

	var ran []uint
	for _, m := range Migrations {
		if _, ok := done[m.Version]; ok {
			continue
		}

		log.Info().Uint("version", m.Version).Str("name", m.Name).Msg("applying migration")
		if err := m.Up(db); err != nil {
			return ran, fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}

		record := SchemaMigration{Version: m.Version, Name: m.Name, AppliedAt: time.Now()}
		if err := db.Create(&record).Error; err != nil {
			return ran, fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		ran = append(ran, m.Version)
	}

	return ran, nil
}

// Status lists every known migration with its applied time, if any.
func Status(ctx context.Context, db *gorm.DB) ([]MigrationStatus, error) {
	db = db.WithContext(ctx)

	done := map[uint]time.Time{}
	if db.Migrator().HasTable(&SchemaMigration{}) {
		var err error
		if done, err = appliedVersions(db); err != nil {
			return nil, err
		}
	}

	out := make([]MigrationStatus, 0, len(Migrations))
	for _, m := range Migrations {
		st := MigrationStatus{Version: m.Version, Name: m.Name}
		if at, ok := done[m.Version]; ok {
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

func appliedVersions(db *gorm.DB) (map[uint]time.Time, error) {
	var rows []SchemaMigration
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	done := make(map[uint]time.Time, len(rows))
	for _, r := range rows {
		done[r.Version] = r.AppliedAt
	}
	return done, nil
}

// productV1 is the products table before suppliers existed.
type productV1 struct {
	ID                uint    `gorm:"primaryKey"`
	SKU               string  `gorm:"column:sku;size:100;not null;uniqueIndex:idx_products_sku"`
	Program           string  `gorm:"type:text"`
	Remark            string  `gorm:"type:text"`
	ProductIDOptional *string `gorm:"column:product_id_optional;size:100"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (productV1) TableName() string { return "products" }

func createCoreTables(db *gorm.DB) error {
	m := db.Migrator()
	tables := []interface{}{
		&models.Booking{},
		&productV1{},
		&models.Rate{},
		&models.Price{},
		&models.Settings{},
	}
	for _, table := range tables {
		if m.HasTable(table) {
			continue
		}
		if err := m.CreateTable(table); err != nil {
			return err
		}
	}
	return nil
}

func addSupplierSupport(db *gorm.DB) error {
	m := db.Migrator()

	if !m.HasTable(&models.Supplier{}) {
		if err := m.CreateTable(&models.Supplier{}); err != nil {
			return err
		}
	}
	if !m.HasIndex(&models.Supplier{}, "idx_suppliers_name") {
		if err := m.CreateIndex(&models.Supplier{}, "idx_suppliers_name"); err != nil {
			return err
		}
	}

	if !m.HasColumn(&models.Product{}, "SupplierID") {
		if err := m.AddColumn(&models.Product{}, "SupplierID"); err != nil {
			return err
		}
	}
	if !m.HasIndex(&models.Product{}, "idx_products_supplier_id") {
		if err := m.CreateIndex(&models.Product{}, "idx_products_supplier_id"); err != nil {
			return err
		}
	}

	// SQLite cannot add a foreign key to an existing table; the catalog
	// repository clears supplier_id itself before deleting a supplier.
	if db.Dialector.Name() != "sqlite" && !m.HasConstraint(&models.Product{}, "Supplier") {
		if err := m.CreateConstraint(&models.Product{}, "Supplier"); err != nil {
			return err
		}
	}
	return nil
}
