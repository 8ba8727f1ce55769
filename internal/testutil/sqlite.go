// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory database that is closed when the test ends.
// The pool is capped at one connection since every new :memory: connection is a new database.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// InsertCustomer writes one row straight into the Customer table and returns its id.
func InsertCustomer(t testing.TB, db *gorm.DB, firstName, lastName, address, city string) int64 {
	t.Helper()

	err := db.Exec(
		`INSERT INTO "Customer" ("FirstName", "LastName", "Address", "City") VALUES (?, ?, ?, ?)`,
		firstName, lastName, address, city,
	).Error
	if err != nil {
		t.Fatalf("failed to insert customer: %v", err)
	}

	var id int64
	if err := db.Raw(`SELECT MAX("CusID") FROM "Customer"`).Scan(&id).Error; err != nil {
		t.Fatalf("failed to read customer id: %v", err)
	}
	return id
}
