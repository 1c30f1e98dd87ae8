package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"weddingplanner-backend/logger"
	"weddingplanner-backend/models"
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.Nop()
}

// DB opens a private in-memory sqlite database with every table migrated.
// One connection keeps the in-memory database alive for the whole test.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

// CountQueries counts SELECT statements issued through db until the returned
// function is called.
func CountQueries(tb testing.TB, db *gorm.DB) func() int {
	tb.Helper()
	count := 0
	name := "testutil:count_queries"
	if err := db.Callback().Query().After("gorm:query").Register(name, func(*gorm.DB) { count++ }); err != nil {
		tb.Fatalf("register query counter: %v", err)
	}
	return func() int {
		_ = db.Callback().Query().Remove(name)
		return count
	}
}
