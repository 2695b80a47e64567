package testutil

import (
	"strings"
	"testing"

	"syntex_backend/internal/config"
	"syntex_backend/pkg/database"

	"gorm.io/gorm"
)

var nameReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// NewDB 为每个测试打开独立的 sqlite 内存库并完成迁移
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     "file:" + nameReplacer.Replace(t.Name()) + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
