package points

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ===========================
// 測試輔助函數
// ===========================

// setupTestDB 創建測試用的 SQLite in-memory 資料庫
// 只遷移本套件的資料表（積分餘額 / 帳本 / 用戶位置）
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&PointsBalanceGORM{},
		&LedgerEntryGORM{},
		&UserLocationGORM{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}

	return db, cleanup
}

// testTxContext 測試用的事務上下文
// 滿足本套件的 gormTransactionContext 介面，
// 讓測試可以把 Repository 綁進 db.Transaction 中
type testTxContext struct {
	db *gorm.DB
}

func (c *testTxContext) GetDB() *gorm.DB {
	return c.db
}
