package rewards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	domainrewards "github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ===========================
// 測試輔助函數
// ===========================

// setupTestDB 創建測試用的 SQLite in-memory 資料庫
// 只遷移本套件的資料表（獎勵目錄 / 兌換記錄）
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&RewardGORM{},
		&RedemptionGORM{},
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

// seedRewardRow 模擬外部的目錄管理協作者直接寫入 rewards 表
func seedRewardRow(t *testing.T, db *gorm.DB, rewardID domainrewards.RewardID, pointCost int, active bool, merchantID *string) {
	t.Helper()

	require.NoError(t, db.Create(&RewardGORM{
		RewardID:    rewardID.String(),
		Title:       "有機咖啡折扣券",
		Description: "兌換店內任一飲品九折",
		Type:        string(domainrewards.RewardTypeDiscount),
		PointCost:   pointCost,
		Active:      active,
		MerchantID:  merchantID,
		CreatedAt:   time.Now(),
	}).Error)
}
