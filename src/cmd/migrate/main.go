// migrate 建立/更新積分核心的資料表結構
//
// 用法：
//
//	DATABASE_DSN=eco_rewards.db go run ./src/cmd/migrate
//
// 環境變數可放在 .env（godotenv 自動載入）：
//   - DATABASE_DSN: SQLite 資料庫路徑（預設 eco_rewards.db）
//
// 遷移的資料表：
//   - points_balances: 用戶積分餘額
//   - ledger_entries:  積分帳本（(user_id, order_id) 唯一索引）
//   - redemptions:     兌換記錄（code 唯一索引）
//   - rewards:         獎勵目錄（外部目錄管理端寫入）
//   - user_locations:  用戶最後位置（外部用戶目錄寫入，核心只讀）
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	persistencepoints "github.com/verdemarket/eco_rewards/src/internal/infrastructure/persistence/points"
	persistencerewards "github.com/verdemarket/eco_rewards/src/internal/infrastructure/persistence/rewards"
)

func main() {
	_ = godotenv.Load()

	dsn := getenv("DATABASE_DSN", "eco_rewards.db")

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	err = db.AutoMigrate(
		&persistencepoints.PointsBalanceGORM{},
		&persistencepoints.LedgerEntryGORM{},
		&persistencepoints.UserLocationGORM{},
		&persistencerewards.RewardGORM{},
		&persistencerewards.RedemptionGORM{},
	)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}

	log.Printf("migration complete (dsn=%s)", dsn)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
