package points

import (
	"time"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
)

// ===========================
// GORM Models
// ===========================

// PointsBalanceGORM 積分餘額資料表模型
//
// 設計原則：
// - 僅用於 Infrastructure Layer（不暴露給 Domain Layer）
// - 與 Domain PointsBalance 聚合分離（Mapper 轉換）
//
// 資料庫約束：
// - user_id: 主鍵（餘額與用戶 1:1）
// - balance: 當前可用積分（CHECK >= 0，資料庫層兜底不變條件）
//
// 注意：沒有軟刪除——餘額隨用戶帳號建立後永不刪除
type PointsBalanceGORM struct {
	UserID  string `gorm:"column:user_id;type:varchar(36);primaryKey"`
	Balance int    `gorm:"column:balance;not null;default:0;check:balance >= 0"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (PointsBalanceGORM) TableName() string {
	return "points_balances"
}

// toDomain 將 GORM 模型轉換為 Domain 模型
func (g *PointsBalanceGORM) toDomain() (*rewards.PointsBalance, error) {
	userID, err := rewards.UserIDFromString(g.UserID)
	if err != nil {
		return nil, err
	}

	// 重建時由 ReconstructPointsBalance 再次驗證不變條件
	return rewards.ReconstructPointsBalance(
		userID,
		g.Balance,
		g.CreatedAt,
		g.UpdatedAt,
	)
}

// balanceToGORM 將 Domain 模型轉換為 GORM 模型
func balanceToGORM(balance *rewards.PointsBalance) *PointsBalanceGORM {
	return &PointsBalanceGORM{
		UserID:    balance.UserID().String(),
		Balance:   balance.Balance().Value(),
		CreatedAt: balance.CreatedAt(),
		UpdatedAt: balance.UpdatedAt(),
	}
}

// LedgerEntryGORM 積分帳本資料表模型
//
// 資料庫約束：
// - entry_id: 主鍵（UUID）
// - (user_id, order_id): 複合唯一索引——冪等鍵，
//   重複入帳在此「大聲失敗」
// - points: 入帳積分（CHECK >= 0）
// - bonus_tags: 逗號分隔的加成標籤（結構化，非渲染字串）
//
// 注意：append-only——沒有 updated_at，沒有刪除路徑
type LedgerEntryGORM struct {
	EntryID   string    `gorm:"column:entry_id;type:varchar(36);primaryKey"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:idx_ledger_user_order"`
	OrderID   string    `gorm:"column:order_id;type:varchar(36);not null;uniqueIndex:idx_ledger_user_order"`
	Points    int       `gorm:"column:points;not null;check:points >= 0"`
	BonusTags string    `gorm:"column:bonus_tags;type:varchar(255);not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
}

// TableName 指定資料表名稱
func (LedgerEntryGORM) TableName() string {
	return "ledger_entries"
}

// toDomain 將 GORM 模型轉換為 Domain 模型
func (g *LedgerEntryGORM) toDomain() (*rewards.LedgerEntry, error) {
	entryID, err := rewards.EntryIDFromString(g.EntryID)
	if err != nil {
		return nil, err
	}

	userID, err := rewards.UserIDFromString(g.UserID)
	if err != nil {
		return nil, err
	}

	orderID, err := rewards.OrderIDFromString(g.OrderID)
	if err != nil {
		return nil, err
	}

	return rewards.ReconstructLedgerEntry(
		entryID,
		userID,
		orderID,
		g.Points,
		rewards.ParseBonusTags(g.BonusTags),
		g.CreatedAt,
	)
}

// entryToGORM 將 Domain 模型轉換為 GORM 模型
func entryToGORM(entry *rewards.LedgerEntry) *LedgerEntryGORM {
	return &LedgerEntryGORM{
		EntryID:   entry.EntryID().String(),
		UserID:    entry.UserID().String(),
		OrderID:   entry.OrderID().String(),
		Points:    entry.Points().Value(),
		BonusTags: rewards.JoinBonusTags(entry.Tags()),
		CreatedAt: entry.CreatedAt(),
	}
}

// UserLocationGORM 用戶最後位置資料表模型
//
// 職責邊界：
// 此表由外部的用戶目錄協作者寫入（用戶位置更新時）；
// 核心只在計算距離加成時讀取，沒有任何寫入路徑
type UserLocationGORM struct {
	UserID    string    `gorm:"column:user_id;type:varchar(36);primaryKey"`
	Latitude  float64   `gorm:"column:latitude;not null"`
	Longitude float64   `gorm:"column:longitude;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (UserLocationGORM) TableName() string {
	return "user_locations"
}
