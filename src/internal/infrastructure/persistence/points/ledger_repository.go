package points

import (
	"errors"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// LedgerRepositoryImpl
// ===========================

// LedgerRepositoryImpl 積分帳本倉儲實現（GORM）
//
// 帳本是 append-only 的：此實現只提供 Insert 與查詢，
// 不存在任何 Update / Delete 路徑
type LedgerRepositoryImpl struct {
	db *gorm.DB
}

// NewLedgerRepository 創建新的積分帳本倉儲實例
func NewLedgerRepository(db *gorm.DB) rewards.LedgerRepository {
	return &LedgerRepositoryImpl{db: db}
}

// Insert 寫入一筆帳本記錄
//
// 冪等防護：
// (user_id, order_id) 複合唯一索引在重複入帳時觸發約束違反，
// 轉換為 ErrDuplicateAward 返回——Award Engine 依賴這個信號
// 實現「第一個提交的事務勝出，其餘 no-op」的線性化語義
func (r *LedgerRepositoryImpl) Insert(ctx shared.TransactionContext, entry *rewards.LedgerEntry) error {
	db := r.getDB(ctx)

	result := db.Create(entryToGORM(entry))
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return rewards.ErrDuplicateAward.WithContext(
				"user_id", entry.UserID().String(),
				"order_id", entry.OrderID().String(),
			)
		}
		return result.Error
	}

	return nil
}

// FindByUserAndOrder 根據冪等鍵查找帳本記錄
func (r *LedgerRepositoryImpl) FindByUserAndOrder(ctx shared.TransactionContext, userID rewards.UserID, orderID rewards.OrderID) (*rewards.LedgerEntry, error) {
	db := r.getDB(ctx)

	var gormModel LedgerEntryGORM

	result := db.
		Where("user_id = ? AND order_id = ?", userID.String(), orderID.String()).
		First(&gormModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, rewards.ErrLedgerEntryNotFound.WithContext(
				"user_id", userID.String(),
				"order_id", orderID.String(),
			)
		}
		return nil, result.Error
	}

	return gormModel.toDomain()
}

// FindByUserID 查找用戶的所有帳本記錄（新到舊）
func (r *LedgerRepositoryImpl) FindByUserID(ctx shared.TransactionContext, userID rewards.UserID) ([]*rewards.LedgerEntry, error) {
	db := r.getDB(ctx)

	var gormModels []LedgerEntryGORM

	result := db.
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Find(&gormModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*rewards.LedgerEntry, 0, len(gormModels))
	for i := range gormModels {
		entry, err := gormModels[i].toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// getDB 獲取 GORM DB 實例（ctx == nil 時使用 auto-commit 模式）
func (r *LedgerRepositoryImpl) getDB(ctx shared.TransactionContext) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(gormTransactionContext); ok {
			return txCtx.GetDB()
		}
	}
	return r.db
}
