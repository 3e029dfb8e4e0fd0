package points

import (
	"errors"
	"strings"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormTransactionContext GORM 事務上下文
type gormTransactionContext interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// ===========================
// PointsBalanceRepositoryImpl
// ===========================

// PointsBalanceRepositoryImpl 積分餘額倉儲實現（GORM）
//
// 設計原則：
// - 實作 rewards.PointsBalanceRepository 接口
// - 處理 Domain 與 GORM 模型轉換
// - 將 GORM 錯誤轉換為 Domain 錯誤
type PointsBalanceRepositoryImpl struct {
	db *gorm.DB
}

// NewPointsBalanceRepository 創建新的積分餘額倉儲實例
func NewPointsBalanceRepository(db *gorm.DB) rewards.PointsBalanceRepository {
	return &PointsBalanceRepositoryImpl{db: db}
}

// Save 保存新的積分餘額
//
// 錯誤處理：
// - UNIQUE constraint 違反（user_id 重複）→ ErrBalanceAlreadyExists
// - 其他資料庫錯誤 → 原始錯誤
func (r *PointsBalanceRepositoryImpl) Save(ctx shared.TransactionContext, balance *rewards.PointsBalance) error {
	db := r.getDB(ctx)

	result := db.Create(balanceToGORM(balance))
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return rewards.ErrBalanceAlreadyExists.WithContext(
				"user_id", balance.UserID().String(),
			)
		}
		return result.Error
	}

	return nil
}

// FindByUserID 根據用戶 ID 查找積分餘額（無鎖讀取）
func (r *PointsBalanceRepositoryImpl) FindByUserID(ctx shared.TransactionContext, userID rewards.UserID) (*rewards.PointsBalance, error) {
	return r.find(r.getDB(ctx), userID)
}

// FindByUserIDForUpdate 根據用戶 ID 查找積分餘額並取得列寫鎖
//
// 鎖語義：
// - PostgreSQL / MySQL: SELECT ... FOR UPDATE，
//   同一用戶的並發事務在此排隊，讀到的餘額保證不是陳舊值
// - SQLite: 不支援 FOR UPDATE 語法，但寫事務持有資料庫級寫鎖，
//   本身已線性化，省略鎖子句即可
//
// 前置條件：ctx 必須為 non-nil（鎖只在事務內有意義）
func (r *PointsBalanceRepositoryImpl) FindByUserIDForUpdate(ctx shared.TransactionContext, userID rewards.UserID) (*rewards.PointsBalance, error) {
	db := r.getDB(ctx)

	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	return r.find(db, userID)
}

// find 查詢的共用實現
func (r *PointsBalanceRepositoryImpl) find(db *gorm.DB, userID rewards.UserID) (*rewards.PointsBalance, error) {
	var gormModel PointsBalanceGORM

	result := db.Where("user_id = ?", userID.String()).First(&gormModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, rewards.ErrBalanceNotFound.WithContext(
				"user_id", userID.String(),
			)
		}
		return nil, result.Error
	}

	return gormModel.toDomain()
}

// Update 更新積分餘額
//
// 注意：使用 Save 而非 Updates，因為：
// - Save 會更新所有字段（包括零值）
// - Updates 會忽略零值字段
// - 餘額可能降為 0，需要正確更新
func (r *PointsBalanceRepositoryImpl) Update(ctx shared.TransactionContext, balance *rewards.PointsBalance) error {
	db := r.getDB(ctx)

	result := db.Save(balanceToGORM(balance))
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// ===========================
// Helper Methods
// ===========================

// getDB 獲取 GORM DB 實例
//
// 行為：
// - ctx != nil: 使用事務中的 DB（從 TransactionContext 獲取）
// - ctx == nil: 使用預設 DB（auto-commit 模式）
func (r *PointsBalanceRepositoryImpl) getDB(ctx shared.TransactionContext) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(gormTransactionContext); ok {
			return txCtx.GetDB()
		}
	}
	return r.db
}

// isUniqueConstraintError 判斷是否為唯一約束錯誤
//
// 支持的資料庫：
// - PostgreSQL: "duplicate key value violates unique constraint"
// - SQLite: "UNIQUE constraint failed"
// - MySQL: "Duplicate entry"
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())

	// PostgreSQL
	if strings.Contains(errMsg, "duplicate key value violates unique constraint") {
		return true
	}

	// SQLite
	if strings.Contains(errMsg, "unique constraint failed") {
		return true
	}

	// MySQL
	if strings.Contains(errMsg, "duplicate entry") {
		return true
	}

	return false
}
