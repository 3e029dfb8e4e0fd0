package persistence

import (
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionManager 實作
// ===========================

// GORMTransactionManager GORM 事務管理器實作
//
// 行為保證：
// 1. fn 返回 nil → 提交
// 2. fn 返回錯誤 → 回滾，錯誤原樣返回給調用者
// 3. fn panic → 回滾後重新拋出（由 gorm.DB.Transaction 保證）
//
// 隔離等級使用資料庫預設值：
// - SQLite: 事務持有資料庫級寫鎖（serializable）
// - PostgreSQL: READ COMMITTED + 列級 FOR UPDATE 鎖已足夠
//   讓同一用戶的餘額寫入線性化
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建 GORM 事務管理器
func NewGORMTransactionManager(db *gorm.DB) shared.TransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在單一資料庫事務中執行 fn
func (m *GORMTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMTransactionContext(tx))
	})
}
