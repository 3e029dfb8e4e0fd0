package rewards

import (
	"errors"
	"strings"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
	"gorm.io/gorm"
)

// gormTransactionContext GORM 事務上下文
type gormTransactionContext interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// ===========================
// RewardRepositoryImpl
// ===========================

// RewardRepositoryImpl 獎勵目錄倉儲實現（GORM，只讀）
//
// 實作 rewards.RewardRepository：核心視角下目錄是只讀的，
// 此實現沒有任何寫入方法
type RewardRepositoryImpl struct {
	db *gorm.DB
}

// NewRewardRepository 創建新的獎勵目錄倉儲實例
func NewRewardRepository(db *gorm.DB) rewards.RewardRepository {
	return &RewardRepositoryImpl{db: db}
}

// FindByID 根據獎勵 ID 查找獎勵（含已下架）
func (r *RewardRepositoryImpl) FindByID(ctx shared.TransactionContext, rewardID rewards.RewardID) (*rewards.Reward, error) {
	db := r.getDB(ctx)

	var gormModel RewardGORM

	result := db.Where("reward_id = ?", rewardID.String()).First(&gormModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, rewards.ErrRewardNotFound.WithContext(
				"reward_id", rewardID.String(),
			)
		}
		return nil, result.Error
	}

	return gormModel.toDomain()
}

// FindActive 查找所有可兌換的獎勵
//
// 商家範圍過濾：
// - merchantID == nil: 所有 active 獎勵
// - merchantID != nil: 全平台通用（merchant_id IS NULL）
//   加上該商家限定的 active 獎勵
func (r *RewardRepositoryImpl) FindActive(ctx shared.TransactionContext, merchantID *rewards.MerchantID) ([]*rewards.Reward, error) {
	db := r.getDB(ctx)

	query := db.Where("active = ?", true)
	if merchantID != nil {
		query = query.Where("merchant_id IS NULL OR merchant_id = ?", merchantID.String())
	}

	var gormModels []RewardGORM
	result := query.Order("point_cost ASC").Find(&gormModels)
	if result.Error != nil {
		return nil, result.Error
	}

	activeRewards := make([]*rewards.Reward, 0, len(gormModels))
	for i := range gormModels {
		reward, err := gormModels[i].toDomain()
		if err != nil {
			return nil, err
		}
		activeRewards = append(activeRewards, reward)
	}
	return activeRewards, nil
}

// getDB 獲取 GORM DB 實例（ctx == nil 時使用 auto-commit 模式）
func (r *RewardRepositoryImpl) getDB(ctx shared.TransactionContext) *gorm.DB {
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
