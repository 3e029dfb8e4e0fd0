package rewards

import (
	"errors"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// RedemptionRepositoryImpl
// ===========================

// RedemptionRepositoryImpl 兌換記錄倉儲實現（GORM）
type RedemptionRepositoryImpl struct {
	db *gorm.DB
}

// NewRedemptionRepository 創建新的兌換記錄倉儲實例
func NewRedemptionRepository(db *gorm.DB) rewards.RedemptionRepository {
	return &RedemptionRepositoryImpl{db: db}
}

// Insert 寫入一筆兌換記錄
//
// 錯誤處理：
// - code 唯一索引違反 → ErrDuplicateRedemptionCode
//   （生成端已查重，這裡是「查重與寫入之間被搶先」的極窄窗口兜底）
// - 其他資料庫錯誤 → 原始錯誤
func (r *RedemptionRepositoryImpl) Insert(ctx shared.TransactionContext, redemption *rewards.Redemption) error {
	db := r.getDB(ctx)

	result := db.Create(redemptionToGORM(redemption))
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return rewards.ErrDuplicateRedemptionCode.WithContext(
				"code", redemption.Code(),
			)
		}
		return result.Error
	}

	return nil
}

// FindByUserID 查找用戶的所有兌換記錄（新到舊）
func (r *RedemptionRepositoryImpl) FindByUserID(ctx shared.TransactionContext, userID rewards.UserID) ([]*rewards.Redemption, error) {
	db := r.getDB(ctx)

	var gormModels []RedemptionGORM

	result := db.
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Find(&gormModels)
	if result.Error != nil {
		return nil, result.Error
	}

	redemptions := make([]*rewards.Redemption, 0, len(gormModels))
	for i := range gormModels {
		redemption, err := gormModels[i].toDomain()
		if err != nil {
			return nil, err
		}
		redemptions = append(redemptions, redemption)
	}
	return redemptions, nil
}

// ExistsByCode 判斷兌換碼是否已存在（生成重試迴圈使用）
func (r *RedemptionRepositoryImpl) ExistsByCode(ctx shared.TransactionContext, code string) (bool, error) {
	db := r.getDB(ctx)

	var gormModel RedemptionGORM

	result := db.Where("code = ?", code).First(&gormModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}

	return true, nil
}

// getDB 獲取 GORM DB 實例（ctx == nil 時使用 auto-commit 模式）
func (r *RedemptionRepositoryImpl) getDB(ctx shared.TransactionContext) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(gormTransactionContext); ok {
			return txCtx.GetDB()
		}
	}
	return r.db
}
