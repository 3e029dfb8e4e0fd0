package points

import (
	"errors"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// UserLocationReaderImpl
// ===========================

// UserLocationReaderImpl 用戶最後位置只讀實現（GORM）
//
// user_locations 表由外部的用戶目錄協作者維護，
// 此實現沒有任何寫入方法
type UserLocationReaderImpl struct {
	db *gorm.DB
}

// NewUserLocationReader 創建新的用戶位置讀取器實例
func NewUserLocationReader(db *gorm.DB) rewards.UserLocationReader {
	return &UserLocationReaderImpl{db: db}
}

// FindLastLocation 查找用戶的最後已知座標
//
// 位置未知不是錯誤：返回 (nil, nil)，
// Award Engine 的距離加成自然不參與計算。
// 損壞的座標（超出經緯度範圍）同樣視為位置未知——
// 外部寫入的髒資料不應讓入帳失敗
func (r *UserLocationReaderImpl) FindLastLocation(ctx shared.TransactionContext, userID rewards.UserID) (*rewards.Coordinate, error) {
	db := r.getDB(ctx)

	var gormModel UserLocationGORM

	result := db.Where("user_id = ?", userID.String()).First(&gormModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	coord, err := rewards.NewCoordinate(gormModel.Latitude, gormModel.Longitude)
	if err != nil {
		return nil, nil
	}
	return &coord, nil
}

// getDB 獲取 GORM DB 實例（ctx == nil 時使用 auto-commit 模式）
func (r *UserLocationReaderImpl) getDB(ctx shared.TransactionContext) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(gormTransactionContext); ok {
			return txCtx.GetDB()
		}
	}
	return r.db
}
