package rewards

import (
	"time"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
)

// ===========================
// GORM Models
// ===========================

// RewardGORM 獎勵目錄資料表模型
//
// 職責邊界：
// 目錄的建立與維護由外部的目錄管理協作者直接操作此表；
// 核心只讀取（Catalog Reader），mapper 只有 toDomain 方向
//
// 資料庫約束：
// - reward_id: 主鍵（UUID）
// - point_cost: 兌換所需積分（CHECK > 0）
// - merchant_id: 可選的商家範圍限定（NULL 表示全平台通用）
type RewardGORM struct {
	RewardID    string    `gorm:"column:reward_id;type:varchar(36);primaryKey"`
	Title       string    `gorm:"column:title;type:varchar(255);not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Type        string    `gorm:"column:type;type:varchar(32);not null"`
	PointCost   int       `gorm:"column:point_cost;not null;check:point_cost > 0"`
	ImageURL    string    `gorm:"column:image_url;type:varchar(512);not null;default:''"`
	Active      bool      `gorm:"column:active;not null;default:true;index"`
	MerchantID  *string   `gorm:"column:merchant_id;type:varchar(36)"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定資料表名稱
func (RewardGORM) TableName() string {
	return "rewards"
}

// toDomain 將 GORM 模型轉換為 Domain 模型
func (g *RewardGORM) toDomain() (*rewards.Reward, error) {
	rewardID, err := rewards.RewardIDFromString(g.RewardID)
	if err != nil {
		return nil, err
	}

	var merchantID *rewards.MerchantID
	if g.MerchantID != nil {
		id, err := rewards.MerchantIDFromString(*g.MerchantID)
		if err != nil {
			return nil, err
		}
		merchantID = &id
	}

	return rewards.ReconstructReward(
		rewardID,
		g.Title,
		g.Description,
		rewards.RewardType(g.Type),
		g.PointCost,
		g.ImageURL,
		g.Active,
		merchantID,
		g.CreatedAt,
	)
}

// RedemptionGORM 兌換記錄資料表模型
//
// 資料庫約束：
// - redemption_id: 主鍵（UUID）
// - code: 唯一索引——生成端查重的儲存層兜底
// - used: 兌換碼使用旗標，由外部履約協作者翻轉
type RedemptionGORM struct {
	RedemptionID string    `gorm:"column:redemption_id;type:varchar(36);primaryKey"`
	UserID       string    `gorm:"column:user_id;type:varchar(36);not null;index"`
	RewardID     string    `gorm:"column:reward_id;type:varchar(36);not null"`
	Code         string    `gorm:"column:code;type:varchar(16);not null;uniqueIndex"`
	Used         bool      `gorm:"column:used;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index"`
}

// TableName 指定資料表名稱
func (RedemptionGORM) TableName() string {
	return "redemptions"
}

// toDomain 將 GORM 模型轉換為 Domain 模型
func (g *RedemptionGORM) toDomain() (*rewards.Redemption, error) {
	redemptionID, err := rewards.RedemptionIDFromString(g.RedemptionID)
	if err != nil {
		return nil, err
	}

	userID, err := rewards.UserIDFromString(g.UserID)
	if err != nil {
		return nil, err
	}

	rewardID, err := rewards.RewardIDFromString(g.RewardID)
	if err != nil {
		return nil, err
	}

	return rewards.ReconstructRedemption(
		redemptionID,
		userID,
		rewardID,
		g.Code,
		g.Used,
		g.CreatedAt,
	)
}

// redemptionToGORM 將 Domain 模型轉換為 GORM 模型
func redemptionToGORM(redemption *rewards.Redemption) *RedemptionGORM {
	return &RedemptionGORM{
		RedemptionID: redemption.RedemptionID().String(),
		UserID:       redemption.UserID().String(),
		RewardID:     redemption.RewardID().String(),
		Code:         redemption.Code(),
		Used:         redemption.IsUsed(),
		CreatedAt:    redemption.CreatedAt(),
	}
}
