package rewards

import "time"

// ===========================
// RewardType 獎勵類型
// ===========================

// RewardType 獎勵類型（枚舉）
type RewardType string

const (
	// RewardTypeDiscount 折扣券
	RewardTypeDiscount RewardType = "discount"

	// RewardTypeFreeProduct 免費商品
	RewardTypeFreeProduct RewardType = "free_product"

	// RewardTypeDonation 公益捐贈（以用戶名義捐出等值金額）
	RewardTypeDonation RewardType = "donation"

	// RewardTypeGiftCard 禮品卡
	RewardTypeGiftCard RewardType = "gift_card"
)

// IsValid 判斷是否為已知的獎勵類型
func (t RewardType) IsValid() bool {
	switch t {
	case RewardTypeDiscount, RewardTypeFreeProduct, RewardTypeDonation, RewardTypeGiftCard:
		return true
	}
	return false
}

// ===========================
// Reward 獎勵目錄項目
// ===========================

// Reward 獎勵目錄項目（核心視角下為只讀實體）
//
// 職責邊界：
// - 目錄的建立與維護由外部的目錄管理協作者負責
// - 核心（Redemption Engine / Catalog Reader）只讀取目錄，
//   不提供任何寫入路徑
//
// 字段說明：
// - pointCost: 兌換所需積分（正整數）
// - active: 下架的獎勵保留記錄但不可兌換
// - merchantID: 可選的商家範圍限定（nil 表示全平台通用）
type Reward struct {
	rewardID    RewardID
	title       string
	description string
	rewardType  RewardType
	pointCost   PointsAmount
	imageURL    string
	active      bool
	merchantID  *MerchantID
	createdAt   time.Time
}

// ReconstructReward 從持久化存儲重建獎勵
//
// 核心沒有 NewReward：目錄寫入不屬於本 bounded context，
// Repository 讀取時通過此方法重建並驗證
func ReconstructReward(
	rewardID RewardID,
	title string,
	description string,
	rewardType RewardType,
	pointCost int,
	imageURL string,
	active bool,
	merchantID *MerchantID,
	createdAt time.Time,
) (*Reward, error) {
	if rewardID.IsEmpty() {
		return nil, ErrInvalidRewardID.WithContext(
			"reason", "invalid reward ID in database",
		)
	}
	if !rewardType.IsValid() {
		return nil, ErrInvalidRewardType.WithContext(
			"type", string(rewardType),
		)
	}
	if pointCost <= 0 {
		return nil, ErrInvalidPointCost.WithContext(
			"point_cost", pointCost,
		)
	}

	// pointCost > 0 已驗證，可安全使用 unchecked 建構
	cost := newPointsAmountUnchecked(pointCost)

	return &Reward{
		rewardID:    rewardID,
		title:       title,
		description: description,
		rewardType:  rewardType,
		pointCost:   cost,
		imageURL:    imageURL,
		active:      active,
		merchantID:  merchantID,
		createdAt:   createdAt,
	}, nil
}

// RewardID 獲取獎勵 ID
func (r *Reward) RewardID() RewardID {
	return r.rewardID
}

// Title 獲取標題
func (r *Reward) Title() string {
	return r.title
}

// Description 獲取描述
func (r *Reward) Description() string {
	return r.description
}

// Type 獲取獎勵類型
func (r *Reward) Type() RewardType {
	return r.rewardType
}

// PointCost 獲取兌換所需積分
func (r *Reward) PointCost() PointsAmount {
	return r.pointCost
}

// ImageURL 獲取圖片連結（可為空字串）
func (r *Reward) ImageURL() string {
	return r.imageURL
}

// IsActive 判斷是否可兌換
func (r *Reward) IsActive() bool {
	return r.active
}

// MerchantID 獲取商家範圍限定（nil 表示全平台通用）
func (r *Reward) MerchantID() *MerchantID {
	return r.merchantID
}

// CreatedAt 獲取創建時間
func (r *Reward) CreatedAt() time.Time {
	return r.createdAt
}
