package rewards

import (
	"fmt"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
)

// ===========================
// ListActiveRewards Use Case
// ===========================

// ListActiveRewardsQuery 查詢可兌換獎勵的查詢
//
// MerchantID 為可選的商家範圍過濾（nil 返回所有 active 獎勵）
type ListActiveRewardsQuery struct {
	MerchantID *string
}

// RewardView 獎勵目錄呈現項目
type RewardView struct {
	RewardID    string
	Title       string
	Description string
	Type        rewards.RewardType
	PointCost   int
	ImageURL    string
	MerchantID  *string

	// ValueCRC 點數成本的等值金額（哥斯大黎加科朗，整數字串）
	// 由 PointsValuationService 以精確小數計算
	ValueCRC string
}

// ListActiveRewardsUseCase 查詢可兌換獎勵 Use Case（Catalog Reader）
type ListActiveRewardsUseCase struct {
	rewardRepo rewards.RewardRepository
	valuation  *rewards.PointsValuationService
	rate       rewards.ConversionRate
}

// NewListActiveRewardsUseCase 創建 Use Case 實例
//
// rate 為平台當前的積分換算率（每 1 積分的 CRC 金額），
// 由組裝層從配置注入
func NewListActiveRewardsUseCase(
	rewardRepo rewards.RewardRepository,
	rate rewards.ConversionRate,
) *ListActiveRewardsUseCase {
	return &ListActiveRewardsUseCase{
		rewardRepo: rewardRepo,
		valuation:  rewards.NewPointsValuationService(),
		rate:       rate,
	}
}

// Execute 執行查詢
//
// 讀操作使用 auto-commit 模式（nil TransactionContext），
// 目錄讀取不需要與任何寫入保持一致性
func (uc *ListActiveRewardsUseCase) Execute(query ListActiveRewardsQuery) ([]RewardView, error) {
	// 1. 轉換可選的商家過濾
	var merchantID *rewards.MerchantID
	if query.MerchantID != nil {
		id, err := rewards.MerchantIDFromString(*query.MerchantID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse merchant ID: %w", err)
		}
		merchantID = &id
	}

	// 2. 查詢可兌換獎勵
	activeRewards, err := uc.rewardRepo.FindActive(nil, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rewards: %w", err)
	}

	// 3. 構建呈現項目（含等值金額）
	views := make([]RewardView, 0, len(activeRewards))
	for _, reward := range activeRewards {
		views = append(views, uc.toView(reward))
	}
	return views, nil
}

// toView 將獎勵轉換為呈現項目
func (uc *ListActiveRewardsUseCase) toView(reward *rewards.Reward) RewardView {
	var merchantID *string
	if reward.MerchantID() != nil {
		s := reward.MerchantID().String()
		merchantID = &s
	}

	return RewardView{
		RewardID:    reward.RewardID().String(),
		Title:       reward.Title(),
		Description: reward.Description(),
		Type:        reward.Type(),
		PointCost:   reward.PointCost().Value(),
		ImageURL:    reward.ImageURL(),
		MerchantID:  merchantID,
		ValueCRC:    uc.valuation.ValueOf(reward.PointCost(), uc.rate).String(),
	}
}
