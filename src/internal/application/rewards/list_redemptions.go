package rewards

import (
	"errors"
	"fmt"
	"time"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
)

// ===========================
// ListRedemptions Use Case
// ===========================

// ListRedemptionsQuery 查詢用戶兌換記錄的查詢
type ListRedemptionsQuery struct {
	UserID string
}

// RedemptionView 兌換記錄呈現項目（含獎勵細節）
type RedemptionView struct {
	RedemptionID string
	Code         string
	Used         bool
	CreatedAt    time.Time

	RewardID       string
	RewardTitle    string
	RewardType     rewards.RewardType
	PointCost      int
	RewardImageURL string
}

// ListRedemptionsUseCase 查詢用戶兌換記錄 Use Case
//
// 排序保證：新到舊（最近的兌換在最前面），由 Repository 保證
type ListRedemptionsUseCase struct {
	redemptionRepo rewards.RedemptionRepository
	rewardRepo     rewards.RewardRepository
}

// NewListRedemptionsUseCase 創建 Use Case 實例
func NewListRedemptionsUseCase(
	redemptionRepo rewards.RedemptionRepository,
	rewardRepo rewards.RewardRepository,
) *ListRedemptionsUseCase {
	return &ListRedemptionsUseCase{
		redemptionRepo: redemptionRepo,
		rewardRepo:     rewardRepo,
	}
}

// Execute 執行查詢
func (uc *ListRedemptionsUseCase) Execute(query ListRedemptionsQuery) ([]RedemptionView, error) {
	// 1. 驗證並轉換 UserID
	userID, err := rewards.UserIDFromString(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	// 2. 查詢兌換記錄（新到舊）
	redemptions, err := uc.redemptionRepo.FindByUserID(nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}

	// 3. 補上獎勵細節
	views := make([]RedemptionView, 0, len(redemptions))
	for _, redemption := range redemptions {
		view := RedemptionView{
			RedemptionID: redemption.RedemptionID().String(),
			Code:         redemption.Code(),
			Used:         redemption.IsUsed(),
			CreatedAt:    redemption.CreatedAt(),
			RewardID:     redemption.RewardID().String(),
		}

		reward, err := uc.rewardRepo.FindByID(nil, redemption.RewardID())
		switch {
		case err == nil:
			view.RewardTitle = reward.Title()
			view.RewardType = reward.Type()
			view.PointCost = reward.PointCost().Value()
			view.RewardImageURL = reward.ImageURL()
		case errors.Is(err, rewards.ErrRewardNotFound):
			// 獎勵被目錄管理端硬刪除時仍呈現兌換記錄本身
		default:
			return nil, fmt.Errorf("failed to find reward: %w", err)
		}

		views = append(views, view)
	}
	return views, nil
}
