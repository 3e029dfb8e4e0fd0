package rewards

import (
	"errors"
	"fmt"
	"time"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
)

// ===========================
// RedeemReward Use Case
// ===========================

// maxCodeAttempts 兌換碼生成的最大重試次數
// 36^6 的空間內連續 5 次碰撞的機率可忽略；
// 真的用盡視為系統故障（ErrCodeGenerationExhausted）
const maxCodeAttempts = 5

// RedeemRewardCommand 兌換獎勵命令
type RedeemRewardCommand struct {
	UserID   string
	RewardID string
}

// RedeemRewardResult 兌換獎勵結果
// 兌換記錄連同獎勵細節一併返回（呈現層不需要二次查詢）
type RedeemRewardResult struct {
	RedemptionID string
	UserID       string
	Code         string
	Used         bool
	CreatedAt    time.Time

	// 剩餘可用積分（扣點後）
	RemainingPoints int

	// 獎勵細節
	RewardID          string
	RewardTitle       string
	RewardDescription string
	RewardType        rewards.RewardType
	PointCost         int
	RewardImageURL    string
}

// RedeemRewardUseCase 兌換獎勵 Use Case（Redemption Engine）
//
// 並發保證：
// 餘額的「讀取 → 檢查 → 扣減 → 寫回」在持有列寫鎖的單一事務內執行。
// 兩個並發兌換若合計會透支餘額，必定恰好一成一敗
// （敗方得到 ErrInsufficientPoints，餘額永不為負）
//
// ⚠️ 非冪等：
// 兌換是一次合法的消費行為，盲目重試會嘗試第二次購買。
// 調用者在超時後必須先查詢前次是否已成功（ListRedemptions），
// 或在外層附加冪等令牌後再重試
//
// 事務設計（單一事務內）：
// 1. 查找獎勵（不存在或已下架 → ErrRewardNotFound）
// 2. FindByUserIDForUpdate 鎖定餘額列（不存在 → ErrBalanceNotFound）
// 3. Debit 扣點（不足 → ErrInsufficientPoints，回滾，無副作用）
// 4. 生成唯一兌換碼（crypto/rand + 儲存查重重試）
// 5. Insert 兌換記錄、Update 餘額
// 任一步失敗整體回滾，不存在部分扣點
type RedeemRewardUseCase struct {
	balanceRepo    rewards.PointsBalanceRepository
	rewardRepo     rewards.RewardRepository
	redemptionRepo rewards.RedemptionRepository
	codeGenerator  *rewards.RedemptionCodeGenerator
	txManager      shared.TransactionManager
}

// NewRedeemRewardUseCase 創建 Use Case 實例
func NewRedeemRewardUseCase(
	balanceRepo rewards.PointsBalanceRepository,
	rewardRepo rewards.RewardRepository,
	redemptionRepo rewards.RedemptionRepository,
	txManager shared.TransactionManager,
) *RedeemRewardUseCase {
	return &RedeemRewardUseCase{
		balanceRepo:    balanceRepo,
		rewardRepo:     rewardRepo,
		redemptionRepo: redemptionRepo,
		codeGenerator:  rewards.NewRedemptionCodeGenerator(),
		txManager:      txManager,
	}
}

// Execute 執行兌換
//
// 錯誤處理（全部在任何變更發生之前偵測）：
// - ErrInvalidUserID / ErrInvalidRewardID: ID 格式無效
// - ErrRewardNotFound: 獎勵不存在或已下架（對用戶顯示「獎勵不可用」）
// - ErrBalanceNotFound: 用戶不存在
// - ErrInsufficientPoints: 餘額不足（對用戶顯示「積分不足」），
//   餘額保持原值，無任何副作用
func (uc *RedeemRewardUseCase) Execute(cmd RedeemRewardCommand) (*RedeemRewardResult, error) {
	// 1. 驗證並轉換識別符
	userID, err := rewards.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	rewardID, err := rewards.RewardIDFromString(cmd.RewardID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reward ID: %w", err)
	}

	// 2. 在單一事務中執行兌換
	var result *RedeemRewardResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		// 2.1 查找獎勵（已下架視同不存在）
		reward, err := uc.rewardRepo.FindByID(ctx, rewardID)
		if err != nil {
			return fmt.Errorf("failed to find reward: %w", err)
		}
		if !reward.IsActive() {
			return rewards.ErrRewardNotFound.WithContext(
				"reward_id", rewardID.String(),
				"reason", "reward is inactive",
			)
		}

		// 2.2 鎖定餘額列（並發兌換在此線性化）
		balance, err := uc.balanceRepo.FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to lock balance: %w", err)
		}

		// 2.3 扣點（不足則拒絕，事務回滾，無副作用）
		if err := balance.Debit(reward.PointCost(), rewardID); err != nil {
			return err
		}

		// 2.4 生成唯一兌換碼（儲存查重 + 重試）
		code, err := uc.generateUniqueCode(ctx)
		if err != nil {
			return err
		}

		// 2.5 寫入兌換記錄
		redemption, err := rewards.NewRedemption(userID, rewardID, code)
		if err != nil {
			return fmt.Errorf("failed to create redemption: %w", err)
		}
		if err := uc.redemptionRepo.Insert(ctx, redemption); err != nil {
			return fmt.Errorf("failed to insert redemption: %w", err)
		}

		// 2.6 更新餘額
		if err := uc.balanceRepo.Update(ctx, balance); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		result = &RedeemRewardResult{
			RedemptionID:      redemption.RedemptionID().String(),
			UserID:            userID.String(),
			Code:              redemption.Code(),
			Used:              redemption.IsUsed(),
			CreatedAt:         redemption.CreatedAt(),
			RemainingPoints:   balance.Balance().Value(),
			RewardID:          reward.RewardID().String(),
			RewardTitle:       reward.Title(),
			RewardDescription: reward.Description(),
			RewardType:        reward.Type(),
			PointCost:         reward.PointCost().Value(),
			RewardImageURL:    reward.ImageURL(),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// generateUniqueCode 生成在活躍兌換集合內唯一的兌換碼
//
// 碰撞時重新生成，最多 maxCodeAttempts 次；
// 儲存層的唯一索引在「查重與寫入之間被別人搶先」的
// 極窄窗口內兜底
func (uc *RedeemRewardUseCase) generateUniqueCode(ctx shared.TransactionContext) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := uc.codeGenerator.Generate()
		if err != nil {
			return "", fmt.Errorf("failed to generate redemption code: %w", err)
		}

		exists, err := uc.redemptionRepo.ExistsByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
	}

	return "", rewards.ErrCodeGenerationExhausted.WithContext(
		"attempts", maxCodeAttempts,
	)
}

// IsUserFacingError 判斷錯誤是否應以友好訊息呈現給用戶
//
// 呈現層映射指南：
// - ErrRewardNotFound → "reward unavailable"
// - ErrInsufficientPoints → "insufficient points"
// - ErrBalanceNotFound → "user not found"
// 其餘錯誤為系統故障，呈現層應顯示通用錯誤訊息
func IsUserFacingError(err error) bool {
	return errors.Is(err, rewards.ErrRewardNotFound) ||
		errors.Is(err, rewards.ErrInsufficientPoints) ||
		errors.Is(err, rewards.ErrBalanceNotFound)
}
