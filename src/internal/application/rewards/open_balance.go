package rewards

import (
	"errors"
	"fmt"
	"time"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
)

// ===========================
// OpenBalance Use Case
// ===========================

// OpenBalanceCommand 開立積分餘額的命令
//
// 調用方：外部的用戶目錄協作者在創建用戶帳號時調用，
// 餘額與帳號一併建立（初始為 0），之後永不刪除
type OpenBalanceCommand struct {
	UserID string
}

// OpenBalanceResult 開立積分餘額的結果
type OpenBalanceResult struct {
	UserID         string
	InitialBalance int
	CreatedAt      time.Time
}

// OpenBalanceUseCase 開立積分餘額 Use Case
//
// 設計原則：
// - 並發安全：依賴資料庫唯一約束，而非 check-then-insert
// - 事務管理：Use Case 管理事務（不依賴調用者）
type OpenBalanceUseCase struct {
	balanceRepo rewards.PointsBalanceRepository
	txManager   shared.TransactionManager
}

// NewOpenBalanceUseCase 創建 Use Case 實例
func NewOpenBalanceUseCase(
	repo rewards.PointsBalanceRepository,
	txManager shared.TransactionManager,
) *OpenBalanceUseCase {
	return &OpenBalanceUseCase{
		balanceRepo: repo,
		txManager:   txManager,
	}
}

// Execute 執行開立積分餘額
//
// 錯誤處理：
// - ErrInvalidUserID: UserID 格式無效
// - ErrBalanceAlreadyExists: 用戶已有餘額（由資料庫唯一約束保證）
func (uc *OpenBalanceUseCase) Execute(cmd OpenBalanceCommand) (*OpenBalanceResult, error) {
	// 1. 驗證並轉換 UserID
	userID, err := rewards.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	// 2. 創建新的積分餘額（Domain Layer）
	balance, err := rewards.NewPointsBalance(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create balance: %w", err)
	}

	// 3. 在事務中保存到 Repository
	var result *OpenBalanceResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		if err := uc.balanceRepo.Save(ctx, balance); err != nil {
			if errors.Is(err, rewards.ErrBalanceAlreadyExists) {
				return fmt.Errorf("user already has a balance: %w", err)
			}
			return fmt.Errorf("failed to save balance: %w", err)
		}

		result = &OpenBalanceResult{
			UserID:         balance.UserID().String(),
			InitialBalance: 0,
			CreatedAt:      balance.CreatedAt(),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}
