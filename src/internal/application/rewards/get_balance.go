package rewards

import (
	"fmt"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
)

// GetPointsBalanceQuery 查詢積分餘額的查詢
type GetPointsBalanceQuery struct {
	UserID string
}

// GetPointsBalanceResult 查詢積分餘額的結果
type GetPointsBalanceResult struct {
	UserID  string
	Balance int
}

// GetPointsBalanceUseCase 查詢積分餘額 Use Case
type GetPointsBalanceUseCase struct {
	balanceRepo rewards.PointsBalanceRepository
}

// NewGetPointsBalanceUseCase 創建 Use Case 實例
func NewGetPointsBalanceUseCase(repo rewards.PointsBalanceRepository) *GetPointsBalanceUseCase {
	return &GetPointsBalanceUseCase{
		balanceRepo: repo,
	}
}

// Execute 執行查詢積分餘額
//
// 錯誤處理：
// - ErrInvalidUserID: UserID 格式無效
// - ErrBalanceNotFound: 餘額不存在（用戶不存在）
func (uc *GetPointsBalanceUseCase) Execute(query GetPointsBalanceQuery) (*GetPointsBalanceResult, error) {
	return uc.ExecuteWithContext(nil, query)
}

// ExecuteWithContext 在事務上下文中執行查詢
//
// 使用場景：
// - 在已有事務中查詢餘額（與其他操作組合）
// - 獨立查詢時可傳入 nil（不需要事務）
func (uc *GetPointsBalanceUseCase) ExecuteWithContext(
	ctx shared.TransactionContext,
	query GetPointsBalanceQuery,
) (*GetPointsBalanceResult, error) {
	// 1. 驗證並轉換 UserID
	userID, err := rewards.UserIDFromString(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	// 2. 查詢積分餘額
	balance, err := uc.balanceRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find balance: %w", err)
	}

	// 3. 返回結果
	return &GetPointsBalanceResult{
		UserID:  balance.UserID().String(),
		Balance: balance.Balance().Value(),
	}, nil
}
