package rewards

import (
	"fmt"
	"time"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
)

// ===========================
// GetAwardHistory Use Case
// ===========================

// GetAwardHistoryQuery 查詢用戶入帳歷史的查詢
type GetAwardHistoryQuery struct {
	UserID string
}

// LedgerEntryView 帳本記錄呈現項目
//
// Reason 在此處（呈現邊界）由加成標籤渲染而成；
// 帳本本身只儲存結構化標籤
type LedgerEntryView struct {
	EntryID   string
	OrderID   string
	Points    int
	Tags      []rewards.BonusTag
	Reason    string
	CreatedAt time.Time
}

// GetAwardHistoryUseCase 查詢用戶入帳歷史 Use Case（審計視圖）
type GetAwardHistoryUseCase struct {
	ledgerRepo rewards.LedgerRepository
}

// NewGetAwardHistoryUseCase 創建 Use Case 實例
func NewGetAwardHistoryUseCase(ledgerRepo rewards.LedgerRepository) *GetAwardHistoryUseCase {
	return &GetAwardHistoryUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute 執行查詢（新到舊）
func (uc *GetAwardHistoryUseCase) Execute(query GetAwardHistoryQuery) ([]LedgerEntryView, error) {
	// 1. 驗證並轉換 UserID
	userID, err := rewards.UserIDFromString(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	// 2. 查詢帳本記錄
	entries, err := uc.ledgerRepo.FindByUserID(nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	// 3. 構建呈現項目
	views := make([]LedgerEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, LedgerEntryView{
			EntryID:   entry.EntryID().String(),
			OrderID:   entry.OrderID().String(),
			Points:    entry.Points().Value(),
			Tags:      entry.Tags(),
			Reason:    entry.Reason(),
			CreatedAt: entry.CreatedAt(),
		})
	}
	return views, nil
}
