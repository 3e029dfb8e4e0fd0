package rewards

import "github.com/verdemarket/eco_rewards/src/internal/domain/shared"

// ===========================
// Repository 介面
// ===========================

// 設計原則：
// 1. 依賴倒置原則（DIP）：Domain Layer 定義介面，Infrastructure Layer 實作
// 2. 介面隔離原則（ISP）：按聚合/實體拆分，各介面只包含用例需要的操作
// 3. 事務支持：使用 TransactionContext 封裝事務，避免基礎設施洩漏

// PointsBalanceRepository 積分餘額倉儲介面
//
// 並發契約：
// 同一用戶的扣點必須透過 FindByUserIDForUpdate 在事務中取得列鎖，
// 讓「讀餘額 → 檢查 → 扣減 → 寫回」在並發兌換間線性化。
// 不同用戶的餘額互不競爭，無需全域鎖
type PointsBalanceRepository interface {
	// Save 保存新的積分餘額
	// 前置條件：餘額不存在（UserID 唯一）
	// 錯誤：ErrBalanceAlreadyExists（如果 UserID 已存在）
	Save(ctx shared.TransactionContext, balance *PointsBalance) error

	// FindByUserID 根據用戶 ID 查找積分餘額（無鎖讀取）
	// 返回：找到的餘額，或 ErrBalanceNotFound
	FindByUserID(ctx shared.TransactionContext, userID UserID) (*PointsBalance, error)

	// FindByUserIDForUpdate 根據用戶 ID 查找積分餘額並取得列寫鎖
	// （SELECT ... FOR UPDATE 語義）
	//
	// 前置條件：ctx 必須為 non-nil（鎖只在事務內有意義）
	// 返回：找到的餘額，或 ErrBalanceNotFound
	FindByUserIDForUpdate(ctx shared.TransactionContext, userID UserID) (*PointsBalance, error)

	// Update 更新積分餘額
	// 前置條件：餘額已存在，且調用者持有事務
	Update(ctx shared.TransactionContext, balance *PointsBalance) error
}

// LedgerRepository 積分帳本倉儲介面
//
// 帳本是 append-only 的：只有 Insert 與查詢，沒有 Update / Delete
type LedgerRepository interface {
	// Insert 寫入一筆帳本記錄
	//
	// 冪等防護：(user_id, order_id) 由儲存層唯一索引保證，
	// 重複寫入必須「大聲失敗」返回 ErrDuplicateAward，
	// 而非靜默忽略——Award Engine 依賴這個信號實現冪等 no-op
	Insert(ctx shared.TransactionContext, entry *LedgerEntry) error

	// FindByUserAndOrder 根據冪等鍵查找帳本記錄
	// 返回：找到的記錄，或 ErrLedgerEntryNotFound
	FindByUserAndOrder(ctx shared.TransactionContext, userID UserID, orderID OrderID) (*LedgerEntry, error)

	// FindByUserID 查找用戶的所有帳本記錄（新到舊）
	FindByUserID(ctx shared.TransactionContext, userID UserID) ([]*LedgerEntry, error)
}

// RewardRepository 獎勵目錄倉儲介面（Catalog Reader）
//
// 核心視角下目錄是只讀的：沒有任何寫入方法。
// 目錄的建立與維護由外部協作者直接操作儲存
type RewardRepository interface {
	// FindByID 根據獎勵 ID 查找獎勵
	// 返回：找到的獎勵（含已下架），或 ErrRewardNotFound
	FindByID(ctx shared.TransactionContext, rewardID RewardID) (*Reward, error)

	// FindActive 查找所有可兌換的獎勵
	// merchantID 為可選的商家範圍過濾：
	// - nil: 返回所有 active 獎勵
	// - non-nil: 返回全平台通用 + 該商家限定的 active 獎勵
	FindActive(ctx shared.TransactionContext, merchantID *MerchantID) ([]*Reward, error)
}

// RedemptionRepository 兌換記錄倉儲介面
type RedemptionRepository interface {
	// Insert 寫入一筆兌換記錄
	// 兌換碼唯一性由儲存層唯一索引兜底（生成端已做查重）
	Insert(ctx shared.TransactionContext, redemption *Redemption) error

	// FindByUserID 查找用戶的所有兌換記錄（新到舊）
	FindByUserID(ctx shared.TransactionContext, userID UserID) ([]*Redemption, error)

	// ExistsByCode 判斷兌換碼是否已存在（生成重試迴圈使用）
	ExistsByCode(ctx shared.TransactionContext, code string) (bool, error)
}

// UserLocationReader 用戶最後位置只讀介面
//
// 用戶目錄由外部協作者維護；核心只在計算距離加成時
// 讀取用戶的最後已知座標
type UserLocationReader interface {
	// FindLastLocation 查找用戶的最後已知座標
	// 位置未知不是錯誤：返回 (nil, nil)，距離加成自然不參與計算
	FindLastLocation(ctx shared.TransactionContext, userID UserID) (*Coordinate, error)
}

// ===========================
// Repository 錯誤定義
// ===========================

// Repository 相關錯誤代碼
const (
	ErrCodeBalanceNotFound       ErrorCode = "BALANCE_NOT_FOUND"
	ErrCodeBalanceAlreadyExists  ErrorCode = "BALANCE_ALREADY_EXISTS"
	ErrCodeDuplicateAward        ErrorCode = "DUPLICATE_AWARD"
	ErrCodeLedgerEntryNotFound   ErrorCode = "LEDGER_ENTRY_NOT_FOUND"
	ErrCodeRewardNotFound        ErrorCode = "REWARD_NOT_FOUND"
	ErrCodeDuplicateRedemptionCode ErrorCode = "REDEMPTION_CODE_DUPLICATE"
)

// Repository 錯誤實例
var (
	// ErrBalanceNotFound 積分餘額不存在
	// 餘額隨用戶帳號一併建立，餘額不存在等價於用戶不存在
	ErrBalanceNotFound = &DomainError{
		Code:    ErrCodeBalanceNotFound,
		Message: "積分餘額不存在",
	}

	// ErrBalanceAlreadyExists 積分餘額已存在
	ErrBalanceAlreadyExists = &DomainError{
		Code:    ErrCodeBalanceAlreadyExists,
		Message: "積分餘額已存在",
	}

	// ErrDuplicateAward 該 (用戶, 訂單) 已入帳過
	// 不是對外錯誤：Award Engine 將其轉換為冪等 no-op 結果
	ErrDuplicateAward = &DomainError{
		Code:    ErrCodeDuplicateAward,
		Message: "該訂單的積分已入帳",
	}

	// ErrLedgerEntryNotFound 帳本記錄不存在
	ErrLedgerEntryNotFound = &DomainError{
		Code:    ErrCodeLedgerEntryNotFound,
		Message: "帳本記錄不存在",
	}

	// ErrRewardNotFound 獎勵不存在或已下架
	ErrRewardNotFound = &DomainError{
		Code:    ErrCodeRewardNotFound,
		Message: "獎勵不存在或已下架",
	}

	// ErrDuplicateRedemptionCode 兌換碼重複（唯一索引兜底）
	ErrDuplicateRedemptionCode = &DomainError{
		Code:    ErrCodeDuplicateRedemptionCode,
		Message: "兌換碼重複",
	}
)
