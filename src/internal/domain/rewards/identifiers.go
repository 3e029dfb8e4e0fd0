package rewards

import (
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
)

// ===========================
// 實體 ID 類型定義
// ===========================

// 設計原則：使用泛型 EntityID[T] 消除重複代碼
//
// 類型安全保證：
// - UserID、OrderID、RewardID 等是不同類型（編譯器強制檢查）
// - 不能將 UserID 賦值給 OrderID 變量
// - 防止 award(orderID, userID) 參數順序寫反之類的錯誤

// UserMarker 是 UserID 的標記類型
type UserMarker struct{}

// UserID 用戶的唯一標識符
// 注意：用戶目錄由外部協作者維護，核心只持有其 ID
type UserID = shared.EntityID[UserMarker]

// NewUserID 生成新的用戶 ID（UUID v4）
func NewUserID() UserID {
	return shared.NewEntityID[UserMarker]()
}

// UserIDFromString 從字串解析用戶 ID
func UserIDFromString(s string) (UserID, error) {
	return shared.EntityIDFromString[UserMarker](s, ErrInvalidUserID)
}

// OrderMarker 是 OrderID 的標記類型
type OrderMarker struct{}

// OrderID 訂單的唯一標識符
// 訂單生命週期由外部協作者管理，核心只將其作為冪等鍵的一部分
type OrderID = shared.EntityID[OrderMarker]

// NewOrderID 生成新的訂單 ID（UUID v4）
func NewOrderID() OrderID {
	return shared.NewEntityID[OrderMarker]()
}

// OrderIDFromString 從字串解析訂單 ID
func OrderIDFromString(s string) (OrderID, error) {
	return shared.EntityIDFromString[OrderMarker](s, ErrInvalidOrderID)
}

// MerchantMarker 是 MerchantID 的標記類型
type MerchantMarker struct{}

// MerchantID 商家的唯一標識符
type MerchantID = shared.EntityID[MerchantMarker]

// NewMerchantID 生成新的商家 ID（UUID v4）
func NewMerchantID() MerchantID {
	return shared.NewEntityID[MerchantMarker]()
}

// MerchantIDFromString 從字串解析商家 ID
func MerchantIDFromString(s string) (MerchantID, error) {
	return shared.EntityIDFromString[MerchantMarker](s, ErrInvalidMerchantID)
}

// RewardMarker 是 RewardID 的標記類型
type RewardMarker struct{}

// RewardID 獎勵目錄項目的唯一標識符
type RewardID = shared.EntityID[RewardMarker]

// NewRewardID 生成新的獎勵 ID（UUID v4）
func NewRewardID() RewardID {
	return shared.NewEntityID[RewardMarker]()
}

// RewardIDFromString 從字串解析獎勵 ID
func RewardIDFromString(s string) (RewardID, error) {
	return shared.EntityIDFromString[RewardMarker](s, ErrInvalidRewardID)
}

// RedemptionMarker 是 RedemptionID 的標記類型
type RedemptionMarker struct{}

// RedemptionID 兌換記錄的唯一標識符
type RedemptionID = shared.EntityID[RedemptionMarker]

// NewRedemptionID 生成新的兌換記錄 ID（UUID v4）
func NewRedemptionID() RedemptionID {
	return shared.NewEntityID[RedemptionMarker]()
}

// RedemptionIDFromString 從字串解析兌換記錄 ID
func RedemptionIDFromString(s string) (RedemptionID, error) {
	return shared.EntityIDFromString[RedemptionMarker](s, ErrInvalidRedemptionID)
}

// EntryMarker 是 EntryID 的標記類型
type EntryMarker struct{}

// EntryID 帳本記錄的唯一標識符
type EntryID = shared.EntityID[EntryMarker]

// NewEntryID 生成新的帳本記錄 ID（UUID v4）
func NewEntryID() EntryID {
	return shared.NewEntityID[EntryMarker]()
}

// EntryIDFromString 從字串解析帳本記錄 ID
func EntryIDFromString(s string) (EntryID, error) {
	return shared.EntityIDFromString[EntryMarker](s, ErrInvalidEntryID)
}
