package rewards

import (
	"time"

	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
)

// ===========================
// PointsBalance 聚合根
// ===========================

// PointsBalance 積分餘額聚合根
//
// 設計原則：
// 1. 輕量級聚合：不包含無界集合（帳本記錄與兌換記錄儲存在獨立表）
// 2. 不變條件：balance >= 0（必須在每個修改方法末尾成立）
// 3. 事件驅動：所有狀態變更都發布領域事件
// 4. Tell, Don't Ask：封裝業務邏輯，不暴露內部狀態供外部判斷
//
// 並發模型：
// - 聚合本身不持鎖；同一用戶的並發寫入由儲存層的列級鎖線性化
//   （Repository.FindByUserIDForUpdate + 事務）
// - 禁止在進程內快取餘額跨請求共享（快取會繞過儲存層的鎖）
//
// 業務不變條件：
// - Balance >= 0（扣點前必須先檢查餘額）
// - 只有訂單入帳（Credit）與兌換扣點（Debit）兩條寫入路徑
type PointsBalance struct {
	// 聚合根識別符
	// 餘額與用戶 1:1，直接以 UserID 作為聚合識別符
	userID UserID

	// 當前可用積分
	balance PointsAmount

	// 審計字段
	createdAt time.Time
	updatedAt time.Time

	// 待發布的領域事件
	events []shared.DomainEvent
}

// NewPointsBalance 創建新的積分餘額（隨用戶帳號一併建立，初始為 0）
//
// 業務規則：
// - 新餘額初始積分為 0
// - 每個用戶只有一個餘額（由儲存層唯一約束保證）
// - 發布 BalanceOpened 事件
func NewPointsBalance(userID UserID) (*PointsBalance, error) {
	if userID.IsEmpty() {
		return nil, ErrInvalidUserID.WithContext(
			"reason", "userID cannot be empty",
		)
	}

	now := time.Now()

	balance := &PointsBalance{
		userID:    userID,
		balance:   newPointsAmountUnchecked(0), // 0 保證有效，使用 unchecked
		createdAt: now,
		updatedAt: now,
		events:    make([]shared.DomainEvent, 0),
	}

	balance.addEvent(NewBalanceOpenedEvent(userID))

	return balance, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// UserID 獲取用戶 ID
func (b *PointsBalance) UserID() UserID {
	return b.userID
}

// Balance 獲取當前可用積分
func (b *PointsBalance) Balance() PointsAmount {
	return b.balance
}

// CreatedAt 獲取創建時間
func (b *PointsBalance) CreatedAt() time.Time {
	return b.createdAt
}

// UpdatedAt 獲取最後更新時間
func (b *PointsBalance) UpdatedAt() time.Time {
	return b.updatedAt
}

// ===========================
// 事件管理
// ===========================

// addEvent 添加領域事件到待發布列表（私有方法）
func (b *PointsBalance) addEvent(event shared.DomainEvent) {
	b.events = append(b.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
//
// 使用場景：
// - Repository.Update() 成功後，調用此方法獲取事件並發布
// - 只讀取一次：獲取後清空，避免重複發布
func (b *PointsBalance) PullEvents() []shared.DomainEvent {
	events := b.events
	b.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// Credit 入帳積分（Award Engine 的唯一寫入路徑）
//
// 參數：
//   amount - 入帳的積分數量（PointsAmount 已保證 >= 0）
//   orderID - 觸發入帳的訂單（審計用途）
//   tags - 本次獎勵的加成標籤
//
// 業務邏輯：
// - 零積分也接受（理論上存在無基礎分的修正入帳）
// - 冪等保證不在此方法：由帳本的 (user, order) 唯一鍵在儲存層強制
//
// 副作用：
// - 更新 balance（累加）
// - 更新 updatedAt
// - 發布 PointsAwardedEvent
func (b *PointsBalance) Credit(amount PointsAmount, orderID OrderID, tags []BonusTag) {
	b.balance = b.balance.Add(amount)
	b.updatedAt = time.Now()

	b.addEvent(NewPointsAwardedEvent(b.userID, orderID, amount, tags))
}

// Debit 扣減積分（Redemption Engine 的唯一寫入路徑）
//
// 參數：
//   amount - 扣減的積分數量（PointsAmount 已保證 >= 0）
//   rewardID - 兌換的獎勵（審計用途）
//
// 返回：
//   error - 餘額不足時返回 ErrInsufficientPoints，狀態不變
//
// 業務規則：
// - 先檢查可用餘額（前置條件），不足則拒絕且無任何副作用
// - 檢查與扣減必須在同一個持有列鎖的事務內執行，
//   否則兩個並發兌換可能同時通過檢查（調用者職責）
//
// 不變條件維護：
// - 前置條件檢查確保扣減後 balance >= 0
func (b *PointsBalance) Debit(amount PointsAmount, rewardID RewardID) error {
	newBalance, err := b.balance.Subtract(amount)
	if err != nil {
		return ErrInsufficientPoints.WithContext(
			"requested", amount.Value(),
			"available", b.balance.Value(),
			"reward_id", rewardID.String(),
		)
	}

	b.balance = newBalance
	b.updatedAt = time.Now()

	b.addEvent(NewPointsRedeemedEvent(b.userID, rewardID, amount))

	return nil
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructPointsBalance 從持久化存儲重建聚合根
//
// 與 NewPointsBalance 的區別：
// - New: 創建新聚合，發布 BalanceOpened 事件
// - Reconstruct: 重建已存在的聚合，不發布事件（事件已發生過）
//
// 重要：即使是從資料庫重建，也必須驗證不變條件，
// 防止損壞資料污染領域層
func ReconstructPointsBalance(
	userID UserID,
	balance int,
	createdAt time.Time,
	updatedAt time.Time,
) (*PointsBalance, error) {
	if userID.IsEmpty() {
		return nil, ErrInvalidUserID.WithContext(
			"reason", "invalid user ID in database",
		)
	}

	amount, err := NewPointsAmount(balance)
	if err != nil {
		return nil, ErrNegativePointsAmount.WithContext(
			"value", balance,
			"reason", "corrupted balance in database",
		)
	}

	return &PointsBalance{
		userID:    userID,
		balance:   amount,
		createdAt: createdAt,
		updatedAt: updatedAt,
		events:    make([]shared.DomainEvent, 0), // 重建時不包含事件
	}, nil
}
