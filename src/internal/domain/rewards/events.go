package rewards

import (
	"time"

	"github.com/google/uuid"
)

// ===========================
// BalanceOpened 領域事件
// ===========================

// BalanceOpenedEvent 積分餘額開立事件
type BalanceOpenedEvent struct {
	eventID    string
	userID     UserID
	occurredAt time.Time
}

// NewBalanceOpenedEvent 創建餘額開立事件
func NewBalanceOpenedEvent(userID UserID) *BalanceOpenedEvent {
	return &BalanceOpenedEvent{
		eventID:    uuid.New().String(),
		userID:     userID,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *BalanceOpenedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *BalanceOpenedEvent) EventType() string {
	return "rewards.balance_opened"
}

// OccurredAt 實現 DomainEvent 介面
func (e *BalanceOpenedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *BalanceOpenedEvent) AggregateID() string {
	return e.userID.String()
}

// UserID 獲取用戶 ID
func (e *BalanceOpenedEvent) UserID() UserID {
	return e.userID
}

// ===========================
// PointsAwarded 領域事件
// ===========================

// PointsAwardedEvent 訂單積分入帳事件
type PointsAwardedEvent struct {
	eventID    string
	userID     UserID
	orderID    OrderID
	amount     PointsAmount
	tags       []BonusTag
	occurredAt time.Time
}

// NewPointsAwardedEvent 創建積分入帳事件
func NewPointsAwardedEvent(
	userID UserID,
	orderID OrderID,
	amount PointsAmount,
	tags []BonusTag,
) *PointsAwardedEvent {
	return &PointsAwardedEvent{
		eventID:    uuid.New().String(),
		userID:     userID,
		orderID:    orderID,
		amount:     amount,
		tags:       copyTags(tags),
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *PointsAwardedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *PointsAwardedEvent) EventType() string {
	return "rewards.points_awarded"
}

// OccurredAt 實現 DomainEvent 介面
func (e *PointsAwardedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *PointsAwardedEvent) AggregateID() string {
	return e.userID.String()
}

// UserID 獲取用戶 ID
func (e *PointsAwardedEvent) UserID() UserID {
	return e.userID
}

// OrderID 獲取訂單 ID
func (e *PointsAwardedEvent) OrderID() OrderID {
	return e.orderID
}

// Amount 獲取入帳積分
func (e *PointsAwardedEvent) Amount() PointsAmount {
	return e.amount
}

// Tags 獲取加成標籤
func (e *PointsAwardedEvent) Tags() []BonusTag {
	return copyTags(e.tags)
}

// ===========================
// PointsRedeemed 領域事件
// ===========================

// PointsRedeemedEvent 積分兌換扣點事件
type PointsRedeemedEvent struct {
	eventID    string
	userID     UserID
	rewardID   RewardID
	amount     PointsAmount
	occurredAt time.Time
}

// NewPointsRedeemedEvent 創建積分兌換事件
func NewPointsRedeemedEvent(
	userID UserID,
	rewardID RewardID,
	amount PointsAmount,
) *PointsRedeemedEvent {
	return &PointsRedeemedEvent{
		eventID:    uuid.New().String(),
		userID:     userID,
		rewardID:   rewardID,
		amount:     amount,
		occurredAt: time.Now(),
	}
}

// EventID 實現 DomainEvent 介面
func (e *PointsRedeemedEvent) EventID() string {
	return e.eventID
}

// EventType 實現 DomainEvent 介面
func (e *PointsRedeemedEvent) EventType() string {
	return "rewards.points_redeemed"
}

// OccurredAt 實現 DomainEvent 介面
func (e *PointsRedeemedEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// AggregateID 實現 DomainEvent 介面
func (e *PointsRedeemedEvent) AggregateID() string {
	return e.userID.String()
}

// UserID 獲取用戶 ID
func (e *PointsRedeemedEvent) UserID() UserID {
	return e.userID
}

// RewardID 獲取獎勵 ID
func (e *PointsRedeemedEvent) RewardID() RewardID {
	return e.rewardID
}

// Amount 獲取扣減積分
func (e *PointsRedeemedEvent) Amount() PointsAmount {
	return e.amount
}
