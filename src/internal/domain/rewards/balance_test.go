package rewards_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
)

// ===========================
// PointsBalance 聚合根測試
// ===========================

// Test 1: 成功創建積分餘額
func TestNewPointsBalance_ValidUserID_ReturnsBalance(t *testing.T) {
	// Arrange
	userID := rewards.NewUserID()

	// Act
	balance, err := rewards.NewPointsBalance(userID)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, balance)
	assert.True(t, balance.UserID().Equals(userID))
	assert.Equal(t, 0, balance.Balance().Value()) // 初始積分為 0
	assert.False(t, balance.CreatedAt().IsZero())
	assert.False(t, balance.UpdatedAt().IsZero())
}

// Test 2: 空 UserID 創建失敗
func TestNewPointsBalance_EmptyUserID_ReturnsError(t *testing.T) {
	// Arrange
	var emptyID rewards.UserID

	// Act
	balance, err := rewards.NewPointsBalance(emptyID)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, rewards.ErrInvalidUserID)
	assert.Nil(t, balance)
}

// Test 3: 創建時發布 BalanceOpened 事件
func TestNewPointsBalance_PublishesBalanceOpenedEvent(t *testing.T) {
	// Arrange
	userID := rewards.NewUserID()

	// Act
	balance, err := rewards.NewPointsBalance(userID)

	// Assert
	require.NoError(t, err)
	events := balance.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "rewards.balance_opened", events[0].EventType())
	assert.Equal(t, userID.String(), events[0].AggregateID())
}

// Test 4: PullEvents 清空待發布列表（只讀取一次）
func TestPointsBalance_PullEvents_ClearsEvents(t *testing.T) {
	// Arrange
	userID := rewards.NewUserID()
	balance, _ := rewards.NewPointsBalance(userID)

	// Act
	first := balance.PullEvents()
	second := balance.PullEvents()

	// Assert
	assert.Len(t, first, 1)
	assert.Empty(t, second)
}

// ===========================
// Credit 測試
// ===========================

// Test 5: 入帳累加餘額並發布 PointsAwarded 事件
func TestPointsBalance_Credit_IncreasesBalance(t *testing.T) {
	// Arrange
	userID := rewards.NewUserID()
	orderID := rewards.NewOrderID()
	balance, _ := rewards.NewPointsBalance(userID)
	balance.PullEvents() // 清掉開立事件
	amount, _ := rewards.NewPointsAmount(25)
	tags := []rewards.BonusTag{rewards.BonusTagSustainable, rewards.BonusTagEcoDistance}

	// Act
	balance.Credit(amount, orderID, tags)

	// Assert
	assert.Equal(t, 25, balance.Balance().Value())

	events := balance.PullEvents()
	require.Len(t, events, 1)
	awarded, ok := events[0].(*rewards.PointsAwardedEvent)
	require.True(t, ok)
	assert.Equal(t, "rewards.points_awarded", awarded.EventType())
	assert.True(t, awarded.OrderID().Equals(orderID))
	assert.Equal(t, 25, awarded.Amount().Value())
	assert.Equal(t, tags, awarded.Tags())
}

// Test 6: 多次入帳持續累加
func TestPointsBalance_Credit_Accumulates(t *testing.T) {
	// Arrange
	userID := rewards.NewUserID()
	balance, _ := rewards.NewPointsBalance(userID)
	amount10, _ := rewards.NewPointsAmount(10)
	amount15, _ := rewards.NewPointsAmount(15)

	// Act
	balance.Credit(amount10, rewards.NewOrderID(), nil)
	balance.Credit(amount15, rewards.NewOrderID(), nil)

	// Assert
	assert.Equal(t, 25, balance.Balance().Value())
}

// Test 7: 零分入帳合法
func TestPointsBalance_Credit_ZeroAmount_Accepted(t *testing.T) {
	// Arrange
	userID := rewards.NewUserID()
	balance, _ := rewards.NewPointsBalance(userID)
	zero, _ := rewards.NewPointsAmount(0)

	// Act
	balance.Credit(zero, rewards.NewOrderID(), nil)

	// Assert
	assert.Equal(t, 0, balance.Balance().Value())
}

// ===========================
// Debit 測試
// ===========================

// Test 8: 扣點成功並發布 PointsRedeemed 事件
func TestPointsBalance_Debit_DecreasesBalance(t *testing.T) {
	// Arrange
	userID := rewards.NewUserID()
	rewardID := rewards.NewRewardID()
	balance, _ := rewards.NewPointsBalance(userID)
	credit, _ := rewards.NewPointsAmount(100)
	balance.Credit(credit, rewards.NewOrderID(), nil)
	balance.PullEvents()
	cost, _ := rewards.NewPointsAmount(80)

	// Act
	err := balance.Debit(cost, rewardID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 20, balance.Balance().Value())

	events := balance.PullEvents()
	require.Len(t, events, 1)
	redeemed, ok := events[0].(*rewards.PointsRedeemedEvent)
	require.True(t, ok)
	assert.Equal(t, "rewards.points_redeemed", redeemed.EventType())
	assert.True(t, redeemed.RewardID().Equals(rewardID))
	assert.Equal(t, 80, redeemed.Amount().Value())
}

// Test 9: 餘額不足扣點失敗，狀態不變、無事件（不變條件 balance >= 0）
func TestPointsBalance_Debit_InsufficientBalance_ReturnsError(t *testing.T) {
	// Arrange
	userID := rewards.NewUserID()
	balance, _ := rewards.NewPointsBalance(userID)
	credit, _ := rewards.NewPointsAmount(50)
	balance.Credit(credit, rewards.NewOrderID(), nil)
	balance.PullEvents()
	cost, _ := rewards.NewPointsAmount(100)

	// Act
	err := balance.Debit(cost, rewards.NewRewardID())

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, rewards.ErrInsufficientPoints)
	assert.Equal(t, 50, balance.Balance().Value()) // 餘額不變
	assert.Empty(t, balance.PullEvents())          // 無事件
}

// Test 10: 扣到恰好歸零合法
func TestPointsBalance_Debit_ExactBalance_ReturnsZero(t *testing.T) {
	// Arrange
	userID := rewards.NewUserID()
	balance, _ := rewards.NewPointsBalance(userID)
	credit, _ := rewards.NewPointsAmount(80)
	balance.Credit(credit, rewards.NewOrderID(), nil)
	cost, _ := rewards.NewPointsAmount(80)

	// Act
	err := balance.Debit(cost, rewards.NewRewardID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Balance().Value())
}

// ===========================
// Reconstruct 測試
// ===========================

// Test 11: 從持久化存儲重建聚合（不發布事件）
func TestReconstructPointsBalance_ValidData_ReturnsBalance(t *testing.T) {
	// Arrange
	userID := rewards.NewUserID()
	createdAt := time.Now().Add(-24 * time.Hour)
	updatedAt := time.Now()

	// Act
	balance, err := rewards.ReconstructPointsBalance(userID, 120, createdAt, updatedAt)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 120, balance.Balance().Value())
	assert.Equal(t, createdAt, balance.CreatedAt())
	assert.Equal(t, updatedAt, balance.UpdatedAt())
	assert.Empty(t, balance.PullEvents()) // 重建不發布事件
}

// Test 12: 重建時驗證不變條件——負數餘額視為損壞資料
func TestReconstructPointsBalance_NegativeBalance_ReturnsError(t *testing.T) {
	// Arrange
	userID := rewards.NewUserID()

	// Act
	balance, err := rewards.ReconstructPointsBalance(userID, -5, time.Now(), time.Now())

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, rewards.ErrNegativePointsAmount)
	assert.Nil(t, balance)
}

// Test 13: 重建時空 UserID 視為損壞資料
func TestReconstructPointsBalance_EmptyUserID_ReturnsError(t *testing.T) {
	// Arrange
	var emptyID rewards.UserID

	// Act
	balance, err := rewards.ReconstructPointsBalance(emptyID, 0, time.Now(), time.Now())

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, rewards.ErrInvalidUserID)
	assert.Nil(t, balance)
}
