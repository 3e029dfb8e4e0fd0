package rewards

import (
	"sync"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
)

// ===========================
// Mock TransactionManager
// ===========================

// MockTransactionManager 以進程內互斥鎖模擬儲存層的列鎖語義：
// 事務彼此串行化，「讀取 → 檢查 → 變更」不會交錯。
// 並發測試（恰好一成一敗）依賴這個線性化保證
type MockTransactionManager struct {
	mu                     sync.Mutex
	InTransactionCallCount int
	ShouldFail             bool
	FailError              error
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InTransactionCallCount++

	if m.ShouldFail {
		return m.FailError
	}

	// nil context 對 mock 來說足夠（倉儲 mock 不使用 ctx）
	return fn(nil)
}

// ===========================
// Mock PointsBalanceRepository
// ===========================

type MockPointsBalanceRepository struct {
	balances map[string]*rewards.PointsBalance

	SaveCallCount          int
	FindForUpdateCallCount int
	UpdateCallCount        int
}

func NewMockPointsBalanceRepository() *MockPointsBalanceRepository {
	return &MockPointsBalanceRepository{
		balances: make(map[string]*rewards.PointsBalance),
	}
}

func (m *MockPointsBalanceRepository) Save(ctx shared.TransactionContext, balance *rewards.PointsBalance) error {
	m.SaveCallCount++ // 無論成功或失敗，都計數

	if _, exists := m.balances[balance.UserID().String()]; exists {
		return rewards.ErrBalanceAlreadyExists
	}

	m.balances[balance.UserID().String()] = balance
	return nil
}

func (m *MockPointsBalanceRepository) FindByUserID(ctx shared.TransactionContext, userID rewards.UserID) (*rewards.PointsBalance, error) {
	if balance, exists := m.balances[userID.String()]; exists {
		return balance, nil
	}
	return nil, rewards.ErrBalanceNotFound
}

func (m *MockPointsBalanceRepository) FindByUserIDForUpdate(ctx shared.TransactionContext, userID rewards.UserID) (*rewards.PointsBalance, error) {
	m.FindForUpdateCallCount++

	// mock 不持真正的列鎖：線性化由 MockTransactionManager 的互斥鎖提供
	return m.FindByUserID(ctx, userID)
}

func (m *MockPointsBalanceRepository) Update(ctx shared.TransactionContext, balance *rewards.PointsBalance) error {
	m.UpdateCallCount++
	m.balances[balance.UserID().String()] = balance
	return nil
}

// ===========================
// Mock LedgerRepository
// ===========================

type MockLedgerRepository struct {
	// 以 "userID|orderID" 為鍵，模擬儲存層的複合唯一索引
	entries map[string]*rewards.LedgerEntry

	InsertCallCount int
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{
		entries: make(map[string]*rewards.LedgerEntry),
	}
}

func ledgerKey(userID rewards.UserID, orderID rewards.OrderID) string {
	return userID.String() + "|" + orderID.String()
}

func (m *MockLedgerRepository) Insert(ctx shared.TransactionContext, entry *rewards.LedgerEntry) error {
	m.InsertCallCount++

	key := ledgerKey(entry.UserID(), entry.OrderID())
	if _, exists := m.entries[key]; exists {
		return rewards.ErrDuplicateAward
	}

	m.entries[key] = entry
	return nil
}

func (m *MockLedgerRepository) FindByUserAndOrder(ctx shared.TransactionContext, userID rewards.UserID, orderID rewards.OrderID) (*rewards.LedgerEntry, error) {
	if entry, exists := m.entries[ledgerKey(userID, orderID)]; exists {
		return entry, nil
	}
	return nil, rewards.ErrLedgerEntryNotFound
}

func (m *MockLedgerRepository) FindByUserID(ctx shared.TransactionContext, userID rewards.UserID) ([]*rewards.LedgerEntry, error) {
	var entries []*rewards.LedgerEntry
	for _, entry := range m.entries {
		if entry.UserID().Equals(userID) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// ===========================
// Mock UserLocationReader
// ===========================

type MockUserLocationReader struct {
	locations map[string]rewards.Coordinate
}

func NewMockUserLocationReader() *MockUserLocationReader {
	return &MockUserLocationReader{
		locations: make(map[string]rewards.Coordinate),
	}
}

func (m *MockUserLocationReader) SetLocation(userID rewards.UserID, coord rewards.Coordinate) {
	m.locations[userID.String()] = coord
}

func (m *MockUserLocationReader) FindLastLocation(ctx shared.TransactionContext, userID rewards.UserID) (*rewards.Coordinate, error) {
	if coord, exists := m.locations[userID.String()]; exists {
		return &coord, nil
	}
	return nil, nil // 位置未知不是錯誤
}

// ===========================
// Mock RewardRepository
// ===========================

type MockRewardRepository struct {
	rewards map[string]*rewards.Reward

	FindByIDCallCount int
}

func NewMockRewardRepository() *MockRewardRepository {
	return &MockRewardRepository{
		rewards: make(map[string]*rewards.Reward),
	}
}

func (m *MockRewardRepository) Add(reward *rewards.Reward) {
	m.rewards[reward.RewardID().String()] = reward
}

func (m *MockRewardRepository) FindByID(ctx shared.TransactionContext, rewardID rewards.RewardID) (*rewards.Reward, error) {
	m.FindByIDCallCount++

	if reward, exists := m.rewards[rewardID.String()]; exists {
		return reward, nil
	}
	return nil, rewards.ErrRewardNotFound
}

func (m *MockRewardRepository) FindActive(ctx shared.TransactionContext, merchantID *rewards.MerchantID) ([]*rewards.Reward, error) {
	var active []*rewards.Reward
	for _, reward := range m.rewards {
		if !reward.IsActive() {
			continue
		}
		if merchantID != nil && reward.MerchantID() != nil && !reward.MerchantID().Equals(*merchantID) {
			continue
		}
		active = append(active, reward)
	}
	return active, nil
}

// ===========================
// Mock RedemptionRepository
// ===========================

type MockRedemptionRepository struct {
	redemptions []*rewards.Redemption
	codes       map[string]bool

	InsertCallCount       int
	ExistsByCodeCallCount int
}

func NewMockRedemptionRepository() *MockRedemptionRepository {
	return &MockRedemptionRepository{
		codes: make(map[string]bool),
	}
}

func (m *MockRedemptionRepository) Insert(ctx shared.TransactionContext, redemption *rewards.Redemption) error {
	m.InsertCallCount++

	if m.codes[redemption.Code()] {
		return rewards.ErrDuplicateRedemptionCode
	}

	m.codes[redemption.Code()] = true
	m.redemptions = append(m.redemptions, redemption)
	return nil
}

func (m *MockRedemptionRepository) FindByUserID(ctx shared.TransactionContext, userID rewards.UserID) ([]*rewards.Redemption, error) {
	// 新到舊：倒序遍歷 append-only 切片
	var result []*rewards.Redemption
	for i := len(m.redemptions) - 1; i >= 0; i-- {
		if m.redemptions[i].UserID().Equals(userID) {
			result = append(result, m.redemptions[i])
		}
	}
	return result, nil
}

func (m *MockRedemptionRepository) ExistsByCode(ctx shared.TransactionContext, code string) (bool, error) {
	m.ExistsByCodeCallCount++
	return m.codes[code], nil
}

// MarkCodeTaken 預先佔用一組兌換碼（測試生成重試迴圈用）
func (m *MockRedemptionRepository) MarkCodeTaken(code string) {
	m.codes[code] = true
}
