package rewards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainrewards "github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
)

// ===========================
// RedemptionRepository 整合測試
// ===========================

// Test 1: 寫入並查回兌換記錄
func TestRedemptionRepository_InsertAndFind_RoundTrip(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRedemptionRepository(db)

	userID := domainrewards.NewUserID()
	redemption, err := domainrewards.NewRedemption(userID, domainrewards.NewRewardID(), "K3R9ZD")
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.Insert(nil, redemption))
	found, err := repo.FindByUserID(nil, userID)

	// Assert
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].RedemptionID().Equals(redemption.RedemptionID()))
	assert.Equal(t, "K3R9ZD", found[0].Code())
	assert.False(t, found[0].IsUsed())
}

// Test 2: 兌換碼唯一索引兜底——重複碼返回 ErrDuplicateRedemptionCode
func TestRedemptionRepository_Insert_DuplicateCode_ReturnsError(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRedemptionRepository(db)

	first, _ := domainrewards.NewRedemption(domainrewards.NewUserID(), domainrewards.NewRewardID(), "SAME66")
	second, _ := domainrewards.NewRedemption(domainrewards.NewUserID(), domainrewards.NewRewardID(), "SAME66")
	require.NoError(t, repo.Insert(nil, first))

	// Act
	err := repo.Insert(nil, second)

	// Assert
	assert.Error(t, err)
	assert.ErrorIs(t, err, domainrewards.ErrDuplicateRedemptionCode)
}

// Test 3: ExistsByCode 查重
func TestRedemptionRepository_ExistsByCode(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRedemptionRepository(db)

	redemption, _ := domainrewards.NewRedemption(domainrewards.NewUserID(), domainrewards.NewRewardID(), "TAKEN1")
	require.NoError(t, repo.Insert(nil, redemption))

	// Act
	taken, err1 := repo.ExistsByCode(nil, "TAKEN1")
	free, err2 := repo.ExistsByCode(nil, "FREE22")

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, taken)
	assert.False(t, free)
}

// Test 4: FindByUserID 返回新到舊、不含其他用戶
func TestRedemptionRepository_FindByUserID_NewestFirstOwnOnly(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRedemptionRepository(db)

	userID := domainrewards.NewUserID()
	rewardID := domainrewards.NewRewardID()

	// 以明確的 createdAt 重建記錄，避免時間戳同刻
	older, err := domainrewards.ReconstructRedemption(
		domainrewards.NewRedemptionID(), userID, rewardID, "AAAAAA", true,
		time.Now().Add(-2*time.Hour),
	)
	require.NoError(t, err)
	newer, err := domainrewards.ReconstructRedemption(
		domainrewards.NewRedemptionID(), userID, rewardID, "BBBBBB", false,
		time.Now().Add(-time.Hour),
	)
	require.NoError(t, err)
	foreign, err := domainrewards.NewRedemption(domainrewards.NewUserID(), rewardID, "CCCCCC")
	require.NoError(t, err)

	require.NoError(t, repo.Insert(nil, older))
	require.NoError(t, repo.Insert(nil, newer))
	require.NoError(t, repo.Insert(nil, foreign))

	// Act
	found, err := repo.FindByUserID(nil, userID)

	// Assert
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "BBBBBB", found[0].Code())
	assert.Equal(t, "AAAAAA", found[1].Code())
}

// Test 5: 沒有記錄的用戶返回空切片
func TestRedemptionRepository_FindByUserID_Empty_ReturnsEmptySlice(t *testing.T) {
	// Arrange
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRedemptionRepository(db)

	// Act
	found, err := repo.FindByUserID(nil, domainrewards.NewUserID())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, found)
}
