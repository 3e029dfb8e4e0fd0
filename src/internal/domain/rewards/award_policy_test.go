package rewards_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
)

// ===========================
// AwardPolicy 測試
// ===========================

// Test 1: 無任何加成——標準訂單 10 分、無標籤
func TestAwardPolicy_Calculate_StandardOrder_ReturnsBasePoints(t *testing.T) {
	// Arrange
	policy := rewards.NewAwardPolicy()
	input := rewards.AwardInput{
		MerchantSustainable: false,
	}

	// Act
	points, tags := policy.Calculate(input)

	// Assert
	assert.Equal(t, 10, points.Value())
	assert.Empty(t, tags)
}

// Test 2: 永續商家加成 10 + 10 = 20
func TestAwardPolicy_Calculate_SustainableMerchant_AddsBonus(t *testing.T) {
	// Arrange
	policy := rewards.NewAwardPolicy()
	input := rewards.AwardInput{
		MerchantSustainable: true,
	}

	// Act
	points, tags := policy.Calculate(input)

	// Assert
	assert.Equal(t, 20, points.Value())
	assert.Equal(t, []rewards.BonusTag{rewards.BonusTagSustainable}, tags)
}

// Test 3: 鄰近距離加成 10 + 5 = 15（門檻內）
func TestAwardPolicy_Calculate_WithinDistanceThreshold_AddsBonus(t *testing.T) {
	// Arrange
	policy := rewards.NewAwardPolicy()
	userLoc, _ := rewards.NewCoordinate(9.9281, -84.0907)
	merchantLoc := coordinateAtDistance(t, userLoc, 3000)
	input := rewards.AwardInput{
		MerchantSustainable: false,
		UserLocation:        &userLoc,
		MerchantLocation:    &merchantLoc,
	}

	// Act
	points, tags := policy.Calculate(input)

	// Assert
	assert.Equal(t, 15, points.Value())
	assert.Equal(t, []rewards.BonusTag{rewards.BonusTagEcoDistance}, tags)
}

// Test 4: 兩種加成疊加 10 + 10 + 5 = 25，標籤按授予順序
func TestAwardPolicy_Calculate_AllBonuses_ReturnsMaxPoints(t *testing.T) {
	// Arrange
	policy := rewards.NewAwardPolicy()
	userLoc, _ := rewards.NewCoordinate(9.9281, -84.0907)
	merchantLoc := coordinateAtDistance(t, userLoc, 1200)
	input := rewards.AwardInput{
		MerchantSustainable: true,
		UserLocation:        &userLoc,
		MerchantLocation:    &merchantLoc,
	}

	// Act
	points, tags := policy.Calculate(input)

	// Assert
	assert.Equal(t, 25, points.Value())
	assert.Equal(t, []rewards.BonusTag{
		rewards.BonusTagSustainable,
		rewards.BonusTagEcoDistance,
	}, tags)
}

// Test 5: 距離門檻是嚴格小於——4999.99 公尺符合、5000.01 公尺不符合
func TestAwardPolicy_Calculate_DistanceThreshold_IsStrict(t *testing.T) {
	// Arrange
	policy := rewards.NewAwardPolicy()
	userLoc, _ := rewards.NewCoordinate(9.9281, -84.0907)
	justInside := coordinateAtDistance(t, userLoc, 4999.99)
	justOutside := coordinateAtDistance(t, userLoc, 5000.01)

	// Act
	insidePoints, insideTags := policy.Calculate(rewards.AwardInput{
		UserLocation:     &userLoc,
		MerchantLocation: &justInside,
	})
	outsidePoints, outsideTags := policy.Calculate(rewards.AwardInput{
		UserLocation:     &userLoc,
		MerchantLocation: &justOutside,
	})

	// Assert
	assert.Equal(t, 15, insidePoints.Value())
	assert.Equal(t, []rewards.BonusTag{rewards.BonusTagEcoDistance}, insideTags)

	assert.Equal(t, 10, outsidePoints.Value())
	assert.Empty(t, outsideTags)
}

// Test 6: 用戶位置缺失——距離加成不參與計算
func TestAwardPolicy_Calculate_MissingUserLocation_NoDistanceBonus(t *testing.T) {
	// Arrange
	policy := rewards.NewAwardPolicy()
	merchantLoc, _ := rewards.NewCoordinate(9.9281, -84.0907)
	input := rewards.AwardInput{
		MerchantSustainable: true,
		UserLocation:        nil,
		MerchantLocation:    &merchantLoc,
	}

	// Act
	points, tags := policy.Calculate(input)

	// Assert
	assert.Equal(t, 20, points.Value())
	assert.Equal(t, []rewards.BonusTag{rewards.BonusTagSustainable}, tags)
}

// Test 7: 商家位置缺失——距離加成不參與計算
func TestAwardPolicy_Calculate_MissingMerchantLocation_NoDistanceBonus(t *testing.T) {
	// Arrange
	policy := rewards.NewAwardPolicy()
	userLoc, _ := rewards.NewCoordinate(9.9281, -84.0907)
	input := rewards.AwardInput{
		UserLocation:     &userLoc,
		MerchantLocation: nil,
	}

	// Act
	points, tags := policy.Calculate(input)

	// Assert
	assert.Equal(t, 10, points.Value())
	assert.Empty(t, tags)
}

// Test 8: 同一輸入重複計算結果相同（純函數、無狀態）
func TestAwardPolicy_Calculate_Deterministic(t *testing.T) {
	// Arrange
	policy := rewards.NewAwardPolicy()
	userLoc, _ := rewards.NewCoordinate(9.9281, -84.0907)
	merchantLoc := coordinateAtDistance(t, userLoc, 2500)
	input := rewards.AwardInput{
		MerchantSustainable: true,
		UserLocation:        &userLoc,
		MerchantLocation:    &merchantLoc,
	}

	// Act
	points1, tags1 := policy.Calculate(input)
	points2, tags2 := policy.Calculate(input)

	// Assert
	assert.Equal(t, points1.Value(), points2.Value())
	assert.Equal(t, tags1, tags2)
}
