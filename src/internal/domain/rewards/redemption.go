package rewards

import (
	"crypto/rand"
	"fmt"
	"time"
)

// ===========================
// Redemption 兌換記錄
// ===========================

// Redemption 兌換記錄實體
//
// 生命週期：
// 1. Redemption Engine 在扣點事務中創建（used = false）
// 2. 外部的履約協作者在兌換碼實際被使用時翻轉 used 旗標
//    （MarkUsed 是核心暴露給履約方的唯一變更）
type Redemption struct {
	redemptionID RedemptionID
	userID       UserID
	rewardID     RewardID
	code         string
	used         bool
	createdAt    time.Time
}

// NewRedemption 創建新的兌換記錄
func NewRedemption(
	userID UserID,
	rewardID RewardID,
	code string,
) (*Redemption, error) {
	if userID.IsEmpty() {
		return nil, ErrInvalidUserID.WithContext(
			"reason", "userID cannot be empty",
		)
	}
	if rewardID.IsEmpty() {
		return nil, ErrInvalidRewardID.WithContext(
			"reason", "rewardID cannot be empty",
		)
	}

	return &Redemption{
		redemptionID: NewRedemptionID(),
		userID:       userID,
		rewardID:     rewardID,
		code:         code,
		used:         false,
		createdAt:    time.Now(),
	}, nil
}

// RedemptionID 獲取兌換記錄 ID
func (r *Redemption) RedemptionID() RedemptionID {
	return r.redemptionID
}

// UserID 獲取用戶 ID
func (r *Redemption) UserID() UserID {
	return r.userID
}

// RewardID 獲取獎勵 ID
func (r *Redemption) RewardID() RewardID {
	return r.rewardID
}

// Code 獲取兌換碼
func (r *Redemption) Code() string {
	return r.code
}

// IsUsed 判斷兌換碼是否已被使用
func (r *Redemption) IsUsed() bool {
	return r.used
}

// MarkUsed 標記兌換碼已被使用（由外部履約協作者觸發）
func (r *Redemption) MarkUsed() {
	r.used = true
}

// CreatedAt 獲取創建時間
func (r *Redemption) CreatedAt() time.Time {
	return r.createdAt
}

// ReconstructRedemption 從持久化存儲重建兌換記錄
func ReconstructRedemption(
	redemptionID RedemptionID,
	userID UserID,
	rewardID RewardID,
	code string,
	used bool,
	createdAt time.Time,
) (*Redemption, error) {
	if redemptionID.IsEmpty() {
		return nil, ErrInvalidRedemptionID.WithContext(
			"reason", "invalid redemption ID in database",
		)
	}
	if userID.IsEmpty() {
		return nil, ErrInvalidUserID.WithContext(
			"reason", "invalid user ID in database",
		)
	}
	if rewardID.IsEmpty() {
		return nil, ErrInvalidRewardID.WithContext(
			"reason", "invalid reward ID in database",
		)
	}

	return &Redemption{
		redemptionID: redemptionID,
		userID:       userID,
		rewardID:     rewardID,
		code:         code,
		used:         used,
		createdAt:    createdAt,
	}, nil
}

// ===========================
// RedemptionCodeGenerator 兌換碼生成
// ===========================

// RedemptionCodeLength 兌換碼長度
// 6 位 base-36 共 36^6 ≈ 21.7 億組合，短到可以人工輸入，
// 搭配儲存層唯一檢查 + 重試迴圈足以保證活躍集合內不碰撞
const RedemptionCodeLength = 6

// redemptionCodeAlphabet base-36 大寫字母表
const redemptionCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RedemptionCodeGenerator 兌換碼生成領域服務
//
// 設計決策：
// 使用 crypto/rand 而非 math/rand——兌換碼等同小額代金券，
// 可預測的來源會讓攻擊者枚舉有效碼。唯一性不靠隨機性單獨保證，
// 由 Use Case 層的儲存查重 + 重試迴圈兜底
type RedemptionCodeGenerator struct{}

// NewRedemptionCodeGenerator 建構函數
func NewRedemptionCodeGenerator() *RedemptionCodeGenerator {
	return &RedemptionCodeGenerator{}
}

// Generate 生成一組 6 位 base-36 大寫兌換碼
//
// 返回：
//   string - 兌換碼（如 "K3R9ZD"）
//   error - 系統熵源讀取失敗（極罕見，視為儲存層等級的故障）
func (g *RedemptionCodeGenerator) Generate() (string, error) {
	buf := make([]byte, RedemptionCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random source: %w", err)
	}

	code := make([]byte, RedemptionCodeLength)
	for i, b := range buf {
		code[i] = redemptionCodeAlphabet[int(b)%len(redemptionCodeAlphabet)]
	}
	return string(code), nil
}
