package rewards

import "time"

// ===========================
// LedgerEntry 帳本記錄
// ===========================

// LedgerEntry 積分帳本記錄（不可變實體）
//
// 職責：
// 1. 審計軌跡：每一次餘額增加都對應一筆帳本記錄
// 2. 冪等防護：(userID, orderID) 組合唯一，重複的訂單入帳
//    會在儲存層觸發唯一約束違反，而非產生第二筆記錄
//
// 設計原則：
// - 創建後不可修改、不可刪除（所有字段 unexported，無 setter）
// - 儲存結構化的加成標籤，而非渲染好的 reason 字串
//   （reason 由 RenderReason 在呈現邊界生成）
type LedgerEntry struct {
	entryID   EntryID
	userID    UserID
	orderID   OrderID
	points    PointsAmount
	tags      []BonusTag
	createdAt time.Time
}

// NewLedgerEntry 創建新的帳本記錄
//
// 參數：
//   userID - 入帳用戶（必填）
//   orderID - 觸發入帳的訂單（必填，冪等鍵的一部分）
//   points - 入帳積分（>= 0，零分合法）
//   tags - 加成標籤（授予順序）
func NewLedgerEntry(
	userID UserID,
	orderID OrderID,
	points PointsAmount,
	tags []BonusTag,
) (*LedgerEntry, error) {
	if userID.IsEmpty() {
		return nil, ErrInvalidUserID.WithContext(
			"reason", "userID cannot be empty",
		)
	}
	if orderID.IsEmpty() {
		return nil, ErrInvalidOrderID.WithContext(
			"reason", "orderID cannot be empty",
		)
	}

	return &LedgerEntry{
		entryID:   NewEntryID(),
		userID:    userID,
		orderID:   orderID,
		points:    points,
		tags:      copyTags(tags),
		createdAt: time.Now(),
	}, nil
}

// EntryID 獲取帳本記錄 ID
func (e *LedgerEntry) EntryID() EntryID {
	return e.entryID
}

// UserID 獲取用戶 ID
func (e *LedgerEntry) UserID() UserID {
	return e.userID
}

// OrderID 獲取訂單 ID
func (e *LedgerEntry) OrderID() OrderID {
	return e.orderID
}

// Points 獲取入帳積分
func (e *LedgerEntry) Points() PointsAmount {
	return e.points
}

// Tags 獲取加成標籤（防禦性複製，保持不可變性）
func (e *LedgerEntry) Tags() []BonusTag {
	return copyTags(e.tags)
}

// Reason 渲染人類可讀的入帳原因（呈現邊界）
func (e *LedgerEntry) Reason() string {
	return RenderReason(e.tags)
}

// CreatedAt 獲取創建時間
func (e *LedgerEntry) CreatedAt() time.Time {
	return e.createdAt
}

// ReconstructLedgerEntry 從持久化存儲重建帳本記錄
// 僅供 Repository 使用；重建時同樣驗證必填識別符
func ReconstructLedgerEntry(
	entryID EntryID,
	userID UserID,
	orderID OrderID,
	points int,
	tags []BonusTag,
	createdAt time.Time,
) (*LedgerEntry, error) {
	if entryID.IsEmpty() {
		return nil, ErrInvalidEntryID.WithContext(
			"reason", "invalid entry ID in database",
		)
	}
	if userID.IsEmpty() {
		return nil, ErrInvalidUserID.WithContext(
			"reason", "invalid user ID in database",
		)
	}
	if orderID.IsEmpty() {
		return nil, ErrInvalidOrderID.WithContext(
			"reason", "invalid order ID in database",
		)
	}

	amount, err := NewPointsAmount(points)
	if err != nil {
		return nil, ErrNegativePointsAmount.WithContext(
			"value", points,
			"reason", "corrupted ledger entry in database",
		)
	}

	return &LedgerEntry{
		entryID:   entryID,
		userID:    userID,
		orderID:   orderID,
		points:    amount,
		tags:      copyTags(tags),
		createdAt: createdAt,
	}, nil
}

// copyTags 防禦性複製標籤切片
func copyTags(tags []BonusTag) []BonusTag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]BonusTag, len(tags))
	copy(out, tags)
	return out
}
