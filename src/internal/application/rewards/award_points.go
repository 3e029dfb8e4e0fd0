package rewards

import (
	"errors"
	"fmt"

	"github.com/verdemarket/eco_rewards/src/internal/domain/rewards"
	"github.com/verdemarket/eco_rewards/src/internal/domain/shared"
)

// ===========================
// AwardPointsForOrder Use Case
// ===========================

// AwardPointsForOrderCommand 訂單積分入帳命令
//
// 輸入來自訂單生命週期協作者的「訂單完成」事件：
// - OrderID / UserID / MerchantID: 必填（UUID 字串）
// - MerchantSustainable: 商家永續旗標
// - MerchantLatitude / MerchantLongitude: 商家座標（可選，成對出現）
//
// 用戶的最後已知座標由核心自行透過 UserLocationReader 取得
type AwardPointsForOrderCommand struct {
	OrderID             string
	UserID              string
	MerchantID          string
	MerchantSustainable bool
	MerchantLatitude    *float64
	MerchantLongitude   *float64
}

// AwardPointsForOrderResult 訂單積分入帳結果
//
// 設計決策：
// 入帳失敗不能靜默吞掉（log-and-swallow 模式明確禁止）——
// 調用者拿到帶型別的結果，可觀測、可計量，
// 但 Duplicate / Skipped 都不是錯誤，不會干擾訂單流程
type AwardPointsForOrderResult struct {
	EntryID       string
	UserID        string
	OrderID       string
	PointsAwarded int
	Tags          []rewards.BonusTag
	Reason        string

	// Duplicate 表示該 (用戶, 訂單) 已入帳過，本次為冪等 no-op
	// （PointsAwarded 為 0）
	Duplicate bool

	// Skipped 表示用戶不存在（餘額未開立），入帳被略過
	// 入帳是已完成訂單的盡力而為副作用，不應阻斷訂單流程
	Skipped bool
}

// AwardPointsForOrderUseCase 訂單積分入帳 Use Case（Award Engine）
//
// 冪等保證：
// 對同一 (用戶, 訂單) 組合，無論被調用多少次、是否並發，
// 最多只會產生一筆帳本記錄與一次餘額增加。
// 機制：帳本的 (user_id, order_id) 唯一索引——第一個提交的事務勝出，
// 其餘事務觀察到唯一約束違反，整體回滾並回報 no-op。
// 因此調用者可以安全地盲目重試
//
// 事務設計（單一事務內，順序固定）：
// 1. FindByUserIDForUpdate 鎖定餘額列（同時確認用戶存在）
// 2. 讀取用戶最後位置、計算積分與加成標籤
// 3. Insert 帳本記錄（唯一鍵 = 冪等防護）
// 4. Credit 餘額並 Update
// 先鎖餘額再寫帳本，確保唯一鍵檢查與餘額更新在同一個
// 原子單元內，不存在兩次獨立往返之間的競爭窗口
type AwardPointsForOrderUseCase struct {
	balanceRepo  rewards.PointsBalanceRepository
	ledgerRepo   rewards.LedgerRepository
	locationRepo rewards.UserLocationReader
	policy       *rewards.AwardPolicy
	txManager    shared.TransactionManager
}

// NewAwardPointsForOrderUseCase 創建 Use Case 實例
func NewAwardPointsForOrderUseCase(
	balanceRepo rewards.PointsBalanceRepository,
	ledgerRepo rewards.LedgerRepository,
	locationRepo rewards.UserLocationReader,
	txManager shared.TransactionManager,
) *AwardPointsForOrderUseCase {
	return &AwardPointsForOrderUseCase{
		balanceRepo:  balanceRepo,
		ledgerRepo:   ledgerRepo,
		locationRepo: locationRepo,
		policy:       rewards.NewAwardPolicy(),
		txManager:    txManager,
	}
}

// Execute 執行訂單積分入帳
//
// 錯誤處理：
// - ID 格式無效：返回錯誤（事件本身損壞，重試也不會成功）
// - 用戶不存在：返回 Skipped 結果，不返回錯誤
// - 重複入帳：返回 Duplicate 結果，不返回錯誤
// - 儲存層暫時性故障：返回錯誤，調用者可依自身策略盲目重試
func (uc *AwardPointsForOrderUseCase) Execute(cmd AwardPointsForOrderCommand) (*AwardPointsForOrderResult, error) {
	// 1. 驗證並轉換識別符
	userID, err := rewards.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	orderID, err := rewards.OrderIDFromString(cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order ID: %w", err)
	}

	if _, err := rewards.MerchantIDFromString(cmd.MerchantID); err != nil {
		return nil, fmt.Errorf("failed to parse merchant ID: %w", err)
	}

	// 2. 驗證商家座標（可選，但出現就必須成對且有效）
	merchantLocation, err := optionalCoordinate(cmd.MerchantLatitude, cmd.MerchantLongitude)
	if err != nil {
		return nil, fmt.Errorf("failed to parse merchant coordinates: %w", err)
	}

	// 3. 在單一事務中執行入帳
	var result *AwardPointsForOrderResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		// 3.1 鎖定餘額列（同時確認用戶存在）
		balance, err := uc.balanceRepo.FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, rewards.ErrBalanceNotFound) {
				// 用戶不存在：盡力而為的副作用，略過而非失敗
				result = &AwardPointsForOrderResult{
					UserID:  userID.String(),
					OrderID: orderID.String(),
					Skipped: true,
				}
				return nil
			}
			return fmt.Errorf("failed to lock balance: %w", err)
		}

		// 3.2 取得用戶最後位置（未知位置返回 nil，不是錯誤）
		userLocation, err := uc.locationRepo.FindLastLocation(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to read user location: %w", err)
		}

		// 3.3 計算積分與加成標籤（純計算）
		points, tags := uc.policy.Calculate(rewards.AwardInput{
			MerchantSustainable: cmd.MerchantSustainable,
			UserLocation:        userLocation,
			MerchantLocation:    merchantLocation,
		})

		// 3.4 寫入帳本（唯一鍵 = 冪等防護）
		entry, err := rewards.NewLedgerEntry(userID, orderID, points, tags)
		if err != nil {
			return fmt.Errorf("failed to create ledger entry: %w", err)
		}

		if err := uc.ledgerRepo.Insert(ctx, entry); err != nil {
			// ErrDuplicateAward 會讓整個事務回滾（餘額未動），
			// 由外層轉換為冪等 no-op 結果
			return err
		}

		// 3.5 入帳並更新餘額
		balance.Credit(points, orderID, tags)
		if err := uc.balanceRepo.Update(ctx, balance); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		result = &AwardPointsForOrderResult{
			EntryID:       entry.EntryID().String(),
			UserID:        userID.String(),
			OrderID:       orderID.String(),
			PointsAwarded: points.Value(),
			Tags:          entry.Tags(),
			Reason:        entry.Reason(),
		}
		return nil
	})

	if err != nil {
		// 冪等 no-op：該訂單已入帳過，回報成功（0 新增積分）
		if errors.Is(err, rewards.ErrDuplicateAward) {
			return &AwardPointsForOrderResult{
				UserID:    userID.String(),
				OrderID:   orderID.String(),
				Duplicate: true,
			}, nil
		}
		return nil, err
	}

	return result, nil
}

// optionalCoordinate 將成對的可選經緯度轉換為座標值對象
//
// 規則：
// - 兩者皆缺：返回 (nil, nil)，距離加成不參與計算
// - 只出現其一：視為損壞的事件，返回錯誤
// - 兩者皆在：範圍驗證後返回座標
func optionalCoordinate(lat, lng *float64) (*rewards.Coordinate, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, rewards.ErrInvalidCoordinate.WithContext(
			"reason", "latitude and longitude must be provided together",
		)
	}
	coord, err := rewards.NewCoordinate(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &coord, nil
}
