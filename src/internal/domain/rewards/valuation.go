package rewards

import (
	"github.com/shopspring/decimal"
)

// ===========================
// PointsValuationService 領域服務
// ===========================

// ConversionRate 積分換算率值對象（每 1 積分對應的法幣金額，CRC）
//
// 設計原則：值對象不可變、自我驗證
//
// 使用場景：
// 目錄呈現時標示獎勵的等值金額（例如捐贈型獎勵
// 「以你的名義捐出 ₡1000」的金額即由點數成本換算而來）
type ConversionRate struct {
	value decimal.Decimal
}

// NewConversionRate 建構函數
// 建構約束：換算率必須為正數
func NewConversionRate(value decimal.Decimal) (ConversionRate, error) {
	if value.LessThanOrEqual(decimal.Zero) {
		return ConversionRate{}, ErrInvalidConversionRate.WithContext(
			"value", value.String(),
		)
	}
	return ConversionRate{value: value}, nil
}

// Value 獲取換算率
func (r ConversionRate) Value() decimal.Decimal {
	return r.value
}

// PointsValuationService 積分估值領域服務
//
// 設計原則：
// 1. Domain Service 封裝不屬於任何單一值對象的邏輯
//    （ConversionRate 不應依賴 PointsAmount，反之亦然）
// 2. 無狀態（stateless）- 可安全地在多個 goroutine 中共享
// 3. 使用 decimal 確保金額精確計算（float 會累積捨入誤差）
type PointsValuationService struct{}

// NewPointsValuationService 建構函數
func NewPointsValuationService() *PointsValuationService {
	return &PointsValuationService{}
}

// ValueOf 計算積分數量的等值金額（CRC）
//
// 業務規則：
// - 金額 = 積分 × 換算率
// - 結果四捨五入到整數金額（CRC 無小數面額）
func (s *PointsValuationService) ValueOf(
	points PointsAmount,
	rate ConversionRate,
) decimal.Decimal {
	amount := decimal.NewFromInt(int64(points.Value()))
	return amount.Mul(rate.value).Round(0)
}
