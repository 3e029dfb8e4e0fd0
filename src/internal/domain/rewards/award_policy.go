package rewards

// ===========================
// AwardPolicy 領域服務
// ===========================

// 積分規則常量
const (
	// BasePoints 每筆完成訂單的基礎積分
	BasePoints = 10

	// SustainableBonusPoints 永續商家加成
	SustainableBonusPoints = 10

	// EcoDistanceBonusPoints 鄰近距離加成
	EcoDistanceBonusPoints = 5

	// EcoDistanceThresholdMeters 鄰近加成的距離門檻（公尺）
	// 嚴格小於：恰好 5000 公尺不符合資格（半開區間 [0, 5000)）
	EcoDistanceThresholdMeters = 5000.0
)

// AwardInput 一筆訂單的積分計算輸入
//
// 座標為可選：用戶可能沒有已知位置，商家可能未登錄座標。
// 任一座標缺失時，距離加成不參與計算
type AwardInput struct {
	MerchantSustainable bool
	UserLocation        *Coordinate
	MerchantLocation    *Coordinate
}

// AwardPolicy 訂單積分計算領域服務
//
// 設計原則：
// 1. Domain Service 封裝不屬於任何單一實體/值對象的業務邏輯
//    （積分規則跨越商家屬性與兩方座標，不屬於 PointsBalance）
// 2. 無狀態（stateless）- 所有數據通過參數傳入，可安全並發共享
// 3. 純計算：不做任何 I/O，座標的取得是 Application Layer 的職責
type AwardPolicy struct{}

// NewAwardPolicy 建構函數
// Domain Service 通常是無狀態的，但保留建構函數用於未來擴展
func NewAwardPolicy() *AwardPolicy {
	return &AwardPolicy{}
}

// Calculate 計算一筆訂單應獎勵的積分與加成標籤
//
// 業務規則：
// 1. 基礎積分 = 10
// 2. 商家為永續商家：+10，附加 sustainable 標籤
// 3. 用戶與商家座標皆存在且大圓距離 < 5000 公尺（嚴格小於）：
//    +5，附加 eco_distance 標籤
//
// 返回的標籤順序即授予順序（永續先於距離），
// 呈現邊界按此順序渲染 reason 字串
func (p *AwardPolicy) Calculate(input AwardInput) (PointsAmount, []BonusTag) {
	total := BasePoints
	var tags []BonusTag

	if input.MerchantSustainable {
		total += SustainableBonusPoints
		tags = append(tags, BonusTagSustainable)
	}

	if input.UserLocation != nil && input.MerchantLocation != nil {
		distance := HaversineDistance(*input.UserLocation, *input.MerchantLocation)
		if distance < EcoDistanceThresholdMeters {
			total += EcoDistanceBonusPoints
			tags = append(tags, BonusTagEcoDistance)
		}
	}

	// total 由常量累加而來，保證 >= 0
	return newPointsAmountUnchecked(total), tags
}
