package rewards

import "math"

// ===========================
// Coordinate 地理座標值對象
// ===========================

// Coordinate 地理座標值對象（WGS84 經緯度）
//
// 設計原則：值對象不可變、自我驗證
//
// 建構約束：
// - Latitude ∈ [-90, 90]
// - Longitude ∈ [-180, 180]
type Coordinate struct {
	latitude  float64
	longitude float64
}

// NewCoordinate 建構函數
// 對外部輸入（用戶最後位置、商家座標）進行範圍驗證
func NewCoordinate(latitude, longitude float64) (Coordinate, error) {
	if latitude < -90 || latitude > 90 {
		return Coordinate{}, ErrInvalidCoordinate.WithContext(
			"latitude", latitude,
			"reason", "latitude must be within [-90, 90]",
		)
	}
	if longitude < -180 || longitude > 180 {
		return Coordinate{}, ErrInvalidCoordinate.WithContext(
			"longitude", longitude,
			"reason", "longitude must be within [-180, 180]",
		)
	}
	return Coordinate{latitude: latitude, longitude: longitude}, nil
}

// Latitude 獲取緯度
func (c Coordinate) Latitude() float64 {
	return c.latitude
}

// Longitude 獲取經度
func (c Coordinate) Longitude() float64 {
	return c.longitude
}

// ===========================
// HaversineDistance 大圓距離
// ===========================

// earthRadiusMeters 地球平均半徑（公尺），haversine 公式使用的球體模型
const earthRadiusMeters = 6371000.0

// HaversineDistance 計算兩個座標之間的大圓距離（公尺）
//
// 設計原則：
// - 純函數：無副作用、無 I/O、確定性
// - 對稱性：HaversineDistance(a, b) == HaversineDistance(b, a)
// - 門檻比較（如「5 公里內」）是調用者的職責，不在此函數內
//
// 精度說明：
// 球體模型與橢球體（geodesic）模型在 5 公里尺度上的誤差 < 0.5%，
// 對積分加成判定足夠精確
func HaversineDistance(a, b Coordinate) float64 {
	lat1 := a.latitude * math.Pi / 180
	lat2 := b.latitude * math.Pi / 180
	dLat := (b.latitude - a.latitude) * math.Pi / 180
	dLng := (b.longitude - a.longitude) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
