package rewards

import "strings"

// ===========================
// BonusTag 加成標籤
// ===========================

// BonusTag 積分加成標籤（枚舉）
//
// 設計決策：
// 帳本記錄儲存結構化的加成標籤集合，而非拼接好的人類可讀字串。
// 人類可讀的 reason 字串只在呈現邊界（RenderReason）生成，
// 避免把展示文案寫死進不可變的審計記錄
type BonusTag string

const (
	// BonusTagSustainable 永續商家加成（+10）
	BonusTagSustainable BonusTag = "sustainable"

	// BonusTagEcoDistance 鄰近距離加成（+5，距離 < 5 公里）
	BonusTagEcoDistance BonusTag = "eco_distance"
)

// IsValid 判斷是否為已知的加成標籤
func (t BonusTag) IsValid() bool {
	switch t {
	case BonusTagSustainable, BonusTagEcoDistance:
		return true
	}
	return false
}

// bonusTagLabels 呈現邊界使用的文案
var bonusTagLabels = map[BonusTag]string{
	BonusTagSustainable: "sustainable bonus",
	BonusTagEcoDistance: "eco-distance bonus",
}

// RenderReason 將加成標籤集合渲染為人類可讀的 reason 字串
//
// 輸出範例：
// - 無標籤:           "standard order"
// - 永續:             "standard order + sustainable bonus"
// - 永續 + 距離:      "standard order + sustainable bonus + eco-distance bonus"
//
// 標籤順序即渲染順序（帳本保存時已按授予順序排列）
func RenderReason(tags []BonusTag) string {
	var b strings.Builder
	b.WriteString("standard order")
	for _, tag := range tags {
		if label, ok := bonusTagLabels[tag]; ok {
			b.WriteString(" + ")
			b.WriteString(label)
		}
	}
	return b.String()
}

// JoinBonusTags 將標籤集合序列化為逗號分隔字串（持久化用）
func JoinBonusTags(tags []BonusTag) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, string(tag))
	}
	return strings.Join(parts, ",")
}

// ParseBonusTags 從逗號分隔字串還原標籤集合（持久化用）
// 未知標籤會被靜默略過：舊資料中可能存在已淘汰的標籤
func ParseBonusTags(s string) []BonusTag {
	if s == "" {
		return nil
	}
	var tags []BonusTag
	for _, part := range strings.Split(s, ",") {
		tag := BonusTag(strings.TrimSpace(part))
		if tag.IsValid() {
			tags = append(tags, tag)
		}
	}
	return tags
}
