package food

import (
	"strings"
)

// unitFractions 單位換算成「宣告份量」的比例；份量以 1 cup ≈ 240 ml ≈ 100 g 為基準。
// 這是為了讓菜餚之間可比較的近似值，不是精確的營養計算。
var unitFractions = map[string]float64{
	// 容量
	"cup":   1,
	"tbsp":  1.0 / 16,
	"tsp":   1.0 / 48,
	"ml":    1.0 / 240,
	"liter": 1000.0 / 240,
	// 重量
	"g":  1.0 / 100,
	"kg": 10,
	"oz": 28.35 / 100,
	"lb": 453.6 / 100,
	// 計數
	"piece":  1,
	"clove":  0.1,
	"inch":   0.1,
	"small":  0.75,
	"medium": 1,
	"large":  1.25,
}

// unitAliases 把常見寫法對應到 unitFractions 的鍵
var unitAliases = map[string]string{
	"cups":        "cup",
	"c":           "cup",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tbs":         "tbsp",
	"tbsps":       "tbsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"tsps":        "tsp",
	"milliliter":  "ml",
	"milliliters": "ml",
	"millilitre":  "ml",
	"millilitres": "ml",
	"l":           "liter",
	"liters":      "liter",
	"litre":       "liter",
	"litres":      "liter",
	"gram":        "g",
	"grams":       "g",
	"gm":          "g",
	"gms":         "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"kgs":         "kg",
	"ounce":       "oz",
	"ounces":      "oz",
	"pound":       "lb",
	"pounds":      "lb",
	"lbs":         "lb",
	"pieces":      "piece",
	"pc":          "piece",
	"pcs":         "piece",
	"whole":       "piece",
	"cloves":      "clove",
	"inches":      "inch",
	"in":          "inch",
}

// NormalizeUnit 回傳單位的標準名稱；未知單位回傳空字串
func NormalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, ".")
	if alias, ok := unitAliases[u]; ok {
		u = alias
	}
	if _, ok := unitFractions[u]; ok {
		return u
	}
	return ""
}

// Multiplier 將 (數量, 單位) 換算為宣告份量的倍數；未知單位視為整份
func Multiplier(quantity float64, unit string) float64 {
	if u := NormalizeUnit(unit); u != "" {
		return quantity * unitFractions[u]
	}
	return quantity
}
