package food

import (
	"fmt"
	"strings"

	"ayurveda-nutrition/internal/pkg/common"
)

// Taste 六味（Rasa）
type Taste string

const (
	Sweet      Taste = "sweet"
	Sour       Taste = "sour"
	Salty      Taste = "salty"
	Pungent    Taste = "pungent"
	Bitter     Taste = "bitter"
	Astringent Taste = "astringent"
)

// Potency 性（Virya）
type Potency string

const (
	Heating Potency = "heating"
	Cooling Potency = "cooling"
	Neutral Potency = "neutral"
)

// Effect 對單一 dosha 的作用
type Effect string

const (
	Increases Effect = "increases"
	Decreases Effect = "decreases"
	Balances  Effect = "balances"
	NoEffect  Effect = "neutral"
)

// ParseEffect 解析 dosha 作用，接受 aggravating / pacifying / balancing 等寫法
func ParseEffect(s string) (Effect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "increases", "increase", "aggravates", "aggravating", "+":
		return Increases, nil
	case "decreases", "decrease", "pacifies", "pacifying", "reduces", "-":
		return Decreases, nil
	case "balances", "balance", "balancing":
		return Balances, nil
	case "neutral", "", "0":
		return NoEffect, nil
	}
	return "", common.NewFieldError("effect", fmt.Sprintf("unknown value %q", s))
}

// DoshaEffects 對三種 dosha 的作用
type DoshaEffects struct {
	Vata  Effect `json:"vata"`
	Pitta Effect `json:"pitta"`
	Kapha Effect `json:"kapha"`
}

// Nutrients 每份營養素（macro 以 g，礦物質以 mg）
type Nutrients struct {
	Calories     float64            `json:"calories"`
	Protein      float64            `json:"protein"`
	Carbohydrate float64            `json:"carbohydrate"`
	Fat          float64            `json:"fat"`
	Fiber        float64            `json:"fiber"`
	Sugar        float64            `json:"sugar"`
	Sodium       float64            `json:"sodium"`
	Potassium    float64            `json:"potassium"`
	Calcium      float64            `json:"calcium"`
	Iron         float64            `json:"iron"`
	Vitamins     map[string]float64 `json:"vitamins,omitempty"`
}

// Properties 阿育吠陀屬性
type Properties struct {
	Rasa                 []Taste      `json:"rasa"`
	Virya                Potency      `json:"virya"`
	Vipaka               Taste        `json:"vipaka,omitempty"`
	Doshas               DoshaEffects `json:"doshas"`
	SuitableConstitution []string     `json:"suitable_constitutions,omitempty"`
	SuitableSeasons      []string     `json:"suitable_seasons,omitempty"`
}

// Item 一筆食材資料，載入後不可變
type Item struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Serving    string     `json:"serving,omitempty"` // 宣告份量，如 "1 cup"、"100 g"
	Nutrients  Nutrients  `json:"nutrients"`
	Properties Properties `json:"properties"`
}

// Validate 檢查必要欄位
func (it Item) Validate() error {
	if strings.TrimSpace(it.ID) == "" {
		return common.NewFieldError("id", "is required")
	}
	if strings.TrimSpace(it.Name) == "" {
		return common.NewFieldError("name", "is required")
	}
	switch it.Properties.Virya {
	case Heating, Cooling, Neutral, "":
	default:
		return common.NewFieldError("properties.virya", fmt.Sprintf("unknown value %q", it.Properties.Virya))
	}
	for _, e := range []Effect{it.Properties.Doshas.Vata, it.Properties.Doshas.Pitta, it.Properties.Doshas.Kapha} {
		switch e {
		case Increases, Decreases, Balances, NoEffect, "":
		default:
			return common.NewFieldError("properties.doshas", fmt.Sprintf("unknown effect %q", e))
		}
	}
	return nil
}

// Clone 深拷貝
func (it Item) Clone() Item {
	out := it
	if it.Nutrients.Vitamins != nil {
		out.Nutrients.Vitamins = make(map[string]float64, len(it.Nutrients.Vitamins))
		for k, v := range it.Nutrients.Vitamins {
			out.Nutrients.Vitamins[k] = v
		}
	}
	out.Properties.Rasa = append([]Taste(nil), it.Properties.Rasa...)
	out.Properties.SuitableConstitution = append([]string(nil), it.Properties.SuitableConstitution...)
	out.Properties.SuitableSeasons = append([]string(nil), it.Properties.SuitableSeasons...)
	return out
}

// Ingredient 組合菜餚時的一筆食材參照
type Ingredient struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Key 用於解析的鍵：優先名稱，否則 ID
func (in Ingredient) Key() string {
	if strings.TrimSpace(in.Name) != "" {
		return in.Name
	}
	return in.ID
}
