package nutrition

import (
	"fmt"
	"math"

	"ayurveda-nutrition/internal/core/food"
	"ayurveda-nutrition/internal/pkg/common"
)

// DefaultVipaka 消化後味目前不從食材推導，固定為甘味
const DefaultVipaka = food.Sweet

const precision = 2

// Signature 一道菜的阿育吠陀屬性彙總
type Signature struct {
	Rasa   []food.Taste      `json:"rasa"`
	Virya  food.Potency      `json:"virya"`
	Vipaka food.Taste        `json:"vipaka"`
	Doshas food.DoshaEffects `json:"doshas"`
}

// Resolution 一筆食材的解析結果
type Resolution struct {
	Ingredient string         `json:"ingredient"`
	FoodID     string         `json:"food_id"`
	FoodName   string         `json:"food_name"`
	Match      food.MatchKind `json:"match"`
	Multiplier float64        `json:"multiplier"`
}

// Dish 組合結果：營養總和、屬性與解析診斷
type Dish struct {
	Totals     food.Nutrients `json:"totals"`
	Properties Signature      `json:"properties"`
	Resolved   []Resolution   `json:"resolved"`
	Unresolved []string       `json:"unresolved"`
}

// Aggregator 以唯讀食材資料庫計算菜餚營養與屬性；無狀態，可併發使用
type Aggregator struct {
	foods *food.Store
}

// NewAggregator 建立 Aggregator
func NewAggregator(foods *food.Store) *Aggregator {
	return &Aggregator{foods: foods}
}

type resolved struct {
	item       *food.Item
	kind       food.MatchKind
	multiplier float64
}

// resolve 驗證輸入並解析每筆食材；無法解析的食材 item 為 nil
func (a *Aggregator) resolve(ingredients []food.Ingredient) ([]resolved, error) {
	out := make([]resolved, len(ingredients))
	for i, in := range ingredients {
		if math.IsNaN(in.Quantity) || math.IsInf(in.Quantity, 0) {
			return nil, common.NewFieldError(fmt.Sprintf("ingredients[%d].quantity", i), "must be a finite number")
		}
		if in.Quantity < 0 {
			return nil, common.NewFieldError(fmt.Sprintf("ingredients[%d].quantity", i), "must not be negative")
		}
		item, kind := a.foods.Resolve(in)
		out[i] = resolved{item: item, kind: kind, multiplier: food.Multiplier(in.Quantity, in.Unit)}
	}
	return out, nil
}

// AggregateNutrients 依份量倍數加總所有可解析食材的營養素，並四捨五入到小數兩位。
// 無法解析的食材貢獻為零，不視為錯誤。
func (a *Aggregator) AggregateNutrients(ingredients []food.Ingredient) (food.Nutrients, error) {
	rs, err := a.resolve(ingredients)
	if err != nil {
		return food.Nutrients{}, err
	}
	return sumNutrients(rs), nil
}

// DeriveProperties 統計所有可解析食材的味、性與 dosha 作用
func (a *Aggregator) DeriveProperties(ingredients []food.Ingredient) (Signature, error) {
	rs, err := a.resolve(ingredients)
	if err != nil {
		return Signature{}, err
	}
	return deriveSignature(rs), nil
}

// Compose 一次完成營養加總與屬性推導，並回報每筆食材的解析情形
func (a *Aggregator) Compose(ingredients []food.Ingredient) (Dish, error) {
	rs, err := a.resolve(ingredients)
	if err != nil {
		return Dish{}, err
	}

	dish := Dish{
		Totals:     sumNutrients(rs),
		Properties: deriveSignature(rs),
		Resolved:   make([]Resolution, 0, len(rs)),
		Unresolved: make([]string, 0),
	}
	for i, r := range rs {
		key := ingredients[i].Key()
		if r.item == nil {
			dish.Unresolved = append(dish.Unresolved, key)
			continue
		}
		dish.Resolved = append(dish.Resolved, Resolution{
			Ingredient: key,
			FoodID:     r.item.ID,
			FoodName:   r.item.Name,
			Match:      r.kind,
			Multiplier: common.Round(r.multiplier, 4),
		})
	}
	return dish, nil
}

func sumNutrients(rs []resolved) food.Nutrients {
	var t food.Nutrients
	t.Vitamins = make(map[string]float64)
	for _, r := range rs {
		if r.item == nil {
			continue
		}
		n, m := r.item.Nutrients, r.multiplier
		t.Calories += n.Calories * m
		t.Protein += n.Protein * m
		t.Carbohydrate += n.Carbohydrate * m
		t.Fat += n.Fat * m
		t.Fiber += n.Fiber * m
		t.Sugar += n.Sugar * m
		t.Sodium += n.Sodium * m
		t.Potassium += n.Potassium * m
		t.Calcium += n.Calcium * m
		t.Iron += n.Iron * m
		for k, v := range n.Vitamins {
			t.Vitamins[k] += v * m
		}
	}

	round := func(v float64) float64 { return common.Round(v, precision) }
	t.Calories = round(t.Calories)
	t.Protein = round(t.Protein)
	t.Carbohydrate = round(t.Carbohydrate)
	t.Fat = round(t.Fat)
	t.Fiber = round(t.Fiber)
	t.Sugar = round(t.Sugar)
	t.Sodium = round(t.Sodium)
	t.Potassium = round(t.Potassium)
	t.Calcium = round(t.Calcium)
	t.Iron = round(t.Iron)
	for k, v := range t.Vitamins {
		t.Vitamins[k] = round(v)
	}
	return t
}

// effectPriority 平手時的優先順序：偏向標示「平息」作用
var effectPriority = []food.Effect{food.Decreases, food.Balances, food.Increases, food.NoEffect}

func deriveSignature(rs []resolved) Signature {
	tastes := newTally[food.Taste]()
	var heating, cooling int
	vata := newTally[food.Effect]()
	pitta := newTally[food.Effect]()
	kapha := newTally[food.Effect]()

	for _, r := range rs {
		if r.item == nil {
			continue
		}
		p := r.item.Properties
		for _, t := range p.Rasa {
			if f := food.Taste(common.Fold(string(t))); f != "" {
				tastes.add(f)
			}
		}
		switch p.Virya {
		case food.Heating:
			heating++
		case food.Cooling:
			cooling++
		}
		vata.add(effectOrNeutral(p.Doshas.Vata))
		pitta.add(effectOrNeutral(p.Doshas.Pitta))
		kapha.add(effectOrNeutral(p.Doshas.Kapha))
	}

	sig := Signature{
		Rasa:   tastes.top(2),
		Virya:  food.Neutral,
		Vipaka: DefaultVipaka,
		Doshas: food.DoshaEffects{
			Vata:  dominantEffect(vata),
			Pitta: dominantEffect(pitta),
			Kapha: dominantEffect(kapha),
		},
	}
	switch {
	case heating > cooling:
		sig.Virya = food.Heating
	case cooling > heating:
		sig.Virya = food.Cooling
	}
	return sig
}

func effectOrNeutral(e food.Effect) food.Effect {
	if e == "" {
		return food.NoEffect
	}
	return e
}

func dominantEffect(t *tally[food.Effect]) food.Effect {
	best, bestCount := food.NoEffect, 0
	for _, e := range effectPriority {
		if c := t.counts[e]; c > bestCount {
			best, bestCount = e, c
		}
	}
	return best
}
