package catalog

import (
	"fmt"
	"strings"

	"ayurveda-nutrition/internal/pkg/common"
)

// Axis 分類軸
type Axis string

const (
	AxisAge           Axis = "age"
	AxisGender        Axis = "gender"
	AxisOccupation    Axis = "occupation"
	AxisCondition     Axis = "condition"
	AxisSeasonal      Axis = "seasonal"
	AxisFitness       Axis = "fitness"
	AxisEnvironmental Axis = "environmental"
	AxisLifestyle     Axis = "lifestyle"
)

// Axes 所有分類軸，依固定順序
var Axes = []Axis{
	AxisAge, AxisGender, AxisOccupation, AxisCondition,
	AxisSeasonal, AxisFitness, AxisEnvironmental, AxisLifestyle,
}

// ParseAxis 解析分類軸，接受 "gender-specific"、"health condition" 等別名
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "age":
		return AxisAge, nil
	case "gender", "gender-specific", "gender_specific", "life-stage", "women":
		return AxisGender, nil
	case "occupation", "occupational":
		return AxisOccupation, nil
	case "condition", "conditions", "health-condition", "health_condition", "health condition":
		return AxisCondition, nil
	case "seasonal", "season":
		return AxisSeasonal, nil
	case "fitness":
		return AxisFitness, nil
	case "environmental", "environment":
		return AxisEnvironmental, nil
	case "lifestyle":
		return AxisLifestyle, nil
	}
	return "", common.NewFieldError("axis", fmt.Sprintf("unknown value %q", s))
}

// Valid 是否為已知分類軸
func (a Axis) Valid() bool {
	for _, v := range Axes {
		if v == a {
			return true
		}
	}
	return false
}

// Record 一筆分類飲食建議，載入後不可變
type Record struct {
	Axis             Axis     `json:"axis"`
	SubLabel         string   `json:"sub_label"`
	RecommendedFoods []string `json:"recommended_foods"`
	AvoidFoods       []string `json:"avoid_foods"`
	Rationale        string   `json:"rationale"`
	MealSuggestions  string   `json:"meal_suggestions"`
	SpecialNotes     string   `json:"special_notes,omitempty"`
}

// Validate 檢查必要欄位
func (r Record) Validate() error {
	if !r.Axis.Valid() {
		if r.Axis == "" {
			return common.NewFieldError("axis", "is required")
		}
		return common.NewFieldError("axis", fmt.Sprintf("unknown value %q", r.Axis))
	}
	if strings.TrimSpace(r.SubLabel) == "" {
		return common.NewFieldError("sub_label", "is required")
	}
	return nil
}

// Clone 深拷貝
func (r Record) Clone() Record {
	out := r
	out.RecommendedFoods = append([]string(nil), r.RecommendedFoods...)
	out.AvoidFoods = append([]string(nil), r.AvoidFoods...)
	return out
}
