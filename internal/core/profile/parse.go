package profile

import (
	"strings"

	"ayurveda-nutrition/internal/pkg/common"
)

// ParseGender 解析性別；空字串回傳空值交由 Validate 判斷
func ParseGender(s string) (Gender, error) {
	switch canonical(s) {
	case "":
		return "", nil
	case "male", "m", "man":
		return GenderMale, nil
	case "female", "f", "woman":
		return GenderFemale, nil
	case "other", "non-binary", "nonbinary":
		return GenderOther, nil
	}
	return "", common.NewFieldError("gender", "unknown value "+quote(s))
}

// ParseConstitution 解析體質，接受 "Vata Pitta"、"pitta_vata"、"tri-doshic" 等寫法
func ParseConstitution(s string) (Constitution, error) {
	c := canonical(s)
	switch c {
	case "":
		return "", nil
	case "tri-doshic", "tridosha", "vata-pitta-kapha", "balanced":
		return Tridoshic, nil
	}
	parts := strings.Split(c, "-")
	if len(parts) == 2 && parts[0] != parts[1] {
		// 雙體質順序不影響結果
		c = orderedBlend(parts[0], parts[1])
	}
	for _, v := range Constitutions {
		if string(v) == c {
			return v, nil
		}
	}
	return "", common.NewFieldError("constitution", "unknown value "+quote(s))
}

// orderedBlend 依 vata > pitta > kapha 的順序組合雙體質
func orderedBlend(a, b string) string {
	rank := map[string]int{"vata": 0, "pitta": 1, "kapha": 2}
	ra, okA := rank[a]
	rb, okB := rank[b]
	if !okA || !okB {
		return a + "-" + b
	}
	if ra > rb {
		a, b = b, a
	}
	return a + "-" + b
}

// ParseSeason 解析季節，fall 視為 autumn
func ParseSeason(s string) (Season, error) {
	switch canonical(s) {
	case "":
		return "", nil
	case "spring":
		return Spring, nil
	case "summer":
		return Summer, nil
	case "autumn", "fall":
		return Autumn, nil
	case "winter":
		return Winter, nil
	}
	return "", common.NewFieldError("season", "unknown value "+quote(s))
}

// ParseActivityLevel 解析活動量
func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch canonical(s) {
	case "":
		return "", nil
	case "sedentary":
		return Sedentary, nil
	case "moderate", "moderately-active":
		return Moderate, nil
	case "active":
		return Active, nil
	case "very-active", "veryactive", "athlete":
		return VeryActive, nil
	}
	return "", common.NewFieldError("activity_level", "unknown value "+quote(s))
}

func quote(s string) string {
	return `"` + s + `"`
}

// Normalize 將列舉欄位轉為標準寫法；無法解析的值保留原樣，交由 Validate 回報
func (p Profile) Normalize() Profile {
	out := p.Clone()
	if g, err := ParseGender(string(p.Gender)); err == nil {
		out.Gender = g
	}
	if c, err := ParseConstitution(string(p.Constitution)); err == nil {
		out.Constitution = c
	}
	if s, err := ParseSeason(string(p.Season)); err == nil {
		out.Season = s
	}
	if a, err := ParseActivityLevel(string(p.ActivityLevel)); err == nil {
		out.ActivityLevel = a
	}
	return out
}
