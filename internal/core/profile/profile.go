package profile

import (
	"fmt"
	"strings"

	"ayurveda-nutrition/internal/pkg/common"
)

// Gender 性別
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Constitution 體質（Prakriti）
type Constitution string

const (
	Vata       Constitution = "vata"
	Pitta      Constitution = "pitta"
	Kapha      Constitution = "kapha"
	VataPitta  Constitution = "vata-pitta"
	PittaKapha Constitution = "pitta-kapha"
	VataKapha  Constitution = "vata-kapha"
	Tridoshic  Constitution = "tridoshic"
)

// Season 季節
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

// ActivityLevel 活動量
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very-active"
)

// Constitutions 所有合法體質，依固定順序
var Constitutions = []Constitution{Vata, Pitta, Kapha, VataPitta, PittaKapha, VataKapha, Tridoshic}

// Seasons 所有合法季節
var Seasons = []Season{Spring, Summer, Autumn, Winter}

// ActivityLevels 所有合法活動量
var ActivityLevels = []ActivityLevel{Sedentary, Moderate, Active, VeryActive}

// Pregnancy 懷孕資訊，Trimester 為 1..3
type Pregnancy struct {
	Trimester int `json:"trimester"`
}

// Menopause 更年期資訊
type Menopause struct {
	Stage string `json:"stage,omitempty"` // peri / post 等自由文字
}

// Profile 使用者健康檔案，由呼叫端提供，引擎只讀
type Profile struct {
	Age                 int           `json:"age"`
	Gender              Gender        `json:"gender"`
	Constitution        Constitution  `json:"constitution"`
	Occupation          string        `json:"occupation,omitempty"`
	HealthConditions    []string      `json:"health_conditions,omitempty"`
	DietaryRestrictions []string      `json:"dietary_restrictions,omitempty"`
	Season              Season        `json:"season"`
	ActivityLevel       ActivityLevel `json:"activity_level"`
	Pregnancy           *Pregnancy    `json:"pregnancy,omitempty"`
	Lactating           bool          `json:"lactating,omitempty"`
	Menopause           *Menopause    `json:"menopause,omitempty"`
	Goals               []string      `json:"goals,omitempty"`
}

// IsPregnant 是否懷孕中
func (p Profile) IsPregnant() bool {
	return p.Pregnancy != nil
}

// IsMenopausal 是否處於更年期
func (p Profile) IsMenopausal() bool {
	return p.Menopause != nil
}

// Clone 深拷貝，報告回傳時不與呼叫端共用切片
func (p Profile) Clone() Profile {
	out := p
	out.HealthConditions = cloneStrings(p.HealthConditions)
	out.DietaryRestrictions = cloneStrings(p.DietaryRestrictions)
	out.Goals = cloneStrings(p.Goals)
	if p.Pregnancy != nil {
		preg := *p.Pregnancy
		out.Pregnancy = &preg
	}
	if p.Menopause != nil {
		meno := *p.Menopause
		out.Menopause = &meno
	}
	return out
}

// Validate 檢查必要欄位，任何缺漏或未知值都直接回傳錯誤
func (p Profile) Validate() error {
	if p.Age < 0 {
		return common.NewFieldError("age", "must be >= 0")
	}
	if p.Age > 130 {
		return common.NewFieldError("age", "must be <= 130")
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	case "":
		return common.NewFieldError("gender", "is required")
	default:
		return common.NewFieldError("gender", fmt.Sprintf("unknown value %q", p.Gender))
	}
	if !validConstitution(p.Constitution) {
		return enumError("constitution", string(p.Constitution))
	}
	if !validSeason(p.Season) {
		return enumError("season", string(p.Season))
	}
	if !validActivity(p.ActivityLevel) {
		return enumError("activity_level", string(p.ActivityLevel))
	}
	if p.Pregnancy != nil {
		if p.Gender != GenderFemale {
			return common.NewFieldError("pregnancy", "only valid for female profiles")
		}
		if p.Pregnancy.Trimester < 1 || p.Pregnancy.Trimester > 3 {
			return common.NewFieldError("pregnancy.trimester", "must be 1, 2 or 3")
		}
	}
	return nil
}

func enumError(field, value string) error {
	if value == "" {
		return common.NewFieldError(field, "is required")
	}
	return common.NewFieldError(field, fmt.Sprintf("unknown value %q", value))
}

func validConstitution(c Constitution) bool {
	for _, v := range Constitutions {
		if v == c {
			return true
		}
	}
	return false
}

func validSeason(s Season) bool {
	for _, v := range Seasons {
		if v == s {
			return true
		}
	}
	return false
}

func validActivity(a ActivityLevel) bool {
	for _, v := range ActivityLevels {
		if v == a {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// canonical 將使用者輸入轉為小寫，以 - 連接詞
func canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	return s
}
