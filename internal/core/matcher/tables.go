package matcher

import (
	"ayurveda-nutrition/internal/core/profile"
)

// AgeBracket 年齡區間與其標籤關鍵字
type AgeBracket struct {
	Name     string
	Keywords []string
	Min, Max int
}

// Contains 年齡是否落在區間內（含端點）
func (b AgeBracket) Contains(age int) bool {
	return age >= b.Min && age <= b.Max
}

// 36-39 歲不屬於任何區間
var defaultAgeBrackets = []AgeBracket{
	{Name: "infant", Keywords: []string{"infant", "baby", "babies"}, Min: 0, Max: 1},
	{Name: "toddler", Keywords: []string{"toddler"}, Min: 1, Max: 3},
	{Name: "child", Keywords: []string{"child", "kid"}, Min: 4, Max: 12},
	{Name: "teen", Keywords: []string{"teen", "adolescent"}, Min: 13, Max: 18},
	{Name: "young-adult", Keywords: []string{"young"}, Min: 19, Max: 35},
	{Name: "middle-age", Keywords: []string{"middle"}, Min: 40, Max: 60},
	{Name: "elderly", Keywords: []string{"elderly", "senior"}, Min: 60, Max: 120},
}

// keywordRule 類別標籤 → 職業關鍵字
type keywordRule struct {
	label    string
	keywords []string
}

var defaultOccupations = []keywordRule{
	{"Software Engineers", []string{"developer", "programmer", "engineer", "tech", "IT"}},
	{"Healthcare Workers", []string{"doctor", "nurse", "physician", "healthcare", "medical", "hospital"}},
	{"Teachers", []string{"teacher", "professor", "educator", "lecturer", "tutor"}},
	{"Office Workers", []string{"office", "clerk", "accountant", "administrator", "manager", "analyst"}},
	{"Manual Laborers", []string{"labor", "construction", "farmer", "mechanic", "carpenter", "plumber"}},
	{"Athletes", []string{"athlete", "sports", "player", "coach", "trainer"}},
	{"Students", []string{"student", "learner"}},
	{"Drivers", []string{"driver", "chauffeur", "trucker", "delivery"}},
	{"Night Shift Workers", []string{"night", "shift", "security", "guard"}},
	{"Business Executives", []string{"executive", "ceo", "director", "entrepreneur", "business"}},
	{"Homemakers", []string{"homemaker", "housewife", "househusband", "stay-at-home"}},
	{"Retirees", []string{"retired", "retiree", "pensioner"}},
}

// fitnessRule 標籤關鍵字 → 適用活動量；依序比對，較具體的目標在前
type fitnessRule struct {
	keyword string
	levels  []profile.ActivityLevel
}

var defaultFitness = []fitnessRule{
	{"weight loss", []profile.ActivityLevel{profile.Sedentary, profile.Moderate}},
	{"muscle", []profile.ActivityLevel{profile.Active, profile.VeryActive}},
	{"strength", []profile.ActivityLevel{profile.Active, profile.VeryActive}},
	{"endurance", []profile.ActivityLevel{profile.VeryActive}},
	{"yoga", []profile.ActivityLevel{profile.Sedentary, profile.Moderate, profile.Active}},
	{"sedentary", []profile.ActivityLevel{profile.Sedentary}},
	{"beginner", []profile.ActivityLevel{profile.Sedentary}},
	{"moderate", []profile.ActivityLevel{profile.Moderate}},
	{"athlete", []profile.ActivityLevel{profile.Active, profile.VeryActive}},
	{"active", []profile.ActivityLevel{profile.Active, profile.VeryActive}},
}

var (
	pregnancyKeywords   = []string{"pregnan"}
	lactationKeywords   = []string{"lactat", "breastfeed", "nursing mother"}
	menopauseKeywords   = []string{"menopaus"}
	womensHealthKeyword = []string{"menstrual", "pcos", "fertility", "thyroid"}
	womenKeywords       = []string{"women", "woman", "female", "girl", "maternal", "mother"}

	lifeStageKeywords = append(append(append([]string{}, pregnancyKeywords...), lactationKeywords...), menopauseKeywords...)
)

// seasonNames 季節分類標籤可能使用的寫法
var seasonNames = map[profile.Season][]string{
	profile.Spring: {"spring"},
	profile.Summer: {"summer"},
	profile.Autumn: {"autumn", "fall"},
	profile.Winter: {"winter"},
}

// trimesterPhrases 第 n 孕期的寫法，索引 0 對應第一孕期
var trimesterPhrases = [3][]string{
	{"first trimester", "1st trimester", "trimester 1"},
	{"second trimester", "2nd trimester", "trimester 2"},
	{"third trimester", "3rd trimester", "trimester 3"},
}
