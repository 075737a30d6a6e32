package matcher

import (
	"fmt"
	"sort"
	"strings"

	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/profile"
	"ayurveda-nutrition/internal/pkg/common"
)

const (
	// RelevanceFloor 分數必須嚴格大於此值才輸出
	RelevanceFloor = 0.3

	highThreshold   = 0.8
	mediumThreshold = 0.6

	environmentalBaseline = 0.6
	lifestyleDefault      = 0.3
	pregnancyGeneric      = 0.8
	womensHealthBaseline  = 0.7
	womenGeneralBaseline  = 0.5
)

// Tier 優先等級
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// TierFor 依分數決定優先等級
func TierFor(score float64) Tier {
	switch {
	case score >= highThreshold:
		return TierHigh
	case score >= mediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// Recommendation 一筆分類建議與其匹配分數
type Recommendation struct {
	catalog.Record
	MatchScore float64 `json:"match_score"`
	Priority   Tier    `json:"priority"`
}

// Matcher 以固定關鍵字表計算使用者檔案與分類的匹配分數；不可變，可併發使用
type Matcher struct {
	ageBrackets []AgeBracket
	occupations map[string][]string
	occOrder    []string
	fitness     []fitnessRule
}

// New 建立使用預設關鍵字表的 Matcher
func New() *Matcher {
	m := &Matcher{
		ageBrackets: defaultAgeBrackets,
		occupations: make(map[string][]string, len(defaultOccupations)),
		fitness:     defaultFitness,
	}
	for _, rule := range defaultOccupations {
		key := common.Fold(rule.label)
		m.occupations[key] = common.FoldAll(rule.keywords)
		m.occOrder = append(m.occOrder, key)
	}
	return m
}

// AgeBracketFor 回傳包含該年齡的第一個區間名稱；不在任何區間時回傳 false
func (m *Matcher) AgeBracketFor(age int) (string, bool) {
	for _, b := range m.ageBrackets {
		if b.Contains(age) {
			return b.Name, true
		}
	}
	return "", false
}

// Score 計算單一分類對使用者檔案的匹配分數，範圍 [0, 1]
func (m *Matcher) Score(p profile.Profile, r catalog.Record) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, fmt.Errorf("invalid profile: %w", err)
	}
	if err := r.Validate(); err != nil {
		return 0, fmt.Errorf("invalid category record %q: %w", r.SubLabel, err)
	}
	return m.score(p, r), nil
}

// Match 對整個分類目錄評分，過濾低相關項目並依分數由高到低排序（同分保持目錄順序）
func (m *Matcher) Match(p profile.Profile, records []catalog.Record) ([]Recommendation, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	out := make([]Recommendation, 0)
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid category record %d (%q): %w", i, r.SubLabel, err)
		}
		score := m.score(p, r)
		if score <= RelevanceFloor {
			continue
		}
		out = append(out, Recommendation{
			Record:     r.Clone(),
			MatchScore: score,
			Priority:   TierFor(score),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out, nil
}

// score 每筆分類只經過對應分類軸的一個比較函式，平均值即為該子分數
func (m *Matcher) score(p profile.Profile, r catalog.Record) float64 {
	label := common.Fold(r.SubLabel)

	var sub float64
	switch r.Axis {
	case catalog.AxisAge:
		sub = m.scoreAge(p.Age, label)
	case catalog.AxisGender:
		sub = scoreGender(p, label)
	case catalog.AxisOccupation:
		sub = m.scoreOccupation(p.Occupation, label)
	case catalog.AxisCondition:
		sub = scoreCondition(p.HealthConditions, label)
	case catalog.AxisSeasonal:
		sub = boolScore(containsAny(label, seasonNames[p.Season]))
	case catalog.AxisFitness:
		sub = m.scoreFitness(p.ActivityLevel, label)
	case catalog.AxisEnvironmental:
		sub = environmentalBaseline
	case catalog.AxisLifestyle:
		sub = scoreLifestyle(p.DietaryRestrictions, label)
	}
	return common.Clamp01(sub)
}

func (m *Matcher) scoreAge(age int, label string) float64 {
	for _, b := range m.ageBrackets {
		if containsAny(label, b.Keywords) {
			return boolScore(b.Contains(age))
		}
	}
	return 0
}

func scoreGender(p profile.Profile, label string) float64 {
	if p.Gender != profile.GenderFemale {
		return 0
	}
	switch {
	case containsAny(label, pregnancyKeywords) && p.IsPregnant():
		if t := trimesterIn(label); t != 0 && t == p.Pregnancy.Trimester {
			return 1
		}
		return pregnancyGeneric
	case containsAny(label, lactationKeywords) && p.Lactating:
		return 1
	case containsAny(label, menopauseKeywords) && p.IsMenopausal():
		return 1
	case containsAny(label, lifeStageKeywords):
		// 未處於該階段時視為一般女性標籤
		return womenGeneralBaseline
	case containsAny(label, womensHealthKeyword):
		return womensHealthBaseline
	case containsAny(label, womenKeywords):
		return womenGeneralBaseline
	}
	return 0
}

// trimesterIn 從標籤找出孕期（1..3），沒有標示時回傳 0
func trimesterIn(label string) int {
	for i, phrases := range trimesterPhrases {
		if containsAny(label, phrases) {
			return i + 1
		}
	}
	return 0
}

// scoreOccupation 先以標籤完整比對關鍵字表，再退回「標籤包含表中類別」；
// 職業包含任一關鍵字即命中（短關鍵字如 "it" 會有誤判，保留此行為）
func (m *Matcher) scoreOccupation(occupation, label string) float64 {
	occ := common.Fold(occupation)
	if occ == "" {
		return 0
	}
	keywords, ok := m.occupations[label]
	if !ok {
		for _, key := range m.occOrder {
			if strings.Contains(label, key) {
				keywords = m.occupations[key]
				break
			}
		}
	}
	return boolScore(containsAny(occ, keywords))
}

func scoreCondition(conditions []string, label string) float64 {
	for _, c := range conditions {
		if common.ContainsEither(label, common.Fold(c)) {
			return 1
		}
	}
	return 0
}

func (m *Matcher) scoreFitness(level profile.ActivityLevel, label string) float64 {
	for _, rule := range m.fitness {
		if !strings.Contains(label, rule.keyword) {
			continue
		}
		for _, l := range rule.levels {
			if l == level {
				return 1
			}
		}
		return 0
	}
	return 0
}

func scoreLifestyle(restrictions []string, label string) float64 {
	for _, r := range restrictions {
		if f := common.Fold(r); f != "" && strings.Contains(label, f) {
			return 1
		}
	}
	return lifestyleDefault
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func boolScore(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}
