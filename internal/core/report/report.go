package report

import (
	"fmt"
	"time"

	"ayurveda-nutrition/internal/core/matcher"
	"ayurveda-nutrition/internal/core/profile"
	"ayurveda-nutrition/internal/pkg/common"
)

const (
	maxActionFoods = 3
	maxAvoidFoods  = 2

	monitorAction = "Monitor your body's response over the next 2-4 weeks"
	consultAction = "Consult a qualified Ayurvedic practitioner before major dietary changes"
)

// Summary 各優先等級的數量與平均分數
type Summary struct {
	TotalCategories   int     `json:"total_categories"`
	HighPriority      int     `json:"high_priority"`
	MediumPriority    int     `json:"medium_priority"`
	LowPriority       int     `json:"low_priority"`
	AverageMatchScore float64 `json:"average_match_score"`
}

// Report 建議報告，建立後不再修改
type Report struct {
	ID              string                   `json:"id"`
	Profile         profile.Profile          `json:"profile"`
	Recommendations []matcher.Recommendation `json:"recommendations"`
	Summary         Summary                  `json:"summary"`
	Insights        []string                 `json:"insights"`
	ActionItems     []string                 `json:"action_items"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

// AgeBracketer 提供年齡區間名稱
type AgeBracketer interface {
	AgeBracketFor(age int) (string, bool)
}

// Builder 組裝建議報告
type Builder struct {
	brackets AgeBracketer
	now      func() time.Time
	newID    func() string
}

// Option Builder 設定
type Option func(*Builder)

// WithClock 注入時間來源
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDGenerator 注入報告 ID 產生器
func WithIDGenerator(gen func() string) Option {
	return func(b *Builder) { b.newID = gen }
}

// NewBuilder 建立 Builder
func NewBuilder(brackets AgeBracketer, opts ...Option) *Builder {
	b := &Builder{
		brackets: brackets,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    common.GenerateUUID,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build 由排序後的建議清單產生報告；清單為空時摘要為零值
func (b *Builder) Build(p profile.Profile, recs []matcher.Recommendation) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, fmt.Errorf("invalid profile: %w", err)
	}

	copied := make([]matcher.Recommendation, len(recs))
	for i, r := range recs {
		copied[i] = r
		copied[i].Record = r.Record.Clone()
	}

	summary := Summarize(copied)
	return Report{
		ID:              b.newID(),
		Profile:         p.Clone(),
		Recommendations: copied,
		Summary:         summary,
		Insights:        b.insights(p, summary),
		ActionItems:     actionItems(copied),
		GeneratedAt:     b.now(),
	}, nil
}

// Restamp 沿用報告內容，重新產生 ID 與時間
func (b *Builder) Restamp(r Report) Report {
	r.ID = b.newID()
	r.GeneratedAt = b.now()
	return r
}

// Summarize 計算摘要；空清單時平均分數為 0
func Summarize(recs []matcher.Recommendation) Summary {
	s := Summary{TotalCategories: len(recs)}
	if len(recs) == 0 {
		return s
	}
	var total float64
	for _, r := range recs {
		total += r.MatchScore
		switch r.Priority {
		case matcher.TierHigh:
			s.HighPriority++
		case matcher.TierMedium:
			s.MediumPriority++
		default:
			s.LowPriority++
		}
	}
	s.AverageMatchScore = common.Round(total/float64(len(recs)), 2)
	return s
}

// actionItems 只取分數最高的一筆建議，最後附上兩項固定提醒
func actionItems(recs []matcher.Recommendation) []string {
	items := make([]string, 0, 4)
	if top, ok := topRecommendation(recs); ok {
		if foods := firstN(top.RecommendedFoods, maxActionFoods); len(foods) > 0 {
			items = append(items, fmt.Sprintf("Include more %s in your diet (%s)", common.JoinList(foods), top.SubLabel))
		}
		if avoid := firstN(top.AvoidFoods, maxAvoidFoods); len(avoid) > 0 {
			items = append(items, fmt.Sprintf("Limit or avoid %s", common.JoinList(avoid)))
		}
	}
	return append(items, monitorAction, consultAction)
}

// topRecommendation 分數最高者，同分取先出現的
func topRecommendation(recs []matcher.Recommendation) (matcher.Recommendation, bool) {
	if len(recs) == 0 {
		return matcher.Recommendation{}, false
	}
	best := 0
	for i := 1; i < len(recs); i++ {
		if recs[i].MatchScore > recs[best].MatchScore {
			best = i
		}
	}
	return recs[best], true
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
