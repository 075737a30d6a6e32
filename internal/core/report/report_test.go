package report

import (
	"testing"
	"time"

	"ayurveda-nutrition/internal/core/catalog"
	"ayurveda-nutrition/internal/core/matcher"
	"ayurveda-nutrition/internal/core/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestBuilder() *Builder {
	return NewBuilder(matcher.New(),
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "report-1" }),
	)
}

func testProfile() profile.Profile {
	return profile.Profile{
		Age:           28,
		Gender:        profile.GenderFemale,
		Constitution:  profile.VataPitta,
		Occupation:    "Software Engineer",
		Season:        profile.Summer,
		ActivityLevel: profile.Moderate,
	}
}

func recommendation(label string, score float64, foods, avoid []string) matcher.Recommendation {
	return matcher.Recommendation{
		Record:     catalog.Record{Axis: catalog.AxisOccupation, SubLabel: label, RecommendedFoods: foods, AvoidFoods: avoid},
		MatchScore: score,
		Priority:   matcher.TierFor(score),
	}
}

func TestBuildEmpty(t *testing.T) {
	r, err := newTestBuilder().Build(testProfile(), nil)
	require.NoError(t, err)

	assert.Equal(t, "report-1", r.ID)
	assert.Equal(t, fixedTime, r.GeneratedAt)
	assert.Equal(t, Summary{}, r.Summary)
	assert.Zero(t, r.Summary.AverageMatchScore)
	assert.Zero(t, r.Summary.TotalCategories)
	assert.NotNil(t, r.Recommendations)
	assert.Equal(t, []string{monitorAction, consultAction}, r.ActionItems)
	assert.Contains(t, r.Insights[len(r.Insights)-1], "No catalog category")
}

func TestBuildSummaryAndActions(t *testing.T) {
	recs := []matcher.Recommendation{
		recommendation("Software Engineers", 1, []string{"almonds", "ghee", "blueberries", "dates"}, []string{"coffee", "fried snacks", "soda"}),
		recommendation("PCOS Management", 0.7, []string{"cinnamon"}, nil),
		recommendation("Urban Pollution", 0.6, nil, nil),
		recommendation("Women's Wellness", 0.5, nil, nil),
	}
	r, err := newTestBuilder().Build(testProfile(), recs)
	require.NoError(t, err)

	assert.Equal(t, Summary{
		TotalCategories:   4,
		HighPriority:      1,
		MediumPriority:    2,
		LowPriority:       1,
		AverageMatchScore: 0.7,
	}, r.Summary)

	assert.Equal(t, []string{
		"Include more almonds, ghee, blueberries in your diet (Software Engineers)",
		"Limit or avoid coffee, fried snacks",
		monitorAction,
		consultAction,
	}, r.ActionItems)
	assert.Contains(t, r.Insights, "1 of 4 matched categories are high priority for you.")
}

func TestBuildUsesTopScoreForActions(t *testing.T) {
	recs := []matcher.Recommendation{
		recommendation("Teachers", 0.6, []string{"tulsi tea"}, nil),
		recommendation("Software Engineers", 1, []string{"almonds"}, nil),
	}
	r, err := newTestBuilder().Build(testProfile(), recs)
	require.NoError(t, err)
	assert.Equal(t, "Include more almonds in your diet (Software Engineers)", r.ActionItems[0])
}

func TestBuildInsights(t *testing.T) {
	r, err := newTestBuilder().Build(testProfile(), nil)
	require.NoError(t, err)
	require.Len(t, r.Insights, 5)
	assert.Contains(t, r.Insights[0], "vata-pitta constitution")
	assert.Equal(t, ageGuidance["young-adult"], r.Insights[1])
	assert.Equal(t, activityGuidance[profile.Moderate], r.Insights[2])
	assert.Equal(t, seasonGuidance[profile.Summer], r.Insights[3])

	p := testProfile()
	p.Age = 38
	r, err = newTestBuilder().Build(p, nil)
	require.NoError(t, err)
	assert.Equal(t, ageGuidance["adult"], r.Insights[1])
}

func TestBuildIsolatesInput(t *testing.T) {
	p := testProfile()
	p.HealthConditions = []string{"Eye Strain"}
	recs := []matcher.Recommendation{recommendation("Software Engineers", 1, []string{"almonds"}, nil)}

	r, err := newTestBuilder().Build(p, recs)
	require.NoError(t, err)

	p.HealthConditions[0] = "changed"
	recs[0].RecommendedFoods[0] = "changed"
	assert.Equal(t, "Eye Strain", r.Profile.HealthConditions[0])
	assert.Equal(t, "almonds", r.Recommendations[0].RecommendedFoods[0])
}

func TestBuildRejectsInvalidProfile(t *testing.T) {
	p := testProfile()
	p.Season = "monsoon"
	_, err := newTestBuilder().Build(p, nil)
	assert.Error(t, err)
}

func TestRestamp(t *testing.T) {
	now := fixedTime
	ids := 0
	b := NewBuilder(matcher.New(),
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string {
			ids++
			return "report-" + string(rune('0'+ids))
		}),
	)

	first, err := b.Build(testProfile(), []matcher.Recommendation{
		recommendation("Software Engineers", 1, []string{"almonds"}, nil),
	})
	require.NoError(t, err)

	now = fixedTime.Add(time.Hour)
	again := b.Restamp(first)
	assert.Equal(t, "report-2", again.ID)
	assert.Equal(t, fixedTime.Add(time.Hour), again.GeneratedAt)
	assert.Equal(t, first.Summary, again.Summary)
	assert.Equal(t, first.Recommendations, again.Recommendations)
	assert.Equal(t, "report-1", first.ID)
}
