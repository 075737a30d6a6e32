package profile

import (
	"testing"

	"ayurveda-nutrition/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() Profile {
	return Profile{
		Age:           28,
		Gender:        GenderFemale,
		Constitution:  VataPitta,
		Occupation:    "Software Engineer",
		Season:        Summer,
		ActivityLevel: Moderate,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validProfile().Validate())

	tests := []struct {
		name   string
		mutate func(*Profile)
		field  string
	}{
		{"negative age", func(p *Profile) { p.Age = -1 }, "age"},
		{"missing gender", func(p *Profile) { p.Gender = "" }, "gender"},
		{"unknown gender", func(p *Profile) { p.Gender = "robot" }, "gender"},
		{"missing constitution", func(p *Profile) { p.Constitution = "" }, "constitution"},
		{"unknown season", func(p *Profile) { p.Season = "monsoon" }, "season"},
		{"missing activity", func(p *Profile) { p.ActivityLevel = "" }, "activity_level"},
		{"bad trimester", func(p *Profile) { p.Pregnancy = &Pregnancy{Trimester: 4} }, "pregnancy.trimester"},
		{"male pregnancy", func(p *Profile) {
			p.Gender = GenderMale
			p.Pregnancy = &Pregnancy{Trimester: 1}
		}, "pregnancy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, common.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestClone(t *testing.T) {
	p := validProfile()
	p.HealthConditions = []string{"Eye Strain"}
	p.Pregnancy = &Pregnancy{Trimester: 2}

	c := p.Clone()
	c.HealthConditions[0] = "changed"
	c.Pregnancy.Trimester = 3

	assert.Equal(t, "Eye Strain", p.HealthConditions[0])
	assert.Equal(t, 2, p.Pregnancy.Trimester)
}

func TestParseConstitution(t *testing.T) {
	tests := map[string]Constitution{
		"Vata":          Vata,
		"pitta_vata":    VataPitta,
		"Vata Pitta":    VataPitta,
		"kapha-pitta":   PittaKapha,
		"Kapha-Vata":    VataKapha,
		"tri-doshic":    Tridoshic,
		"Tridoshic":     Tridoshic,
		"":              "",
	}
	for in, want := range tests {
		got, err := ParseConstitution(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseConstitution("fire")
	assert.True(t, common.IsValidationError(err))
}

func TestParseEnums(t *testing.T) {
	s, err := ParseSeason("Fall")
	require.NoError(t, err)
	assert.Equal(t, Autumn, s)

	a, err := ParseActivityLevel("Very Active")
	require.NoError(t, err)
	assert.Equal(t, VeryActive, a)

	a, err = ParseActivityLevel("very_active")
	require.NoError(t, err)
	assert.Equal(t, VeryActive, a)

	g, err := ParseGender("F")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	_, err = ParseSeason("monsoon")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	p := Profile{
		Age:           40,
		Gender:        "Woman",
		Constitution:  "Kapha Pitta",
		Season:        "fall",
		ActivityLevel: "Very Active",
		Goals:         []string{"sleep"},
	}
	n := p.Normalize()
	assert.Equal(t, GenderFemale, n.Gender)
	assert.Equal(t, PittaKapha, n.Constitution)
	assert.Equal(t, Autumn, n.Season)
	assert.Equal(t, VeryActive, n.ActivityLevel)
	require.NoError(t, n.Validate())

	n.Goals[0] = "changed"
	assert.Equal(t, "sleep", p.Goals[0])

	// 無法解析的值保留，由 Validate 回報
	bad := Profile{Gender: "female", Constitution: "fire", Season: "summer", ActivityLevel: "moderate"}.Normalize()
	assert.Equal(t, Constitution("fire"), bad.Constitution)
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"fire"`)
}
