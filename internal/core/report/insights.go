package report

import (
	"fmt"

	"ayurveda-nutrition/internal/core/profile"
)

var constitutionGuidance = map[profile.Constitution]string{
	profile.Vata:       "warm, moist and grounding foods that favour sweet, sour and salty tastes",
	profile.Pitta:      "cooling, non-spicy foods that favour sweet, bitter and astringent tastes",
	profile.Kapha:      "light, warm and dry foods that favour pungent, bitter and astringent tastes",
	profile.VataPitta:  "mildly warm but not spicy meals with plenty of sweet taste",
	profile.PittaKapha: "light, cooling meals that lean on bitter and astringent tastes",
	profile.VataKapha:  "warm, freshly cooked meals with pungent and salty accents",
	profile.Tridoshic:  "a varied diet that includes all six tastes in moderation",
}

var ageGuidance = map[string]string{
	"infant":      "Infancy is kapha-dominant; keep foods simple, soft and easy to digest.",
	"toddler":     "Toddlers need frequent small meals with gentle spices to build digestion.",
	"child":       "Childhood is a kapha phase; limit heavy dairy and sweets while supporting growth.",
	"teen":        "The teenage years call for nourishing meals that steady energy and mood.",
	"young-adult": "Young adulthood is pitta-dominant; avoid excess heat, alcohol and late meals.",
	"middle-age":  "Middle age brings pitta toward vata; favour regular meals and digestive spices.",
	"elderly":     "Later life is vata-dominant; choose warm, moist, well-cooked foods.",
	"adult":       "As an adult, keep meal times regular and portions moderate.",
}

var activityGuidance = map[profile.ActivityLevel]string{
	profile.Sedentary:  "With a sedentary routine, favour lighter meals and avoid heavy food late in the day.",
	profile.Moderate:   "Moderate activity suits balanced meals with whole grains and legumes.",
	profile.Active:     "An active routine needs extra protein and steady complex carbohydrates.",
	profile.VeryActive: "High training loads call for generous hydration, ghee and easily digested protein.",
}

var seasonGuidance = map[profile.Season]string{
	profile.Spring: "In spring, kapha accumulates; choose light, warm and bitter foods.",
	profile.Summer: "In summer, pitta rises; emphasise cooling, hydrating foods.",
	profile.Autumn: "In autumn, vata increases; prefer warm, oily and grounding meals.",
	profile.Winter: "In winter, digestion is strong; nourishing, warming foods are well tolerated.",
}

// insights 以固定模板依體質、年齡區間、活動量與季節產生說明
func (b *Builder) insights(p profile.Profile, s Summary) []string {
	out := make([]string, 0, 5)
	if g, ok := constitutionGuidance[p.Constitution]; ok {
		out = append(out, fmt.Sprintf("Your %s constitution is best supported by %s.", p.Constitution, g))
	}

	bracket := "adult"
	if b.brackets != nil {
		if name, ok := b.brackets.AgeBracketFor(p.Age); ok {
			bracket = name
		}
	}
	out = append(out, ageGuidance[bracket])

	if g, ok := activityGuidance[p.ActivityLevel]; ok {
		out = append(out, g)
	}
	if g, ok := seasonGuidance[p.Season]; ok {
		out = append(out, g)
	}

	if s.TotalCategories == 0 {
		out = append(out, "No catalog category matched your profile strongly; general guidance applies.")
	} else {
		out = append(out, fmt.Sprintf("%d of %d matched categories are high priority for you.", s.HighPriority, s.TotalCategories))
	}
	return out
}
