// Package report assembles assessment reports: performance bands, the needs
// pyramid, lowest needs, linked learning content, and recommendations.
package report

import (
	"sort"

	"github.com/ascendapp/ascend-api/internal/models"
)

// PerformanceBand is a named score range used by chart rendering. These are
// presentation constants, not computed values.
type PerformanceBand struct {
	Label     string    `json:"label"`
	SubLabels []string  `json:"subLabels"`
	Range     []float64 `json:"range"`
	Color     string    `json:"color"`
}

var PerformanceBands = []PerformanceBand{
	{Label: "Dysfunctional", SubLabels: []string{"Neurotic", "Psychotic"}, Range: []float64{1, 1.5}, Color: "#E63946"},
	{Label: "Extremes", SubLabels: []string{"Too much", "Too Little"}, Range: []float64{1.5, 2.5}, Color: "#DC3545"},
	{Label: "Not getting by", SubLabels: []string{"Cravings", "Dissatisfaction"}, Range: []float64{2.5, 3.5}, Color: "#F1C40F"},
	{Label: "Doing OK", SubLabels: []string{"Getting By", "Normal Concerns"}, Range: []float64{3.5, 4.5}, Color: "#FFC107"},
	{Label: "Getting by well", SubLabels: []string{"Feeling Good"}, Range: []float64{4.5, 5.5}, Color: "#90EE90"},
	{Label: "Doing Good", SubLabels: []string{"Thriving"}, Range: []float64{5.5, 6.5}, Color: "#2ECC71"},
	{Label: "Optimizing", SubLabels: []string{"Super-Thriving"}, Range: []float64{6.5, 7}, Color: "#27AE60"},
	{Label: "Maximizing", SubLabels: []string{"At ones very best"}, Range: []float64{7, 7}, Color: "#1E8449"},
}

var CategoryDescriptions = map[string]string{
	models.CategorySurvival:  "Physical needs, health, energy, rest, and nutrition.",
	models.CategorySafety:    "Stability, financial security, and sense of control.",
	models.CategorySocial:    "Belonging, love, connection, and relationships.",
	models.CategorySelf:      "Confidence, respect, and personal achievement.",
	models.CategoryMetaNeeds: "Purpose, creativity, contribution, and self-actualization.",
}

// ChartMeta is the static presentation block attached to every report.
type ChartMeta struct {
	PerformanceBands     []PerformanceBand `json:"performanceBands"`
	CategoryDescriptions map[string]string `json:"categoryDescriptions"`
}

func StaticChartMeta() ChartMeta {
	return ChartMeta{
		PerformanceBands:     PerformanceBands,
		CategoryDescriptions: CategoryDescriptions,
	}
}

// PyramidNeeds is the fixed ordered list of need labels per category. It is
// deliberately independent of what the catalog currently contains; snapshot
// scores are attached to it by fuzzy label matching.
var PyramidNeeds = map[string][]string{
	models.CategorySurvival: {
		"Money",
		"Sex",
		"Exercise",
		"Vitality",
		"Weight Management",
		"Food",
		"Sleep",
	},
	models.CategorySafety: {
		"Sense of Control: Personal Power / efficacy",
		"Sense of Order / Structure",
		"Stability in Life",
		"Career / Job Safety",
		"Physical / Personal Safety",
	},
	models.CategorySocial: {
		"Group Acceptance / Connection",
		"Bonding with Partner / Lover",
		"Bonding with Significant People",
		"Love / Affection",
		"Social connection: Friends / companions",
	},
	models.CategorySelf: {
		"Importance of your voice and opinion",
		"Honor and Dignity from colleagues",
		"Sense of Respect for Achievements",
		"Sense of Human dignity / Value as Person",
	},
	models.CategoryMetaNeeds: {
		"Cognitive needs: to know, understand, learn",
		"Contribution needs: to make a difference",
		"Conative needs: to choose your unique way of life",
		"Love needs: to care and extend yourself to others",
		"Truth needs: to know what is true, real, and authentic",
		"Aesthetic needs: to see, enjoy, and create beauty",
		"Expressive needs: to be and express your best self",
	},
}

// LowestCategories returns the n categories with the smallest scores,
// ascending. Ties break on the fixed pyramid category order so the result is
// stable across calls.
func LowestCategories(scores map[string]float64, n int) []string {
	order := map[string]int{}
	for i, c := range models.CategoryOrder {
		order[c] = i
	}

	cats := make([]string, 0, len(scores))
	for c := range scores {
		cats = append(cats, c)
	}
	sort.SliceStable(cats, func(i, j int) bool {
		if scores[cats[i]] != scores[cats[j]] {
			return scores[cats[i]] < scores[cats[j]]
		}
		return order[cats[i]] < order[cats[j]]
	})

	if len(cats) > n {
		cats = cats[:n]
	}
	return cats
}
