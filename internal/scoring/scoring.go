// Package scoring aggregates raw 1–7 assessment answers into per-category,
// per-need, and overall scores.
package scoring

import (
	"errors"
	"math"

	"github.com/ascendapp/ascend-api/internal/models"
)

const (
	MinScore = 1
	MaxScore = 7
)

// ErrNoValidResponses is returned when every submitted entry was dropped
// during validation.
var ErrNoValidResponses = errors.New("no valid responses")

// ParseScore coerces a raw JSON value into a 1–7 integer score. Returns
// false for anything non-numeric or out of range; the caller drops those
// entries instead of rejecting the submission.
func ParseScore(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	score := int(f)
	if score < MinScore || score > MaxScore {
		return 0, false
	}
	return score, true
}

// Result holds the aggregates for one submission.
type Result struct {
	CategoryScores map[string]float64
	NeedScores     map[string]models.NeedScore
	OverallScore   float64
}

// Aggregate computes category and need means from validated responses.
// The overall score is the mean of the category means, not the mean of all
// raw responses: categories are weighted equally no matter how many needs
// each one has.
func Aggregate(responses []models.AssessmentResponse) (Result, error) {
	if len(responses) == 0 {
		return Result{}, ErrNoValidResponses
	}

	categoryTotals := map[string]int{}
	categoryCounts := map[string]int{}
	needTotals := map[string]int{}
	needCounts := map[string]int{}
	needMeta := map[string]models.NeedScore{}

	for _, r := range responses {
		categoryTotals[r.Category] += r.MainScore
		categoryCounts[r.Category]++

		if r.NeedKey != "" {
			needTotals[r.NeedKey] += r.MainScore
			needCounts[r.NeedKey]++
			if _, seen := needMeta[r.NeedKey]; !seen {
				needMeta[r.NeedKey] = models.NeedScore{
					NeedLabel: r.NeedLabel,
					Category:  r.Category,
				}
			}
		}
	}

	result := Result{
		CategoryScores: make(map[string]float64, len(categoryTotals)),
		NeedScores:     make(map[string]models.NeedScore, len(needTotals)),
	}

	var sum float64
	for cat, total := range categoryTotals {
		avg := Round2(float64(total) / float64(categoryCounts[cat]))
		result.CategoryScores[cat] = avg
		sum += avg
	}
	result.OverallScore = Round2(sum / float64(len(result.CategoryScores)))

	for key, total := range needTotals {
		meta := needMeta[key]
		meta.Score = Round2(float64(total) / float64(needCounts[key]))
		result.NeedScores[key] = meta
	}

	return result, nil
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
