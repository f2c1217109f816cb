package report

import (
	"fmt"
	"sort"

	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/google/uuid"
)

// RankedNeed is one need from the latest snapshot with its resolved catalog
// question reference.
type RankedNeed struct {
	NeedKey    string     `json:"needKey"`
	NeedLabel  string     `json:"needLabel"`
	Score      float64    `json:"score"`
	Category   string     `json:"category"`
	QuestionID *uuid.UUID `json:"questionId"`
}

// RankNeeds sorts all needs in a snapshot ascending by score. Ties break on
// needKey so the ranking is stable.
func RankNeeds(scores map[string]models.NeedScore, lookup QuestionLookup) []RankedNeed {
	ranked := make([]RankedNeed, 0, len(scores))
	for key, data := range scores {
		label := data.NeedLabel
		if label == "" {
			label = key
		}
		need := RankedNeed{
			NeedKey:   key,
			NeedLabel: label,
			Score:     data.Score,
			Category:  data.Category,
		}
		if lookup != nil {
			need.QuestionID = lookup(key, data.Category)
		}
		ranked = append(ranked, need)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score < ranked[j].Score
		}
		return ranked[i].NeedKey < ranked[j].NeedKey
	})

	return ranked
}

// Recommendation is one fixed-shape prompt derived from the primary need.
type Recommendation struct {
	Type       string     `json:"type"` // learn, goal, coach
	NeedKey    string     `json:"needKey"`
	NeedLabel  string     `json:"needLabel"`
	QuestionID *uuid.UUID `json:"questionId"`
	Message    string     `json:"message"`
}

// Recommendations emits exactly three records (learn, goal, coach) for the
// primary need, or an empty list when there is none.
func Recommendations(primary *RankedNeed) []Recommendation {
	if primary == nil {
		return []Recommendation{}
	}

	label := primary.NeedLabel
	if label == "" {
		label = primary.NeedKey
	}

	return []Recommendation{
		{
			Type:       "learn",
			NeedKey:    primary.NeedKey,
			NeedLabel:  label,
			QuestionID: primary.QuestionID,
			Message:    fmt.Sprintf("Explore Learn & Grow content for %s", label),
		},
		{
			Type:       "goal",
			NeedKey:    primary.NeedKey,
			NeedLabel:  label,
			QuestionID: primary.QuestionID,
			Message:    fmt.Sprintf("Set a goal to improve %s", label),
		},
		{
			Type:       "coach",
			NeedKey:    primary.NeedKey,
			NeedLabel:  label,
			QuestionID: primary.QuestionID,
			Message:    fmt.Sprintf("Ask your coach about %s", label),
		},
	}
}
