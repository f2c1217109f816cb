package report

import (
	"sort"
	"strings"

	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/google/uuid"
)

// NeedResolver maps a pyramid need label to a needKey in a snapshot's need
// scores. It is an isolated strategy so the substring heuristic can be
// swapped for exact-key matching without touching report assembly.
type NeedResolver interface {
	Resolve(label string, scores map[string]models.NeedScore) (needKey string, ok bool)
}

// SubstringResolver is the default, best-effort matcher: case-insensitive
// substring containment in either direction, comparing the part of the
// pyramid label before any ":" against the need's label. Two needs sharing a
// common word can mis-attribute; candidates are visited in sorted-key order
// and the first match wins.
type SubstringResolver struct{}

func (SubstringResolver) Resolve(label string, scores map[string]models.NeedScore) (string, bool) {
	needle := strings.ToLower(label)
	if idx := strings.Index(needle, ":"); idx >= 0 {
		needle = needle[:idx]
	}
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return "", false
	}

	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		scoreLabel := scores[key].NeedLabel
		if scoreLabel == "" {
			scoreLabel = key
		}
		candidate := strings.ToLower(scoreLabel)
		if strings.Contains(candidate, needle) || strings.Contains(strings.ToLower(label), candidate) {
			return key, true
		}
	}
	return "", false
}

// PyramidNeed is one row of the pyramid structure: a fixed label with a
// best-effort resolved score. Unmatched needs report score 0 and a nil
// question reference.
type PyramidNeed struct {
	NeedLabel  string     `json:"needLabel"`
	NeedKey    *string    `json:"needKey"`
	Score      float64    `json:"score"`
	QuestionID *uuid.UUID `json:"questionId"`
	Order      int        `json:"order"`
}

// QuestionLookup resolves a (needKey, category) pair to the catalog question
// id, or nil when absent. Absence is normal, not an error.
type QuestionLookup func(needKey, category string) *uuid.UUID

// BuildPyramid attaches snapshot scores to the fixed pyramid needs per
// category using the given resolver.
func BuildPyramid(scores map[string]models.NeedScore, resolver NeedResolver, lookup QuestionLookup) map[string][]PyramidNeed {
	result := make(map[string][]PyramidNeed, len(PyramidNeeds))

	for category, labels := range PyramidNeeds {
		rows := make([]PyramidNeed, 0, len(labels))
		for i, label := range labels {
			row := PyramidNeed{
				NeedLabel: label,
				Order:     i + 1,
			}
			if key, ok := resolver.Resolve(label, scores); ok {
				k := key
				row.NeedKey = &k
				row.Score = scores[key].Score
				if lookup != nil {
					row.QuestionID = lookup(key, category)
				}
			}
			rows = append(rows, row)
		}
		result[category] = rows
	}

	return result
}
