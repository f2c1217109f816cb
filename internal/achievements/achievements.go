// Package achievements derives a user's points, badge tier, focus streak,
// and streak-milestone unlocks from their activity history. State is always
// recomputed wholesale from the source rows — counters are never trusted or
// incremented in place, which keeps recalculation idempotent.
package achievements

import (
	"sort"
	"strconv"
	"time"

	"github.com/ascendapp/ascend-api/internal/models"
)

// Point values per activity.
const (
	PointsPerAssessment = 100
	PointsPerGoal       = 200
	PointsPerReflection = 50
	PointsPerActiveDay  = 25
	PointsPerStreakDay  = 10
)

type BadgeLevel struct {
	Level          int    `json:"level"`
	Name           string `json:"name"`
	PointsRequired int    `json:"pointsRequired"`
}

var BadgeLevels = []BadgeLevel{
	{Level: 1, Name: "Bronze", PointsRequired: 0},
	{Level: 2, Name: "Silver", PointsRequired: 1000},
	{Level: 3, Name: "Gold", PointsRequired: 3000},
	{Level: 4, Name: "Platinum", PointsRequired: 6000},
	{Level: 5, Name: "Diamond", PointsRequired: 10000},
}

// StreakBadge is a focus-streak milestone unlocked at a fixed day threshold.
type StreakBadge struct {
	Days      int
	Name      string
	BadgeType string
}

var StreakBadges = []StreakBadge{
	{Days: 3, Name: "Getting Started", BadgeType: "bronze"},
	{Days: 7, Name: "Week Warrior", BadgeType: "silver"},
	{Days: 14, Name: "Two Week Champion", BadgeType: "silver"},
	{Days: 30, Name: "Monthly Master", BadgeType: "gold"},
	{Days: 60, Name: "Two Month Hero", BadgeType: "gold"},
	{Days: 90, Name: "Quarter Champion", BadgeType: "platinum"},
	{Days: 180, Name: "Half Year Hero", BadgeType: "platinum"},
	{Days: 365, Name: "Year Legend", BadgeType: "diamond"},
}

// BadgeFor returns the highest badge whose threshold is <= totalPoints.
func BadgeFor(totalPoints int) BadgeLevel {
	current := BadgeLevels[0]
	for _, b := range BadgeLevels {
		if totalPoints >= b.PointsRequired {
			current = b
		}
	}
	return current
}

// BadgeProgress describes how far the user is toward the next badge tier.
type BadgeProgress struct {
	NextBadgeLevel     int    `json:"nextBadgeLevel"`
	NextBadgeName      string `json:"nextBadgeName"`
	PointsRequired     int    `json:"pointsRequired"`
	PointsToNext       int    `json:"pointsToNext"`
	CurrentPoints      int    `json:"currentPoints"`
	ProgressPercentage int    `json:"progressPercentage"`
}

// NextBadgeProgress computes progress toward the next tier. At the max tier
// progress is pinned at 100%.
func NextBadgeProgress(totalPoints int) BadgeProgress {
	current := BadgeFor(totalPoints)
	if current.Level == BadgeLevels[len(BadgeLevels)-1].Level {
		return BadgeProgress{
			NextBadgeLevel:     current.Level,
			NextBadgeName:      current.Name,
			CurrentPoints:      totalPoints,
			ProgressPercentage: 100,
		}
	}

	next := BadgeLevels[current.Level] // levels are 1-based, slice is 0-based
	span := next.PointsRequired - current.PointsRequired
	earned := totalPoints - current.PointsRequired
	pct := earned * 100 / span
	if pct > 100 {
		pct = 100
	}

	return BadgeProgress{
		NextBadgeLevel:     next.Level,
		NextBadgeName:      next.Name,
		PointsRequired:     next.PointsRequired,
		PointsToNext:       next.PointsRequired - totalPoints,
		CurrentPoints:      totalPoints,
		ProgressPercentage: pct,
	}
}

// DateOnly truncates a timestamp to its local calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DistinctDays reduces timestamps to their unique calendar days, sorted
// descending (most recent first).
func DistinctDays(times []time.Time) []time.Time {
	seen := map[time.Time]bool{}
	var days []time.Time
	for _, t := range times {
		day := DateOnly(t)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// FocusStreak counts consecutive active calendar days ending today or
// yesterday. A missed day resets the streak to zero — no grace period.
// days must be distinct calendar days sorted descending.
func FocusStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today := DateOnly(now)
	yesterday := today.AddDate(0, 0, -1)

	mostRecent := DateOnly(days[0])
	if !mostRecent.Equal(today) && !mostRecent.Equal(yesterday) {
		return 0
	}

	streak := 1
	expected := mostRecent.AddDate(0, 0, -1)
	for _, day := range days[1:] {
		d := DateOnly(day)
		if d.Equal(expected) {
			streak++
			expected = expected.AddDate(0, 0, -1)
		} else if d.Before(expected) {
			break
		}
	}
	return streak
}

// NewStreakUnlocks returns the streak badges earned by the current streak
// that are not already present, keyed by achievement id so a badge is never
// re-awarded.
func NewStreakUnlocks(streak int, existing []models.UnlockedAchievement, now time.Time) []models.UnlockedAchievement {
	have := map[string]bool{}
	for _, a := range existing {
		have[a.AchievementID] = true
	}

	var unlocked []models.UnlockedAchievement
	for _, badge := range StreakBadges {
		id := streakAchievementID(badge.Days)
		if streak >= badge.Days && !have[id] {
			unlocked = append(unlocked, models.UnlockedAchievement{
				AchievementID:   id,
				AchievementName: badge.Name,
				BadgeType:       badge.BadgeType,
				UnlockedAt:      now,
			})
		}
	}
	return unlocked
}

func streakAchievementID(days int) string {
	return "streak_" + strconv.Itoa(days)
}
