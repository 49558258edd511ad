// Package scoring computes scores, ranks, and answer similarity.
package scoring

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/okian/riddlerush/internal/domain/model"
)

// CalculateScore combines a base score with a bonus, clamped at zero.
func CalculateScore(base, bonus int) int {
	score := base + bonus
	if score < 0 {
		return 0
	}
	return score
}

// Rank returns the 1-based position of a player ordered by total score
// descending. The sort is stable so ties keep their roster order.
// Returns 0 if the player is not part of the roster.
func Rank(player model.Player, all []model.Player) int {
	sorted := make([]model.Player, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})
	for i := range sorted {
		if sorted[i].ID == player.ID {
			return i + 1
		}
	}
	return 0
}

// IsWinner reports whether a player ranks first with a positive total.
// A zero-score game has no winner.
func IsWinner(player model.Player, all []model.Player) bool {
	return Rank(player, all) == 1 && player.TotalScore > 0
}

// GameDuration returns the elapsed play time. A nil end means the game is
// still running and is measured against now.
func GameDuration(start time.Time, end *time.Time) time.Duration {
	stop := time.Now()
	if end != nil {
		stop = *end
	}
	d := stop.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

// FormatDuration renders a duration for display, e.g. "2m 5s" or "45s".
func FormatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	minutes := seconds / 60
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	}
	return fmt.Sprintf("%ds", seconds)
}

// Shuffle returns a Fisher-Yates shuffled copy of the categories.
func Shuffle(categories []model.Category, rng *rand.Rand) []model.Category {
	shuffled := make([]model.Category, len(categories))
	copy(shuffled, categories)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// RandomCategories picks up to count categories without repetition.
func RandomCategories(categories []model.Category, count int, rng *rand.Rand) []model.Category {
	shuffled := Shuffle(categories, rng)
	if count >= len(shuffled) {
		return shuffled
	}
	return shuffled[:count]
}
