// Package types contains common types used across the application
package types

// Entry represents a leaderboard row for one player of the current session.
type Entry struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	TotalScore int    `json:"total_score"`
	Winner     bool   `json:"winner"`
}
