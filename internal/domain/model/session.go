// Package model contains domain models passed between layers.
package model

import "time"

// Status is the lifecycle state of a game session.
type Status string

// Session states. Completed and Abandoned are terminal.
const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// GameSession is one complete multi-round game for a fixed roster.
// The session store owns the live instance exclusively; once archived it
// becomes part of an immutable history list.
type GameSession struct {
	ID           string              `json:"id"`
	GameName     string              `json:"gameName,omitempty"`
	Players      []Player            `json:"players"`
	CurrentRound int                 `json:"currentRound"` // >= 1, only increases
	Category     Category            `json:"category"`
	Letter       string              `json:"letter"`
	StartTime    time.Time           `json:"startTime"`
	EndTime      *time.Time          `json:"endTime,omitempty"`
	Status       Status              `json:"status"`
	RoundHistory []RoundHistoryEntry `json:"roundHistory"`
	Attempts     []GameAttempt       `json:"attempts,omitempty"` // legacy single-player
}

// Active reports whether the session still accepts mutations.
func (s *GameSession) Active() bool {
	return s != nil && s.Status == StatusActive
}

// RoundHistoryEntry records the outcome of one completed round.
// Entries are append-only, one per round.
type RoundHistoryEntry struct {
	RoundNumber   int            `json:"roundNumber"`
	Category      string         `json:"category"`
	Letter        string         `json:"letter"`
	Timestamp     time.Time      `json:"timestamp"`
	PlayerResults []PlayerResult `json:"playerResults"`
}

// PlayerResult is one player's answer and score within a round record.
type PlayerResult struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Answer     string `json:"answer"`
	Score      int    `json:"score"`
}

// GameAttempt is a legacy single-player guess record.
type GameAttempt struct {
	Term      string    `json:"term"`
	Found     bool      `json:"found"`
	Timestamp time.Time `json:"timestamp"`
}
