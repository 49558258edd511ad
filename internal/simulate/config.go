// Package simulate drives a full game against a running service over
// HTTP, for smoke testing and load exploration.
package simulate

import (
	"time"

	"github.com/okian/riddlerush/internal/domain/model"
)

// Config holds configuration for a simulated game.
type Config struct {
	BaseURL  string        // Base URL of the service
	Players  []string      // Roster for the simulated session
	Rounds   int           // Number of rounds to play
	Timeout  time.Duration // HTTP request timeout
	GameName string        // Display name for the session
	Verbose  bool          // Enable verbose logging
	Seed     int64         // Seed for answer picks; zero means time-based
}

// Stats captures what the simulation observed.
type Stats struct {
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	RoundsPlayed  int
	AnswersSent   int
	AnswersFound  int
	AnswersMissed int
	Failures      int
}

// entry mirrors the leaderboard read shape.
type entry struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	TotalScore int    `json:"total_score"`
	Winner     bool   `json:"winner"`
}

// answerOutcome mirrors the POST /session/answer response.
type answerOutcome struct {
	Result  model.VerificationResult `json:"result"`
	Points  int                      `json:"points"`
	Session *model.GameSession       `json:"session"`
}
