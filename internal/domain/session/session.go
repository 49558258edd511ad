// Package session implements the game session engine: roster validation,
// round progression, and the session lifecycle state machine.
package session

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/riddlerush/internal/domain/model"
)

// MaxNameLength bounds player names after trimming.
const MaxNameLength = 20

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// RandomLetter draws a letter uniformly from a-z.
func RandomLetter(rng *rand.Rand) string {
	return string(alphabet[rng.Intn(len(alphabet))])
}

// ValidateName checks a candidate player name against the existing roster.
// Names are trimmed, must be non-empty, at most MaxNameLength characters,
// and case-insensitively unique.
func ValidateName(name string, roster []model.Player) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}
	if len([]rune(trimmed)) > MaxNameLength {
		return ErrNameTooLong
	}
	for _, p := range roster {
		if strings.EqualFold(p.Name, trimmed) {
			return ErrDuplicateName
		}
	}
	return nil
}

// NewPlayer constructs a player after validating the name. It is pure
// construction; the caller inserts the player into the roster.
func NewPlayer(name string, roster []model.Player) (model.Player, error) {
	if err := ValidateName(name, roster); err != nil {
		return model.Player{}, err
	}
	return model.Player{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
	}, nil
}

// NewSession creates a fresh session on round one with an empty history.
func NewSession(category model.Category, letter string, players []model.Player, gameName string) (*model.GameSession, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	return &model.GameSession{
		ID:           uuid.NewString(),
		GameName:     gameName,
		Players:      players,
		CurrentRound: 1,
		Category:     category,
		Letter:       letter,
		StartTime:    time.Now(),
		Status:       model.StatusActive,
		RoundHistory: []model.RoundHistoryEntry{},
	}, nil
}

// AllSubmitted reports whether a non-empty roster has fully submitted.
// An empty roster is never considered complete.
func AllSubmitted(players []model.Player) bool {
	if len(players) == 0 {
		return false
	}
	for _, p := range players {
		if !p.HasSubmitted {
			return false
		}
	}
	return true
}

// CurrentTurnPlayer returns the first player in roster order that has not
// submitted yet, or nil once everyone has. This defines strict turn order.
func CurrentTurnPlayer(players []model.Player) *model.Player {
	for i := range players {
		if !players[i].HasSubmitted {
			return &players[i]
		}
	}
	return nil
}

// Submit marks a player's answer for the current round.
func Submit(s *model.GameSession, playerID, term string) error {
	if !s.Active() {
		return ErrNotActive
	}
	for i := range s.Players {
		if s.Players[i].ID != playerID {
			continue
		}
		if s.Players[i].HasSubmitted {
			return ErrAlreadySubmitted
		}
		s.Players[i].HasSubmitted = true
		s.Players[i].CurrentRoundAnswer = term
		return nil
	}
	return ErrPlayerNotFound
}

// AdvanceRound archives the current round into the session history, folds
// each player's round score into their total, resets per-round state, and
// moves the session onto the next category and letter.
func AdvanceRound(s *model.GameSession, next model.Category, letter string) error {
	if !s.Active() {
		return ErrNotActive
	}
	entry := model.RoundHistoryEntry{
		RoundNumber:   s.CurrentRound,
		Category:      s.Category.Name,
		Letter:        s.Letter,
		Timestamp:     time.Now(),
		PlayerResults: make([]model.PlayerResult, 0, len(s.Players)),
	}
	for i := range s.Players {
		p := &s.Players[i]
		entry.PlayerResults = append(entry.PlayerResults, model.PlayerResult{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Answer:     p.CurrentRoundAnswer,
			Score:      p.CurrentRoundScore,
		})
		p.TotalScore += p.CurrentRoundScore
		p.CurrentRoundScore = 0
		p.CurrentRoundAnswer = ""
		p.HasSubmitted = false
	}
	s.RoundHistory = append(s.RoundHistory, entry)
	s.CurrentRound++
	s.Category = next
	s.Letter = letter
	return nil
}

// End moves an active session into the completed terminal state.
func End(s *model.GameSession) error {
	return finish(s, model.StatusCompleted)
}

// Abandon moves an active session into the abandoned terminal state.
func Abandon(s *model.GameSession) error {
	return finish(s, model.StatusAbandoned)
}

func finish(s *model.GameSession, terminal model.Status) error {
	if !s.Active() {
		return ErrNotActive
	}
	// Fold the unfinished round so totals reflect every scored answer.
	for i := range s.Players {
		s.Players[i].TotalScore += s.Players[i].CurrentRoundScore
		s.Players[i].CurrentRoundScore = 0
	}
	now := time.Now()
	s.Status = terminal
	s.EndTime = &now
	return nil
}
