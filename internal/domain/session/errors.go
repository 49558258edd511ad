package session

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEmptyName        = errors.New("player name must not be empty")
	ErrNameTooLong      = errors.New("player name must be 20 characters or less")
	ErrDuplicateName    = errors.New("player name already exists")
	ErrNoPlayers        = errors.New("session requires at least one player")
	ErrNoSession        = errors.New("no active session")
	ErrNotActive        = errors.New("session is not active")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrAlreadySubmitted = errors.New("player already submitted this round")
	ErrRosterLocked     = errors.New("roster cannot change once a session has started")
	ErrStaleResult      = errors.New("verification result is stale for the current round")
)
