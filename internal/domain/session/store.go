package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/okian/riddlerush/internal/domain/model"
	"github.com/okian/riddlerush/pkg/logger"
)

// Storage is the persistence port the store writes through. Writes are
// best-effort: a failed write is logged and in-memory state is kept.
type Storage interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Storage keys, namespaced by the storage adapter.
const (
	keySession = "current_session"
	keyHistory = "game_history"
)

// Store is the single source of truth for the live game session. It owns
// the session exclusively for its lifetime and archives it into the
// history list when it reaches a terminal state.
type Store struct {
	mu sync.RWMutex

	current    *model.GameSession
	pending    []model.Player
	history    []model.GameSession
	basePoints int

	storage Storage
	log     logger.Logger
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithStorage sets the persistence backend.
func WithStorage(s Storage) Option {
	return func(st *Store) {
		st.storage = s
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(st *Store) {
		if l != nil {
			st.log = l
		}
	}
}

// WithBasePoints sets the points awarded for a correct answer.
func WithBasePoints(points int) Option {
	return func(st *Store) {
		if points > 0 {
			st.basePoints = points
		}
	}
}

// defaultBasePoints matches the original scoring: ten points per hit.
const defaultBasePoints = 10

// NewStore creates a session store with default configuration.
func NewStore(opts ...Option) *Store {
	s := &Store{
		basePoints: defaultBasePoints,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddPlayer validates a name against the pending roster and appends the
// new player. The roster is locked while a session is active.
func (s *Store) AddPlayer(ctx context.Context, name string) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Active() {
		return model.Player{}, ErrRosterLocked
	}
	p, err := NewPlayer(name, s.pending)
	if err != nil {
		return model.Player{}, err
	}
	s.pending = append(s.pending, p)
	return p, nil
}

// RemovePlayer removes a pending player by id. Removal is only allowed
// before a session starts.
func (s *Store) RemovePlayer(ctx context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Active() {
		return ErrRosterLocked
	}
	for i := range s.pending {
		if s.pending[i].ID == playerID {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// Start creates a new session from the given player names, or from the
// pending roster when names is empty. An active session is abandoned and
// archived first.
func (s *Store) Start(ctx context.Context, category model.Category, letter string, names []string, gameName string) (*model.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := s.pending
	if len(names) > 0 {
		players = make([]model.Player, 0, len(names))
		for _, name := range names {
			p, err := NewPlayer(name, players)
			if err != nil {
				return nil, err
			}
			players = append(players, p)
		}
	}

	sess, err := NewSession(category, letter, players, gameName)
	if err != nil {
		return nil, err
	}

	if s.current.Active() {
		_ = Abandon(s.current)
		s.history = append(s.history, *s.current)
	}
	s.current = sess
	s.pending = nil
	s.persist(ctx)
	return s.snapshot(), nil
}

// Current returns a copy of the live session, or ErrNoSession.
func (s *Store) Current(ctx context.Context) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNoSession
	}
	return s.snapshot(), nil
}

// SubmitAnswer records a player's answer for the current round.
func (s *Store) SubmitAnswer(ctx context.Context, playerID, term string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoSession
	}
	if err := Submit(s.current, playerID, term); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// ApplyRoundScore sets a player's score for the round a verification was
// started in. The session and round identity must still match, otherwise
// the result is stale and discarded.
func (s *Store) ApplyRoundScore(ctx context.Context, sessionID string, round int, playerID string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoSession
	}
	if s.current.ID != sessionID || s.current.CurrentRound != round {
		return ErrStaleResult
	}
	if !s.current.Active() {
		return ErrNotActive
	}
	for i := range s.current.Players {
		if s.current.Players[i].ID == playerID {
			s.current.Players[i].CurrentRoundScore = score
			s.persist(ctx)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// AdvanceRound archives the current round and moves on to the next
// category and letter.
func (s *Store) AdvanceRound(ctx context.Context, next model.Category, letter string) (*model.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoSession
	}
	if err := AdvanceRound(s.current, next, letter); err != nil {
		return nil, err
	}
	s.persist(ctx)
	return s.snapshot(), nil
}

// End completes the live session and archives it.
func (s *Store) End(ctx context.Context) (*model.GameSession, error) {
	return s.finish(ctx, End)
}

// Abandon marks the live session abandoned and archives it.
func (s *Store) Abandon(ctx context.Context) (*model.GameSession, error) {
	return s.finish(ctx, Abandon)
}

func (s *Store) finish(ctx context.Context, terminate func(*model.GameSession) error) (*model.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoSession
	}
	if err := terminate(s.current); err != nil {
		return nil, err
	}
	done := s.snapshot()
	s.history = append(s.history, *done)
	s.current = nil
	s.persist(ctx)
	return done, nil
}

// RecordAttempt appends a legacy single-player attempt and scores it.
func (s *Store) RecordAttempt(ctx context.Context, term string, found bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoSession
	}
	if !s.current.Active() {
		return ErrNotActive
	}
	s.current.Attempts = append(s.current.Attempts, model.GameAttempt{
		Term:      term,
		Found:     found,
		Timestamp: time.Now(),
	})
	if found && len(s.current.Players) > 0 {
		s.current.Players[0].TotalScore += s.basePoints
	}
	s.persist(ctx)
	return nil
}

// BasePoints returns the points awarded for a correct answer.
func (s *Store) BasePoints() int {
	return s.basePoints
}

// History returns the archived sessions, newest last.
func (s *Store) History(ctx context.Context) []model.GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.GameSession, len(s.history))
	copy(out, s.history)
	return out
}

// Load restores the live session and the history list from storage.
// Missing keys are not an error; corrupt payloads are.
func (s *Store) Load(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok, err := s.storage.Get(ctx, keySession); err != nil {
		return err
	} else if ok {
		var sess model.GameSession
		if err := json.Unmarshal(raw, &sess); err != nil {
			return err
		}
		s.current = &sess
	}

	if raw, ok, err := s.storage.Get(ctx, keyHistory); err != nil {
		return err
	} else if ok {
		var hist []model.GameSession
		if err := json.Unmarshal(raw, &hist); err != nil {
			return err
		}
		s.history = hist
	}
	return nil
}

// persist writes session and history state. Durability is opportunistic:
// failures are logged and never roll back in-memory state.
// Callers must hold the write lock.
func (s *Store) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}
	if s.current != nil {
		if raw, err := json.Marshal(s.current); err == nil {
			if err := s.storage.Set(ctx, keySession, raw); err != nil {
				s.logError(ctx, "failed to persist session", err)
			}
		}
	} else if err := s.storage.Remove(ctx, keySession); err != nil {
		s.logError(ctx, "failed to clear persisted session", err)
	}
	if raw, err := json.Marshal(s.history); err == nil {
		if err := s.storage.Set(ctx, keyHistory, raw); err != nil {
			s.logError(ctx, "failed to persist history", err)
		}
	}
}

func (s *Store) logError(ctx context.Context, msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn(ctx, msg, logger.Error(err))
}

// snapshot deep-copies the live session so readers never share slices
// with the store. Callers must hold at least the read lock.
func (s *Store) snapshot() *model.GameSession {
	cp := *s.current
	cp.Players = append([]model.Player(nil), s.current.Players...)
	cp.RoundHistory = append([]model.RoundHistoryEntry(nil), s.current.RoundHistory...)
	cp.Attempts = append([]model.GameAttempt(nil), s.current.Attempts...)
	return &cp
}
