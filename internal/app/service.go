// Package service provides the core game service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/riddlerush/internal/adapters/search"
	"github.com/okian/riddlerush/internal/adapters/storage"
	"github.com/okian/riddlerush/internal/dataset"
	"github.com/okian/riddlerush/internal/domain/model"
	"github.com/okian/riddlerush/internal/domain/scoring"
	"github.com/okian/riddlerush/internal/domain/session"
	"github.com/okian/riddlerush/internal/domain/types"
	"github.com/okian/riddlerush/internal/domain/verify"
	"github.com/okian/riddlerush/pkg/logger"
	"github.com/okian/riddlerush/pkg/metrics"
)

// Service implements the API dependencies for the game engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	categories []model.Category
	verifier   *verify.Verifier
	sessions   *session.Store
	store      storage.Store
	writer     *storage.WriteBehind

	// Configuration
	offlineMode         bool
	categoriesPath      string
	offlineAnswersPath  string
	dataDir             string
	petscanBaseURL      string
	petscanTimeout      time.Duration
	joinBaseURL         string
	basePoints          int
	similarityThreshold float64
	writeQueueSize      int

	// Randomness for category and letter draws. rand.Rand is not safe
	// for concurrent use, so every draw goes through the mutex.
	rngMu sync.Mutex
	rng   *rand.Rand

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithOfflineMode forces all lookups through the bundled dataset.
func WithOfflineMode(enabled bool) Option {
	return func(s *Service) {
		s.offlineMode = enabled
	}
}

// WithCategoriesPath overrides the embedded categories file.
func WithCategoriesPath(path string) Option {
	return func(s *Service) {
		s.categoriesPath = path
	}
}

// WithOfflineAnswersPath overrides the embedded offline answers file.
func WithOfflineAnswersPath(path string) Option {
	return func(s *Service) {
		s.offlineAnswersPath = path
	}
}

// WithDataDir enables file persistence under dir. Empty keeps
// session state in memory only.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		s.dataDir = dir
	}
}

// WithPetScanBaseURL overrides the category search endpoint.
func WithPetScanBaseURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.petscanBaseURL = u
		}
	}
}

// WithPetScanTimeout bounds a single category search request.
func WithPetScanTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.petscanTimeout = d
		}
	}
}

// WithJoinBaseURL sets the address encoded into invite QR codes.
func WithJoinBaseURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.joinBaseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithBasePoints sets the points awarded per correct answer.
func WithBasePoints(points int) Option {
	return func(s *Service) {
		if points > 0 {
			s.basePoints = points
		}
	}
}

// WithSimilarityThreshold sets the minimum ratio for two answers to
// count as the same word. Zero keeps the built-in default.
func WithSimilarityThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 && threshold <= 1 {
			s.similarityThreshold = threshold
		}
	}
}

// WithWriteQueueSize bounds the async persistence queue.
func WithWriteQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.writeQueueSize = size
		}
	}
}

// WithRandSeed makes category and letter draws deterministic.
func WithRandSeed(seed int64) Option {
	return func(s *Service) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // game randomness, not crypto
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		petscanBaseURL: search.DefaultPetScanBaseURL,
		petscanTimeout: 10 * time.Second,
		joinBaseURL:    "http://localhost:9080",
		basePoints:     10,
		writeQueueSize: 256,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // game randomness, not crypto
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components and restores any persisted
// session state.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting game service...")

	categories, err := dataset.LoadCategories(s.categoriesPath)
	if err != nil {
		return err
	}
	s.categories = categories

	answers, err := dataset.LoadOfflineAnswers(s.offlineAnswersPath)
	if err != nil {
		return err
	}

	petscan := search.NewPetScan(
		search.WithBaseURL(s.petscanBaseURL),
		search.WithTimeout(s.petscanTimeout),
		search.WithPetScanLogger(s.logger),
	)
	s.verifier = verify.New(petscan, search.NewOffline(answers),
		verify.WithOfflineMode(s.offlineMode),
		verify.WithLogger(s.logger),
	)

	if s.dataDir != "" {
		backing, err := storage.NewFile(s.dataDir)
		if err != nil {
			return err
		}
		s.writer = storage.NewWriteBehind(backing,
			storage.WithQueueCapacity(s.writeQueueSize),
			storage.WithLogger(s.logger),
		)
		s.store = s.writer
		s.logger.Info(ctx, "using file persistence", logger.String("dir", s.dataDir))
	} else {
		s.store = storage.NewMemory()
		s.logger.Info(ctx, "using in-memory persistence")
	}

	s.sessions = session.NewStore(
		session.WithStorage(s.store),
		session.WithLogger(s.logger),
		session.WithBasePoints(s.basePoints),
	)
	if err := s.sessions.Load(ctx); err != nil {
		s.logger.Warn(ctx, "failed to restore session state", logger.Error(err))
	}

	s.started = true
	s.logger.Info(ctx, "game service started",
		logger.Int("categories", len(s.categories)),
		logger.Bool("offlineMode", s.offlineMode),
		logger.Int("basePoints", s.basePoints),
	)

	return nil
}

// Stop gracefully shuts down the service, flushing pending writes.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping game service...")

	if s.writer != nil {
		_ = s.writer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "game service stopped")
}

// draw picks a random category and letter under the rng lock.
func (s *Service) draw() (model.Category, string, error) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	category, err := dataset.Random(s.categories, s.rng)
	if err != nil {
		return model.Category{}, "", err
	}
	return category, session.RandomLetter(s.rng), nil
}

// CheckAnswer verifies a term against a category's word list.
func (s *Service) CheckAnswer(ctx context.Context, searchWord, letter, term string) (model.VerificationResult, error) {
	category, err := dataset.FindBySearchWord(s.categories, searchWord)
	if err != nil {
		return model.VerificationResult{}, err
	}

	start := time.Now()
	res, err := s.verifier.Verify(ctx, category, letter, term)
	metrics.RecordVerificationLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return model.VerificationResult{}, err
	}

	if res.Found {
		metrics.RecordAnswerCheck("found")
	} else {
		metrics.RecordAnswerCheck("miss")
	}
	return res, nil
}

// RandomCategory draws a category and letter for the next round.
func (s *Service) RandomCategory(_ context.Context) (model.Category, string, error) {
	return s.draw()
}

// CreateSession starts a new game session for the given roster. Any
// previously active session is abandoned and archived first.
func (s *Service) CreateSession(ctx context.Context, gameName string, playerNames []string) (*model.GameSession, error) {
	category, letter, err := s.draw()
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Start(ctx, category, letter, playerNames, gameName)
	if err != nil {
		return nil, err
	}

	metrics.RecordSessionStarted()
	metrics.UpdateActiveSessions(1)
	metrics.UpdateRosterSize(len(sess.Players))

	s.logger.Info(ctx, "session created",
		logger.String("sessionID", sess.ID),
		logger.Int("players", len(sess.Players)),
		logger.String("category", sess.Category.Name),
		logger.String("letter", sess.Letter),
	)
	return sess, nil
}

// CurrentSession returns a snapshot of the live session.
func (s *Service) CurrentSession(ctx context.Context) (*model.GameSession, error) {
	return s.sessions.Current(ctx)
}

// SubmitAnswer records a player's answer for the current round, verifies
// it, and applies the score. Verification may hit the network; if the
// round has moved on by the time it returns, the score is discarded.
func (s *Service) SubmitAnswer(ctx context.Context, playerID, answer string) (model.AnswerOutcome, error) {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return model.AnswerOutcome{}, err
	}
	sessionID, round := sess.ID, sess.CurrentRound

	if err := s.sessions.SubmitAnswer(ctx, playerID, answer); err != nil {
		return model.AnswerOutcome{}, err
	}

	start := time.Now()
	res, err := s.verifier.Verify(ctx, sess.Category, sess.Letter, answer)
	metrics.RecordVerificationLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return model.AnswerOutcome{}, err
	}

	points := 0
	if res.Found {
		points = scoring.CalculateScore(s.sessions.BasePoints(), 0)
		metrics.RecordAnswerCheck("found")
	} else {
		metrics.RecordAnswerCheck("miss")
	}

	// Two players naming near-identical words cannot both score; the
	// earlier submission keeps the points.
	if points > 0 && hasSimilarAnswer(sess, playerID, answer, s.similarityThreshold) {
		points = 0
		s.logger.Debug(ctx, "duplicate answer, no points awarded",
			logger.String("playerID", playerID),
			logger.String("answer", answer),
		)
	}

	if err := s.sessions.ApplyRoundScore(ctx, sessionID, round, playerID, points); err != nil {
		return model.AnswerOutcome{}, err
	}

	updated, err := s.sessions.Current(ctx)
	if err != nil {
		return model.AnswerOutcome{}, err
	}
	return model.AnswerOutcome{Result: res, Points: points, Session: updated}, nil
}

// AdvanceRound moves the session to the next round with a fresh
// category and letter.
func (s *Service) AdvanceRound(ctx context.Context) (*model.GameSession, error) {
	category, letter, err := s.draw()
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.AdvanceRound(ctx, category, letter)
	if err != nil {
		return nil, err
	}

	metrics.RecordRoundAdvanced()
	s.logger.Info(ctx, "round advanced",
		logger.String("sessionID", sess.ID),
		logger.Int("round", sess.CurrentRound),
		logger.String("category", sess.Category.Name),
		logger.String("letter", sess.Letter),
	)
	return sess, nil
}

// EndSession completes the active session and archives it.
func (s *Service) EndSession(ctx context.Context) (*model.GameSession, error) {
	sess, err := s.sessions.End(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordSessionCompleted()
	metrics.UpdateActiveSessions(0)
	s.logger.Info(ctx, "session completed", logger.String("sessionID", sess.ID))
	return sess, nil
}

// AbandonSession discards the active session and archives it.
func (s *Service) AbandonSession(ctx context.Context) (*model.GameSession, error) {
	sess, err := s.sessions.Abandon(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordSessionAbandoned()
	metrics.UpdateActiveSessions(0)
	s.logger.Info(ctx, "session abandoned", logger.String("sessionID", sess.ID))
	return sess, nil
}

// Leaderboard returns the ranked standings of the current session.
func (s *Service) Leaderboard(ctx context.Context) ([]types.Entry, error) {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]types.Entry, 0, len(sess.Players))
	for _, p := range sess.Players {
		entries = append(entries, types.Entry{
			Rank:       scoring.Rank(p, sess.Players),
			PlayerID:   p.ID,
			Name:       p.Name,
			TotalScore: p.TotalScore,
			Winner:     scoring.IsWinner(p, sess.Players),
		})
	}
	sortEntries(entries)
	return entries, nil
}

// PlayerRank returns one player's standing in the current session.
func (s *Service) PlayerRank(ctx context.Context, playerID string) (types.Entry, error) {
	entries, err := s.Leaderboard(ctx)
	if err != nil {
		return types.Entry{}, err
	}
	for _, e := range entries {
		if e.PlayerID == playerID {
			return e, nil
		}
	}
	return types.Entry{}, session.ErrPlayerNotFound
}

// InviteURL is the join address for the current session.
func (s *Service) InviteURL(ctx context.Context) (string, error) {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return "", err
	}
	return s.joinBaseURL + "/join/" + sess.ID, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"offlineMode": s.offlineMode,
		"categories":  len(s.categories),
		"basePoints":  s.basePoints,
	}

	if s.started {
		if sess, err := s.sessions.Current(ctx); err == nil {
			stats["activeSession"] = true
			stats["sessionID"] = sess.ID
			stats["round"] = sess.CurrentRound
			stats["players"] = len(sess.Players)
			metrics.UpdateRosterSize(len(sess.Players))
		} else {
			stats["activeSession"] = false
		}
		stats["historyCount"] = len(s.sessions.History(ctx))
	}

	return stats
}

// hasSimilarAnswer reports whether another player already submitted an
// answer this round that is too close to the given one.
func hasSimilarAnswer(sess *model.GameSession, playerID, answer string, threshold float64) bool {
	for _, p := range sess.Players {
		if p.ID == playerID || !p.HasSubmitted {
			continue
		}
		if scoring.AreSimilarAnswers(answer, p.CurrentRoundAnswer, threshold) {
			return true
		}
	}
	return false
}

// sortEntries orders by rank ascending, preserving roster order for ties.
func sortEntries(entries []types.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rank < entries[j].Rank
	})
}
