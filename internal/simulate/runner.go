package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/okian/riddlerush/internal/dataset"
	"github.com/okian/riddlerush/internal/domain/model"
	"github.com/okian/riddlerush/pkg/logger"
)

// Run plays a complete game against the service and reports what it saw.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // simulation randomness, not crypto

	logger.Get().Info(ctx, "starting game simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("players", len(config.Players)),
		logger.Int("rounds", config.Rounds),
		logger.String("timeout", config.Timeout.String()),
	)

	client := newHTTPClient(config.Timeout)
	base := strings.TrimSuffix(config.BaseURL, "/")

	// The offline dataset doubles as the simulator's answer book, so a
	// share of submissions is genuinely correct.
	answers, err := dataset.LoadOfflineAnswers("")
	if err != nil {
		return nil, fmt.Errorf("failed to load answer book: %w", err)
	}

	if err := checkServiceHealth(ctx, client, base); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	var sess model.GameSession
	if err := client.post(ctx, base+"/session", map[string]any{
		"gameName": config.GameName,
		"players":  config.Players,
	}, &sess); err != nil {
		return nil, fmt.Errorf("session creation failed: %w", err)
	}
	logger.Get().Info(ctx, "session created",
		logger.String("sessionID", sess.ID),
		logger.String("category", sess.Category.Name),
		logger.String("letter", sess.Letter),
	)

	for round := 1; round <= config.Rounds; round++ {
		if err := playRound(ctx, client, base, answers, rng, config, stats); err != nil {
			return nil, fmt.Errorf("round %d failed: %w", round, err)
		}
		stats.RoundsPlayed++

		if round < config.Rounds {
			if err := client.post(ctx, base+"/session/round", struct{}{}, &sess); err != nil {
				return nil, fmt.Errorf("round advance failed: %w", err)
			}
		}
	}

	var standings []entry
	if err := client.get(ctx, base+"/leaderboard", &standings); err != nil {
		return nil, fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	for _, e := range standings {
		logger.Get().Info(ctx, "standing",
			logger.Int("rank", e.Rank),
			logger.String("name", e.Name),
			logger.Int("totalScore", e.TotalScore),
			logger.Bool("winner", e.Winner),
		)
	}

	if err := client.post(ctx, base+"/session/end", struct{}{}, &sess); err != nil {
		return nil, fmt.Errorf("session end failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	logger.Get().Info(ctx, "simulation completed",
		logger.Int("roundsPlayed", stats.RoundsPlayed),
		logger.Int("answersSent", stats.AnswersSent),
		logger.Int("answersFound", stats.AnswersFound),
		logger.Int("answersMissed", stats.AnswersMissed),
		logger.Int("failures", stats.Failures),
		logger.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// playRound submits one answer per player for the session's current
// category and letter.
func playRound(ctx context.Context, client *httpClient, base string, answers dataset.OfflineAnswers, rng *rand.Rand, config *Config, stats *Stats) error {
	var current model.GameSession
	if err := client.get(ctx, base+"/session", &current); err != nil {
		return fmt.Errorf("session fetch failed: %w", err)
	}

	for _, p := range current.Players {
		answer := pickAnswer(answers, current.Category.SearchWord, current.Letter, rng)

		var out answerOutcome
		if err := client.post(ctx, base+"/session/answer", map[string]string{
			"playerId": p.ID,
			"answer":   answer,
		}, &out); err != nil {
			stats.Failures++
			logger.Get().Warn(ctx, "answer submission failed",
				logger.String("player", p.Name),
				logger.Error(err),
			)
			continue
		}

		stats.AnswersSent++
		if out.Result.Found {
			stats.AnswersFound++
		} else {
			stats.AnswersMissed++
		}
		if config.Verbose {
			logger.Get().Info(ctx, "answer submitted",
				logger.String("player", p.Name),
				logger.String("answer", answer),
				logger.Bool("found", out.Result.Found),
				logger.Int("points", out.Points),
			)
		}
	}
	return nil
}

// pickAnswer returns a correct term when the answer book has one for
// this category and letter, otherwise an obviously wrong guess.
func pickAnswer(answers dataset.OfflineAnswers, searchWord, letter string, rng *rand.Rand) string {
	if byLetter, ok := answers[searchWord]; ok {
		if terms := byLetter[strings.ToLower(letter)]; len(terms) > 0 && rng.Intn(100) < 70 {
			return terms[rng.Intn(len(terms))]
		}
	}
	return strings.ToUpper(letter) + "ockelwump"
}

func checkServiceHealth(ctx context.Context, client *httpClient, base string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status %d", resp.StatusCode)
	}
	return nil
}
