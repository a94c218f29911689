package game

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// GameInfo describes a joinable room.
type GameInfo struct {
	ID         int64 `json:"id"`
	NumPlayers int   `json:"num_players"`
}

// MatchRecorder receives finished-match results. Implementations must be
// safe for concurrent use. A nil recorder disables recording.
type MatchRecorder interface {
	RecordMatch(ctx context.Context, result Result) error
}

const recordTimeout = 5 * time.Second

// Manager owns every in-progress game. The manager lock guards only the
// id-to-game map; each game carries its own lock, so operations on
// distinct games never block one another.
type Manager struct {
	logger   *zap.Logger
	recorder MatchRecorder

	// newRand seeds each game's shuffle source; replaced in tests for
	// deterministic deals.
	newRand func() *rand.Rand

	nextID atomic.Int64
	mu     sync.RWMutex
	games  map[int64]*Game
}

// NewManager creates a new game manager. recorder may be nil.
func NewManager(logger *zap.Logger, recorder MatchRecorder) *Manager {
	return &Manager{
		logger:   logger,
		recorder: recorder,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		games: make(map[int64]*Game),
	}
}

// CreateGame allocates the next game id and registers an empty room.
// Ids are strictly increasing and never reused.
func (m *Manager) CreateGame(numPlayers int) (*Game, error) {
	if numPlayers < 1 {
		return nil, errors.New("num_players must be positive")
	}

	id := m.nextID.Add(1)
	g := newGame(id, numPlayers, m.newRand(), m.logger, m.recordResult)

	m.mu.Lock()
	m.games[id] = g
	m.mu.Unlock()

	m.logger.Info("game created",
		zap.Int64("game_id", id),
		zap.Int("num_players", numPlayers),
	)
	return g, nil
}

// GetGame retrieves a game by id.
func (m *Manager) GetGame(id int64) (*Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.games[id]
	return g, ok
}

// JoinGame seats playerID in the identified room and returns their event
// subscription.
func (m *Manager) JoinGame(gameID int64, playerID string) (*Subscriber, error) {
	g, ok := m.GetGame(gameID)
	if !ok {
		return nil, ErrNotFound
	}
	return g.Join(playerID)
}

// PlayCard submits a play for playerID in the identified game.
func (m *Manager) PlayCard(gameID int64, playerID string, card Card) error {
	g, ok := m.GetGame(gameID)
	if !ok {
		return ErrNotFound
	}
	return g.Play(playerID, card)
}

// ListOpenGames returns the rooms still waiting on players, ascending by
// id. Full and finished games stay addressable by id but are not listed.
func (m *Manager) ListOpenGames() []GameInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	open := make([]GameInfo, 0, len(m.games))
	for _, g := range m.games {
		if g.Open() {
			open = append(open, GameInfo{ID: g.ID, NumPlayers: g.NumPlayers})
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].ID < open[j].ID })
	return open
}

// recordResult runs on its own goroutine after a game finishes, outside
// any game lock. Recording failures are logged and never reach the games.
func (m *Manager) recordResult(result Result) {
	if m.recorder == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := m.recorder.RecordMatch(ctx, result); err != nil {
		m.logger.Warn("failed to record match result",
			zap.Int64("game_id", result.GameID),
			zap.Error(err),
		)
	}
}
