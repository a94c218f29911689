package game

import (
	"sync"

	"go.uber.org/zap"
)

// subscriberBuffer exceeds the number of events a single game can push to
// one player (roster updates, 20 cards dealt, opponents' plays, 20 round
// results, start and end), so a consumer that keeps its stream open never
// observes a drop.
const subscriberBuffer = 128

// Subscriber is one player's outbound event queue. The game enqueues
// while holding its own lock; the transport's delivery goroutine drains
// from the other side.
type Subscriber struct {
	playerID string
	events   chan Event
	logger   *zap.Logger

	mu     sync.Mutex
	closed bool
}

func newSubscriber(playerID string, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		playerID: playerID,
		events:   make(chan Event, subscriberBuffer),
		logger:   logger,
	}
}

// PlayerID returns the id the subscriber was created for.
func (s *Subscriber) PlayerID() string { return s.playerID }

// Events returns the channel the delivery path reads from. It is closed
// once GameEnd has been enqueued for this player.
func (s *Subscriber) Events() <-chan Event { return s.events }

// send enqueues ev without ever blocking the caller. A receiver that went
// away is a per-player condition: the event is dropped and logged, and
// the game proceeds for everyone else.
func (s *Subscriber) send(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Debug("event for closed subscriber dropped",
			zap.String("player", s.playerID),
			zap.String("event", string(ev.Type())),
		)
		return
	}

	select {
	case s.events <- ev:
	default:
		s.logger.Warn("event delivery failed, dropping",
			zap.String("player", s.playerID),
			zap.String("event", string(ev.Type())),
		)
	}
}

// close ends the stream. Idempotent; wakes the delivery path.
func (s *Subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}
