package game

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Player is one seat in a game. Seats are ordered by join order, which
// fixes both the turn rotation and the dealing order.
type Player struct {
	ID    string
	hand  []Card
	score int
	sub   *Subscriber
}

// removeCard removes exactly one instance of card from the hand.
func (p *Player) removeCard(card Card) bool {
	for i, c := range p.hand {
		if c == card {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			return true
		}
	}
	return false
}

// Result summarizes a finished match for out-of-band consumers such as
// the match recorder. Players and Scores are parallel, in join order.
type Result struct {
	GameID     int64
	Players    []string
	Scores     []int
	Winners    []string
	FinishedAt time.Time
}

// Snapshot captures a consistent view of a match.
type Snapshot struct {
	ID         int64
	NumPlayers int
	Players    []string
	Hands      map[string][]Card
	Scores     map[string]int
	Deck       []Card
	Trump      Card
	Trick      []Card
	Turn       int
	Round      int
	Started    bool
	Finished   bool
}

// Game is one brisca match. Every mutable field is guarded by mu; a join
// or play, including any dealing and round resolution it triggers, runs
// as a single critical section, so two plays of the same trick can never
// interleave. Distinct games share nothing but the registry map.
type Game struct {
	ID         int64
	NumPlayers int

	logger   *zap.Logger
	rng      *rand.Rand
	onFinish func(Result)

	mu       sync.Mutex
	players  []*Player
	deck     []Card
	trump    Card
	trick    []Card
	leader   int // player index that led the current trick
	turn     int
	round    int
	started  bool
	finished bool
}

func newGame(id int64, numPlayers int, rng *rand.Rand, logger *zap.Logger, onFinish func(Result)) *Game {
	return &Game{
		ID:         id,
		NumPlayers: numPlayers,
		logger:     logger,
		rng:        rng,
		onFinish:   onFinish,
		players:    make([]*Player, 0, numPlayers),
		trick:      make([]Card, 0, numPlayers),
	}
}

// Join seats a new player and returns their event subscription. Everyone
// already seated (the joiner included) receives the updated roster; the
// join that fills the room shuffles and deals before returning.
func (g *Game) Join(playerID string) (*Subscriber, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.players) == g.NumPlayers {
		return nil, ErrFull
	}

	sub := newSubscriber(playerID, g.logger)
	g.players = append(g.players, &Player{ID: playerID, sub: sub})

	roster := make([]string, len(g.players))
	for i, p := range g.players {
		roster[i] = p.ID
	}
	g.broadcast(ConnectedEvent{Players: roster})

	g.logger.Info("player joined",
		zap.Int64("game_id", g.ID),
		zap.String("player", playerID),
		zap.Int("seated", len(g.players)),
	)

	if len(g.players) == g.NumPlayers {
		g.start()
	}

	return sub, nil
}

// start shuffles, fixes the trump and deals the opening hands. Called
// with the lock held, exactly once, by the capacity-reaching join.
func (g *Game) start() {
	g.deck = shuffledDeck(g.rng)
	// The permutation head is the trump. Deals pop from the tail, so it
	// stays reserved as the very last card to be dealt.
	g.trump = g.deck[0]
	g.round = 1
	g.started = true

	for _, p := range g.players {
		for i := 0; i < initialHandSize; i++ {
			card := g.draw()
			p.hand = append(p.hand, card)
			p.sub.send(NewCardEvent{Card: card})
		}
		p.sub.send(GameStartEvent{Trump: g.trump})
	}

	g.logger.Info("all players joined, game started",
		zap.Int64("game_id", g.ID),
		zap.Int("num_players", g.NumPlayers),
		zap.String("trump", g.trump.String()),
	)
}

func (g *Game) draw() Card {
	card := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]
	return card
}

// Play validates and applies a single play for playerID. Validation
// failures leave the game untouched. The play that completes the trick
// also resolves the round before returning.
func (g *Game) Play(playerID string, card Card) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return ErrFinished
	}
	if !g.started {
		return ErrNotStarted
	}

	current := g.players[g.turn]
	if current.ID != playerID {
		return ErrNotYourTurn
	}
	if !current.removeCard(card) {
		return ErrNotInHand
	}

	for i, p := range g.players {
		if i != g.turn {
			p.sub.send(PlayedCardEvent{Card: card})
		}
	}

	if len(g.trick) == 0 {
		g.leader = g.turn
	}
	g.trick = append(g.trick, card)

	g.logger.Debug("card played",
		zap.Int64("game_id", g.ID),
		zap.String("player", playerID),
		zap.String("card", card.String()),
	)

	if len(g.trick) < g.NumPlayers {
		g.turn = (g.turn + 1) % g.NumPlayers
		return nil
	}

	g.resolveTrick()
	return nil
}

// resolveTrick computes the trick winner and score once every player has
// played. The first card fixes the leading suit; a later card takes the
// trick if it is stronger within the best card's suit, or if it is the
// first trump against a non-trump best. Called with the lock held.
func (g *Game) resolveTrick() {
	best := 0
	score := g.trick[0].Points()
	for i := 1; i < len(g.trick); i++ {
		score += g.trick[i].Points()
		if g.trick[i].Beats(g.trick[best], g.trump.Suit) {
			best = i
		}
	}

	// Trick positions run in rotation order from the leader.
	winner := (g.leader + best) % g.NumPlayers

	g.broadcast(RoundEndEvent{Winner: winner, Score: score})
	g.players[winner].score += score
	g.turn = winner
	g.leader = winner
	g.trick = g.trick[:0]

	g.logger.Info("round resolved",
		zap.Int64("game_id", g.ID),
		zap.Int("round", g.round),
		zap.String("winner", g.players[winner].ID),
		zap.Int("score", score),
	)

	switch {
	case len(g.deck) > 0:
		g.dealRound(winner)
		g.round++
	case g.round == DeckSize/g.NumPlayers:
		g.finish()
	default:
		// The trump went out with the last deal; the remaining rounds
		// are played from the cards already in hand.
		g.round++
	}
}

// dealRound gives one card to each player, the round winner first, then
// rotation order. Each card is announced only to its recipient.
func (g *Game) dealRound(winner int) {
	for i := 0; i < g.NumPlayers && len(g.deck) > 0; i++ {
		p := g.players[(winner+i)%g.NumPlayers]
		card := g.draw()
		p.hand = append(p.hand, card)
		p.sub.send(NewCardEvent{Card: card})
	}
}

// finish announces the final standings, closes every player's stream and
// hands the result to the finish hook. Called with the lock held after
// the last round resolves; no play is accepted afterwards.
func (g *Game) finish() {
	top := g.players[0].score
	for _, p := range g.players[1:] {
		if p.score > top {
			top = p.score
		}
	}

	winners := make([]string, 0, 1)
	for _, p := range g.players {
		if p.score == top {
			winners = append(winners, p.ID)
		}
	}

	g.broadcast(GameEndEvent{Winners: winners})
	g.finished = true

	for _, p := range g.players {
		p.sub.close()
	}

	g.logger.Info("game finished",
		zap.Int64("game_id", g.ID),
		zap.Strings("winners", winners),
		zap.Int("top_score", top),
	)

	if g.onFinish != nil {
		players := make([]string, len(g.players))
		scores := make([]int, len(g.players))
		for i, p := range g.players {
			players[i] = p.ID
			scores[i] = p.score
		}
		go g.onFinish(Result{
			GameID:     g.ID,
			Players:    players,
			Scores:     scores,
			Winners:    winners,
			FinishedAt: time.Now(),
		})
	}
}

// broadcast enqueues ev for every seated player. Called with the lock
// held; send never blocks.
func (g *Game) broadcast(ev Event) {
	for _, p := range g.players {
		p.sub.send(ev)
	}
}

// Open reports whether the roster is still below capacity.
func (g *Game) Open() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players) < g.NumPlayers
}

// Finished reports whether the final round has resolved.
func (g *Game) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.finished
}

// Snapshot returns a consistent copy of the match state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	players := make([]string, len(g.players))
	hands := make(map[string][]Card, len(g.players))
	scores := make(map[string]int, len(g.players))
	for i, p := range g.players {
		players[i] = p.ID
		hands[p.ID] = append([]Card(nil), p.hand...)
		scores[p.ID] = p.score
	}

	return Snapshot{
		ID:         g.ID,
		NumPlayers: g.NumPlayers,
		Players:    players,
		Hands:      hands,
		Scores:     scores,
		Deck:       append([]Card(nil), g.deck...),
		Trump:      g.trump,
		Trick:      append([]Card(nil), g.trick...),
		Turn:       g.turn,
		Round:      g.round,
		Started:    g.started,
		Finished:   g.finished,
	}
}
