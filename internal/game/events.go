package game

// EventType names one of the closed set of notifications a game emits.
type EventType string

const (
	EventConnected  EventType = "CONNECTED"
	EventNewCard    EventType = "NEW_CARD"
	EventGameStart  EventType = "GAME_START"
	EventPlayedCard EventType = "PLAYED_CARD"
	EventRoundEnd   EventType = "ROUND_END"
	EventGameEnd    EventType = "GAME_END"
)

// Event is implemented by every notification pushed onto a player's
// stream. The transport layer serializes events as-is.
type Event interface {
	Type() EventType
}

// ConnectedEvent carries the full roster in join order, sent to every
// seated player each time someone joins.
type ConnectedEvent struct {
	Players []string `json:"players"`
}

func (ConnectedEvent) Type() EventType { return EventConnected }

// NewCardEvent is sent only to the player receiving the card.
type NewCardEvent struct {
	Card Card `json:"card"`
}

func (NewCardEvent) Type() EventType { return EventNewCard }

// GameStartEvent closes each player's initial deal and reveals the trump.
type GameStartEvent struct {
	Trump Card `json:"trump"`
}

func (GameStartEvent) Type() EventType { return EventGameStart }

// PlayedCardEvent is sent to everyone except the player who played the
// card; their own client already knows.
type PlayedCardEvent struct {
	Card Card `json:"card"`
}

func (PlayedCardEvent) Type() EventType { return EventPlayedCard }

// RoundEndEvent announces the trick winner (a player index in join order)
// and the points the trick was worth.
type RoundEndEvent struct {
	Winner int `json:"winner"`
	Score  int `json:"score"`
}

func (RoundEndEvent) Type() EventType { return EventRoundEnd }

// GameEndEvent announces the final standings. Winners holds every player
// id sharing the top score: a single element unless the game ends in a
// tie.
type GameEndEvent struct {
	Winners []string `json:"winners"`
}

func (GameEndEvent) Type() EventType { return EventGameEnd }
