package game

import (
	"testing"

	"go.uber.org/zap"
)

func TestSubscriberSendNeverBlocks(t *testing.T) {
	sub := newSubscriber("p1", zap.NewNop())

	// Fill the buffer and keep going; the extra sends must drop, not block.
	for i := 0; i < subscriberBuffer+10; i++ {
		sub.send(PlayedCardEvent{Card: Card{Number: 1, Suit: SuitCoin}})
	}

	if got := len(sub.events); got != subscriberBuffer {
		t.Fatalf("expected %d buffered events, got %d", subscriberBuffer, got)
	}
}

func TestSubscriberCloseEndsStream(t *testing.T) {
	sub := newSubscriber("p1", zap.NewNop())
	sub.send(GameStartEvent{Trump: Card{Number: 1, Suit: SuitCup}})
	sub.close()

	ev, ok := <-sub.Events()
	if !ok {
		t.Fatal("expected buffered event before close is observed")
	}
	if ev.Type() != EventGameStart {
		t.Fatalf("expected GAME_START, got %s", ev.Type())
	}

	if _, ok := <-sub.Events(); ok {
		t.Fatal("expected channel to be closed")
	}
}

func TestSubscriberCloseIdempotent(t *testing.T) {
	sub := newSubscriber("p1", zap.NewNop())
	sub.close()
	sub.close() // must not panic

	// Sends after close are dropped silently.
	sub.send(GameEndEvent{Winners: []string{"p1"}})
}
