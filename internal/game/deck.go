package game

import "math/rand"

// DeckSize is the number of cards in a full deck: one of each legal
// (number, suit) combination.
const DeckSize = len(cardNumbers) * len(suits)

// initialHandSize is the number of cards dealt to each player when the
// game starts.
const initialHandSize = 3

// newDeck returns the 40 distinct cards in a fixed order.
func newDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range suits {
		for _, n := range cardNumbers {
			deck = append(deck, Card{Number: n, Suit: s})
		}
	}
	return deck
}

// shuffledDeck returns a uniformly random permutation of the full deck.
// The permutation head becomes the trump; deals pop from the tail, so the
// head is also the last card dealt out.
func shuffledDeck(rng *rand.Rand) []Card {
	deck := newDeck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
