package game

import "fmt"

// Suit identifies one of the four suits of the Spanish 40-card deck.
type Suit string

const (
	SuitCoin  Suit = "Coin"
	SuitCup   Suit = "Cup"
	SuitBaton Suit = "Baton"
	SuitSword Suit = "Sword"
)

var suits = [...]Suit{SuitCoin, SuitCup, SuitBaton, SuitSword}

// cardNumbers lists the legal card numbers: 1 through 7 plus the three
// face cards sota (10), caballo (11) and rey (12). 8 and 9 do not exist
// in this deck.
var cardNumbers = [...]int{1, 2, 3, 4, 5, 6, 7, 10, 11, 12}

// Card is an immutable value; two cards are equal when number and suit
// match.
type Card struct {
	Number int  `json:"number"`
	Suit   Suit `json:"suit"`
}

func (c Card) String() string {
	return fmt.Sprintf("%d of %s", c.Number, string(c.Suit))
}

// cardPoints maps each legal number to the points it awards the trick
// winner.
var cardPoints = map[int]int{
	1:  11,
	2:  0,
	3:  10,
	4:  0,
	5:  0,
	6:  0,
	7:  0,
	10: 2,
	11: 3,
	12: 4,
}

// cardStrength ranks numbers within a suit; a higher value wins the trick.
// The ace and the three outrank every face card.
var cardStrength = map[int]int{
	1:  9,
	3:  8,
	12: 7,
	11: 6,
	10: 5,
	7:  4,
	6:  3,
	5:  2,
	4:  1,
	2:  0,
}

// Points returns the points this card is worth to the trick winner.
func (c Card) Points() int {
	return cardPoints[c.Number]
}

// Beats reports whether c wins a trick over the current best card. A card
// of the same suit wins on strictly higher strength; a trump card beats
// any non-trump best. Checking the same-suit case first means two trump
// cards are also compared by strength.
func (c Card) Beats(best Card, trump Suit) bool {
	if c.Suit == best.Suit {
		return cardStrength[c.Number] > cardStrength[best.Number]
	}
	return c.Suit == trump
}

// Valid reports whether the card exists in the deck.
func (c Card) Valid() bool {
	if _, ok := cardPoints[c.Number]; !ok {
		return false
	}
	switch c.Suit {
	case SuitCoin, SuitCup, SuitBaton, SuitSword:
		return true
	default:
		return false
	}
}
