package game

import "testing"

func TestCardPoints(t *testing.T) {
	cases := []struct {
		number int
		points int
	}{
		{1, 11},
		{3, 10},
		{10, 2},
		{11, 3},
		{12, 4},
		{2, 0},
		{4, 0},
		{5, 0},
		{6, 0},
		{7, 0},
	}

	for _, c := range cases {
		card := Card{Number: c.number, Suit: SuitCoin}
		if got := card.Points(); got != c.points {
			t.Errorf("Points(%d) = %d, want %d", c.number, got, c.points)
		}
	}
}

func TestCardStrengthOrdering(t *testing.T) {
	// Strongest to weakest within a suit.
	order := []int{1, 3, 12, 11, 10, 7, 6, 5, 4, 2}

	for i := 0; i < len(order)-1; i++ {
		stronger := Card{Number: order[i], Suit: SuitCup}
		weaker := Card{Number: order[i+1], Suit: SuitCup}
		if !stronger.Beats(weaker, SuitCoin) {
			t.Errorf("expected %s to beat %s", stronger, weaker)
		}
		if weaker.Beats(stronger, SuitCoin) {
			t.Errorf("expected %s not to beat %s", weaker, stronger)
		}
	}
}

func TestCardBeats(t *testing.T) {
	trump := SuitSword

	cases := []struct {
		name  string
		card  Card
		best  Card
		beats bool
	}{
		{"same suit stronger", Card{1, SuitCoin}, Card{3, SuitCoin}, true},
		{"same suit weaker", Card{4, SuitCoin}, Card{5, SuitCoin}, false},
		{"same number different suit", Card{7, SuitCup}, Card{7, SuitBaton}, false},
		{"trump over lead suit", Card{2, SuitSword}, Card{1, SuitCoin}, true},
		{"off suit never wins", Card{1, SuitCup}, Card{2, SuitCoin}, false},
		{"trump over trump by strength", Card{3, SuitSword}, Card{12, SuitSword}, true},
		{"weaker trump loses to trump", Card{10, SuitSword}, Card{3, SuitSword}, false},
		{"lead suit cannot beat trump", Card{1, SuitCoin}, Card{2, SuitSword}, false},
	}

	for _, c := range cases {
		if got := c.card.Beats(c.best, trump); got != c.beats {
			t.Errorf("%s: %s vs %s = %v, want %v", c.name, c.card, c.best, got, c.beats)
		}
	}
}

func TestCardValid(t *testing.T) {
	if !(Card{Number: 7, Suit: SuitBaton}).Valid() {
		t.Error("expected 7 of Baton to be valid")
	}
	if (Card{Number: 8, Suit: SuitBaton}).Valid() {
		t.Error("8 does not exist in the deck")
	}
	if (Card{Number: 9, Suit: SuitCoin}).Valid() {
		t.Error("9 does not exist in the deck")
	}
	if (Card{Number: 1, Suit: Suit("Heart")}).Valid() {
		t.Error("Heart is not a suit")
	}
}
