package game

import "errors"

var (
	// ErrNotFound is returned for operations on an unknown game id.
	ErrNotFound = errors.New("game not found")

	// ErrFull is returned when joining a room that already seats its
	// full player count.
	ErrFull = errors.New("game is full")

	// ErrNotStarted is returned for plays submitted before the roster
	// is complete.
	ErrNotStarted = errors.New("game has not started")

	// ErrFinished is returned for plays submitted after the final round
	// has resolved.
	ErrFinished = errors.New("game is finished")

	// ErrNotYourTurn is returned for plays submitted out of turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrNotInHand is returned when the played card is absent from the
	// player's hand.
	ErrNotInHand = errors.New("card not in hand")
)
