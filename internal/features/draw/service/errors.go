package service

import "errors"

var (
	// ErrEmptyPool means no eligible participants exist for a requested draw.
	ErrEmptyPool = errors.New("no eligible participants to draw from")

	// ErrNoEligibleParticipants means the bounded re-draw was exhausted
	// because every remaining eligible name is already a winner. Terminal
	// for the round.
	ErrNoEligibleParticipants = errors.New("no eligible participants left for this round")

	// ErrInvalidConfiguration rejects malformed round settings before any
	// round is generated.
	ErrInvalidConfiguration = errors.New("invalid round configuration")

	ErrAlreadyStarted  = errors.New("draw has already started")
	ErrNotStarted      = errors.New("draw has not started")
	ErrDrawComplete    = errors.New("draw is complete")
	ErrNoRounds        = errors.New("no rounds planned")
	ErrPendingWinner   = errors.New("a pending winner is awaiting confirmation")
	ErrNoPendingWinner = errors.New("no pending winner to act on")
)
