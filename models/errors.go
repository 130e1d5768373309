package models

import (
	"errors"
	"fmt"
)

var (
	// ErrRaffleNotOpen is returned when an entry or upkeep arrives while a
	// winner is being calculated.
	ErrRaffleNotOpen = errors.New("raffle is not open")

	// ErrInsufficientEntranceFee is returned when the entry amount is below
	// the configured entrance fee.
	ErrInsufficientEntranceFee = errors.New("amount is below the entrance fee")

	// ErrOnlyCoordinator is returned when a randomness callback arrives from
	// anyone other than the configured coordinator.
	ErrOnlyCoordinator = errors.New("caller is not the randomness coordinator")

	// ErrUnknownRequest is returned when a callback does not match the single
	// pending randomness request.
	ErrUnknownRequest = errors.New("no matching randomness request is pending")
)

// UpkeepNotNeededError reports why upkeep was refused. The fields are a
// snapshot taken at the time of the call so automated callers can branch on
// them instead of parsing a message.
type UpkeepNotNeededError struct {
	Balance    int64       `json:"balance"`
	NumPlayers int         `json:"numPlayers"`
	State      RaffleState `json:"state"`
}

func (e *UpkeepNotNeededError) Error() string {
	return fmt.Sprintf("upkeep not needed: balance=%d players=%d state=%s",
		e.Balance, e.NumPlayers, e.State)
}

// TransferFailedError reports a payout that could not be completed. The
// round state is rolled back before this is returned, so the round stays
// in the calculating state with its players intact.
type TransferFailedError struct {
	Winner string
	Amount int64
	Err    error
}

func (e *TransferFailedError) Error() string {
	return fmt.Sprintf("payout of %d to %s failed: %v", e.Amount, e.Winner, e.Err)
}

func (e *TransferFailedError) Unwrap() error {
	return e.Err
}
