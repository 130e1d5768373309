package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpkeepNotNeededErrorMessage(t *testing.T) {
	err := &UpkeepNotNeededError{Balance: 300, NumPlayers: 3, State: RaffleStateOpen}
	assert.Equal(t, "upkeep not needed: balance=300 players=3 state=open", err.Error())
}

func TestTransferFailedErrorUnwraps(t *testing.T) {
	cause := errors.New("ledger down")
	err := &TransferFailedError{Winner: "alice", Amount: 300, Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "alice")
}

func TestRaffleSlotOperations(t *testing.T) {
	r := &Raffle{State: RaffleStateOpen}
	r.AddPlayer("alice")
	r.AddPlayer("alice")
	r.AddPlayer("bob")

	assert.Equal(t, 3, r.NumPlayers())
	assert.Equal(t, "alice", r.Player(1))
	assert.Equal(t, "bob", r.Player(2))

	r.ClearPlayers()
	assert.Zero(t, r.NumPlayers())
}
