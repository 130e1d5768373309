package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/Bzzmn/Foundry-Raffle/models"

	"github.com/stretchr/testify/require"
)

func TestKeeperTriggersUpkeepWhenEligible(t *testing.T) {
	rm, ledger, coordinator := newTestManager(100, time.Minute)
	fund(t, ledger, "alice", 500)
	enter(t, rm, "alice", 100)
	backdate(rm)

	keeper := NewKeeper(rm, 10*time.Millisecond)
	go keeper.Run()
	defer keeper.Stop()

	require.Eventually(t, func() bool {
		return rm.GetRaffle().State == models.RaffleStateCalculating
	}, time.Second, 10*time.Millisecond)
	require.Len(t, coordinator.requests, 1)
}

func TestKeeperLeavesIneligibleRoundAlone(t *testing.T) {
	rm, ledger, coordinator := newTestManager(100, time.Minute)
	fund(t, ledger, "alice", 500)
	enter(t, rm, "alice", 100)
	// Interval has not elapsed; the keeper must not fire.

	keeper := NewKeeper(rm, 10*time.Millisecond)
	go keeper.Run()
	defer keeper.Stop()

	time.Sleep(100 * time.Millisecond)
	require.Equal(t, models.RaffleStateOpen, rm.GetRaffle().State)
	require.Empty(t, coordinator.requests)

	// Upkeep is still open to anyone else.
	ok, err := rm.CheckUpkeep(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}
