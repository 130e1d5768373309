// controllers/keeper.go
package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Bzzmn/Foundry-Raffle/models"
)

// Keeper polls the upkeep check and triggers upkeep when the round becomes
// eligible. It plays the role of the off-chain automation agent; the raffle
// itself never depends on it, anyone else may call upkeep too.
type Keeper struct {
	Manager  *RaffleManagerWrapper
	Interval time.Duration
	StopChan chan struct{}
}

// NewKeeper returns a keeper polling at the given interval.
func NewKeeper(rm *RaffleManagerWrapper, interval time.Duration) *Keeper {
	return &Keeper{
		Manager:  rm,
		Interval: interval,
		StopChan: make(chan struct{}),
	}
}

// Run blocks, polling until Stop is called.
func (k *Keeper) Run() {
	ticker := time.NewTicker(k.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			k.tick()
		case <-k.StopChan:
			return
		}
	}
}

func (k *Keeper) Stop() {
	close(k.StopChan)
}

func (k *Keeper) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ok, err := k.Manager.CheckUpkeep(ctx)
	if err != nil {
		log.Println("Keeper upkeep check failed:", err)
		return
	}
	if !ok {
		return
	}
	if _, err := k.Manager.PerformUpkeep(ctx); err != nil {
		// Someone else may have won the race to trigger it.
		var notNeeded *models.UpkeepNotNeededError
		if errors.As(err, &notNeeded) {
			return
		}
		log.Println("Keeper upkeep failed:", err)
	}
}
