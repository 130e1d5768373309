// controllers/raffleManager.go
package controllers

import (
	"context"
	"log"
	"time"

	"github.com/Bzzmn/Foundry-Raffle/models"

	"github.com/gin-gonic/gin"
)

// Ledger is the value-transfer collaborator. Transfers must never be
// assumed to succeed.
type Ledger interface {
	Deposit(ctx context.Context, account string, amount int64) error
	Balance(ctx context.Context, account string) (int64, error)
	Transfer(ctx context.Context, from, to string, amount int64) error
}

// Coordinator is the randomness collaborator. A request is answered later,
// out of band, with a single call to RawFulfillRandomWords on the consumer.
type Coordinator interface {
	RequestRandomWords(keyHash string, subID uint64, confirmations uint16, gasLimit uint32, numWords uint32) (uint64, error)
}

// RaffleManagerWrapper is a local wrapper around models.RaffleManager
// which enables us to define new methods.
type RaffleManagerWrapper struct {
	models.RaffleManager
	Ledger      Ledger
	Coordinator Coordinator
}

// NewRaffleManager creates a new RaffleManagerWrapper instance with an open,
// empty round.
func NewRaffleManager(hub *models.Hub, cfg models.RaffleConfig, ledger Ledger, coordinator Coordinator) *RaffleManagerWrapper {
	return &RaffleManagerWrapper{
		RaffleManager: models.RaffleManager{
			Hub:    hub,
			Config: cfg,
			Raffle: &models.Raffle{
				State:         models.RaffleStateOpen,
				LastTimestamp: time.Now(),
			},
			TimerStopChan: make(chan struct{}),
		},
		Ledger:      ledger,
		Coordinator: coordinator,
	}
}

// Enter admits a player into the current round. The entry amount is moved
// into the pot account first, so a failed debit leaves the round untouched.
func (rm *RaffleManagerWrapper) Enter(ctx context.Context, player string, amount int64) error {
	rm.Lock.Lock()
	defer rm.Lock.Unlock()

	if rm.Raffle.State != models.RaffleStateOpen {
		return models.ErrRaffleNotOpen
	}
	if amount < rm.Config.EntranceFee {
		return models.ErrInsufficientEntranceFee
	}

	if err := rm.Ledger.Transfer(ctx, player, rm.Config.PotAccount, amount); err != nil {
		return err
	}
	rm.Raffle.AddPlayer(player)

	rm.Hub.Broadcast <- models.WSMessage{
		Event: "raffle_entered",
		Data: gin.H{
			"player":      player,
			"amount":      amount,
			"num_players": rm.Raffle.NumPlayers(),
		},
	}

	go rm.logEntry(models.Entry{Player: player, Amount: amount, Timestamp: time.Now()})

	log.Printf("Player %s entered with %d.", player, amount)
	return nil
}

// CheckUpkeep reports whether the round can advance: the interval has
// elapsed, the raffle is open, at least one player entered and the pot
// holds a balance. Read-only, callable by anyone at any time.
func (rm *RaffleManagerWrapper) CheckUpkeep(ctx context.Context) (bool, error) {
	rm.Lock.Lock()
	defer rm.Lock.Unlock()
	return rm.checkUpkeepLocked(ctx)
}

func (rm *RaffleManagerWrapper) checkUpkeepLocked(ctx context.Context) (bool, error) {
	balance, err := rm.Ledger.Balance(ctx, rm.Config.PotAccount)
	if err != nil {
		return false, err
	}
	intervalPassed := time.Since(rm.Raffle.LastTimestamp) >= rm.Config.Interval
	isOpen := rm.Raffle.State == models.RaffleStateOpen
	hasPlayers := rm.Raffle.NumPlayers() > 0
	hasBalance := balance > 0
	return intervalPassed && isOpen && hasPlayers && hasBalance, nil
}

// PerformUpkeep advances the round toward winner selection. Anyone may call
// it; admission is decided purely by the upkeep conditions. On success the
// raffle is calculating and exactly one randomness request is outstanding.
func (rm *RaffleManagerWrapper) PerformUpkeep(ctx context.Context) (uint64, error) {
	rm.Lock.Lock()
	defer rm.Lock.Unlock()

	balance, err := rm.Ledger.Balance(ctx, rm.Config.PotAccount)
	if err != nil {
		return 0, err
	}
	ok, err := rm.checkUpkeepLocked(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &models.UpkeepNotNeededError{
			Balance:    balance,
			NumPlayers: rm.Raffle.NumPlayers(),
			State:      rm.Raffle.State,
		}
	}

	rm.Raffle.State = models.RaffleStateCalculating
	requestID, err := rm.Coordinator.RequestRandomWords(
		rm.Config.KeyHash,
		rm.Config.SubscriptionID,
		rm.Config.RequestConfirmations,
		rm.Config.CallbackGasLimit,
		1,
	)
	if err != nil {
		// No request went out, so the round reopens as if nothing happened.
		rm.Raffle.State = models.RaffleStateOpen
		return 0, err
	}
	rm.Raffle.PendingRequestID = requestID

	rm.Hub.Broadcast <- models.WSMessage{
		Event: "requested_raffle_winner",
		Data: gin.H{
			"request_id":  requestID,
			"num_players": rm.Raffle.NumPlayers(),
			"balance":     balance,
		},
	}

	log.Printf("Upkeep performed, randomness request %d issued.", requestID)
	return requestID, nil
}

// RawFulfillRandomWords is the single re-entry point for the coordinator.
// It selects the winner, resets the round and pays out the whole pot. The
// callback is atomic: if the payout transfer fails, the reset is rolled
// back under the held lock and the raffle stays calculating with its
// players intact so the fulfillment can be re-attempted.
func (rm *RaffleManagerWrapper) RawFulfillRandomWords(caller string, requestID uint64, randomWord uint64) error {
	rm.Lock.Lock()
	defer rm.Lock.Unlock()

	if caller != rm.Config.CoordinatorID {
		return models.ErrOnlyCoordinator
	}
	if rm.Raffle.State != models.RaffleStateCalculating ||
		requestID != rm.Raffle.PendingRequestID ||
		rm.Raffle.NumPlayers() == 0 {
		return models.ErrUnknownRequest
	}

	winnerIndex := int(randomWord % uint64(rm.Raffle.NumPlayers()))
	winner := rm.Raffle.Player(winnerIndex)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	prize, err := rm.Ledger.Balance(ctx, rm.Config.PotAccount)
	if err != nil {
		return err
	}

	// Snapshot for rollback; the slice is copied because ClearPlayers
	// releases the backing array.
	snapshot := *rm.Raffle
	snapshot.Players = append([]string(nil), rm.Raffle.Players...)
	players := snapshot.Players

	// State reset happens before the transfer.
	rm.Raffle.RecentWinner = winner
	rm.Raffle.ClearPlayers()
	rm.Raffle.LastTimestamp = time.Now()
	rm.Raffle.State = models.RaffleStateOpen
	rm.Raffle.PendingRequestID = 0

	if err := rm.Ledger.Transfer(ctx, rm.Config.PotAccount, winner, prize); err != nil {
		*rm.Raffle = snapshot
		return &models.TransferFailedError{Winner: winner, Amount: prize, Err: err}
	}

	rm.Hub.Broadcast <- models.WSMessage{
		Event: "winner_picked",
		Data: gin.H{
			"winner":     winner,
			"prize":      prize,
			"request_id": requestID,
		},
	}

	go rm.persistRound(models.RoundRecord{
		Winner:    winner,
		Prize:     prize,
		Players:   players,
		RequestID: requestID,
		EndedAt:   time.Now(),
	})

	log.Printf("Winner %s picked (slot %d of %d), prize %d paid out.",
		winner, winnerIndex, len(players), prize)
	return nil
}

// GetRaffle returns a copy of the current round state.
func (rm *RaffleManagerWrapper) GetRaffle() models.Raffle {
	rm.Lock.Lock()
	defer rm.Lock.Unlock()
	snapshot := *rm.Raffle
	snapshot.Players = append([]string(nil), rm.Raffle.Players...)
	return snapshot
}

// PotBalance reads the current pool balance from the ledger.
func (rm *RaffleManagerWrapper) PotBalance(ctx context.Context) (int64, error) {
	return rm.Ledger.Balance(ctx, rm.Config.PotAccount)
}

// StartTimerUpdates broadcasts a countdown tick each second until
// StopTimerUpdates is called.
func (rm *RaffleManagerWrapper) StartTimerUpdates() {
	rm.TimerTicker = time.NewTicker(1 * time.Second)
	go rm.sendTimerUpdates()
}

func (rm *RaffleManagerWrapper) StopTimerUpdates() {
	close(rm.TimerStopChan)
}

// sendTimerUpdates sends periodic timer updates to clients.
func (rm *RaffleManagerWrapper) sendTimerUpdates() {
	for {
		select {
		case <-rm.TimerTicker.C:
			rm.Lock.Lock()
			state := rm.Raffle.State
			elapsed := time.Since(rm.Raffle.LastTimestamp)
			rm.Lock.Unlock()

			remaining := rm.Config.Interval - elapsed
			if remaining < 0 {
				remaining = 0
			}
			rm.Hub.Broadcast <- models.WSMessage{
				Event: "timer_update",
				Data: gin.H{
					"state":     state,
					"elapsed":   elapsed.String(),
					"remaining": remaining.String(),
				},
			}
		case <-rm.TimerStopChan:
			rm.TimerTicker.Stop()
			return
		}
	}
}

func (rm *RaffleManagerWrapper) logEntry(entry models.Entry) {
	if EntryCollection == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := EntryCollection.InsertOne(ctx, entry); err != nil {
		log.Println("Failed to log entry:", err)
	}
}

func (rm *RaffleManagerWrapper) persistRound(record models.RoundRecord) {
	if RoundCollection == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := RoundCollection.InsertOne(ctx, record); err != nil {
		log.Println("Failed to persist round record:", err)
	}
}

// Global instance for accessing the RaffleManagerWrapper from anywhere.
var CurrentRaffleManager *RaffleManagerWrapper

// GetCurrentRaffle returns the current round from the active manager.
func GetCurrentRaffle() *models.Raffle {
	if CurrentRaffleManager == nil {
		return nil
	}
	snapshot := CurrentRaffleManager.GetRaffle()
	return &snapshot
}
