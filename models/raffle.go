package models

import (
	"sync"
	"time"
)

type RaffleState string

const (
	RaffleStateOpen        RaffleState = "open"
	RaffleStateCalculating RaffleState = "calculating"
)

// Raffle holds the state of the single active round.
type Raffle struct {
	State            RaffleState `json:"state" bson:"state"`
	Players          []string    `json:"players" bson:"players"`
	LastTimestamp    time.Time   `json:"lastTimestamp" bson:"lastTimestamp"`
	RecentWinner     string      `json:"recentWinner,omitempty" bson:"recentWinner,omitempty"`
	PendingRequestID uint64      `json:"pendingRequestId,omitempty" bson:"pendingRequestId,omitempty"`
}

// AddPlayer appends a player slot. Duplicates are allowed on purpose: each
// entry is its own slot, so entering twice doubles the win weight.
func (r *Raffle) AddPlayer(player string) {
	r.Players = append(r.Players, player)
}

// Player returns the player at the given slot index.
func (r *Raffle) Player(index int) string {
	return r.Players[index]
}

// NumPlayers returns the number of entry slots in the current round.
func (r *Raffle) NumPlayers() int {
	return len(r.Players)
}

// ClearPlayers empties the slot list for the next round.
func (r *Raffle) ClearPlayers() {
	r.Players = nil
}

// RaffleConfig is fixed at startup and never changes afterwards. The key
// hash, subscription id, confirmations and gas limit are opaque routing
// parameters handed through to the randomness coordinator.
type RaffleConfig struct {
	EntranceFee          int64
	Interval             time.Duration
	KeyHash              string
	SubscriptionID       uint64
	RequestConfirmations uint16
	CallbackGasLimit     uint32
	CoordinatorID        string
	PotAccount           string
}

type RaffleManager struct {
	Hub           *Hub
	Config        RaffleConfig
	Raffle        *Raffle
	Lock          sync.Mutex
	TimerTicker   *time.Ticker
	TimerStopChan chan struct{}
}
