package models

import (
	"time"
)

// Account is a ledger account. Balances are in base units (no decimals).
type Account struct {
	Player  string `json:"player" bson:"player"`
	Balance int64  `json:"balance" bson:"balance"`
}

// Entry is the persisted log of a single raffle entry.
type Entry struct {
	Player    string    `json:"player" bson:"player"`
	Amount    int64     `json:"amount" bson:"amount"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// RoundRecord is the persisted outcome of a completed round.
type RoundRecord struct {
	Winner    string    `json:"winner" bson:"winner"`
	Prize     int64     `json:"prize" bson:"prize"`
	Players   []string  `json:"players" bson:"players"`
	RequestID uint64    `json:"requestId" bson:"requestId"`
	EndedAt   time.Time `json:"endedAt" bson:"endedAt"`
}
