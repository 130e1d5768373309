package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bzzmn/Foundry-Raffle/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// MongoLedger keeps account balances in the accounts collection. Transfers
// run inside a MongoDB session transaction so both legs commit or neither
// does.
type MongoLedger struct {
	client   *mongo.Client
	accounts *mongo.Collection
}

func NewMongoLedger(client *mongo.Client, database *mongo.Database) *MongoLedger {
	return &MongoLedger{
		client:   client,
		accounts: database.Collection("accounts"),
	}
}

// Deposit credits an account, creating it if it does not exist.
func (l *MongoLedger) Deposit(ctx context.Context, account string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("deposit amount must be positive")
	}
	opts := options.Update().SetUpsert(true)
	_, err := l.accounts.UpdateOne(ctx,
		bson.M{"player": account},
		bson.M{"$inc": bson.M{"balance": amount}},
		opts,
	)
	return err
}

// Balance returns an account's balance; missing accounts read as zero.
func (l *MongoLedger) Balance(ctx context.Context, account string) (int64, error) {
	var acc models.Account
	err := l.accounts.FindOne(ctx, bson.M{"player": account}).Decode(&acc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}
	return acc.Balance, nil
}

// Transfer moves amount between accounts atomically.
func (l *MongoLedger) Transfer(ctx context.Context, from, to string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive")
	}

	session, err := l.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	callback := func(sessCtx mongo.SessionContext) (interface{}, error) {
		var src models.Account
		err := l.accounts.FindOne(sessCtx, bson.M{"player": from}).Decode(&src)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrInsufficientFunds
			}
			return nil, err
		}
		if src.Balance < amount {
			return nil, ErrInsufficientFunds
		}

		if _, err := l.accounts.UpdateOne(sessCtx,
			bson.M{"player": from},
			bson.M{"$inc": bson.M{"balance": -amount}},
		); err != nil {
			return nil, err
		}
		opts := options.Update().SetUpsert(true)
		if _, err := l.accounts.UpdateOne(sessCtx,
			bson.M{"player": to},
			bson.M{"$inc": bson.M{"balance": amount}},
			opts,
		); err != nil {
			return nil, err
		}
		return nil, nil
	}

	_, err = session.WithTransaction(ctx, callback)
	return err
}
