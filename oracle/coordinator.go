// Package oracle simulates an external randomness coordinator: requests are
// acknowledged immediately with a request id and answered later, once, on a
// separate goroutine after a confirmation delay.
package oracle

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log"
	"sync"
	"time"
)

// Consumer receives randomness fulfillments. The coordinator passes its own
// identity as the caller so consumers can verify the origin.
type Consumer interface {
	RawFulfillRandomWords(caller string, requestID uint64, randomWord uint64) error
}

// Coordinator issues monotonically increasing request ids and delivers
// exactly one fulfillment per request to its registered consumer.
type Coordinator struct {
	ID        string
	BlockTime time.Duration

	mu            sync.Mutex
	consumer      Consumer
	nextRequestID uint64
}

// NewCoordinator returns a coordinator identified by id. blockTime scales
// the simulated confirmation delay.
func NewCoordinator(id string, blockTime time.Duration) *Coordinator {
	return &Coordinator{
		ID:        id,
		BlockTime: blockTime,
	}
}

// SetConsumer registers the consumer fulfillments are delivered to.
func (c *Coordinator) SetConsumer(consumer Consumer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumer = consumer
}

// RequestRandomWords schedules an asynchronous fulfillment and returns the
// request id. The key hash, subscription id and gas limit are accepted for
// interface fidelity; only the confirmation count affects the simulation.
func (c *Coordinator) RequestRandomWords(keyHash string, subID uint64, confirmations uint16, gasLimit uint32, numWords uint32) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.consumer == nil {
		return 0, errors.New("no consumer registered")
	}
	c.nextRequestID++
	requestID := c.nextRequestID
	consumer := c.consumer

	delay := time.Duration(confirmations) * c.BlockTime
	go c.fulfill(consumer, requestID, delay)

	log.Printf("Randomness request %d accepted (keyHash=%s sub=%d confs=%d gas=%d words=%d).",
		requestID, keyHash, subID, confirmations, gasLimit, numWords)
	return requestID, nil
}

func (c *Coordinator) fulfill(consumer Consumer, requestID uint64, delay time.Duration) {
	time.Sleep(delay)

	word, err := randomWord()
	if err != nil {
		log.Println("Failed to draw random word:", err)
		return
	}
	if err := consumer.RawFulfillRandomWords(c.ID, requestID, word); err != nil {
		log.Printf("Fulfillment of request %d rejected: %v", requestID, err)
	}
}

func randomWord() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
