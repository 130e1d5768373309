package oracle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fulfillment struct {
	caller    string
	requestID uint64
	word      uint64
}

type captureConsumer struct {
	got chan fulfillment
}

func (c *captureConsumer) RawFulfillRandomWords(caller string, requestID uint64, word uint64) error {
	c.got <- fulfillment{caller: caller, requestID: requestID, word: word}
	return nil
}

func TestRequestWithoutConsumer(t *testing.T) {
	c := NewCoordinator("vrf-coordinator", time.Millisecond)
	_, err := c.RequestRandomWords("lane", 1, 1, 500000, 1)
	require.Error(t, err)
}

func TestRequestIDsAreSequential(t *testing.T) {
	c := NewCoordinator("vrf-coordinator", time.Millisecond)
	consumer := &captureConsumer{got: make(chan fulfillment, 8)}
	c.SetConsumer(consumer)

	first, err := c.RequestRandomWords("lane", 1, 1, 500000, 1)
	require.NoError(t, err)
	second, err := c.RequestRandomWords("lane", 1, 1, 500000, 1)
	require.NoError(t, err)
	require.Equal(t, first+1, second)
}

func TestFulfillmentDeliveredOncePerRequest(t *testing.T) {
	c := NewCoordinator("vrf-coordinator", time.Millisecond)
	consumer := &captureConsumer{got: make(chan fulfillment, 8)}
	c.SetConsumer(consumer)

	requestID, err := c.RequestRandomWords("lane", 1, 2, 500000, 1)
	require.NoError(t, err)

	select {
	case f := <-consumer.got:
		require.Equal(t, "vrf-coordinator", f.caller)
		require.Equal(t, requestID, f.requestID)
	case <-time.After(time.Second):
		t.Fatal("fulfillment never arrived")
	}

	select {
	case f := <-consumer.got:
		t.Fatalf("unexpected second fulfillment: %+v", f)
	case <-time.After(50 * time.Millisecond):
	}
}
