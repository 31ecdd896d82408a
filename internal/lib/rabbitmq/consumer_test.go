package rabbitmq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestConsume_HandlesPublishedEvents(t *testing.T) {
	ctx := context.Background()
	amqpURI := setupRabbitMQ(ctx, t)

	conn, err := Connect(amqpURI, 3, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	queues := []QueueConfig{{QueueName: "consume.test", RoutingKey: "consume.test"}}
	ch, err := SetupChannel(conn, PaymentsExchange, queues)
	require.NoError(t, err)

	pub := NewPublisher(ch, PaymentsExchange)
	defer pub.Close()

	consumeCh, err := conn.Channel()
	require.NoError(t, err)
	defer consumeCh.Close()

	runCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var (
		mu       sync.Mutex
		received []string
		attempts atomic.Int32
	)
	done := make(chan error, 1)
	go func() {
		done <- Consume(runCtx, consumeCh, "consume.test", 2, newNoopLogger(), func(_ context.Context, body []byte) error {
			if attempts.Add(1) == 1 {
				return errors.New("temporary failure")
			}
			mu.Lock()
			defer mu.Unlock()
			received = append(received, string(body))
			if len(received) == 2 {
				cancel()
			}
			return nil
		})
	}()

	require.NoError(t, pub.Publish(ctx, "consume.test", map[string]string{"payment_id": "PAY-1"}))
	require.NoError(t, pub.Publish(ctx, "consume.test", map[string]string{"payment_id": "PAY-2"}))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("consumer did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{`{"payment_id":"PAY-1"}`, `{"payment_id":"PAY-2"}`}, received)
	assert.GreaterOrEqual(t, attempts.Load(), int32(3))
}
