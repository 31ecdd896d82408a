package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
)

// Handler обрабатывает тело одного сообщения. Ошибка возвращает сообщение в очередь.
type Handler func(ctx context.Context, body []byte) error

// Consume читает очередь queueName и обрабатывает сообщения не более чем
// в workers горутинах. Блокируется до отмены ctx или закрытия канала
// и дожидается обработки уже полученных сообщений.
func Consume(ctx context.Context, ch *amqp.Channel, queueName string, workers int, log *slog.Logger, handler Handler) error {
	const op = "rabbitmq.Consume"

	if workers < 1 {
		workers = 1
	}
	if err := ch.Qos(workers, 0, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	deliveries, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	defer wg.Wait()

	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			sem <- struct{}{}
			wg.Add(1)
			go func(d amqp.Delivery) {
				defer wg.Done()
				defer func() { <-sem }()

				if err := handler(ctx, d.Body); err != nil {
					log.Error("failed to handle message", slog.String("queue", queueName), sl.Err(err))
					if nackErr := d.Nack(false, true); nackErr != nil {
						log.Error("failed to nack message", sl.Err(nackErr))
					}
					return
				}
				if ackErr := d.Ack(false); ackErr != nil {
					log.Error("failed to ack message", sl.Err(ackErr))
				}
			}(d)
		case <-ctx.Done():
			return nil
		}
	}
}
