package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// PaymentsExchange — direct-обменник для событий платежей.
const PaymentsExchange = "payments"

// RoutingKeyPaymentProcessed — ключ события о проведенном платеже.
const RoutingKeyPaymentProcessed = "payment.processed"

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// PaymentQueues возвращает очереди, которые привязываются к обменнику платежей.
func PaymentQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "payments.processed", RoutingKey: RoutingKeyPaymentProcessed},
	}
}

// SetupChannel открывает канал, объявляет обменник и привязывает к нему очереди.
func SetupChannel(conn *amqp.Connection, exchange string, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(q.QueueName, q.RoutingKey, exchange, false, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
