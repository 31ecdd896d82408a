package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/gym-management/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/services/payment"
)

func eventsCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print payment events from the payments.processed queue until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.RabbitMQ.URL == "" {
				return fmt.Errorf("rabbitmq url is not configured")
			}
			log := sl.NewLogger(cfg.Env)

			conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
			if err != nil {
				return err
			}
			defer conn.Close()

			queues := rabbitmq.PaymentQueues()
			ch, err := rabbitmq.SetupChannel(conn, rabbitmq.PaymentsExchange, queues)
			if err != nil {
				return err
			}
			defer ch.Close()

			out := cmd.OutOrStdout()
			return rabbitmq.Consume(cmd.Context(), ch, queues[0].QueueName, workers, log, func(_ context.Context, body []byte) error {
				var ev payment.ProcessedEvent
				if err := json.Unmarshal(body, &ev); err != nil {
					// битое сообщение не возвращаем в очередь
					log.Error("skipping malformed event", sl.Err(err))
					return nil
				}
				fmt.Fprintf(out, "%s %s %s %.2f %s %s %s\n",
					ev.CreatedAt.Format(time.RFC3339), ev.PaymentID, ev.MemberID,
					ev.Amount, ev.Currency, ev.Method, ev.Status)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "number of concurrent handlers")
	return cmd
}
