// setup.go
package rabbit

import (
	"context"
	"errors"

	"fulfillment-service/internal/logger"
	"fulfillment-service/internal/metrics"

	"github.com/rabbitmq/amqp091-go"
)

const (
	OrderPlacedExchange = "order_placed"
	OrdersQueue         = "fulfillment_service_orders"
)

// SetupConsumers declara la cola, la bindea al fanout order_placed y procesa
// los mensajes en una goroutine hasta que se cierre el canal o ctx.
func SetupConsumers(ctx context.Context, ch *amqp091.Channel, consumer *PlaceOrderConsumer, log *logger.Logger) error {
	q, err := ch.QueueDeclare(
		OrdersQueue, // cola exclusiva para este micro
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	// fanout ignora routing key
	if err := ch.QueueBind(q.Name, "", OrderPlacedExchange, false, nil); err != nil {
		return err
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					log.Warn().Msg("canal de rabbit cerrado")
					return
				}
				dispatch(ctx, consumer, m, log)
			}
		}
	}()

	log.Info().Str("exchange", OrderPlacedExchange).Str("queue", q.Name).Msg("suscrito a exchange")
	return nil
}

// acknowledger es la parte de amqp091.Delivery que se usa para confirmar.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func dispatch(ctx context.Context, consumer *PlaceOrderConsumer, m amqp091.Delivery, log *logger.Logger) {
	settle(consumer.Handle(ctx, m.Body), m, log)
}

// settle confirma el mensaje. No hay reintentos: los fallos se descartan.
func settle(err error, m acknowledger, log *logger.Logger) {
	switch {
	case err == nil:
		metrics.EventsConsumed.WithLabelValues(OrdersQueue, "ok").Inc()
		_ = m.Ack(false)
	case errors.Is(err, ErrMalformed):
		metrics.EventsConsumed.WithLabelValues(OrdersQueue, "malformed").Inc()
		log.Warn().Err(err).Msg("mensaje descartado")
		_ = m.Nack(false, false)
	default:
		metrics.EventsConsumed.WithLabelValues(OrdersQueue, "error").Inc()
		log.Error().Err(err).Msg("error creando envío")
		_ = m.Nack(false, false)
	}
}
