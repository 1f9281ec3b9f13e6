package rabbit

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment-service/internal/dto"
	"fulfillment-service/internal/metrics"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

const ShippingStatusExchange = "shipping_status_changed"

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Publisher publica los cambios de estado de envío en un fanout.
type Publisher struct {
	ch       publishChannel
	exchange string
}

// NewPublisher declara el exchange (durable, fanout) y devuelve el publisher.
func NewPublisher(ch *amqp091.Channel) (*Publisher, error) {
	if err := ch.ExchangeDeclare(ShippingStatusExchange, "fanout", true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &Publisher{ch: ch, exchange: ShippingStatusExchange}, nil
}

func (p *Publisher) PublishShippingStatus(ctx context.Context, ev dto.ShippingStatusEvent) error {
	msg, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	body, err := json.Marshal(Envelope{
		CorrelationID: id,
		Exchange:      p.exchange,
		Message:       msg,
	})
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    id,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		metrics.EventsPublished.WithLabelValues(p.exchange, "error").Inc()
		return err
	}
	metrics.EventsPublished.WithLabelValues(p.exchange, "ok").Inc()
	return nil
}
