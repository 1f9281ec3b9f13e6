package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fulfillment-service/internal/dto"
	"fulfillment-service/internal/logger"
	"fulfillment-service/internal/model"
	"fulfillment-service/internal/repository"
)

// ShippingCreator es la parte de ShippingService que usa el consumer.
type ShippingCreator interface {
	Create(ctx context.Context, orderID string, address dto.AddressDTO) (*model.ShippingRecord, error)
}

// ErrMalformed marca mensajes que no se pueden procesar nunca; se descartan.
var ErrMalformed = errors.New("mensaje mal formado")

type PlaceOrderConsumer struct {
	shipping ShippingCreator
	log      *logger.Logger
}

func NewPlaceOrderConsumer(s ShippingCreator, log *logger.Logger) *PlaceOrderConsumer {
	return &PlaceOrderConsumer{shipping: s, log: log.With("consumer", "place_order")}
}

// Handle crea el envío pending de la orden recibida. Una orden repetida
// (redelivery) no es error: el envío ya existe.
func (c *PlaceOrderConsumer) Handle(ctx context.Context, body []byte) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var order PlacedOrder
	if err := json.Unmarshal(env.Message, &order); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if order.OrderID == "" {
		return fmt.Errorf("%w: orderId vacío", ErrMalformed)
	}

	c.log.Debug().Str("correlationId", env.CorrelationID).Str("orderId", order.OrderID).Msg("evento recibido")

	_, err := c.shipping.Create(ctx, order.OrderID, order.Shipping)
	if errors.Is(err, repository.ErrDuplicate) {
		c.log.Info().Str("orderId", order.OrderID).Msg("envío ya existente, se ignora")
		return nil
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return err
}
