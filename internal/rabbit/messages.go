package rabbit

import (
	"encoding/json"

	"fulfillment-service/internal/dto"
)

// Formato común de los mensajes entre microservicios.
type Envelope struct {
	CorrelationID string          `json:"correlation_id"`
	Exchange      string          `json:"exchange"`
	RoutingKey    string          `json:"routing_key"`
	Message       json.RawMessage `json:"message"`
}

// PlacedOrder es el cuerpo de order_placed. Shipping puede venir vacío.
type PlacedOrder struct {
	OrderID  string `json:"orderId"`
	CartID   string `json:"cartId"`
	UserID   string `json:"userId"`
	Articles []struct {
		ArticleID string `json:"articleId"`
		Quantity  int    `json:"quantity"`
	} `json:"articles"`
	Shipping dto.AddressDTO `json:"shipping"`
}
