package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/oklog/ulid/v2"
)

// EventAddToCart is the eventType attribute of published messages.
const EventAddToCart = "cart.item_added"

// AddToCartEvent is the JSON payload published for each action.
type AddToCartEvent struct {
	EventID    string    `json:"eventId"`
	CartID     string    `json:"cartId"`
	ProductID  string    `json:"productId"`
	Name       string    `json:"name"`
	Brand      string    `json:"brand,omitempty"`
	Price      int64     `json:"price"`
	Currency   string    `json:"currency"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurredAt"`
}

// PubSub publishes add-to-cart events to a Pub/Sub topic.
type PubSub struct {
	topic   *pubsub.Topic
	marshal func(any) ([]byte, error)
	now     func() time.Time
	newID   func(time.Time) string
}

// NewPubSub wraps topic. The topic must outlive the sink.
func NewPubSub(topic *pubsub.Topic) (*PubSub, error) {
	if topic == nil {
		return nil, errors.New("cart pubsub: topic is required")
	}
	return &PubSub{
		topic:   topic,
		marshal: json.Marshal,
		now:     time.Now,
		newID: func(t time.Time) string {
			return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
		},
	}, nil
}

// Add publishes the event and waits for the server acknowledgement.
func (p *PubSub) Add(ctx context.Context, cartID string, item Item) error {
	if p == nil || p.topic == nil {
		return errors.New("cart pubsub: not initialised")
	}
	item, err := validate(cartID, item)
	if err != nil {
		return err
	}

	at := p.now().UTC()
	event := AddToCartEvent{
		EventID:    p.newID(at),
		CartID:     cartID,
		ProductID:  item.ProductID,
		Name:       item.Name,
		Brand:      item.Brand,
		Price:      item.Price,
		Currency:   item.Currency,
		Quantity:   item.Quantity,
		OccurredAt: at,
	}
	data, err := p.marshal(event)
	if err != nil {
		return fmt.Errorf("marshal cart event: %w", err)
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"eventType": EventAddToCart,
			"eventId":   event.EventID,
			"cartId":    cartID,
			"productId": item.ProductID,
			"quantity":  strconv.Itoa(item.Quantity),
		},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish cart event: %w", err)
	}
	return nil
}

// Stop flushes pending messages.
func (p *PubSub) Stop() {
	if p != nil && p.topic != nil {
		p.topic.Stop()
	}
}
