package usecase

import (
	"context"
	"time"

	"shopbot/internal/domain/cart"
	"shopbot/internal/domain/filter"
	"shopbot/internal/domain/order"
	"shopbot/internal/domain/pickup"
)

// Store ports implemented by internal/infra/repository. Every mutation is a
// single-key atomic read-modify-write; no cross-key atomicity is assumed.

type CartRepository interface {
	CartID(ctx context.Context, conversationID string) (string, error)
	SaveCart(ctx context.Context, conversationID, cartID string) error
	ConversationByCartID(ctx context.Context, cartID string) (string, error)
	AddItem(ctx context.Context, cartID, itemID, itemTitle string) error
	RemoveItem(ctx context.Context, cartID, itemID string) (bool, error)
	Items(ctx context.Context, cartID string) ([]cart.Item, error)
	Empty(ctx context.Context, cartID string) error
}

type FilterRepository interface {
	Set(ctx context.Context, conversationID, name, value string) error
	Remove(ctx context.Context, conversationID, name string) (bool, error)
	Find(ctx context.Context, conversationID, name string) (*filter.Filter, error)
	List(ctx context.Context, conversationID string) ([]filter.Filter, error)
}

type OrderRepository interface {
	Add(ctx context.Context, conversationID, orderID string) error
	List(ctx context.Context, conversationID string) ([]order.Order, error)
}

type PickupRepository interface {
	Add(ctx context.Context, conversationID, orderID string) error
	Find(ctx context.Context, conversationID, orderID string) (*pickup.Pickup, error)
	Transition(ctx context.Context, conversationID, orderID string, allowed func(pickup.Status) bool, next pickup.Status) (bool, error)
	TransitionWithDetails(ctx context.Context, conversationID, orderID string, allowed func(pickup.Status) bool, next pickup.Status, storeAddress *string, pickupTime *time.Time) (bool, error)
	List(ctx context.Context, conversationID string) ([]pickup.Pickup, error)
	ListByStatus(ctx context.Context, conversationID string, status pickup.Status) ([]pickup.Pickup, error)
}
