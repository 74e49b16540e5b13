package usecase

import (
	"context"
	"log/slog"

	"shopbot/internal/domain/cart"
	"shopbot/internal/domain/filter"
	"shopbot/internal/domain/order"
	"shopbot/internal/domain/pickup"
	"shopbot/internal/infra"

	"github.com/google/uuid"
)

// Session is the per-conversation view the router renders from. It is rebuilt
// from the store on every turn; the bot process keeps no state between
// messages.
type Session struct {
	ConversationID string
	CartID         string
	Cart           cart.Snapshot
	Filters        []filter.Filter
	Orders         []order.Order
	Pickups        []pickup.Pickup
}

type SessionService interface {
	// EnsureCartID returns the conversation's cart id, generating and
	// persisting one on first contact.
	EnsureCartID(ctx context.Context, conversationID string) (string, error)
	CartSnapshot(ctx context.Context, conversationID string) (cart.Snapshot, error)
	Load(ctx context.Context, conversationID string) (*Session, error)
}

type sessionServiceImpl struct {
	carts   CartRepository
	filters FilterRepository
	orders  OrderRepository
	pickups PickupRepository
	logger  *slog.Logger
}

func NewSessionService(
	carts CartRepository,
	filters FilterRepository,
	orders OrderRepository,
	pickups PickupRepository,
	logger *slog.Logger,
) SessionService {
	return &sessionServiceImpl{
		carts:   carts,
		filters: filters,
		orders:  orders,
		pickups: pickups,
		logger:  logger,
	}
}

func (s *sessionServiceImpl) EnsureCartID(ctx context.Context, conversationID string) (string, error) {
	cartID, err := s.carts.CartID(ctx, conversationID)
	if err == nil {
		return cartID, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return "", err
	}

	if err := s.carts.SaveCart(ctx, conversationID, uuid.NewString()); err != nil {
		return "", err
	}
	// Re-read: a concurrent first contact may have won the insert.
	return s.carts.CartID(ctx, conversationID)
}

func (s *sessionServiceImpl) CartSnapshot(ctx context.Context, conversationID string) (cart.Snapshot, error) {
	cartID, err := s.EnsureCartID(ctx, conversationID)
	if err != nil {
		return cart.Snapshot{}, err
	}
	items, err := s.carts.Items(ctx, cartID)
	if err != nil {
		return cart.Snapshot{}, err
	}
	return cart.Snapshot{CartID: cartID, Items: items}, nil
}

func (s *sessionServiceImpl) Load(ctx context.Context, conversationID string) (*Session, error) {
	snapshot, err := s.CartSnapshot(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	filters, err := s.filters.List(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	pickups, err := s.pickups.List(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	return &Session{
		ConversationID: conversationID,
		CartID:         snapshot.CartID,
		Cart:           snapshot,
		Filters:        filters,
		Orders:         orders,
		Pickups:        pickups,
	}, nil
}
