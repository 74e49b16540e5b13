package usecase

import (
	"context"
	"log/slog"
	"net/url"

	"shopbot/internal/domain/cart"
	"shopbot/internal/pkg/config"
	"shopbot/internal/pkg/token"
)

// PlacedOrder is what the order-confirmation page renders: the lines the cart
// held at the moment of checkout.
type PlacedOrder struct {
	ConversationID string
	OrderID        string
	Lines          []cart.Item
}

type CheckoutCommands interface {
	// CheckoutLink builds the companion web page URL for the conversation's
	// cart, with the cart id bound to a signed token.
	CheckoutLink(ctx context.Context, conversationID string) (string, error)

	// PlaceOrder appends the order, creates its incomplete pickup, and
	// empties the cart. Called by the checkout page, keyed by cart id.
	PlaceOrder(ctx context.Context, cartID, orderID string) (*PlacedOrder, error)
}

type checkoutCommandsImpl struct {
	sessions SessionService
	carts    CartRepository
	orders   OrderRepository
	pickups  PickupRepository
	tokens   *token.Service
	cfg      config.BotConfig
	logger   *slog.Logger
}

func NewCheckoutCommands(
	sessions SessionService,
	carts CartRepository,
	orders OrderRepository,
	pickups PickupRepository,
	tokens *token.Service,
	cfg config.BotConfig,
	logger *slog.Logger,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		sessions: sessions,
		carts:    carts,
		orders:   orders,
		pickups:  pickups,
		tokens:   tokens,
		cfg:      cfg,
		logger:   logger,
	}
}

func (c *checkoutCommandsImpl) CheckoutLink(ctx context.Context, conversationID string) (string, error) {
	cartID, err := c.sessions.EnsureCartID(ctx, conversationID)
	if err != nil {
		return "", err
	}
	signed, err := c.tokens.Issue(cartID)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(c.cfg.CheckoutURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("cartId", cartID)
	q.Set("token", signed)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *checkoutCommandsImpl) PlaceOrder(ctx context.Context, cartID, orderID string) (*PlacedOrder, error) {
	conversationID, err := c.carts.ConversationByCartID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	// Capture the lines before emptying; the confirmation page shows them.
	lines, err := c.carts.Items(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := c.orders.Add(ctx, conversationID, orderID); err != nil {
		return nil, err
	}
	if err := c.pickups.Add(ctx, conversationID, orderID); err != nil {
		return nil, err
	}
	if err := c.carts.Empty(ctx, cartID); err != nil {
		// The order is already placed; an uncleared cart is recoverable.
		c.logger.Error("failed to empty cart after checkout",
			"cart_id", cartID, "order_id", orderID, "error", err.Error())
	}

	return &PlacedOrder{
		ConversationID: conversationID,
		OrderID:        orderID,
		Lines:          lines,
	}, nil
}
