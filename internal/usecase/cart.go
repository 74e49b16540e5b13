package usecase

import (
	"context"
	"log/slog"

	"shopbot/internal/domain/cart"
	"shopbot/internal/domain/catalog"
	"shopbot/internal/pkg/errs"
)

type CartCommands interface {
	// AddItem adds one unit of the item to the conversation's cart and
	// returns the freshly recomputed snapshot. The UI layer always re-renders
	// from the return value, never from a cached prior state.
	AddItem(ctx context.Context, conversationID, itemID string) (cart.Snapshot, catalog.Item, error)

	// RemoveItem removes one unit; the last unit deletes the line. Removing
	// an item that is not in the cart is a logged no-op.
	RemoveItem(ctx context.Context, conversationID, itemID string) (cart.Snapshot, catalog.Item, error)
}

type cartCommandsImpl struct {
	sessions SessionService
	carts    CartRepository
	catalog  catalog.Catalog
	logger   *slog.Logger
}

func NewCartCommands(sessions SessionService, carts CartRepository, cat catalog.Catalog, logger *slog.Logger) CartCommands {
	return &cartCommandsImpl{
		sessions: sessions,
		carts:    carts,
		catalog:  cat,
		logger:   logger,
	}
}

func (c *cartCommandsImpl) AddItem(ctx context.Context, conversationID, itemID string) (cart.Snapshot, catalog.Item, error) {
	item, ok := c.catalog.Get(itemID)
	if !ok {
		c.logger.Warn("attempted to add item not in catalog",
			"conversation_id", conversationID, "item_id", itemID)
		return cart.Snapshot{}, catalog.Item{}, errs.ErrItemNotFound
	}

	cartID, err := c.sessions.EnsureCartID(ctx, conversationID)
	if err != nil {
		return cart.Snapshot{}, catalog.Item{}, err
	}
	if err := c.carts.AddItem(ctx, cartID, item.ID, item.Title); err != nil {
		return cart.Snapshot{}, catalog.Item{}, err
	}

	snapshot, err := c.snapshot(ctx, cartID)
	return snapshot, item, err
}

func (c *cartCommandsImpl) RemoveItem(ctx context.Context, conversationID, itemID string) (cart.Snapshot, catalog.Item, error) {
	item, ok := c.catalog.Get(itemID)
	if !ok {
		c.logger.Warn("attempted to remove item not in catalog",
			"conversation_id", conversationID, "item_id", itemID)
		return cart.Snapshot{}, catalog.Item{}, errs.ErrItemNotFound
	}

	cartID, err := c.sessions.EnsureCartID(ctx, conversationID)
	if err != nil {
		return cart.Snapshot{}, catalog.Item{}, err
	}

	touched, err := c.carts.RemoveItem(ctx, cartID, item.ID)
	if err != nil {
		return cart.Snapshot{}, catalog.Item{}, err
	}
	if !touched {
		c.logger.Warn("attempted removal of item not in cart",
			"cart_id", cartID, "item_id", item.ID)
	}

	snapshot, err := c.snapshot(ctx, cartID)
	return snapshot, item, err
}

func (c *cartCommandsImpl) snapshot(ctx context.Context, cartID string) (cart.Snapshot, error) {
	items, err := c.carts.Items(ctx, cartID)
	if err != nil {
		return cart.Snapshot{}, err
	}
	return cart.Snapshot{CartID: cartID, Items: items}, nil
}
