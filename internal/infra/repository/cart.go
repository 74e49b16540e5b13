package repository

import (
	"context"
	"errors"

	"shopbot/internal/domain/cart"
	"shopbot/internal/infra"
	"shopbot/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

// maxQueryLimit caps every list read. Reads are "first N, arbitrary order";
// no caller in scope needs more.
const maxQueryLimit = 50

type CartRepository struct {
	runner *db.TxRunner
}

func NewCartRepository(runner *db.TxRunner) *CartRepository {
	return &CartRepository{runner: runner}
}

// CartID returns the cart id persisted for the conversation, or a NOT_FOUND
// repository error when the conversation has never had one.
func (r *CartRepository) CartID(ctx context.Context, conversationID string) (string, error) {
	var cartID string
	err := r.runner.Pool().QueryRow(ctx,
		`SELECT cart_id FROM carts WHERE conversation_id = $1`,
		conversationID,
	).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", infra.WrapRepoErr("cart not found for conversation", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to query cart id", err)
	}
	return cartID, nil
}

// SaveCart records the conversation -> cart mapping. A concurrent first
// contact may have inserted already; the existing mapping wins.
func (r *CartRepository) SaveCart(ctx context.Context, conversationID, cartID string) error {
	_, err := r.runner.Pool().Exec(ctx,
		`INSERT INTO carts (cart_id, conversation_id) VALUES ($1, $2)
		 ON CONFLICT (conversation_id) DO NOTHING`,
		cartID, conversationID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save cart", err)
	}
	return nil
}

// ConversationByCartID is the reverse lookup used by the checkout endpoints.
func (r *CartRepository) ConversationByCartID(ctx context.Context, cartID string) (string, error) {
	var conversationID string
	err := r.runner.Pool().QueryRow(ctx,
		`SELECT conversation_id FROM carts WHERE cart_id = $1`,
		cartID,
	).Scan(&conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", infra.WrapRepoErr("conversation not found for cart", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to query conversation by cart id", err)
	}
	return conversationID, nil
}

// AddItem increments the line for (cartID, itemID), creating it with count 1.
// The upsert is a single atomic statement, so two rapid adds cannot lose an
// increment.
func (r *CartRepository) AddItem(ctx context.Context, cartID, itemID, itemTitle string) error {
	err := r.runner.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO cart_items (cart_id, item_id, item_title, count)
			 VALUES ($1, $2, $3, 1)
			 ON CONFLICT (cart_id, item_id)
			 DO UPDATE SET count = cart_items.count + 1, updated_at = now()`,
			cartID, itemID, itemTitle,
		)
		return err
	})
	if err != nil {
		return infra.WrapRepoErr("failed to add item to cart", err)
	}
	return nil
}

// RemoveItem decrements the line, deleting it when the count reaches zero.
// Removing an absent line is a no-op; the boolean reports whether a line was
// touched so the caller can log the miss.
func (r *CartRepository) RemoveItem(ctx context.Context, cartID, itemID string) (bool, error) {
	var touched bool
	err := r.runner.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var count int
		err := tx.QueryRow(ctx,
			`SELECT count FROM cart_items WHERE cart_id = $1 AND item_id = $2 FOR UPDATE`,
			cartID, itemID,
		).Scan(&count)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		touched = true
		if count <= 1 {
			_, err = tx.Exec(ctx,
				`DELETE FROM cart_items WHERE cart_id = $1 AND item_id = $2`,
				cartID, itemID,
			)
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE cart_items SET count = count - 1, updated_at = now()
			 WHERE cart_id = $1 AND item_id = $2`,
			cartID, itemID,
		)
		return err
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to remove item from cart", err)
	}
	return touched, nil
}

func (r *CartRepository) Items(ctx context.Context, cartID string) ([]cart.Item, error) {
	rows, err := r.runner.Pool().Query(ctx,
		`SELECT cart_id, item_id, item_title, count FROM cart_items
		 WHERE cart_id = $1 LIMIT $2`,
		cartID, maxQueryLimit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query cart items", err)
	}
	defer rows.Close()

	var items []cart.Item
	for rows.Next() {
		var it cart.Item
		if err := rows.Scan(&it.CartID, &it.ItemID, &it.Title, &it.Count); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart item", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cart items", err)
	}
	return items, nil
}

// Empty deletes every line of the cart after checkout.
func (r *CartRepository) Empty(ctx context.Context, cartID string) error {
	err := r.runner.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
		return err
	})
	if err != nil {
		return infra.WrapRepoErr("failed to empty cart", err)
	}
	return nil
}
