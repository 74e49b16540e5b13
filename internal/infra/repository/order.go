package repository

import (
	"context"

	"shopbot/internal/domain/order"
	"shopbot/internal/infra"
	"shopbot/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	runner *db.TxRunner
}

func NewOrderRepository(runner *db.TxRunner) *OrderRepository {
	return &OrderRepository{runner: runner}
}

// Add appends an order record. Orders are append-only; replaying the same
// order id is ignored.
func (r *OrderRepository) Add(ctx context.Context, conversationID, orderID string) error {
	err := r.runner.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO orders (conversation_id, order_id) VALUES ($1, $2)
			 ON CONFLICT (conversation_id, order_id) DO NOTHING`,
			conversationID, orderID,
		)
		return err
	})
	if err != nil {
		return infra.WrapRepoErr("failed to add order", err)
	}
	return nil
}

func (r *OrderRepository) List(ctx context.Context, conversationID string) ([]order.Order, error) {
	rows, err := r.runner.Pool().Query(ctx,
		`SELECT conversation_id, order_id FROM orders
		 WHERE conversation_id = $1 ORDER BY placed_at LIMIT $2`,
		conversationID, maxQueryLimit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query orders", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ConversationID, &o.OrderID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read orders", err)
	}
	return orders, nil
}
