package repository

import (
	"context"
	"errors"
	"time"

	"shopbot/internal/domain/pickup"
	"shopbot/internal/infra"
	"shopbot/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type PickupRepository struct {
	runner *db.TxRunner
}

func NewPickupRepository(runner *db.TxRunner) *PickupRepository {
	return &PickupRepository{runner: runner}
}

// Add creates the incomplete pickup when an order is placed.
func (r *PickupRepository) Add(ctx context.Context, conversationID, orderID string) error {
	err := r.runner.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO pickups (conversation_id, order_id, status) VALUES ($1, $2, $3)
			 ON CONFLICT (conversation_id, order_id) DO NOTHING`,
			conversationID, orderID, string(pickup.StatusIncomplete),
		)
		return err
	})
	if err != nil {
		return infra.WrapRepoErr("failed to add pickup", err)
	}
	return nil
}

func (r *PickupRepository) Find(ctx context.Context, conversationID, orderID string) (*pickup.Pickup, error) {
	p, err := scanPickup(r.runner.Pool().QueryRow(ctx,
		`SELECT conversation_id, order_id, status, store_address, pickup_time
		 FROM pickups WHERE conversation_id = $1 AND order_id = $2`,
		conversationID, orderID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("pickup not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to query pickup", err)
	}
	return p, nil
}

// Transition performs one guarded status change as a single
// read-modify-write, leaving store address and time untouched. The allowed
// predicate sees the current status; when it returns false (or the row is
// missing) nothing is written and the boolean result is false.
func (r *PickupRepository) Transition(
	ctx context.Context,
	conversationID, orderID string,
	allowed func(pickup.Status) bool,
	next pickup.Status,
) (bool, error) {
	return r.transition(ctx, conversationID, orderID, allowed,
		`UPDATE pickups SET status = $3, updated_at = now()
		 WHERE conversation_id = $1 AND order_id = $2`,
		conversationID, orderID, string(next),
	)
}

// TransitionWithDetails is Transition but also writes store address and
// pickup time; nil values clear the fields (cancellation).
func (r *PickupRepository) TransitionWithDetails(
	ctx context.Context,
	conversationID, orderID string,
	allowed func(pickup.Status) bool,
	next pickup.Status,
	storeAddress *string,
	pickupTime *time.Time,
) (bool, error) {
	return r.transition(ctx, conversationID, orderID, allowed,
		`UPDATE pickups
		 SET status = $3, store_address = $4, pickup_time = $5, updated_at = now()
		 WHERE conversation_id = $1 AND order_id = $2`,
		conversationID, orderID, string(next), storeAddress, pickupTime,
	)
}

func (r *PickupRepository) transition(
	ctx context.Context,
	conversationID, orderID string,
	allowed func(pickup.Status) bool,
	update string,
	args ...any,
) (bool, error) {
	var applied bool
	err := r.runner.Within(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var current string
		err := tx.QueryRow(ctx,
			`SELECT status FROM pickups
			 WHERE conversation_id = $1 AND order_id = $2 FOR UPDATE`,
			conversationID, orderID,
		).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		if !allowed(pickup.ParseStatus(current)) {
			return nil
		}
		if _, err = tx.Exec(ctx, update, args...); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition pickup", err)
	}
	return applied, nil
}

func (r *PickupRepository) List(ctx context.Context, conversationID string) ([]pickup.Pickup, error) {
	return r.list(ctx,
		`SELECT conversation_id, order_id, status, store_address, pickup_time
		 FROM pickups WHERE conversation_id = $1 LIMIT $2`,
		conversationID, maxQueryLimit,
	)
}

func (r *PickupRepository) ListByStatus(ctx context.Context, conversationID string, status pickup.Status) ([]pickup.Pickup, error) {
	return r.list(ctx,
		`SELECT conversation_id, order_id, status, store_address, pickup_time
		 FROM pickups WHERE conversation_id = $1 AND status = $2 LIMIT $3`,
		conversationID, string(status), maxQueryLimit,
	)
}

func (r *PickupRepository) list(ctx context.Context, query string, args ...any) ([]pickup.Pickup, error) {
	rows, err := r.runner.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query pickups", err)
	}
	defer rows.Close()

	var pickups []pickup.Pickup
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan pickup", err)
		}
		pickups = append(pickups, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read pickups", err)
	}
	return pickups, nil
}

func scanPickup(row pgx.Row) (*pickup.Pickup, error) {
	var (
		p            pickup.Pickup
		status       string
		storeAddress *string
		pickupTime   *time.Time
	)
	if err := row.Scan(&p.ConversationID, &p.OrderID, &status, &storeAddress, &pickupTime); err != nil {
		return nil, err
	}
	p.Status = pickup.ParseStatus(status)
	if storeAddress != nil {
		p.StoreAddress = *storeAddress
	}
	p.Time = pickupTime
	return &p, nil
}
