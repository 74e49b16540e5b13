package usecase

import (
	"context"
	"log/slog"
	"time"

	"shopbot/internal/domain/order"
	"shopbot/internal/domain/pickup"
)

type PickupCommands interface {
	// Schedule moves the pickup to scheduled with the given store and time.
	// Re-scheduling an already-scheduled pickup overwrites the slot. Any
	// other starting state is a logged no-op and returns false.
	Schedule(ctx context.Context, conversationID, orderID, storeAddress string, at time.Time) (bool, error)

	// CheckIn moves a scheduled pickup to checked-in. Every other starting
	// state is rejected without a state change.
	CheckIn(ctx context.Context, conversationID, orderID string) (bool, error)

	// Cancel resets a scheduled or checked-in pickup back to incomplete,
	// clearing the store and time.
	Cancel(ctx context.Context, conversationID, orderID string) (bool, error)

	List(ctx context.Context, conversationID string, status *pickup.Status) ([]pickup.Pickup, error)

	// Unscheduled returns the orders whose pickup is still incomplete, used
	// to offer "schedule pickup" choices.
	Unscheduled(ctx context.Context, conversationID string) ([]order.Order, error)
}

type pickupCommandsImpl struct {
	orders  OrderRepository
	pickups PickupRepository
	logger  *slog.Logger
}

func NewPickupCommands(orders OrderRepository, pickups PickupRepository, logger *slog.Logger) PickupCommands {
	return &pickupCommandsImpl{orders: orders, pickups: pickups, logger: logger}
}

func (p *pickupCommandsImpl) Schedule(ctx context.Context, conversationID, orderID, storeAddress string, at time.Time) (bool, error) {
	applied, err := p.pickups.TransitionWithDetails(ctx, conversationID, orderID,
		pickup.Status.CanSchedule, pickup.StatusScheduled, &storeAddress, &at)
	if err != nil {
		return false, err
	}
	if !applied {
		p.logger.Warn("pickup not schedulable",
			"conversation_id", conversationID, "order_id", orderID)
	}
	return applied, nil
}

func (p *pickupCommandsImpl) CheckIn(ctx context.Context, conversationID, orderID string) (bool, error) {
	applied, err := p.pickups.Transition(ctx, conversationID, orderID,
		pickup.Status.CanCheckIn, pickup.StatusCheckedIn)
	if err != nil {
		return false, err
	}
	if !applied {
		p.logger.Warn("check-in rejected for pickup not in scheduled state",
			"conversation_id", conversationID, "order_id", orderID)
	}
	return applied, nil
}

func (p *pickupCommandsImpl) Cancel(ctx context.Context, conversationID, orderID string) (bool, error) {
	applied, err := p.pickups.TransitionWithDetails(ctx, conversationID, orderID,
		pickup.Status.CanCancel, pickup.StatusIncomplete, nil, nil)
	if err != nil {
		return false, err
	}
	if !applied {
		p.logger.Warn("cancel rejected for pickup not scheduled or checked in",
			"conversation_id", conversationID, "order_id", orderID)
	}
	return applied, nil
}

func (p *pickupCommandsImpl) List(ctx context.Context, conversationID string, status *pickup.Status) ([]pickup.Pickup, error) {
	if status != nil {
		return p.pickups.ListByStatus(ctx, conversationID, *status)
	}
	return p.pickups.List(ctx, conversationID)
}

func (p *pickupCommandsImpl) Unscheduled(ctx context.Context, conversationID string) ([]order.Order, error) {
	incomplete, err := p.pickups.ListByStatus(ctx, conversationID, pickup.StatusIncomplete)
	if err != nil {
		return nil, err
	}
	byOrder := make(map[string]struct{}, len(incomplete))
	for _, pk := range incomplete {
		byOrder[pk.OrderID] = struct{}{}
	}

	orders, err := p.orders.List(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	var unscheduled []order.Order
	for _, o := range orders {
		if _, ok := byOrder[o.OrderID]; ok {
			unscheduled = append(unscheduled, o)
		}
	}
	return unscheduled, nil
}
