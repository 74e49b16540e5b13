//go:build unit

package usecase_test

import (
	"context"
	"testing"

	"shopbot/internal/domain/cart"
	"shopbot/internal/domain/filter"
	"shopbot/internal/domain/order"
	"shopbot/internal/domain/pickup"
	"shopbot/internal/usecase"
	"shopbot/tests/common/fakes"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Load(t *testing.T) {
	ctx := context.Background()

	carts := fakes.NewCartRepository()
	filters := fakes.NewFilterRepository()
	orders := fakes.NewOrderRepository()
	pickups := fakes.NewPickupRepository()
	sessions := usecase.NewSessionService(carts, filters, orders, pickups, testLogger())

	cartID, err := sessions.EnsureCartID(ctx, "conv-1")
	require.NoError(t, err)
	require.NoError(t, carts.AddItem(ctx, cartID, "item-1", "Blue Running Shoes"))
	require.NoError(t, filters.Set(ctx, "conv-1", "color", "blue"))
	require.NoError(t, orders.Add(ctx, "conv-1", "o1"))
	require.NoError(t, pickups.Add(ctx, "conv-1", "o1"))

	got, err := sessions.Load(ctx, "conv-1")
	require.NoError(t, err)

	want := &usecase.Session{
		ConversationID: "conv-1",
		CartID:         cartID,
		Cart: cart.Snapshot{
			CartID: cartID,
			Items:  []cart.Item{{CartID: cartID, ItemID: "item-1", Title: "Blue Running Shoes", Count: 1}},
		},
		Filters: []filter.Filter{{Name: "color", Value: "blue"}},
		Orders:  []order.Order{{ConversationID: "conv-1", OrderID: "o1"}},
		Pickups: []pickup.Pickup{pickup.New("conv-1", "o1")},
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionService_Load_FreshConversation(t *testing.T) {
	ctx := context.Background()
	_, sessions, _ := newCartFixture()

	got, err := sessions.Load(ctx, "conv-new")
	require.NoError(t, err)
	require.NotEmpty(t, got.CartID)

	if diff := cmp.Diff(&usecase.Session{
		ConversationID: "conv-new",
		CartID:         got.CartID,
		Cart:           cart.Snapshot{CartID: got.CartID},
	}, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}
