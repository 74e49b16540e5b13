//go:build unit

package usecase_test

import (
	"context"
	"net/url"
	"testing"

	"shopbot/internal/domain/catalog"
	"shopbot/internal/domain/pickup"
	"shopbot/internal/pkg/config"
	"shopbot/internal/pkg/token"
	"shopbot/internal/usecase"
	"shopbot/tests/common/fakes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutFixture() (usecase.CheckoutCommands, usecase.SessionService, *fakes.CartRepository, *fakes.OrderRepository, *fakes.PickupRepository, *token.Service) {
	carts := fakes.NewCartRepository()
	orders := fakes.NewOrderRepository()
	pickups := fakes.NewPickupRepository()
	sessions := usecase.NewSessionService(
		carts, fakes.NewFilterRepository(), orders, pickups, testLogger())
	cfg := config.NewTestConfig()
	tokens := token.NewService(cfg.Token.Secret, cfg.Token.Duration)
	cmds := usecase.NewCheckoutCommands(sessions, carts, orders, pickups, tokens, cfg.Bot, testLogger())
	return cmds, sessions, carts, orders, pickups, tokens
}

func TestCheckoutCommands_CheckoutLink(t *testing.T) {
	ctx := context.Background()
	cmds, sessions, _, _, _, tokens := newCheckoutFixture()

	link, err := cmds.CheckoutLink(ctx, "conv-1")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/checkout", u.Path)

	cartID, err := sessions.EnsureCartID(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, cartID, u.Query().Get("cartId"))

	bound, err := tokens.Verify(u.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, cartID, bound)
}

func TestCheckoutCommands_PlaceOrder(t *testing.T) {
	ctx := context.Background()
	cmds, sessions, carts, orders, pickups, _ := newCheckoutFixture()

	cartID, err := sessions.EnsureCartID(ctx, "conv-1")
	require.NoError(t, err)
	itemID := catalog.ItemID("Blue Running Shoes")
	require.NoError(t, carts.AddItem(ctx, cartID, itemID, "Blue Running Shoes"))
	require.NoError(t, carts.AddItem(ctx, cartID, itemID, "Blue Running Shoes"))

	placed, err := cmds.PlaceOrder(ctx, cartID, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", placed.ConversationID)
	assert.Equal(t, "order-1", placed.OrderID)
	require.Len(t, placed.Lines, 1)
	assert.Equal(t, 2, placed.Lines[0].Count)

	// The order exists, its pickup starts incomplete, and the cart is empty.
	list, err := orders.List(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	p, err := pickups.Find(ctx, "conv-1", "order-1")
	require.NoError(t, err)
	assert.Equal(t, pickup.StatusIncomplete, p.Status)

	items, err := carts.Items(ctx, cartID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutCommands_PlaceOrder_UnknownCart(t *testing.T) {
	ctx := context.Background()
	cmds, _, _, _, _, _ := newCheckoutFixture()

	_, err := cmds.PlaceOrder(ctx, "no-such-cart", "order-1")
	assert.Error(t, err)
}
