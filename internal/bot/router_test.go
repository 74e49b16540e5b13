//go:build unit

package bot_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"shopbot/internal/bot"
	"shopbot/internal/domain/catalog"
	"shopbot/internal/pkg/clock"
	"shopbot/internal/pkg/config"
	"shopbot/internal/pkg/token"
	"shopbot/internal/usecase"
	"shopbot/tests/common/fakes"
	botmock "shopbot/tests/mock/bot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routerFixture struct {
	router  *bot.Router
	sender  *botmock.MockSender
	orders  *fakes.OrderRepository
	pickups *fakes.PickupRepository
	replies *[]bot.Reply
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	carts := fakes.NewCartRepository()
	filters := fakes.NewFilterRepository()
	orders := fakes.NewOrderRepository()
	pickups := fakes.NewPickupRepository()
	cat := catalog.NewDemo()

	sessions := usecase.NewSessionService(carts, filters, orders, pickups, logger)
	testCfg := config.NewTestConfig()
	cfg := testCfg.Bot
	tokens := token.NewService(testCfg.Token.Secret, testCfg.Token.Duration)

	ctrl := gomock.NewController(t)
	sender := botmock.NewMockSender(ctrl)

	replies := &[]bot.Reply{}
	sender.EXPECT().StartTyping(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	sender.EXPECT().StopTyping(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, reply bot.Reply) error {
			*replies = append(*replies, reply)
			return nil
		}).AnyTimes()

	router := bot.NewRouter(
		cat,
		sessions,
		usecase.NewCartCommands(sessions, carts, cat, logger),
		usecase.NewFilterCommands(filters, logger),
		usecase.NewPickupCommands(orders, pickups, logger),
		usecase.NewCheckoutCommands(sessions, carts, orders, pickups, tokens, cfg, logger),
		sender,
		clock.NewMockClock(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)),
		cfg,
		logger,
	)

	return &routerFixture{router: router, sender: sender, orders: orders, pickups: pickups, replies: replies}
}

func (f *routerFixture) handle(t *testing.T, text string) bot.Reply {
	t.Helper()
	require.NoError(t, f.router.HandleMessage(context.Background(), "conv-1", text))
	require.NotEmpty(t, *f.replies)
	return (*f.replies)[len(*f.replies)-1]
}

func suggestionTexts(reply bot.Reply) []string {
	out := make([]string, 0, len(reply.Suggestions))
	for _, s := range reply.Suggestions {
		out = append(out, s.Text)
	}
	return out
}

func TestRouter_Hours(t *testing.T) {
	f := newRouterFixture(t)

	reply := f.handle(t, "hours")
	assert.Contains(t, reply.Text, "open Monday - Friday")
	assert.Contains(t, suggestionTexts(reply), "Shop Our Collection")
}

func TestRouter_HelpAndFallback(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("help keyword", func(t *testing.T) {
		reply := f.handle(t, "Help")
		assert.Contains(t, reply.Text, "help menu")
	})

	t.Run("unrecognized input falls back to the menu", func(t *testing.T) {
		reply := f.handle(t, "do you sell hats")
		assert.Contains(t, reply.Text, "didn't quite get that")
		assert.Contains(t, suggestionTexts(reply), "View Cart")
	})
}

func TestRouter_CartFlow(t *testing.T) {
	f := newRouterFixture(t)
	itemID := catalog.ItemID("Blue Running Shoes")

	reply := f.handle(t, "add-cart-"+itemID)
	assert.Contains(t, reply.Text, "added to your cart")

	f.handle(t, "add-cart-"+itemID)
	reply = f.handle(t, "del-cart-"+itemID)
	assert.Contains(t, reply.Text, "deleted from your cart")

	reply = f.handle(t, "cart")
	require.NotNil(t, reply.Card)
	assert.Equal(t, "Blue Running Shoes", reply.Card.Title)
	assert.Contains(t, reply.Card.Description, "Quantity: 1")
	assert.Contains(t, suggestionTexts(reply), "Checkout")
}

func TestRouter_EmptyCart(t *testing.T) {
	f := newRouterFixture(t)

	reply := f.handle(t, "cart")
	assert.Contains(t, reply.Text, "cart is empty")
	assert.NotContains(t, suggestionTexts(reply), "Checkout")
}

func TestRouter_ShopHonorsFilters(t *testing.T) {
	f := newRouterFixture(t)

	reply := f.handle(t, "shop")
	assert.Len(t, reply.Carousel, 5)

	reply = f.handle(t, "set-filter-color-blue")
	assert.Contains(t, reply.Text, "color filter is now set to blue")

	reply = f.handle(t, "shop")
	require.NotNil(t, reply.Card)
	assert.Equal(t, "Blue Running Shoes", reply.Card.Title)

	reply = f.handle(t, "set-filter-color-all")
	assert.Contains(t, reply.Text, "filter has been removed")

	reply = f.handle(t, "shop")
	assert.Len(t, reply.Carousel, 5)
}

func TestRouter_FilterCarousel(t *testing.T) {
	f := newRouterFixture(t)

	f.handle(t, "set-filter-brand-Nike")
	reply := f.handle(t, "see-filters")
	require.Len(t, reply.Carousel, 3)

	reply = f.handle(t, "see-filter-options-color")
	assert.Contains(t, reply.Text, "filter by color")
	assert.Contains(t, suggestionTexts(reply), "blue")
}

func TestRouter_PickupFlow(t *testing.T) {
	ctx := context.Background()
	f := newRouterFixture(t)
	require.NoError(t, f.orders.Add(ctx, "conv-1", "o1"))
	require.NoError(t, f.pickups.Add(ctx, "conv-1", "o1"))

	reply := f.handle(t, "schedule-pickup-o1")
	require.Len(t, reply.Carousel, 2)
	assert.Equal(t, "123 Main St, Mountain View, CA", reply.Carousel[0].Title)

	reply = f.handle(t, "pickup-store-downtown-o1")
	assert.Contains(t, reply.Text, "time works best")
	assert.Contains(t, suggestionTexts(reply), "6/18-10")

	reply = f.handle(t, "pickup-time-6/18-10-downtown-o1")
	assert.Contains(t, reply.Text, "pickup for order o1 is scheduled")

	reply = f.handle(t, "see-pickups")
	require.NotNil(t, reply.Card)
	assert.Contains(t, reply.Card.Description, "Status: scheduled")
	assert.Contains(t, reply.Card.Description, "123 Main St")

	reply = f.handle(t, "check-in-o1")
	assert.Contains(t, reply.Text, "checked in for order o1")

	reply = f.handle(t, "cancel-pickup-o1")
	assert.Contains(t, reply.Text, "has been canceled")

	reply = f.handle(t, "check-in-o1")
	assert.Contains(t, reply.Text, "Only a scheduled pickup can be checked in")
}

func TestRouter_CheckoutCommand(t *testing.T) {
	f := newRouterFixture(t)
	itemID := catalog.ItemID("Teal Running Shoes")
	f.handle(t, "add-cart-"+itemID)

	reply := f.handle(t, "checkout")
	assert.Contains(t, reply.Text, "http://localhost:3000/checkout")
	assert.Contains(t, reply.Text, "cartId=")
	assert.Contains(t, reply.Text, "token=")
}

func TestRouter_NotifyOrderPlaced(t *testing.T) {
	ctx := context.Background()
	f := newRouterFixture(t)
	require.NoError(t, f.orders.Add(ctx, "conv-1", "o1"))
	require.NoError(t, f.pickups.Add(ctx, "conv-1", "o1"))

	require.NoError(t, f.router.NotifyOrderPlaced(ctx, "conv-1"))
	require.NotEmpty(t, *f.replies)
	reply := (*f.replies)[len(*f.replies)-1]

	assert.Contains(t, reply.Text, "order has been placed")
	require.NotEmpty(t, reply.Suggestions)
	assert.Equal(t, "schedule-pickup-o1", reply.Suggestions[0].PostbackData)
}
