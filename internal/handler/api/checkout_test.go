//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopbot/internal/domain/catalog"
	"shopbot/internal/handler/api"
	"shopbot/internal/pkg/config"
	"shopbot/internal/pkg/token"
	"shopbot/internal/usecase"
	"shopbot/tests/common/fakes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	notified []string
}

func (s *stubNotifier) NotifyOrderPlaced(_ context.Context, conversationID string) error {
	s.notified = append(s.notified, conversationID)
	return nil
}

type checkoutFixture struct {
	engine   *gin.Engine
	carts    *fakes.CartRepository
	orders   *fakes.OrderRepository
	pickups  *fakes.PickupRepository
	tokens   *token.Service
	notifier *stubNotifier
	cartID   string
}

func newCheckoutHandlerFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	carts := fakes.NewCartRepository()
	orders := fakes.NewOrderRepository()
	pickups := fakes.NewPickupRepository()
	sessions := usecase.NewSessionService(carts, fakes.NewFilterRepository(), orders, pickups, logger)
	cfg := config.NewTestConfig()
	tokens := token.NewService(cfg.Token.Secret, cfg.Token.Duration)
	checkout := usecase.NewCheckoutCommands(sessions, carts, orders, pickups, tokens,
		cfg.Bot, logger)

	notifier := &stubNotifier{}
	handler := api.NewCheckoutHandler(checkout, carts, catalog.NewDemo(), tokens, notifier, logger)

	engine := gin.New()
	engine.GET("/api/carts/:cartId", handler.GetCart)
	engine.POST("/api/orders", handler.SubmitOrder)

	ctx := context.Background()
	cartID, err := sessions.EnsureCartID(ctx, "conv-1")
	require.NoError(t, err)

	return &checkoutFixture{
		engine: engine, carts: carts, orders: orders, pickups: pickups,
		tokens: tokens, notifier: notifier, cartID: cartID,
	}
}

func (f *checkoutFixture) signedToken(t *testing.T) string {
	t.Helper()
	signed, err := f.tokens.Issue(f.cartID)
	require.NoError(t, err)
	return signed
}

func TestCheckoutHandler_GetCart(t *testing.T) {
	t.Run("returns enriched lines", func(t *testing.T) {
		f := newCheckoutHandlerFixture(t)
		itemID := catalog.ItemID("Blue Running Shoes")
		require.NoError(t, f.carts.AddItem(context.Background(), f.cartID, itemID, "Blue Running Shoes"))

		req := httptest.NewRequest(http.MethodGet, "/api/carts/"+f.cartID+"?token="+f.signedToken(t), nil)
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			CartID string `json:"cartId"`
			Items  []struct {
				ItemID string  `json:"itemId"`
				Title  string  `json:"title"`
				Count  int     `json:"count"`
				Price  float64 `json:"price"`
			} `json:"items"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, f.cartID, resp.CartID)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Blue Running Shoes", resp.Items[0].Title)
		assert.Equal(t, 1, resp.Items[0].Count)
		assert.Equal(t, 49.99, resp.Items[0].Price)
	})

	t.Run("rejects a token bound to another cart", func(t *testing.T) {
		f := newCheckoutHandlerFixture(t)
		otherToken, err := f.tokens.Issue("some-other-cart")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/carts/"+f.cartID+"?token="+otherToken, nil)
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		f := newCheckoutHandlerFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/api/carts/"+f.cartID+"?token=garbage", nil)
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCheckoutHandler_SubmitOrder(t *testing.T) {
	t.Run("places the order and notifies the conversation", func(t *testing.T) {
		f := newCheckoutHandlerFixture(t)
		ctx := context.Background()
		itemID := catalog.ItemID("Teal Running Shoes")
		require.NoError(t, f.carts.AddItem(ctx, f.cartID, itemID, "Teal Running Shoes"))

		payload, err := json.Marshal(map[string]string{
			"cartId": f.cartID,
			"token":  f.signedToken(t),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			OrderID string `json:"orderId"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.OrderID)

		orders, err := f.orders.List(ctx, "conv-1")
		require.NoError(t, err)
		require.Len(t, orders, 1)

		_, err = f.pickups.Find(ctx, "conv-1", resp.OrderID)
		require.NoError(t, err)

		items, err := f.carts.Items(ctx, f.cartID)
		require.NoError(t, err)
		assert.Empty(t, items)

		assert.Equal(t, []string{"conv-1"}, f.notifier.notified)
	})

	t.Run("unknown cart returns not found", func(t *testing.T) {
		f := newCheckoutHandlerFixture(t)
		signed, err := f.tokens.Issue("ghost-cart")
		require.NoError(t, err)

		payload, err := json.Marshal(map[string]string{"cartId": "ghost-cart", "token": signed})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		f := newCheckoutHandlerFixture(t)

		payload, err := json.Marshal(map[string]string{"cartId": f.cartID})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
