package api

import (
	"context"
	"log/slog"
	"net/http"

	"shopbot/internal/domain/catalog"
	"shopbot/internal/handler/httperr"
	"shopbot/internal/infra"
	"shopbot/internal/pkg/token"
	"shopbot/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderNotifier tells a conversation its checkout completed.
type OrderNotifier interface {
	NotifyOrderPlaced(ctx context.Context, conversationID string) error
}

// CheckoutHandler serves the companion checkout page. Both endpoints are
// public; the cart id is only honored when it matches the signed token
// issued with the checkout link.
type CheckoutHandler struct {
	checkout usecase.CheckoutCommands
	carts    usecase.CartRepository
	catalog  catalog.Catalog
	tokens   *token.Service
	notifier OrderNotifier
	logger   *slog.Logger
}

func NewCheckoutHandler(
	checkout usecase.CheckoutCommands,
	carts usecase.CartRepository,
	cat catalog.Catalog,
	tokens *token.Service,
	notifier OrderNotifier,
	logger *slog.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		carts:    carts,
		catalog:  cat,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
	}
}

type cartLineResponse struct {
	ItemID   string `json:"itemId"`
	Title    string `json:"title"`
	Count    int    `json:"count"`
	Price    float64 `json:"price,omitempty"`
	MediaURL string  `json:"mediaUrl,omitempty"`
}

type cartResponse struct {
	CartID string             `json:"cartId"`
	Items  []cartLineResponse `json:"items"`
}

type submitOrderRequest struct {
	CartID string `json:"cartId" binding:"required"`
	Token  string `json:"token" binding:"required"`
}

type submitOrderResponse struct {
	OrderID string             `json:"orderId"`
	Items   []cartLineResponse `json:"items"`
}

// @Summary Get cart
// @Description Returns the cart lines for the checkout page
// @Tags checkout
// @Produce json
// @Param cartId path string true "Cart ID"
// @Param token query string true "Signed checkout token"
// @Success 200 {object} cartResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/carts/{cartId} [get]
func (h *CheckoutHandler) GetCart(c *gin.Context) {
	cartID := c.Param("cartId")
	if !h.authorize(c, cartID, c.Query("token")) {
		return
	}

	items, err := h.carts.Items(c.Request.Context(), cartID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Cart not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load cart", nil)
		return
	}

	resp := cartResponse{CartID: cartID, Items: []cartLineResponse{}}
	for _, line := range items {
		out := cartLineResponse{ItemID: line.ItemID, Title: line.Title, Count: line.Count}
		if it, ok := h.catalog.Get(line.ItemID); ok {
			out.Price = it.Price
			out.MediaURL = it.MediaURL
		} else {
			h.logger.Warn("cart references item no longer in catalog",
				"cart_id", cartID, "item_id", line.ItemID)
		}
		resp.Items = append(resp.Items, out)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Submit order
// @Description Places the order for the cart, empties it, and notifies the conversation
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body submitOrderRequest true "Submit order request"
// @Success 201 {object} submitOrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/orders [post]
func (h *CheckoutHandler) SubmitOrder(c *gin.Context) {
	var req submitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if !h.authorize(c, req.CartID, req.Token) {
		return
	}

	orderID := uuid.NewString()
	placed, err := h.checkout.PlaceOrder(c.Request.Context(), req.CartID, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Cart not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to place order", nil)
		return
	}

	// The confirmation message is a courtesy; its failure never fails the
	// order that was already placed.
	if err := h.notifier.NotifyOrderPlaced(c.Request.Context(), placed.ConversationID); err != nil {
		h.logger.Warn("failed to notify conversation of placed order",
			"conversation_id", placed.ConversationID, "order_id", placed.OrderID, "error", err.Error())
	}

	resp := submitOrderResponse{OrderID: placed.OrderID, Items: []cartLineResponse{}}
	for _, line := range placed.Lines {
		resp.Items = append(resp.Items, cartLineResponse{
			ItemID: line.ItemID, Title: line.Title, Count: line.Count,
		})
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CheckoutHandler) authorize(c *gin.Context, cartID, signed string) bool {
	boundCartID, err := h.tokens.Verify(signed)
	if err != nil || boundCartID != cartID {
		if err == nil {
			err = token.ErrInvalidToken
		}
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Unauthorized", nil)
		return false
	}
	return true
}
