package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shopbot/internal/domain/catalog"
	"shopbot/internal/domain/pickup"
	"shopbot/internal/pkg/clock"
	"shopbot/internal/pkg/config"
	"shopbot/internal/usecase"
)

// Router matches one normalized inbound message against the command grammar
// and executes the first match. Unrecognized input falls through to the
// default menu; internal failures are logged and never shown to the user.
type Router struct {
	catalog  catalog.Catalog
	sessions usecase.SessionService
	carts    usecase.CartCommands
	filters  usecase.FilterCommands
	pickups  usecase.PickupCommands
	checkout usecase.CheckoutCommands
	sender   Sender
	clock    clock.Clock
	cfg      config.BotConfig
	logger   *slog.Logger
}

func NewRouter(
	cat catalog.Catalog,
	sessions usecase.SessionService,
	carts usecase.CartCommands,
	filters usecase.FilterCommands,
	pickups usecase.PickupCommands,
	checkout usecase.CheckoutCommands,
	sender Sender,
	clk clock.Clock,
	cfg config.BotConfig,
	logger *slog.Logger,
) *Router {
	return &Router{
		catalog:  cat,
		sessions: sessions,
		carts:    carts,
		filters:  filters,
		pickups:  pickups,
		checkout: checkout,
		sender:   sender,
		clock:    clk,
		cfg:      cfg,
		logger:   logger,
	}
}

// HandleMessage routes one inbound message for a conversation. Matching is
// case-insensitive; surrounding whitespace is ignored.
func (r *Router) HandleMessage(ctx context.Context, conversationID, text string) error {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if err := r.sender.StartTyping(ctx, conversationID); err != nil {
		r.logger.Warn("failed to send typing indicator",
			"conversation_id", conversationID, "error", err.Error())
	}
	defer func() {
		if err := r.sender.StopTyping(ctx, conversationID); err != nil {
			r.logger.Warn("failed to clear typing indicator",
				"conversation_id", conversationID, "error", err.Error())
		}
	}()

	reply, err := r.dispatch(ctx, conversationID, normalized)
	if err != nil {
		r.logger.Error("command failed",
			"conversation_id", conversationID, "message", normalized, "error", err.Error())
		reply = Reply{Text: rspDefault}
	}
	return r.sender.Send(ctx, conversationID, reply)
}

func (r *Router) dispatch(ctx context.Context, conversationID, msg string) (Reply, error) {
	switch {
	case msg == cmdHours:
		return textReply(rspHours, r.menu(ctx, conversationID)), nil

	case msg == cmdShop:
		return r.shop(ctx, conversationID)

	case msg == cmdViewCart:
		return r.viewCart(ctx, conversationID)

	case msg == cmdCheckout:
		link, err := r.checkout.CheckoutLink(ctx, conversationID)
		if err != nil {
			return Reply{}, err
		}
		return textReply(fmt.Sprintf(rspCheckoutLink, link), r.menu(ctx, conversationID)), nil

	case msg == cmdSeeFilters && r.cfg.EnableFilters:
		active, err := r.filters.Active(ctx, conversationID)
		if err != nil {
			return Reply{}, err
		}
		return filterCarousel(active, r.menu(ctx, conversationID)), nil

	case strings.HasPrefix(msg, cmdFilterOptions) && r.cfg.EnableFilters:
		name := strings.TrimPrefix(msg, cmdFilterOptions)
		return filterOptionsReply(name, r.menu(ctx, conversationID)), nil

	case strings.HasPrefix(msg, cmdSetFilter) && r.cfg.EnableFilters:
		return r.setFilter(ctx, conversationID, strings.TrimPrefix(msg, cmdSetFilter))

	case strings.HasPrefix(msg, cmdRemoveFilter) && r.cfg.EnableFilters:
		name := strings.TrimPrefix(msg, cmdRemoveFilter)
		if err := r.filters.Remove(ctx, conversationID, name); err != nil {
			return Reply{}, err
		}
		return textReply(fmt.Sprintf(rspRemoveFilter, name), r.menu(ctx, conversationID)), nil

	case strings.HasPrefix(msg, cmdAddItem):
		_, item, err := r.carts.AddItem(ctx, conversationID, strings.TrimPrefix(msg, cmdAddItem))
		if err != nil {
			return Reply{}, err
		}
		return textReply(fmt.Sprintf(rspAddedToCart, item.Title), r.menu(ctx, conversationID)), nil

	case strings.HasPrefix(msg, cmdDeleteItem):
		_, item, err := r.carts.RemoveItem(ctx, conversationID, strings.TrimPrefix(msg, cmdDeleteItem))
		if err != nil {
			return Reply{}, err
		}
		return textReply(fmt.Sprintf(rspDeletedFromCart, item.Title), r.menu(ctx, conversationID)), nil

	case msg == cmdSeePickups && r.cfg.EnablePickups:
		pickups, err := r.pickups.List(ctx, conversationID, nil)
		if err != nil {
			return Reply{}, err
		}
		return pickupCarousel(pickups, r.menu(ctx, conversationID)), nil

	case strings.HasPrefix(msg, cmdSchedule) && r.cfg.EnablePickups:
		return storeCarousel(strings.TrimPrefix(msg, cmdSchedule)), nil

	case strings.HasPrefix(msg, cmdPickupStore) && r.cfg.EnablePickups:
		return r.pickupStore(strings.TrimPrefix(msg, cmdPickupStore))

	case pickupTimePattern.MatchString(msg) && r.cfg.EnablePickups:
		return r.pickupTime(ctx, conversationID, msg)

	case strings.HasPrefix(msg, cmdCancelPickup) && r.cfg.EnablePickups:
		return r.cancelPickup(ctx, conversationID, strings.TrimPrefix(msg, cmdCancelPickup))

	case checkInPattern.MatchString(msg) && r.cfg.EnablePickups:
		return r.checkIn(ctx, conversationID, msg)

	case helpPattern.MatchString(msg):
		return textReply(rspHelp, r.menu(ctx, conversationID)), nil

	default:
		return textReply(rspDefault, r.menu(ctx, conversationID)), nil
	}
}

func (r *Router) shop(ctx context.Context, conversationID string) (Reply, error) {
	selected := map[string]string{}
	if r.cfg.EnableFilters {
		var err error
		selected, err = r.filters.Selected(ctx, conversationID)
		if err != nil {
			return Reply{}, err
		}
	}
	items := r.catalog.FilterByProperties(selected)
	return shopReply(items, r.menu(ctx, conversationID)), nil
}

func (r *Router) viewCart(ctx context.Context, conversationID string) (Reply, error) {
	session, err := r.sessions.Load(ctx, conversationID)
	if err != nil {
		return Reply{}, err
	}
	return r.cartReply(session, r.defaultMenu(session)), nil
}

// setFilter parses "<name>-<value>"; the name never contains a hyphen, the
// value may.
func (r *Router) setFilter(ctx context.Context, conversationID, rest string) (Reply, error) {
	name, value, ok := strings.Cut(rest, "-")
	if !ok {
		return textReply(rspDefault, r.menu(ctx, conversationID)), nil
	}
	if err := r.filters.Set(ctx, conversationID, name, value); err != nil {
		return Reply{}, err
	}
	if strings.EqualFold(value, catalog.FilterValueAll) {
		return textReply(fmt.Sprintf(rspRemoveFilter, name), r.menu(ctx, conversationID)), nil
	}
	return textReply(fmt.Sprintf(rspSetFilter, name, value), r.menu(ctx, conversationID)), nil
}

// pickupStore parses "<storeKey>-<orderId>"; store keys never contain a
// hyphen, order ids may.
func (r *Router) pickupStore(rest string) (Reply, error) {
	key, orderID, ok := strings.Cut(rest, "-")
	if !ok {
		return Reply{Text: rspDefault}, nil
	}
	if _, found := storeByKey(key); !found {
		r.logger.Warn("pickup store selection references unknown store", "store_key", key)
		return Reply{Text: rspDefault}, nil
	}
	return timeCarousel(key, orderID), nil
}

func (r *Router) pickupTime(ctx context.Context, conversationID, msg string) (Reply, error) {
	groups := pickupTimePattern.FindStringSubmatch(msg)
	slot, storeKey, orderID := groups[1], groups[2], groups[3]

	store, found := storeByKey(storeKey)
	if !found {
		r.logger.Warn("pickup time selection references unknown store", "store_key", storeKey)
		return textReply(rspNotScheduled, r.menu(ctx, conversationID)), nil
	}
	loc, err := time.LoadLocation(store.TimeZone)
	if err != nil {
		return Reply{}, err
	}
	at, err := pickup.ParseSlot(slot, r.clock.Now().In(loc).Year(), loc)
	if err != nil {
		r.logger.Warn("unparseable pickup slot", "slot", slot, "error", err.Error())
		return textReply(rspNotScheduled, r.menu(ctx, conversationID)), nil
	}

	scheduled, err := r.pickups.Schedule(ctx, conversationID, orderID, store.Address, at)
	if err != nil {
		return Reply{}, err
	}
	if !scheduled {
		return textReply(rspNotScheduled, r.menu(ctx, conversationID)), nil
	}
	return textReply(fmt.Sprintf(rspScheduled, orderID), r.menu(ctx, conversationID)), nil
}

func (r *Router) checkIn(ctx context.Context, conversationID, msg string) (Reply, error) {
	groups := checkInPattern.FindStringSubmatch(msg)
	orderID := groups[1]

	checkedIn, err := r.pickups.CheckIn(ctx, conversationID, orderID)
	if err != nil {
		return Reply{}, err
	}
	if !checkedIn {
		return textReply(rspNotCheckedIn, r.menu(ctx, conversationID)), nil
	}
	return textReply(fmt.Sprintf(rspCheckedIn, orderID), r.menu(ctx, conversationID)), nil
}

func (r *Router) cancelPickup(ctx context.Context, conversationID, orderID string) (Reply, error) {
	canceled, err := r.pickups.Cancel(ctx, conversationID, orderID)
	if err != nil {
		return Reply{}, err
	}
	if !canceled {
		return textReply(rspNotCanceled, r.menu(ctx, conversationID)), nil
	}
	return textReply(fmt.Sprintf(rspCanceled, orderID), r.menu(ctx, conversationID)), nil
}

// NotifyOrderPlaced tells the conversation its checkout completed. Called
// from the order endpoint, outside the inbound message flow. When pickups are
// on, orders still awaiting a pickup get a schedule suggestion up front.
func (r *Router) NotifyOrderPlaced(ctx context.Context, conversationID string) error {
	reply := textReply(rspOrderPlaced, r.menu(ctx, conversationID))
	if r.cfg.EnablePickups {
		orders, err := r.pickups.Unscheduled(ctx, conversationID)
		if err != nil {
			r.logger.Warn("failed to list unscheduled orders",
				"conversation_id", conversationID, "error", err.Error())
		} else {
			schedule := make([]Suggestion, 0, len(orders))
			for _, o := range orders {
				schedule = append(schedule, Suggestion{
					Text:         scheduleText,
					PostbackData: cmdSchedule + o.OrderID,
				})
			}
			reply.Suggestions = append(schedule, reply.Suggestions...)
		}
	}
	return r.sender.Send(ctx, conversationID, reply)
}

// menu builds the contextual default menu. A failed session load degrades to
// a minimal menu rather than failing the reply.
func (r *Router) menu(ctx context.Context, conversationID string) []Suggestion {
	session, err := r.sessions.Load(ctx, conversationID)
	if err != nil {
		r.logger.Warn("failed to load session for menu",
			"conversation_id", conversationID, "error", err.Error())
		return []Suggestion{
			{Text: shopText, PostbackData: cmdShop},
			{Text: viewCartText, PostbackData: cmdViewCart},
			{Text: helpText, PostbackData: helpText},
		}
	}
	return r.defaultMenu(session)
}
