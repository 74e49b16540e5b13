package bot

import (
	"fmt"
	"time"

	"shopbot/internal/domain/catalog"
	"shopbot/internal/domain/filter"
	"shopbot/internal/domain/pickup"
	"shopbot/internal/usecase"
)

// Reply builders. Cards are assembled from the session's state on every turn;
// items referenced by the cart but missing from the catalog are skipped with
// a log line, never surfaced as failures.

func (r *Router) defaultMenu(session *usecase.Session) []Suggestion {
	menu := []Suggestion{
		{Text: shopText, PostbackData: cmdShop},
		{Text: viewCartText, PostbackData: cmdViewCart},
	}
	if !session.Cart.IsEmpty() {
		menu = append(menu, Suggestion{Text: checkoutText, PostbackData: cmdCheckout})
	}
	if r.cfg.EnableFilters && len(session.Filters) > 0 {
		menu = append(menu, Suggestion{Text: filtersText, PostbackData: cmdSeeFilters})
	}
	if r.cfg.EnablePickups && len(session.Pickups) > 0 {
		menu = append(menu, Suggestion{Text: pickupsText, PostbackData: cmdSeePickups})
	}
	menu = append(menu,
		Suggestion{Text: hoursText, PostbackData: cmdHours},
		Suggestion{Text: helpText, PostbackData: helpText},
	)
	return menu
}

func textReply(text string, menu []Suggestion) Reply {
	return Reply{Text: text, Suggestions: menu}
}

func shopCard(it catalog.Item) Card {
	return Card{
		Title:    it.Title,
		MediaURL: it.MediaURL,
		Suggestions: []Suggestion{
			{Text: addItemText, PostbackData: cmdAddItem + it.ID},
		},
	}
}

// shopReply renders the filtered inventory: a single card for one match, a
// carousel otherwise.
func shopReply(items []catalog.Item, menu []Suggestion) Reply {
	if len(items) == 0 {
		return textReply(rspNoMatches, menu)
	}
	if len(items) == 1 {
		card := shopCard(items[0])
		return Reply{Card: &card, Suggestions: menu}
	}
	cards := make([]Card, 0, len(items))
	for _, it := range items {
		cards = append(cards, shopCard(it))
	}
	return Reply{Carousel: cards, Suggestions: menu}
}

func (r *Router) cartReply(session *usecase.Session, menu []Suggestion) Reply {
	if session.Cart.IsEmpty() {
		return textReply(rspEmptyCart, menu)
	}

	var cards []Card
	for _, line := range session.Cart.Items {
		it, ok := r.catalog.Get(line.ItemID)
		if !ok {
			r.logger.Warn("cart references item no longer in catalog",
				"cart_id", session.CartID, "item_id", line.ItemID)
			continue
		}
		cards = append(cards, Card{
			Title:       line.Title,
			Description: fmt.Sprintf("Quantity: %d", line.Count),
			MediaURL:    it.MediaURL,
			Suggestions: []Suggestion{
				{Text: incrementText, PostbackData: cmdAddItem + line.ItemID},
				{Text: decrementText, PostbackData: cmdDeleteItem + line.ItemID},
			},
		})
	}
	if len(cards) == 0 {
		return textReply(rspEmptyCart, menu)
	}
	if len(cards) == 1 {
		return Reply{Card: &cards[0], Suggestions: menu}
	}
	return Reply{Carousel: cards, Suggestions: menu}
}

// filterCarousel shows one card per known filter name with its current value.
func filterCarousel(active []filter.Filter, menu []Suggestion) Reply {
	current := make(map[string]string, len(active))
	for _, f := range active {
		current[f.Name] = f.Value
	}

	cards := make([]Card, 0, len(filter.KnownNames))
	for _, name := range filter.KnownNames {
		value, ok := current[name]
		if !ok {
			value = catalog.FilterValueAll
		}
		cards = append(cards, Card{
			Title:       name,
			Description: "Current value: " + value,
			MediaURL:    filterImageURL,
			Suggestions: []Suggestion{
				{Text: editText, PostbackData: cmdFilterOptions + name},
				{Text: removeText, PostbackData: cmdRemoveFilter + name},
			},
		})
	}
	return Reply{Carousel: cards, Suggestions: menu}
}

func filterOptionsReply(name string, menu []Suggestion) Reply {
	suggestions := []Suggestion{
		{Text: removeText, PostbackData: cmdRemoveFilter + name},
	}
	for _, option := range filter.Options[name] {
		suggestions = append(suggestions, Suggestion{
			Text:         option,
			PostbackData: fmt.Sprintf("%s%s-%s", cmdSetFilter, name, option),
		})
	}
	return Reply{
		Text:        "Here are your options to filter by " + name + ".",
		Suggestions: append(suggestions, menu...),
	}
}

func storeCarousel(orderID string) Reply {
	cards := make([]Card, 0, len(stores))
	for _, s := range stores {
		cards = append(cards, Card{
			Title:    s.Address,
			MediaURL: storeImageURL,
			Suggestions: []Suggestion{
				{Text: "Pick up here", PostbackData: cmdPickupStore + s.Key + "-" + orderID},
			},
		})
	}
	return Reply{Text: rspChooseStore, Carousel: cards}
}

func timeCarousel(storeKey, orderID string) Reply {
	suggestions := make([]Suggestion, 0, len(pickupSlots))
	for _, slot := range pickupSlots {
		suggestions = append(suggestions, Suggestion{
			Text:         slot,
			PostbackData: fmt.Sprintf("%s%s-%s-%s", cmdPickupTime, slot, storeKey, orderID),
		})
	}
	return Reply{Text: rspChooseTime, Suggestions: suggestions}
}

func pickupCard(p pickup.Pickup) Card {
	description := "Status: " + string(p.Status)
	if p.StoreAddress != "" {
		description += "\nStore: " + p.StoreAddress
	}
	if p.Time != nil {
		start := p.Time.Format("Mon 01/02 03:04 PM")
		end := p.Time.Add(slotDurationHrs * time.Hour).Format("03:04 PM")
		description += "\nTime: " + start + " - " + end
	}

	card := Card{
		Title:       "Pickup for order " + p.OrderID,
		Description: description,
		MediaURL:    pickupImageURL,
	}
	switch p.Status {
	case pickup.StatusIncomplete:
		card.Suggestions = []Suggestion{
			{Text: scheduleText, PostbackData: cmdSchedule + p.OrderID},
		}
	case pickup.StatusScheduled:
		card.Suggestions = []Suggestion{
			{Text: checkInText, PostbackData: cmdCheckIn + p.OrderID},
			{Text: cancelText, PostbackData: cmdCancelPickup + p.OrderID},
		}
	case pickup.StatusCheckedIn:
		card.Suggestions = []Suggestion{
			{Text: cancelText, PostbackData: cmdCancelPickup + p.OrderID},
		}
	}
	return card
}

func pickupCarousel(pickups []pickup.Pickup, menu []Suggestion) Reply {
	if len(pickups) == 0 {
		return textReply(rspNoPickups, menu)
	}
	if len(pickups) == 1 {
		card := pickupCard(pickups[0])
		return Reply{Card: &card, Suggestions: menu}
	}
	cards := make([]Card, 0, len(pickups))
	for _, p := range pickups {
		cards = append(cards, pickupCard(p))
	}
	return Reply{Carousel: cards, Suggestions: menu}
}
