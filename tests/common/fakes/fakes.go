// Package fakes holds in-memory store implementations for unit tests. They
// honor the same edge-case contracts as the Postgres repositories: not-found
// kinds, delete-at-zero counts, guarded pickup transitions.
package fakes

import (
	"context"
	"sort"
	"sync"
	"time"

	"shopbot/internal/domain/cart"
	"shopbot/internal/domain/filter"
	"shopbot/internal/domain/order"
	"shopbot/internal/domain/pickup"
	"shopbot/internal/infra"
)

type CartRepository struct {
	mu         sync.Mutex
	cartByConv map[string]string
	convByCart map[string]string
	items      map[string][]cart.Item
}

func NewCartRepository() *CartRepository {
	return &CartRepository{
		cartByConv: map[string]string{},
		convByCart: map[string]string{},
		items:      map[string][]cart.Item{},
	}
}

func (r *CartRepository) CartID(_ context.Context, conversationID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cartID, ok := r.cartByConv[conversationID]
	if !ok {
		return "", infra.WrapRepoErr("cart not found", nil, infra.KindNotFound)
	}
	return cartID, nil
}

func (r *CartRepository) SaveCart(_ context.Context, conversationID, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cartByConv[conversationID]; ok {
		return nil
	}
	r.cartByConv[conversationID] = cartID
	r.convByCart[cartID] = conversationID
	return nil
}

func (r *CartRepository) ConversationByCartID(_ context.Context, cartID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversationID, ok := r.convByCart[cartID]
	if !ok {
		return "", infra.WrapRepoErr("cart not found", nil, infra.KindNotFound)
	}
	return conversationID, nil
}

func (r *CartRepository) AddItem(_ context.Context, cartID, itemID, itemTitle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.items[cartID]
	for i, line := range lines {
		if line.ItemID == itemID {
			lines[i].Count++
			return nil
		}
	}
	r.items[cartID] = append(lines, cart.Item{CartID: cartID, ItemID: itemID, Title: itemTitle, Count: 1})
	return nil
}

func (r *CartRepository) RemoveItem(_ context.Context, cartID, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.items[cartID]
	for i, line := range lines {
		if line.ItemID != itemID {
			continue
		}
		if line.Count <= 1 {
			r.items[cartID] = append(lines[:i], lines[i+1:]...)
		} else {
			lines[i].Count--
		}
		return true, nil
	}
	return false, nil
}

func (r *CartRepository) Items(_ context.Context, cartID string) ([]cart.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]cart.Item, len(r.items[cartID]))
	copy(out, r.items[cartID])
	return out, nil
}

func (r *CartRepository) Empty(_ context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, cartID)
	return nil
}

type FilterRepository struct {
	mu      sync.Mutex
	filters map[string]map[string]string // conversationID -> name -> value
}

func NewFilterRepository() *FilterRepository {
	return &FilterRepository{filters: map[string]map[string]string{}}
}

func (r *FilterRepository) Set(_ context.Context, conversationID, name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.filters[conversationID] == nil {
		r.filters[conversationID] = map[string]string{}
	}
	r.filters[conversationID][name] = value
	return nil
}

func (r *FilterRepository) Remove(_ context.Context, conversationID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.filters[conversationID][name]; !ok {
		return false, nil
	}
	delete(r.filters[conversationID], name)
	return true, nil
}

func (r *FilterRepository) Find(_ context.Context, conversationID, name string) (*filter.Filter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.filters[conversationID][name]
	if !ok {
		return nil, infra.WrapRepoErr("filter not found", nil, infra.KindNotFound)
	}
	return &filter.Filter{Name: name, Value: value}, nil
}

func (r *FilterRepository) List(_ context.Context, conversationID string) ([]filter.Filter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []filter.Filter
	for name, value := range r.filters[conversationID] {
		out = append(out, filter.Filter{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type OrderRepository struct {
	mu     sync.Mutex
	orders map[string][]order.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: map[string][]order.Order{}}
}

func (r *OrderRepository) Add(_ context.Context, conversationID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders[conversationID] {
		if o.OrderID == orderID {
			return nil
		}
	}
	r.orders[conversationID] = append(r.orders[conversationID], order.Order{
		ConversationID: conversationID, OrderID: orderID,
	})
	return nil
}

func (r *OrderRepository) List(_ context.Context, conversationID string) ([]order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]order.Order, len(r.orders[conversationID]))
	copy(out, r.orders[conversationID])
	return out, nil
}

type PickupRepository struct {
	mu      sync.Mutex
	pickups map[string]map[string]*pickup.Pickup // conversationID -> orderID
}

func NewPickupRepository() *PickupRepository {
	return &PickupRepository{pickups: map[string]map[string]*pickup.Pickup{}}
}

func (r *PickupRepository) Add(_ context.Context, conversationID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pickups[conversationID] == nil {
		r.pickups[conversationID] = map[string]*pickup.Pickup{}
	}
	if _, ok := r.pickups[conversationID][orderID]; ok {
		return nil
	}
	p := pickup.New(conversationID, orderID)
	r.pickups[conversationID][orderID] = &p
	return nil
}

func (r *PickupRepository) Find(_ context.Context, conversationID, orderID string) (*pickup.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pickups[conversationID][orderID]
	if !ok {
		return nil, infra.WrapRepoErr("pickup not found", nil, infra.KindNotFound)
	}
	out := *p
	return &out, nil
}

// A missing pickup row leaves the transition unapplied, same as the
// Postgres repository's zero-row update.
func (r *PickupRepository) Transition(_ context.Context, conversationID, orderID string, allowed func(pickup.Status) bool, next pickup.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pickups[conversationID][orderID]
	if !ok {
		return false, nil
	}
	if !allowed(p.Status) {
		return false, nil
	}
	p.Status = next
	return true, nil
}

func (r *PickupRepository) TransitionWithDetails(_ context.Context, conversationID, orderID string, allowed func(pickup.Status) bool, next pickup.Status, storeAddress *string, pickupTime *time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pickups[conversationID][orderID]
	if !ok {
		return false, nil
	}
	if !allowed(p.Status) {
		return false, nil
	}
	p.Status = next
	if storeAddress != nil {
		p.StoreAddress = *storeAddress
	} else {
		p.StoreAddress = ""
	}
	p.Time = pickupTime
	return true, nil
}

func (r *PickupRepository) List(_ context.Context, conversationID string) ([]pickup.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []pickup.Pickup
	for _, p := range r.pickups[conversationID] {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

func (r *PickupRepository) ListByStatus(_ context.Context, conversationID string, status pickup.Status) ([]pickup.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []pickup.Pickup
	for _, p := range r.pickups[conversationID] {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}
