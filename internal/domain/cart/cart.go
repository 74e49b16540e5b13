// Package cart defines the read projections for a conversation's shopping
// cart. A Snapshot is rebuilt from the store on every turn; it is never cached
// across turns.
package cart

// Item is one line in a cart. Count is always >= 1: decrementing a count-1
// line deletes the record instead of storing a zero.
type Item struct {
	CartID string
	ItemID string
	Title  string
	Count  int
}

type Snapshot struct {
	CartID string
	Items  []Item
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find returns the line for the given item id, if present.
func (s Snapshot) Find(itemID string) (Item, bool) {
	for _, it := range s.Items {
		if it.ItemID == itemID {
			return it, true
		}
	}
	return Item{}, false
}
