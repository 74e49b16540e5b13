package catalog

import "github.com/google/uuid"

// Item is a single product in the inventory. Items are immutable once the
// catalog is loaded; the id is a name-based UUID of the title so that it stays
// stable across restarts without a backing table.
type Item struct {
	ID         string
	Title      string
	MediaURL   string
	Price      float64
	Properties map[string][]string
}

func NewItem(title, mediaURL string, price float64, properties map[string][]string) Item {
	if properties == nil {
		properties = map[string][]string{}
	}
	return Item{
		ID:         ItemID(title),
		Title:      title,
		MediaURL:   mediaURL,
		Price:      price,
		Properties: properties,
	}
}

// ItemID derives the stable item identifier from its title.
func ItemID(title string) string {
	return uuid.NewMD5(uuid.NameSpaceOID, []byte(title)).String()
}
