// Package filter defines per-conversation shopping filters. "No filter" is
// represented by the absence of the record; removal deletes rather than
// writing a sentinel value.
package filter

const (
	NameColor = "color"
	NameBrand = "brand"
	NameSize  = "size"
)

// KnownNames lists the filter names the bot recognizes, in display order.
var KnownNames = []string{NameColor, NameBrand, NameSize}

type Filter struct {
	Name  string
	Value string
}

func IsKnownName(name string) bool {
	for _, n := range KnownNames {
		if n == name {
			return true
		}
	}
	return false
}

// Options for each filter name offered as quick replies.
var Options = map[string][]string{
	NameColor: {"blue", "neon", "pink", "teal", "white"},
	NameBrand: {"Adidas", "Nike", "New Balance"},
	NameSize:  {"5", "6", "7", "8", "9"},
}
