// Package order holds the append-only record of placed orders. Orders are
// never mutated or deleted; their pickup state lives in the pickup package.
package order

type Order struct {
	ConversationID string
	OrderID        string
}
