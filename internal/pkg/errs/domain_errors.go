package errs

// Sentinel errors shared across usecase layers. Store-level misses surface as
// repository error kinds, not sentinels; these cover domain-level rejections.
var (
	ErrItemNotFound      = New("item not found in catalog")
	ErrUnknownFilter     = New("unknown filter name")
	ErrInvalidPickupSlot = New("invalid pickup time slot")
)
