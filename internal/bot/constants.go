package bot

import "regexp"

// Recognized commands. Inbound text is lowercased and trimmed before
// matching, so these are all lowercase.
const (
	cmdHours         = "hours"
	cmdShop          = "shop"
	cmdViewCart      = "cart"
	cmdCheckout      = "checkout"
	cmdSeeFilters    = "see-filters"
	cmdSeePickups    = "see-pickups"
	cmdAddItem       = "add-cart-"
	cmdDeleteItem    = "del-cart-"
	cmdFilterOptions = "see-filter-options-"
	cmdSetFilter     = "set-filter-"
	cmdRemoveFilter  = "remove-filter-"
	cmdSchedule      = "schedule-pickup-"
	cmdPickupStore   = "pickup-store-"
	cmdPickupTime    = "pickup-time-"
	cmdCheckIn       = "check-in-"
	cmdCancelPickup  = "cancel-pickup-"
)

var (
	helpPattern = regexp.MustCompile(`^help.*|^commands\s.*|see the help menu`)

	// pickup-time-<M/D-H>-<storeKey>-<orderId>
	pickupTimePattern = regexp.MustCompile(`^pickup-time-(\d{1,2}/\d{1,2}-\d{1,2})-([a-z]+)-(.+)$`)

	// check-in-<orderId> with an optional trailing -<M/D-H> slot
	checkInPattern = regexp.MustCompile(`^check-in-(.+?)(?:-(\d{1,2}/\d{1,2}-\d{1,2}))?$`)
)

// Suggestion labels
const (
	shopText       = "Shop Our Collection"
	viewCartText   = "View Cart"
	hoursText      = "Inquire About Hours"
	helpText       = "Help"
	filtersText    = "See/Edit My Filters"
	pickupsText    = "See My Pickups"
	checkoutText   = "Checkout"
	addItemText    = "\U0001F6D2 Add to Cart"
	incrementText  = "➕"
	decrementText  = "➖"
	removeText     = "Remove"
	editText       = "Edit"
	scheduleText   = "Schedule Pickup"
	checkInText    = "Check In"
	cancelText     = "Cancel Pickup"
)

// Canned responses
const (
	rspDefault = "Sorry, I didn't quite get that. Perhaps you were looking for one of these options?"

	rspHours = "We are open Monday - Friday from 9 A.M. to 5 P.M."

	rspHelp = "Welcome to the help menu! The supported commands are:\n\n" +
		"Help - Shows the list of supported commands and functions\n\n" +
		"Inquire About Hours - Will respond with the times that our store is open.\n\n" +
		"Shop Our Collection - Will respond with our inventory, honoring your filters.\n\n" +
		"View Cart - Will respond with all of the items in your cart.\n\n" +
		"Checkout - Will respond with a link to check out and place your order.\n\n"

	rspAddedToCart     = "%s have been added to your cart."
	rspDeletedFromCart = "%s have been deleted from your cart."
	rspEmptyCart       = "Your cart is empty. Shop our collection to fill it up!"
	rspNoMatches       = "No items match your filters. Try relaxing them to see more of our collection."
	rspSetFilter       = "Your %s filter is now set to %s."
	rspRemoveFilter    = "Your %s filter has been removed."
	rspCheckoutLink    = "You're all set to check out! Complete your order here: %s"
	rspOrderPlaced     = "Your order has been placed! Schedule a pickup whenever you're ready."
	rspChooseStore     = "Which store would you like to pick up your order from?"
	rspChooseTime      = "Which time works best for you?"
	rspScheduled       = "Your pickup for order %s is scheduled."
	rspNotScheduled    = "We couldn't schedule that pickup. It may already be checked in or complete."
	rspCheckedIn       = "You're checked in for order %s. We'll bring your order out shortly."
	rspNotCheckedIn    = "We couldn't check you in. Only a scheduled pickup can be checked in."
	rspCanceled        = "Your pickup for order %s has been canceled."
	rspNotCanceled     = "There is no scheduled pickup to cancel for that order."
	rspNoPickups       = "You don't have any pickups yet. They appear here once you place an order."
)

// Store holds a pickup location offered to the user. Keys are single
// lowercase words so they survive command parsing.
type Store struct {
	Key      string
	Address  string
	TimeZone string
}

var stores = []Store{
	{Key: "downtown", Address: "123 Main St, Mountain View, CA", TimeZone: "America/Los_Angeles"},
	{Key: "bayshore", Address: "456 Bayshore Pkwy, Sunnyvale, CA", TimeZone: "America/Los_Angeles"},
}

func storeByKey(key string) (Store, bool) {
	for _, s := range stores {
		if s.Key == key {
			return s, true
		}
	}
	return Store{}, false
}

// Offered pickup slots, in the M/D-H shape the time commands carry.
var pickupSlots = []string{"6/18-10", "6/18-14", "6/19-10", "6/19-14"}

const (
	pickupImageURL  = "https://storage.googleapis.com/rbm-boot-camp-15.appspot.com/bot_assets/pickup.jpg"
	filterImageURL  = "https://storage.googleapis.com/rbm-boot-camp-15.appspot.com/bot_assets/filter.png"
	storeImageURL   = "https://storage.googleapis.com/rbm-boot-camp-15.appspot.com/bot_assets/store.jpg"
	slotDurationHrs = 1
)
