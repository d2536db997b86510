package domain

import "time"

// OrderStatus mirrors the on-chain order lifecycle.
type OrderStatus string

const (
	OrderPlaced                OrderStatus = "Placed"
	OrderConfirmed             OrderStatus = "Confirmed"
	OrderCancelReqByCustomer   OrderStatus = "CancelReqByCustomer"
	OrderCancelReqByRestaurant OrderStatus = "CancelReqByRestaurant"
	OrderCancelled             OrderStatus = "Cancelled"
	OrderCompleted             OrderStatus = "Completed"
)

// PaymentMethod mirrors the on-chain payment options.
type PaymentMethod string

const (
	PayETH       PaymentMethod = "ETH"
	PayFoodToken PaymentMethod = "FOOD_TOKEN"
	PayFiat      PaymentMethod = "FIAT"
)

var orderStatusByName = map[string]OrderStatus{
	"Placed":                OrderPlaced,
	"Confirmed":             OrderConfirmed,
	"CancelReqByCustomer":   OrderCancelReqByCustomer,
	"CancelReqByRestaurant": OrderCancelReqByRestaurant,
	"Cancelled":             OrderCancelled,
	"Completed":             OrderCompleted,
}

var paymentMethodByName = map[string]PaymentMethod{
	"ETH":        PayETH,
	"FOOD_TOKEN": PayFoodToken,
	"FIAT":       PayFiat,
}

// OrderStatusFromIndexer maps an indexer status string to the local
// enum. Unrecognized input maps to Placed, never an error.
func OrderStatusFromIndexer(s string) OrderStatus {
	if v, ok := orderStatusByName[s]; ok {
		return v
	}
	return OrderPlaced
}

// PaymentMethodFromIndexer maps an indexer payment string to the local
// enum. Unrecognized input maps to ETH.
func PaymentMethodFromIndexer(s string) PaymentMethod {
	if v, ok := paymentMethodByName[s]; ok {
		return v
	}
	return PayETH
}

// Customer is the local projection of an indexed customer, keyed by
// wallet address.
type Customer struct {
	WalletAddress string    `json:"walletAddress"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Restaurant is the local projection of an indexed restaurant, keyed by
// wallet address.
type Restaurant struct {
	WalletAddress string    `json:"walletAddress"`
	Name          string    `json:"name"`
	MetadataURI   string    `json:"metadataUri"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MenuItem is the local projection of an indexed menu item, keyed by
// the indexer-assigned id.
type MenuItem struct {
	ID               string    `json:"id"`
	RestaurantWallet string    `json:"restaurantWallet"`
	Name             string    `json:"name"`
	PriceE18         string    `json:"priceE18"`
	Available        bool      `json:"available"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Order is the local projection of an indexed order, keyed by the
// indexer-assigned id.
type Order struct {
	ID             string        `json:"id"`
	CustomerWallet string        `json:"customerWallet"`
	RestaurantID   string        `json:"restaurantId"`
	Status         OrderStatus   `json:"status"`
	Payment        PaymentMethod `json:"payment"`
	SlippageBps    int64         `json:"slippageBps"`
	TotalE18       string        `json:"totalE18"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// EntityKind names one synced projection.
type EntityKind string

const (
	KindCustomer   EntityKind = "customer"
	KindRestaurant EntityKind = "restaurant"
	KindMenuItem   EntityKind = "menuItem"
	KindOrder      EntityKind = "order"
)

// AllEntityKinds lists every kind SyncAll fans out to.
var AllEntityKinds = []EntityKind{KindCustomer, KindRestaurant, KindMenuItem, KindOrder}

// SyncStats reports per-kind projection sizes. LastSync stays nil until
// a writer for its tracking key exists; there is none today.
type SyncStats struct {
	Customers   int        `json:"customers"`
	Restaurants int        `json:"restaurants"`
	MenuItems   int        `json:"menuItems"`
	Orders      int        `json:"orders"`
	LastSync    *time.Time `json:"lastSync,omitempty"`
}
