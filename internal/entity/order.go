package entity

import "time"

// Payment cycle: unpaid -> pending -> paid | rejected.
// paid is reachable only through acceptance; paid and rejected are
// terminal for the cycle.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRejected PaymentStatus = "rejected"
)

// Fulfilment: waiting -> completed, no reverse transition.
type OrderStatus string

const (
	OrderWaiting   OrderStatus = "waiting"
	OrderCompleted OrderStatus = "completed"
)

type Order struct {
	ID            string        `json:"id"`
	BuyerID       string        `json:"buyer_id"`
	TotalPrice    float64       `json:"total_price"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	OrderStatus   OrderStatus   `json:"order_status"`
	PaidAmount    float64       `json:"paid_amount"`
	ProofRef      string        `json:"proof_ref"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	BuyerID   string  `json:"buyer_id"`
	ArtworkID string  `json:"artwork_id"`
	Price     float64 `json:"price"`
}

// OrderSummary is the list/detail projection: order fields joined with
// the purchased artwork and its preview image references. Images is
// always non-nil, empty when the artwork has no images.
type OrderSummary struct {
	Order
	ArtworkID     string        `json:"artwork_id"`
	ArtworkTitle  string        `json:"artwork_title"`
	ArtworkStatus ArtworkStatus `json:"artwork_status"`
	CreatorID     string        `json:"creator_id"`
	Images        []string      `json:"images"`
}
