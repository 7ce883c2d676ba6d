package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderModel struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	BuyerID       string    `gorm:"type:uuid;not null;index" json:"buyer_id"`
	TotalPrice    float64   `gorm:"type:decimal(10,2);not null" json:"total_price"`
	PaymentStatus string    `gorm:"type:varchar(20);default:'unpaid'" json:"payment_status"`
	OrderStatus   string    `gorm:"type:varchar(20);default:'waiting'" json:"order_status"`
	PaidAmount    float64   `gorm:"type:decimal(10,2);default:0" json:"paid_amount"`
	ProofRef      string    `gorm:"type:varchar(500)" json:"proof_ref"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func (o *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// OrderItemModel carries the buyer id alongside the artwork id so the
// at-most-one-order-per-(buyer,artwork) rule can be a real database
// constraint instead of only an application-level check.
type OrderItemModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   string    `gorm:"type:uuid;not null;index" json:"order_id"`
	BuyerID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_buyer_artwork" json:"buyer_id"`
	ArtworkID string    `gorm:"type:uuid;not null;uniqueIndex:idx_buyer_artwork" json:"artwork_id"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

func (i *OrderItemModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
