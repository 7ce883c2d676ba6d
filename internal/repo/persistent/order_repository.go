package persistent

import (
	"errors"
	"fmt"
	"time"

	"artmarket/internal/entity"
	"artmarket/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	GetByID(id string) (*entity.Order, error)
	FindExisting(buyerID, artworkID string) (string, error)
	CreateWithItem(order *entity.Order, item *entity.OrderItem) error
	UpdatePaymentProof(orderID string, amount float64, proofRef string) error
	RejectPayment(orderID string) error
	AcceptPayment(orderID string) error
	ListByBuyer(buyerID string) ([]*entity.OrderSummary, error)
	ListByCreator(creatorID string) ([]*entity.OrderSummary, error)
	ListAll() ([]*entity.OrderSummary, error)
	GetDetail(orderID string) (*entity.OrderSummary, error)
	GetItemArtworkID(orderID string) (string, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByID(id string) (*entity.Order, error) {
	var orderModel model.OrderModel
	if err := r.db.Where("id = ?", id).First(&orderModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return toOrderEntity(&orderModel), nil
}

// FindExisting returns the id of the buyer's existing order for the
// artwork, or ErrNotFound.
func (r *orderRepository) FindExisting(buyerID, artworkID string) (string, error) {
	var item model.OrderItemModel
	err := r.db.Where("buyer_id = ? AND artwork_id = ?", buyerID, artworkID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", entity.ErrNotFound
		}
		return "", err
	}
	return item.OrderID, nil
}

// CreateWithItem inserts the order and its single item in one
// transaction; a duplicate (buyer, artwork) pair fails on the unique
// index and rolls the order back too.
func (r *orderRepository) CreateWithItem(order *entity.Order, item *entity.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		orderModel := &model.OrderModel{
			ID:            order.ID,
			BuyerID:       order.BuyerID,
			TotalPrice:    order.TotalPrice,
			PaymentStatus: string(order.PaymentStatus),
			OrderStatus:   string(order.OrderStatus),
		}
		if err := tx.Create(orderModel).Error; err != nil {
			return err
		}

		itemModel := &model.OrderItemModel{
			ID:        item.ID,
			OrderID:   orderModel.ID,
			BuyerID:   order.BuyerID,
			ArtworkID: item.ArtworkID,
			Price:     item.Price,
		}
		if err := tx.Create(itemModel).Error; err != nil {
			return err
		}

		order.ID = orderModel.ID
		order.CreatedAt = orderModel.CreatedAt
		order.UpdatedAt = orderModel.UpdatedAt
		item.ID = itemModel.ID
		item.OrderID = orderModel.ID
		item.BuyerID = order.BuyerID
		return nil
	})
}

// UpdatePaymentProof moves the order into the pending payment state and
// stores the submitted amount and proof reference. Resubmission simply
// overwrites the previous proof.
func (r *orderRepository) UpdatePaymentProof(orderID string, amount float64, proofRef string) error {
	result := r.db.Model(&model.OrderModel{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"payment_status": string(entity.PaymentPending),
		"paid_amount":    amount,
		"proof_ref":      proofRef,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *orderRepository) RejectPayment(orderID string) error {
	result := r.db.Model(&model.OrderModel{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"payment_status": string(entity.PaymentRejected),
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// AcceptPayment completes the order and marks every purchased artwork
// sold in a single transaction. Any failure, including an item whose
// artwork no longer exists, rolls back the whole transition.
func (r *orderRepository) AcceptPayment(orderID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.OrderModel{}).Where("id = ?", orderID).Updates(map[string]interface{}{
			"payment_status": string(entity.PaymentPaid),
			"order_status":   string(entity.OrderCompleted),
			"updated_at":     time.Now(),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.ErrNotFound
		}

		var items []model.OrderItemModel
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			res := tx.Model(&model.ArtworkModel{}).Where("id = ?", item.ArtworkID).Update("status", string(entity.StatusSold))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("order item %s references missing artwork %s", item.ID, item.ArtworkID)
			}
		}
		return nil
	})
}

const orderJoinSelect = `
SELECT o.id, o.buyer_id, o.total_price, o.payment_status, o.order_status,
       o.paid_amount, o.proof_ref, o.created_at, o.updated_at,
       a.id AS artwork_id, a.title AS artwork_title, a.status AS artwork_status,
       a.owner_id AS creator_id,
       ai.preview_ref
FROM orders o
JOIN order_items oi ON oi.order_id = o.id
JOIN artworks a ON a.id = oi.artwork_id
LEFT JOIN artwork_images ai ON ai.artwork_id = a.id
`

func (r *orderRepository) querySummaries(where string, args ...interface{}) ([]*entity.OrderSummary, error) {
	query := orderJoinSelect
	if where != "" {
		query += "WHERE " + where + "\n"
	}
	query += "ORDER BY o.created_at DESC"

	var rows []orderRow
	if err := r.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return groupOrderRows(rows), nil
}

func (r *orderRepository) ListByBuyer(buyerID string) ([]*entity.OrderSummary, error) {
	return r.querySummaries("o.buyer_id = ?", buyerID)
}

func (r *orderRepository) ListByCreator(creatorID string) ([]*entity.OrderSummary, error) {
	return r.querySummaries("a.owner_id = ?", creatorID)
}

func (r *orderRepository) ListAll() ([]*entity.OrderSummary, error) {
	return r.querySummaries("")
}

func (r *orderRepository) GetDetail(orderID string) (*entity.OrderSummary, error) {
	summaries, err := r.querySummaries("o.id = ?", orderID)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, entity.ErrNotFound
	}
	return summaries[0], nil
}

func (r *orderRepository) GetItemArtworkID(orderID string) (string, error) {
	var item model.OrderItemModel
	err := r.db.Where("order_id = ?", orderID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", entity.ErrNotFound
		}
		return "", err
	}
	return item.ArtworkID, nil
}
