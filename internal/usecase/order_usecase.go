package usecase

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"

	"artmarket/internal/entity"
	"artmarket/internal/repo/persistent"
	"artmarket/pkg/logger"
	"artmarket/pkg/queue"
	"artmarket/pkg/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type OrderUseCase interface {
	CreateOrder(buyerID, artworkID string) (*entity.Order, error)
	SubmitPaymentProof(orderID, buyerID string, amount float64, proofFile *multipart.FileHeader) (*entity.Order, error)
	AcceptPayment(orderID string) error
	RejectPayment(orderID string) error
	ListMyOrders(buyerID string) ([]*entity.OrderSummary, error)
	ListSales(creatorID string) ([]*entity.OrderSummary, error)
	ListAllOrders() ([]*entity.OrderSummary, error)
	GetOrderDetail(orderID string) (*entity.OrderSummary, error)
	BundleArtworkImages(orderID, buyerID string, w io.Writer) error
}

type orderUseCase struct {
	orderRepo   persistent.OrderRepository
	artworkRepo persistent.ArtworkRepository
	storage     storage.Storage
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewOrderUseCase(
	orderRepo persistent.OrderRepository,
	artworkRepo persistent.ArtworkRepository,
	fileStorage storage.Storage,
	redisClient *redis.Client,
	queueClient *queue.Client,
	log *logger.Logger,
) OrderUseCase {
	return &orderUseCase{
		orderRepo:   orderRepo,
		artworkRepo: artworkRepo,
		storage:     fileStorage,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      log,
	}
}

// CreateOrder opens an order for a single artwork. A sold artwork is a
// conflict; a repeat order for the same artwork by the same buyer is a
// conflict that carries the existing order id so the client can resume
// payment on it.
func (uc *orderUseCase) CreateOrder(buyerID, artworkID string) (*entity.Order, error) {
	artwork, err := uc.artworkRepo.GetDetail(artworkID)
	if err != nil {
		return nil, err
	}

	if artwork.Status == entity.StatusSold {
		return nil, fmt.Errorf("artwork %s is already sold: %w", artworkID, entity.ErrConflict)
	}

	if existingID, err := uc.orderRepo.FindExisting(buyerID, artworkID); err == nil {
		return nil, &entity.OrderExistsError{OrderID: existingID}
	} else if !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}

	order := &entity.Order{
		BuyerID:       buyerID,
		TotalPrice:    artwork.Price,
		PaymentStatus: entity.PaymentUnpaid,
		OrderStatus:   entity.OrderWaiting,
	}
	item := &entity.OrderItem{
		ArtworkID: artworkID,
		Price:     artwork.Price,
	}

	if err := uc.orderRepo.CreateWithItem(order, item); err != nil {
		// the unique (buyer, artwork) index may have lost a race with a
		// concurrent create; surface the winner's order id
		if existingID, findErr := uc.orderRepo.FindExisting(buyerID, artworkID); findErr == nil {
			return nil, &entity.OrderExistsError{OrderID: existingID}
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	uc.publishOrderEvent("order_created", order.ID, buyerID)
	return order, nil
}

// SubmitPaymentProof uploads the payment receipt and moves the order to
// the pending payment state. Resubmission while still pending replaces
// the previous proof; a decided payment cannot be resubmitted.
func (uc *orderUseCase) SubmitPaymentProof(orderID, buyerID string, amount float64, proofFile *multipart.FileHeader) (*entity.Order, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive: %w", entity.ErrValidation)
	}
	if proofFile == nil {
		return nil, fmt.Errorf("payment proof file is required: %w", entity.ErrValidation)
	}

	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, fmt.Errorf("order %s does not belong to the buyer: %w", orderID, entity.ErrUnauthorized)
	}
	if order.PaymentStatus == entity.PaymentPaid || order.PaymentStatus == entity.PaymentRejected {
		return nil, fmt.Errorf("payment for order %s is already %s: %w", orderID, order.PaymentStatus, entity.ErrConflict)
	}

	src, err := proofFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open proof file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("payment/%s%s", uuid.New().String(), path.Ext(proofFile.Filename))
	contentType := proofFile.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	proofRef, err := uc.storage.Save(key, src, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store payment proof: %w", err)
	}

	if err := uc.orderRepo.UpdatePaymentProof(orderID, amount, proofRef); err != nil {
		return nil, err
	}

	uc.publishOrderEvent("payment_submitted", orderID, buyerID)
	return uc.orderRepo.GetByID(orderID)
}

// AcceptPayment completes the order and marks its artworks sold; the
// repository runs both in one transaction. The cached artwork detail is
// evicted so the sold status is visible immediately.
func (uc *orderUseCase) AcceptPayment(orderID string) error {
	if err := uc.orderRepo.AcceptPayment(orderID); err != nil {
		return err
	}

	if uc.redisClient != nil {
		if artworkID, err := uc.orderRepo.GetItemArtworkID(orderID); err == nil {
			uc.redisClient.Del(context.Background(), fmt.Sprintf("artwork:%s", artworkID))
		} else {
			uc.logger.Warn("Could not resolve artwork for order %s cache eviction: %v", orderID, err)
		}
	}

	uc.publishOrderEvent("payment_accepted", orderID, "")
	return nil
}

func (uc *orderUseCase) RejectPayment(orderID string) error {
	if err := uc.orderRepo.RejectPayment(orderID); err != nil {
		return err
	}
	uc.publishOrderEvent("payment_rejected", orderID, "")
	return nil
}

func (uc *orderUseCase) ListMyOrders(buyerID string) ([]*entity.OrderSummary, error) {
	return uc.orderRepo.ListByBuyer(buyerID)
}

func (uc *orderUseCase) ListSales(creatorID string) ([]*entity.OrderSummary, error) {
	return uc.orderRepo.ListByCreator(creatorID)
}

func (uc *orderUseCase) ListAllOrders() ([]*entity.OrderSummary, error) {
	return uc.orderRepo.ListAll()
}

func (uc *orderUseCase) GetOrderDetail(orderID string) (*entity.OrderSummary, error) {
	return uc.orderRepo.GetDetail(orderID)
}

// BundleArtworkImages streams a zip of the ordered artwork's original
// files to the order's buyer once the payment has been accepted. Files
// missing from storage are skipped with a warning; once the zip header
// has been written the caller can only terminate the stream on error.
func (uc *orderUseCase) BundleArtworkImages(orderID, buyerID string, w io.Writer) error {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order.BuyerID != buyerID {
		return fmt.Errorf("order %s does not belong to the buyer: %w", orderID, entity.ErrUnauthorized)
	}
	if order.PaymentStatus != entity.PaymentPaid {
		return fmt.Errorf("payment for order %s has not been accepted: %w", orderID, entity.ErrConflict)
	}

	artworkID, err := uc.orderRepo.GetItemArtworkID(orderID)
	if err != nil {
		return err
	}

	images, err := uc.artworkRepo.GetImages(artworkID)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("artwork %s has no images: %w", artworkID, entity.ErrNotFound)
	}

	zw := zip.NewWriter(w)
	for _, img := range images {
		exists, err := uc.storage.Exists(img.FileRef)
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to check file %s: %w", img.FileRef, err)
		}
		if !exists {
			uc.logger.Warn("Skipping missing artwork file %s (artwork %s)", img.FileRef, artworkID)
			continue
		}

		src, err := uc.storage.Open(img.FileRef)
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to open file %s: %w", img.FileRef, err)
		}

		entry, err := zw.Create(path.Base(img.FileRef))
		if err != nil {
			src.Close()
			zw.Close()
			return fmt.Errorf("failed to add zip entry for %s: %w", img.FileRef, err)
		}
		if _, err := io.Copy(entry, src); err != nil {
			src.Close()
			zw.Close()
			return fmt.Errorf("failed to stream file %s: %w", img.FileRef, err)
		}
		src.Close()
	}

	return zw.Close()
}

func (uc *orderUseCase) publishOrderEvent(eventType, orderID, userID string) {
	if uc.queueClient == nil {
		return
	}

	event := map[string]interface{}{
		"type":     eventType,
		"order_id": orderID,
	}
	if userID != "" {
		event["user_id"] = userID
	}

	go func() {
		if err := uc.queueClient.PublishOrderEvent(event); err != nil {
			uc.logger.Error("Failed to publish %s event for order %s: %v", eventType, orderID, err)
		}
	}()
}
