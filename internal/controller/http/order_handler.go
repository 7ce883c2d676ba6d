package http

import (
	"fmt"
	"net/http"

	"artmarket/internal/usecase"
	"artmarket/pkg/logger"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderUseCase usecase.OrderUseCase
	logger       *logger.Logger
}

func NewOrderHandler(orderUseCase usecase.OrderUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
		logger:       log,
	}
}

type CreateOrderRequest struct {
	ArtworkID string `json:"artwork_id" binding:"required"`
}

// CreateOrder godoc
// @Summary      Create an order
// @Description  Open an unpaid order for a single artwork. Returns 409 with the existing order id if the buyer already has an order for it.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateOrderRequest true "Artwork to order"
// @Success      201  {object}  entity.Order
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	buyerID := c.GetString("user_id")

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderUseCase.CreateOrder(buyerID, req.ArtworkID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

type SubmitPaymentRequest struct {
	Amount float64 `form:"amount" binding:"required"`
}

// SubmitPayment godoc
// @Summary      Submit payment proof
// @Description  Upload a payment receipt and the paid amount; moves the payment to pending review. Resubmission replaces the previous proof.
// @Tags         orders
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Param        amount formData number true "Paid amount"
// @Param        proof formData file true "Payment receipt image"
// @Success      200  {object}  entity.Order
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /orders/{id}/payment [post]
func (h *OrderHandler) SubmitPayment(c *gin.Context) {
	orderID := c.Param("id")
	buyerID := c.GetString("user_id")

	var req SubmitPaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proofFile, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment proof file is required"})
		return
	}

	order, err := h.orderUseCase.SubmitPaymentProof(orderID, buyerID, req.Amount, proofFile)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// AcceptPayment godoc
// @Summary      Accept a payment
// @Description  Admin review: complete the order and mark its artworks sold in one transaction.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/orders/{id}/accept [post]
func (h *OrderHandler) AcceptPayment(c *gin.Context) {
	orderID := c.Param("id")

	if err := h.orderUseCase.AcceptPayment(orderID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment accepted"})
}

// RejectPayment godoc
// @Summary      Reject a payment
// @Description  Admin review: mark the payment rejected. The artwork is untouched.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/orders/{id}/reject [post]
func (h *OrderHandler) RejectPayment(c *gin.Context) {
	orderID := c.Param("id")

	if err := h.orderUseCase.RejectPayment(orderID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment rejected"})
}

// ListMyOrders godoc
// @Summary      List my orders
// @Description  Orders placed by the authenticated buyer, newest first.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	buyerID := c.GetString("user_id")

	orders, err := h.orderUseCase.ListMyOrders(buyerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// ListSales godoc
// @Summary      List my sales
// @Description  Orders for artworks created by the authenticated user.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /orders/sales [get]
func (h *OrderHandler) ListSales(c *gin.Context) {
	creatorID := c.GetString("user_id")

	orders, err := h.orderUseCase.ListSales(creatorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// ListAllOrders godoc
// @Summary      List all orders
// @Description  Administrative listing of every order.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/orders [get]
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	orders, err := h.orderUseCase.ListAllOrders()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// GetOrder godoc
// @Summary      Get order detail
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Success      200  {object}  entity.OrderSummary
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderUseCase.GetOrderDetail(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DownloadArtwork godoc
// @Summary      Download purchased artwork files
// @Description  Streams a zip of the ordered artwork's original files to the order's buyer once the payment is accepted. Files missing from storage are skipped.
// @Tags         orders
// @Produce      application/zip
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Success      200  {file}  binary
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /orders/{id}/download [get]
func (h *OrderHandler) DownloadArtwork(c *gin.Context) {
	orderID := c.Param("id")
	buyerID := c.GetString("user_id")

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=order-%s.zip", orderID))

	if err := h.orderUseCase.BundleArtworkImages(orderID, buyerID, c.Writer); err != nil {
		// once zip bytes are on the wire the only option left is to cut
		// the stream; the JSON error is only reachable before that
		if !c.Writer.Written() {
			c.Header("Content-Type", "application/json")
			c.Header("Content-Disposition", "")
			respondError(c, h.logger, err)
			return
		}
		h.logger.Error("Failed while streaming bundle for order %s: %v", orderID, err)
		c.Abort()
	}
}
