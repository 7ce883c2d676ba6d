package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"artmarket/internal/entity"
	"artmarket/internal/usecase"
	"artmarket/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderUseCase is a mock implementation of OrderUseCase
type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) CreateOrder(buyerID, artworkID string) (*entity.Order, error) {
	args := m.Called(buyerID, artworkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUseCase) SubmitPaymentProof(orderID, buyerID string, amount float64, proofFile *multipart.FileHeader) (*entity.Order, error) {
	args := m.Called(orderID, buyerID, amount, proofFile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUseCase) AcceptPayment(orderID string) error {
	args := m.Called(orderID)
	return args.Error(0)
}

func (m *MockOrderUseCase) RejectPayment(orderID string) error {
	args := m.Called(orderID)
	return args.Error(0)
}

func (m *MockOrderUseCase) ListMyOrders(buyerID string) ([]*entity.OrderSummary, error) {
	args := m.Called(buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.OrderSummary), args.Error(1)
}

func (m *MockOrderUseCase) ListSales(creatorID string) ([]*entity.OrderSummary, error) {
	args := m.Called(creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.OrderSummary), args.Error(1)
}

func (m *MockOrderUseCase) ListAllOrders() ([]*entity.OrderSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.OrderSummary), args.Error(1)
}

func (m *MockOrderUseCase) GetOrderDetail(orderID string) (*entity.OrderSummary, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OrderSummary), args.Error(1)
}

func (m *MockOrderUseCase) BundleArtworkImages(orderID, buyerID string, w io.Writer) error {
	args := m.Called(orderID, buyerID, w)
	return args.Error(0)
}

var _ usecase.OrderUseCase = (*MockOrderUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asUser(userID string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		handler(c)
	}
}

func TestCreateOrder_Created(t *testing.T) {
	mockUseCase := new(MockOrderUseCase)
	handler := NewOrderHandler(mockUseCase, logger.New())

	mockUseCase.On("CreateOrder", "buyer-1", "art-1").Return(&entity.Order{
		ID:            "order-1",
		BuyerID:       "buyer-1",
		TotalPrice:    120,
		PaymentStatus: entity.PaymentUnpaid,
		OrderStatus:   entity.OrderWaiting,
	}, nil)

	router := setupTestRouter()
	router.POST("/orders", asUser("buyer-1", handler.CreateOrder))

	body, _ := json.Marshal(map[string]string{"artwork_id": "art-1"})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp entity.Order
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "order-1", resp.ID)
	assert.Equal(t, entity.PaymentUnpaid, resp.PaymentStatus)
	mockUseCase.AssertExpectations(t)
}

func TestCreateOrder_ExistingOrderConflict(t *testing.T) {
	mockUseCase := new(MockOrderUseCase)
	handler := NewOrderHandler(mockUseCase, logger.New())

	mockUseCase.On("CreateOrder", "buyer-1", "art-1").Return(nil, &entity.OrderExistsError{OrderID: "order-7"})

	router := setupTestRouter()
	router.POST("/orders", asUser("buyer-1", handler.CreateOrder))

	body, _ := json.Marshal(map[string]string{"artwork_id": "art-1"})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "order-7", resp["existing_order_id"])
}

func TestCreateOrder_ArtworkNotFound(t *testing.T) {
	mockUseCase := new(MockOrderUseCase)
	handler := NewOrderHandler(mockUseCase, logger.New())

	mockUseCase.On("CreateOrder", "buyer-1", "missing").Return(nil, entity.ErrNotFound)

	router := setupTestRouter()
	router.POST("/orders", asUser("buyer-1", handler.CreateOrder))

	body, _ := json.Marshal(map[string]string{"artwork_id": "missing"})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrder_MissingBody(t *testing.T) {
	handler := NewOrderHandler(new(MockOrderUseCase), logger.New())

	router := setupTestRouter()
	router.POST("/orders", asUser("buyer-1", handler.CreateOrder))

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAcceptPayment_OK(t *testing.T) {
	mockUseCase := new(MockOrderUseCase)
	handler := NewOrderHandler(mockUseCase, logger.New())

	mockUseCase.On("AcceptPayment", "order-1").Return(nil)

	router := setupTestRouter()
	router.POST("/admin/orders/:id/accept", handler.AcceptPayment)

	req := httptest.NewRequest(http.MethodPost, "/admin/orders/order-1/accept", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestRejectPayment_NotFound(t *testing.T) {
	mockUseCase := new(MockOrderUseCase)
	handler := NewOrderHandler(mockUseCase, logger.New())

	mockUseCase.On("RejectPayment", "missing").Return(entity.ErrNotFound)

	router := setupTestRouter()
	router.POST("/admin/orders/:id/reject", handler.RejectPayment)

	req := httptest.NewRequest(http.MethodPost, "/admin/orders/missing/reject", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMyOrders_OK(t *testing.T) {
	mockUseCase := new(MockOrderUseCase)
	handler := NewOrderHandler(mockUseCase, logger.New())

	mockUseCase.On("ListMyOrders", "buyer-1").Return([]*entity.OrderSummary{
		{Order: entity.Order{ID: "order-1"}, ArtworkTitle: "Dawn", Images: []string{}},
	}, nil)

	router := setupTestRouter()
	router.GET("/orders", asUser("buyer-1", handler.ListMyOrders))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["count"])
}

func TestDownloadArtwork_StreamsZip(t *testing.T) {
	mockUseCase := new(MockOrderUseCase)
	handler := NewOrderHandler(mockUseCase, logger.New())

	mockUseCase.On("BundleArtworkImages", "order-1", "buyer-1", mock.Anything).Run(func(args mock.Arguments) {
		w := args.Get(2).(io.Writer)
		w.Write([]byte("PK\x03\x04zip-bytes"))
	}).Return(nil)

	router := setupTestRouter()
	router.GET("/orders/:id/download", asUser("buyer-1", handler.DownloadArtwork))

	req := httptest.NewRequest(http.MethodGet, "/orders/order-1/download", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "order-order-1.zip")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestDownloadArtwork_NotFound(t *testing.T) {
	mockUseCase := new(MockOrderUseCase)
	handler := NewOrderHandler(mockUseCase, logger.New())

	mockUseCase.On("BundleArtworkImages", "missing", "buyer-1", mock.Anything).Return(entity.ErrNotFound)

	router := setupTestRouter()
	router.GET("/orders/:id/download", asUser("buyer-1", handler.DownloadArtwork))

	req := httptest.NewRequest(http.MethodGet, "/orders/missing/download", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadArtwork_ForeignOrderForbidden(t *testing.T) {
	mockUseCase := new(MockOrderUseCase)
	handler := NewOrderHandler(mockUseCase, logger.New())

	mockUseCase.On("BundleArtworkImages", "order-1", "intruder", mock.Anything).Return(entity.ErrUnauthorized)

	router := setupTestRouter()
	router.GET("/orders/:id/download", asUser("intruder", handler.DownloadArtwork))

	req := httptest.NewRequest(http.MethodGet, "/orders/order-1/download", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestDownloadArtwork_UnpaidOrderConflicts(t *testing.T) {
	mockUseCase := new(MockOrderUseCase)
	handler := NewOrderHandler(mockUseCase, logger.New())

	mockUseCase.On("BundleArtworkImages", "order-1", "buyer-1", mock.Anything).Return(entity.ErrConflict)

	router := setupTestRouter()
	router.GET("/orders/:id/download", asUser("buyer-1", handler.DownloadArtwork))

	req := httptest.NewRequest(http.MethodGet, "/orders/order-1/download", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
