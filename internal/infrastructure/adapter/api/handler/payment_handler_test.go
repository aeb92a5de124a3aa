package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/lending-core/internal/domain/error"
	"github.com/amirhossein-jamali/lending-core/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/logger"
	usecaseMocks "github.com/amirhossein-jamali/lending-core/mocks/port/usecase"
)

const webhookBody = `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`

func paymentRouter(t *testing.T, p *entity.Principal) (*gin.Engine, *usecaseMocks.MockPaymentUseCase) {
	uc := usecaseMocks.NewMockPaymentUseCase(t)
	h := NewPaymentHandler(uc, logger.NewNoopLogger())

	r := newRouter(p)
	r.GET("/payments/packages", h.Packages)
	r.POST("/payments/create-order", h.CreateOrder)
	r.POST("/payments/verify", h.Verify)
	r.POST("/webhooks/payment", h.Webhook)
	return r, uc
}

func postWebhook(r http.Handler, signature, eventID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewBufferString(webhookBody))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	if eventID != "" {
		req.Header.Set(EventIDHeader, eventID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentHandler_Webhook(t *testing.T) {
	t.Run("should reject callbacks without a signature", func(t *testing.T) {
		r, _ := paymentRouter(t, nil)

		w := postWebhook(r, "", "evt_1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing signature", decodeError(t, w).Message)
	})

	t.Run("should answer 401 to a forged signature", func(t *testing.T) {
		r, uc := paymentRouter(t, nil)
		uc.On("HandleWebhook", mock.Anything, []byte(webhookBody), "deadbeef", "evt_1").
			Return(nil, domainerr.ErrInvalidSignature).Once()

		w := postWebhook(r, "deadbeef", "evt_1")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, domainerr.CodeInvalidSignature, decodeError(t, w).Code)
	})

	t.Run("should hand the raw body to the use case", func(t *testing.T) {
		r, uc := paymentRouter(t, nil)
		uc.On("HandleWebhook", mock.Anything, []byte(webhookBody), "cafe", "evt_1").
			Return(&usecase.WebhookResult{Event: "payment.captured", Handled: true}, nil).Once()

		w := postWebhook(r, "cafe", "evt_1")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"received":true,"event":"payment.captured","handled":true,"duplicate":false}`, w.Body.String())
	})

	t.Run("should acknowledge duplicates with 200", func(t *testing.T) {
		r, uc := paymentRouter(t, nil)
		uc.On("HandleWebhook", mock.Anything, mock.Anything, "cafe", "evt_1").
			Return(&usecase.WebhookResult{Event: "payment.captured", Duplicate: true}, nil).Once()

		w := postWebhook(r, "cafe", "evt_1")

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.WebhookResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Duplicate)
		assert.False(t, resp.Handled)
	})

	t.Run("should refuse oversized bodies before verifying them", func(t *testing.T) {
		r, _ := paymentRouter(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(make([]byte, maxWebhookBody+1)))
		req.Header.Set(SignatureHeader, "cafe")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "Webhook body too large", decodeError(t, w).Message)
	})

	t.Run("should accept a body at the size limit", func(t *testing.T) {
		r, uc := paymentRouter(t, nil)
		body := make([]byte, maxWebhookBody)
		uc.On("HandleWebhook", mock.Anything, body, "cafe", "").
			Return(nil, domainerr.ErrInvalidSignature).Once()

		req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(body))
		req.Header.Set(SignatureHeader, "cafe")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should map malformed payloads to 400", func(t *testing.T) {
		r, uc := paymentRouter(t, nil)
		uc.On("HandleWebhook", mock.Anything, mock.Anything, "cafe", "").
			Return(nil, domainerr.ErrInvalidRequest).Once()

		w := postWebhook(r, "cafe", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPaymentHandler_Verify(t *testing.T) {
	t.Run("should require every checkout field", func(t *testing.T) {
		r, _ := paymentRouter(t, &borrower)

		w := perform(r, http.MethodPost, "/payments/verify", map[string]string{"razorpay_order_id": "order_1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required payment verification parameters", decodeError(t, w).Message)
	})

	t.Run("should return the settled intent", func(t *testing.T) {
		r, uc := paymentRouter(t, &borrower)
		settled := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
		cmd := usecase.ConfirmPaymentCommand{OrderID: "order_1", PaymentID: "pay_1", Signature: "cafe"}
		uc.On("ConfirmPayment", mock.Anything, uint64(2), cmd).Return(&usecase.SettlementResult{
			Intent: &entity.PaymentIntent{
				ID:               4,
				Subject:          entity.PaymentSubjectPoints,
				SubjectID:        "pack_100",
				GatewayOrderID:   "order_1",
				GatewayPaymentID: "pay_1",
				Status:           entity.PaymentStatusCompleted,
				AmountPaise:      9900,
				Points:           100,
				SettledAt:        &settled,
			},
			AlreadyCompleted: true,
		}, nil).Once()

		w := perform(r, http.MethodPost, "/payments/verify", map[string]string{
			"razorpay_order_id":   "order_1",
			"razorpay_payment_id": "pay_1",
			"razorpay_signature":  "cafe",
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.PaymentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "COMPLETED", resp.Status)
		assert.Equal(t, int64(100), resp.Points)
		assert.True(t, resp.AlreadyCompleted)
	})

	t.Run("should map a bad signature to 400", func(t *testing.T) {
		r, uc := paymentRouter(t, &borrower)
		uc.On("ConfirmPayment", mock.Anything, uint64(2), mock.Anything).
			Return(nil, domainerr.NewPaymentError(4, "order_1", "signature mismatch", domainerr.ErrInvalidSignature)).Once()

		w := perform(r, http.MethodPost, "/payments/verify", map[string]string{
			"razorpay_order_id":   "order_1",
			"razorpay_payment_id": "pay_1",
			"razorpay_signature":  "00",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domainerr.CodeInvalidSignature, decodeError(t, w).Code)
	})
}

func TestPaymentHandler_CreateOrder(t *testing.T) {
	t.Run("should open an order", func(t *testing.T) {
		r, uc := paymentRouter(t, &borrower)
		cmd := usecase.CreateOrderCommand{Kind: usecase.OrderKindDelivery, DeliveryID: 7}
		uc.On("CreateOrder", mock.Anything, uint64(2), cmd).Return(&usecase.OrderResult{
			Intent: &entity.PaymentIntent{ID: 1, GatewayOrderID: "order_1", AmountPaise: 5000, Currency: entity.DefaultCurrency, Receipt: "delivery_7"},
			KeyID:  "rzp_test_key",
		}, nil).Once()

		w := perform(r, http.MethodPost, "/payments/create-order", map[string]any{"kind": "delivery", "deliveryId": 7})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.OrderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "order_1", resp.OrderID)
		assert.Equal(t, int64(5000), resp.AmountPaise)
		assert.Equal(t, "rzp_test_key", resp.KeyID)
	})

	t.Run("should reject unknown kinds", func(t *testing.T) {
		r, _ := paymentRouter(t, &borrower)

		w := perform(r, http.MethodPost, "/payments/create-order", map[string]any{"kind": "tip"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should hide gateway failures behind 502", func(t *testing.T) {
		r, uc := paymentRouter(t, &borrower)
		uc.On("CreateOrder", mock.Anything, uint64(2), mock.Anything).
			Return(nil, domainerr.NewPaymentError(0, "", "connection refused", domainerr.ErrGateway)).Once()

		w := perform(r, http.MethodPost, "/payments/create-order", map[string]any{"kind": "points", "packageId": "pack_100"})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, domainerr.CodeGateway, resp.Code)
		assert.Equal(t, "Payment gateway unavailable, please retry", resp.Message)
	})
}

func TestPaymentHandler_Packages(t *testing.T) {
	r, uc := paymentRouter(t, &borrower)
	uc.On("Packages").Return([]entity.PointPackage{
		{ID: "pack_100", Name: "Starter", Points: 100, PriceINR: decimal.RequireFromString("99")},
	}).Once()

	w := perform(r, http.MethodGet, "/payments/packages", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Packages []dto.PackageResponse `json:"packages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Packages, 1)
	assert.Equal(t, "99.00", resp.Packages[0].PriceINR)
	assert.Equal(t, int64(9900), resp.Packages[0].AmountPaise)
}
