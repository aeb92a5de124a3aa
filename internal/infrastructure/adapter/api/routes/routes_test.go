package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/lending-core/internal/infrastructure/adapter/logger"
	usecaseMocks "github.com/amirhossein-jamali/lending-core/mocks/port/usecase"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type fixture struct {
	router     *gin.Engine
	tokens     *auth.TokenService
	deliveries *usecaseMocks.MockDeliveryUseCase
}

func newFixture(t *testing.T, pingErr error) *fixture {
	gin.SetMode(gin.TestMode)
	tokens, err := auth.NewTokenService("test-secret", "lending-core")
	require.NoError(t, err)

	log := logger.NewNoopLogger()
	deliveries := usecaseMocks.NewMockDeliveryUseCase(t)

	router := gin.New()
	SetupMiddlewares(router, log, nil)
	SetupRoutes(router, Handlers{
		Delivery:     handler.NewDeliveryHandler(deliveries, log),
		Account:      handler.NewAccountHandler(usecaseMocks.NewMockLedgerUseCase(t), log),
		Payment:      handler.NewPaymentHandler(usecaseMocks.NewMockPaymentUseCase(t), log),
		Notification: handler.NewNotificationHandler(usecaseMocks.NewMockNotificationUseCase(t), log),
		Health:       handler.NewHealthHandler(stubPinger{err: pingErr}),
	}, tokens, log)

	return &fixture{router: router, tokens: tokens, deliveries: deliveries}
}

func (f *fixture) do(t *testing.T, method, path string, p *entity.Principal) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if p != nil {
		token, err := f.tokens.Mint(*p, time.Now(), time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := newFixture(t, nil).do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = newFixture(t, errors.New("connection refused")).do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAPIRequiresToken(t *testing.T) {
	f := newFixture(t, nil)

	for _, path := range []string{"/api/v1/accounts/me", "/api/v1/deliveries/available", "/api/v1/notifications"} {
		w := f.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAgentRoutes(t *testing.T) {
	f := newFixture(t, nil)
	user := entity.Principal{UserID: 2, Role: entity.RoleUser}
	agent := entity.Principal{UserID: 3, Role: entity.RoleDeliveryAgent}

	t.Run("should keep ordinary users away from the job board", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/deliveries/available", &user)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = f.do(t, http.MethodPatch, "/api/v1/deliveries/7/assign", &user)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("should let agents list claimable jobs", func(t *testing.T) {
		f.deliveries.On("ListAvailable", mock.Anything, 0).Return([]*entity.DeliveryJob{}, nil).Once()

		w := f.do(t, http.MethodGet, "/api/v1/deliveries/available", &agent)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deliveries":[],"count":0}`, w.Body.String())
	})
}

func TestWebhookSkipsBearerAuth(t *testing.T) {
	w := newFixture(t, nil).do(t, http.MethodPost, "/webhooks/payment", nil)

	// reaches the handler, which rejects the missing signature
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
