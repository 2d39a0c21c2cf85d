package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"stay/config"
	jwtMocks "stay/infras/jwt/mocks"
	otelMocks "stay/infras/otel/mocks"
	paymentMocks "stay/internal/domains/payment/mocks"
	paymentDto "stay/internal/domains/payment/model/dto"
	"stay/internal/handlers/payment"
	"stay/internal/memstore"
	"stay/permissions"
	transport "stay/transport/http"
	"stay/transport/http/middleware"
	"stay/transport/http/router"
)

func TestHTTP_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	payments := paymentMocks.NewMockPaymentService(ctrl)
	ot := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"*"}

	r := router.New(
		router.DomainHandlers{Payment: payment.New(payments, ot)},
		middleware.NewAppMiddleware(ot, cfg, memstore.NewCache()),
		middleware.NewAuthRoleMiddleware(jwtMocks.NewMockJWT(ctrl), ot, permissions.Get(), cfg),
	)

	server := transport.New(cfg, r)
	handler := server.Handler()

	assert.Equal(t, transport.ServerStateReady, server.State())

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("webhook is public", func(t *testing.T) {
		payments.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).
			Return(paymentDto.NotificationResponse{OrderID: "b-1", Applied: true}, nil)

		body := `{"order_id": "b-1", "status_code": "200", "gross_amount": "300.00", "transaction_status": "settlement", "signature_key": "abc"}`

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/payments/notifications", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bookings need a token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bookings/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/bookings/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
