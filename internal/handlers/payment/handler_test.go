package payment_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "stay/infras/otel/mocks"
	"stay/internal/domains/payment/mocks"
	"stay/internal/domains/payment/model/dto"
	"stay/internal/handlers/payment"
	"stay/shared/constant"
	"stay/shared/failure"
)

func TestHandleNotification(t *testing.T) {
	body := `{
		"order_id": "b-1",
		"status_code": "200",
		"gross_amount": "300.00",
		"transaction_status": "settlement",
		"signature_key": "abc"
	}`

	tests := []struct {
		name       string
		body       string
		setup      func(service *mocks.MockPaymentService)
		wantStatus int
		wantKind   failure.Kind
	}{
		{
			name: "applied",
			body: body,
			setup: func(service *mocks.MockPaymentService) {
				service.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).
					Return(dto.NotificationResponse{OrderID: "b-1", Applied: true, Status: "confirmed"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing signature",
			body:       `{"order_id": "b-1", "status_code": "200", "gross_amount": "300.00", "transaction_status": "settlement"}`,
			setup:      func(*mocks.MockPaymentService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "forged",
			body: body,
			setup: func(service *mocks.MockPaymentService) {
				service.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).
					Return(dto.NotificationResponse{}, failure.SignatureMismatch("signature does not match"))
			},
			wantStatus: http.StatusForbidden,
			wantKind:   failure.KindSignatureMismatch,
		},
		{
			name: "unknown order is retried by the gateway",
			body: body,
			setup: func(service *mocks.MockPaymentService) {
				service.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).
					Return(dto.NotificationResponse{}, failure.NotFound("booking"))
			},
			wantStatus: http.StatusNotFound,
			wantKind:   failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockPaymentService(ctrl)
			tt.setup(service)

			recorder := otelMocks.NewRecorder()
			handler := payment.New(service, recorder)
			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/notifications", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)

			span, ok := recorder.Span(constant.OtelHandlerScopeName + ".HandleNotification")
			assert.True(t, ok)
			assert.True(t, span.Ended)

			if tt.wantKind != "" {
				if assert.Len(t, span.Errors, 1) {
					assert.True(t, failure.Is(span.Errors[0], tt.wantKind))
				}
			}
		})
	}
}
