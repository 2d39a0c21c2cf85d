package booking_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "stay/infras/otel/mocks"
	"stay/internal/domains/booking/mocks"
	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/model/dto"
	"stay/internal/handlers/booking"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/failure"
)

func newRouter(t *testing.T) (*mocks.MockBookingService, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockBookingService(ctrl)
	handler := booking.New(service, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return service, router
}

func as(r *http.Request, userID, role string) *http.Request {
	ctx := context.WithValue(r.Context(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return r.WithContext(ctx)
}

func TestCreateBooking(t *testing.T) {
	valid := `{
		"guest_name": "Ana",
		"guest_email": "ana@example.com",
		"payment_method": "manual",
		"lines": [{"room_id": "5f0c3a52-8a3e-4a57-9f51-7a3b3b8e2f10", "quantity": 1, "check_in": "2025-03-10", "check_out": "2025-03-12"}]
	}`

	tests := []struct {
		name       string
		body       string
		setup      func(service *mocks.MockBookingService)
		wantStatus int
	}{
		{
			name: "created",
			body: valid,
			setup: func(service *mocks.MockBookingService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
						assert.Equal(t, "manual", req.PaymentMethod)
						require.Len(t, req.Lines, 1)

						return dto.BookingResponse{ID: "b-1", Status: string(model.StatusWaitingPayment)}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing lines",
			body:       `{"guest_name": "Ana", "guest_email": "ana@example.com", "payment_method": "manual", "lines": []}`,
			setup:      func(*mocks.MockBookingService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "sold out",
			body: valid,
			setup: func(service *mocks.MockBookingService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.BookingResponse{}, failure.InsufficientInventory("not enough units", nil))
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := newRouter(t)
			tt.setup(service)

			req := as(httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(tt.body)), "guest-1", constant.RoleGuest)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetBookings_ScopedByRole(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		role       string
		wantField  string
		wantStatus int
	}{
		{name: "guest sees own", userID: "guest-1", role: constant.RoleGuest, wantField: model.FieldGuestID, wantStatus: http.StatusOK},
		{name: "tenant sees property", userID: "tenant-1", role: constant.RoleTenant, wantField: model.FieldTenantID, wantStatus: http.StatusOK},
		{name: "admin sees all", userID: "admin-1", role: constant.RoleAdmin, wantStatus: http.StatusOK},
		{name: "unknown role", userID: "x", role: "robot", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := newRouter(t)

			if tt.wantStatus == http.StatusOK {
				service.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
						fields := map[string]any{}
						for _, f := range filter.Filters {
							if filter, ok := f.(gDto.Filter); ok {
								fields[filter.Field] = filter.Value
							}
						}

						if tt.wantField != "" {
							assert.Equal(t, tt.userID, fields[tt.wantField])
						}

						assert.Equal(t, string(model.StatusConfirmed), fields[model.FieldStatus])

						return dto.GetBookingsResponse{Bookings: []dto.BookingResponse{}}, nil
					})
			}

			req := as(httptest.NewRequest(http.MethodGet, "/bookings/?status=confirmed", nil), tt.userID, tt.role)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(service *mocks.MockBookingService)
		wantStatus int
	}{
		{
			name: "accept",
			path: "/bookings/b-1/accept",
			setup: func(service *mocks.MockBookingService) {
				service.EXPECT().Accept(gomock.Any(), "b-1").Return(dto.BookingResponse{ID: "b-1", Status: string(model.StatusConfirmed)}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "accept from wrong status",
			path: "/bookings/b-1/accept",
			setup: func(service *mocks.MockBookingService) {
				service.EXPECT().Accept(gomock.Any(), "b-1").
					Return(dto.BookingResponse{}, failure.InvalidStateTransition(string(model.StatusWaitingPayment), string(model.EventAccept)))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "guest cancel",
			path: "/bookings/b-1/cancel",
			setup: func(service *mocks.MockBookingService) {
				service.EXPECT().CancelByGuest(gomock.Any(), "b-1").Return(dto.BookingResponse{ID: "b-1", Status: string(model.StatusCanceled)}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "tenant cancel of someone else's booking",
			path: "/bookings/b-1/tenant-cancel",
			setup: func(service *mocks.MockBookingService) {
				service.EXPECT().CancelByTenant(gomock.Any(), "b-1").Return(dto.BookingResponse{}, failure.Unauthorized("not your booking"))
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "reject without body",
			path: "/bookings/b-1/reject",
			setup: func(service *mocks.MockBookingService) {
				service.EXPECT().Reject(gomock.Any(), "b-1", dto.RejectRequest{}).
					Return(dto.BookingResponse{ID: "b-1", Status: string(model.StatusWaitingPayment)}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := newRouter(t)
			tt.setup(service)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, as(httptest.NewRequest(http.MethodPost, tt.path, nil), "user-1", constant.RoleTenant))

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var body struct {
					Data dto.BookingResponse `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "b-1", body.Data.ID)
			}
		})
	}
}

func TestRejectBooking(t *testing.T) {
	t.Run("passes the reason through", func(t *testing.T) {
		service, router := newRouter(t)
		service.EXPECT().Reject(gomock.Any(), "b-1", dto.RejectRequest{Reason: "amount does not match"}).
			Return(dto.BookingResponse{ID: "b-1", Status: string(model.StatusWaitingPayment)}, nil)

		req := httptest.NewRequest(http.MethodPost, "/bookings/b-1/reject", strings.NewReader(`{"reason": "amount does not match"}`))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, as(req, "tenant-1", constant.RoleTenant))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("reason too long", func(t *testing.T) {
		_, router := newRouter(t)

		body := `{"reason": "` + strings.Repeat("x", 256) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings/b-1/reject", strings.NewReader(body))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, as(req, "tenant-1", constant.RoleTenant))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUploadProof(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90wS\xde")

	form := func(field string, data []byte) (*bytes.Buffer, string) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)

		part, err := writer.CreateFormFile(field, "receipt.png")
		require.NoError(t, err)

		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		return body, writer.FormDataContentType()
	}

	t.Run("accepted", func(t *testing.T) {
		service, router := newRouter(t)
		service.EXPECT().UploadProof(gomock.Any(), "b-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req dto.UploadProofRequest) (dto.BookingResponse, error) {
				assert.Equal(t, "receipt.png", req.FileName)
				assert.Equal(t, png, req.Data)

				return dto.BookingResponse{ID: "b-1", Status: string(model.StatusWaitingConfirmation)}, nil
			})

		body, contentType := form("proof", png)
		req := httptest.NewRequest(http.MethodPost, "/bookings/b-1/proof", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, as(req, "guest-1", constant.RoleGuest))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		_, router := newRouter(t)

		body, contentType := form("other", png)
		req := httptest.NewRequest(http.MethodPost, "/bookings/b-1/proof", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, as(req, "guest-1", constant.RoleGuest))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, router := newRouter(t)

		body, contentType := form("proof", []byte("plain text is not a receipt"))
		req := httptest.NewRequest(http.MethodPost, "/bookings/b-1/proof", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, as(req, "guest-1", constant.RoleGuest))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
