package payment

import (
	"net/http"
	"stay/infras/otel"
	"stay/internal/domains/payment/model/dto"
	"stay/internal/domains/payment/service"
	"stay/shared/constant"
	"stay/shared/validator"
	"stay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/notifications", handler.HandleNotification)
	})
}

// HandleNotification receives payment gateway status updates.
// The gateway retries anything that is not 2xx, so repeats must be acknowledged.
// @Summary Payment gateway notification
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.NotificationRequest true "Gateway notification"
// @Success 200 {object} response.Data[dto.NotificationResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payments/notifications [post]
func (handler *Handler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HandleNotification")
	defer scope.End()

	req := dto.NotificationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate payment notification")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.HandleNotification(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("order", req.OrderID).Msg("failed to handle payment notification")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment notification handled for order " + req.OrderID)

	response.WithJSON(w, http.StatusOK, res)
}
