package availability

import (
	"net/http"
	"stay/infras/otel"
	"stay/internal/domains/availability/model/dto"
	"stay/internal/domains/availability/service"
	resService "stay/internal/domains/reservation/service"
	"stay/shared/calendar"
	"stay/shared/constant"
	"stay/shared/validator"
	"stay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service     service.Availability
	reservation resService.Reservation
	otel        otel.Otel
}

func New(service service.Availability, reservation resService.Reservation, otel otel.Otel) Handler {
	return Handler{
		service:     service,
		reservation: reservation,
		otel:        otel,
	}
}

// Router mounts under /rooms/{id}, next to the room routes.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/rooms/{id}/availability", handler.GetAvailability)
	router.Put("/rooms/{id}/availability", handler.SetAvailability)
	router.Get("/rooms/{id}/remaining", handler.GetRemaining)
}

// GetAvailability reports which days of a range are blocked.
// @Summary Get availability days
// @Tags Availability
// @Produce json
// @Param id path string true "Room ID"
// @Param check_in query string true "First day (YYYY-MM-DD)"
// @Param check_out query string true "Day after the last (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.RangeResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	start, end, err := calendar.ParseRange(r.URL.Query().Get(constant.RequestParamCheckIn), r.URL.Query().Get(constant.RequestParamCheckOut))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	days, err := handler.service.GetRange(ctx, id, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, days)
}

// SetAvailability blocks or unblocks a range of days.
// @Summary Block or unblock days
// @Description Existing bookings are kept when days are blocked.
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.SetRangeRequest true "Range"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/rooms/{id}/availability [put]
// @Security BearerAuth
func (handler *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SetRangeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetRange(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set availability")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Availability updated by user " + user)

	response.WithMessage(w, http.StatusOK, "Availability updated successfully")
}

// GetRemaining reports the sellable units per day. Served from cache, never used to reserve.
// @Summary Get remaining units
// @Tags Availability
// @Produce json
// @Param id path string true "Room ID"
// @Param check_in query string true "First day (YYYY-MM-DD)"
// @Param check_out query string true "Day after the last (YYYY-MM-DD)"
// @Success 200 {object} response.Data[resDto.RemainingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/remaining [get]
func (handler *Handler) GetRemaining(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRemaining")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	start, end, err := calendar.ParseRange(r.URL.Query().Get(constant.RequestParamCheckIn), r.URL.Query().Get(constant.RequestParamCheckOut))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	remaining, err := handler.reservation.Remaining(ctx, id, start, end)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get remaining units")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, remaining)
}
