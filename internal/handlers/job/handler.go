package job

import (
	"net/http"
	"stay/infras/otel"
	"stay/internal/domains/scheduler/model"
	"stay/internal/domains/scheduler/model/dto"
	"stay/internal/domains/scheduler/service"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Scheduler
	otel    otel.Otel
}

func New(service service.Scheduler, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/jobs", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetJobs)
		routerGroup.Post("/run", handler.RunDue)
	})
}

var sortColumns = map[string]string{
	model.FieldRunAt:        model.TableName + "." + model.FieldRunAt,
	model.FieldAttempts:     model.TableName + "." + model.FieldAttempts,
	constant.FieldCreatedAt: model.TableName + "." + constant.FieldCreatedAt,
}

// GetJobs lists scheduled jobs.
// @Summary List scheduled jobs
// @Tags Job
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, running, done, failed)"
// @Param type query string false "Filter by job type"
// @Success 200 {object} response.Data[dto.GetJobsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/jobs [get]
// @Security BearerAuth
func (handler *Handler) GetJobs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetJobs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Restrict(sortColumns)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldStatus, model.FieldType} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	jobs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get jobs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, jobs)
}

// RunDue claims and runs one batch of due jobs right away.
// @Summary Run due jobs
// @Tags Job
// @Produce json
// @Success 200 {object} response.Data[dto.RunDueResponse]
// @Failure 500 {object} response.Error
// @Router /v1/jobs/run [post]
// @Security BearerAuth
func (handler *Handler) RunDue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RunDue")
	defer scope.End()

	n, err := handler.service.RunDue(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to run due jobs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Due jobs run")

	response.WithJSON(w, http.StatusOK, dto.RunDueResponse{Claimed: n})
}
