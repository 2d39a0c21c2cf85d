package di

import (
	"stay/config"
	"stay/infras/jwt"
	"stay/infras/otel"
	schedulerService "stay/internal/domains/scheduler/service"
	"stay/internal/handlers/job"
	"stay/transport/http"
)

// App is everything the commands need from one dependency graph.
type App struct {
	Config    *config.Config
	HTTP      *http.HTTP
	Scheduler schedulerService.Scheduler
	Worker    job.Worker
	JWT       jwt.JWT
	Otel      otel.Otel
}
