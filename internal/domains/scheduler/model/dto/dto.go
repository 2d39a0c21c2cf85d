package dto

import (
	"stay/internal/domains/scheduler/model"
	"stay/shared"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/timezone"
)

type JobResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Payload   string `json:"payload"`
	RunAt     string `json:"run_at"`
	UniqueKey string `json:"unique_key,omitempty"`
	Status    string `json:"status"`
	Attempts  int    `json:"attempts"`
	LastError string `json:"last_error,omitempty"`
	gDto.Metadata
}

func (r *JobResponse) FromModel(job model.Job) {
	r.ID = job.ID
	r.Type = string(job.Type)
	r.Payload = job.Payload
	r.RunAt = timezone.Format(job.RunAt, constant.DateFormat)
	r.Status = string(job.Status)
	r.Attempts = job.Attempts
	r.LastError = job.LastError
	r.Metadata.FromModel(job.Metadata)

	if job.UniqueKey != nil {
		r.UniqueKey = *job.UniqueKey
	}
}

type GetJobsResponse struct {
	Jobs      []JobResponse `json:"jobs"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetJobsResponse) FromModels(jobs []model.Job, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Jobs = make([]JobResponse, len(jobs))
	for i, job := range jobs {
		r.Jobs[i].FromModel(job)
	}
}

type RunDueResponse struct {
	Claimed int `json:"claimed"`
}
