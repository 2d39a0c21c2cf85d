package dto

import (
	"stay/internal/domains/availability/model"
	"stay/shared/calendar"
	gModel "stay/shared/model"
	"time"
)

type SetRangeRequest struct {
	StartDate string `json:"start_date" validate:"required,day"`
	EndDate   string `json:"end_date"   validate:"required,day"`
	Blocked   *bool  `json:"blocked"    validate:"required"`
}

// ToModels expands the request into one row per day of [start, end).
func (r *SetRangeRequest) ToModels(roomID, user string, start, end, now time.Time) []model.AvailabilityDay {
	days := calendar.Days(start, end)
	rows := make([]model.AvailabilityDay, len(days))

	for i, day := range days {
		rows[i] = model.AvailabilityDay{
			RoomID:   roomID,
			Date:     day,
			Blocked:  *r.Blocked,
			Metadata: gModel.NewMetadata(user, now),
		}
	}

	return rows
}

type DayStatusResponse struct {
	Date    string `json:"date"`
	Blocked bool   `json:"blocked"`
	Missing bool   `json:"missing,omitempty"`
}

func (r *DayStatusResponse) FromModel(status model.DayStatus) {
	r.Date = calendar.Format(status.Date)
	r.Blocked = status.Blocked
	r.Missing = status.Missing
}

type RangeResponse struct {
	RoomID string              `json:"room_id"`
	Days   []DayStatusResponse `json:"days"`
}

func (r *RangeResponse) FromModels(roomID string, statuses []model.DayStatus) {
	r.RoomID = roomID
	r.Days = make([]DayStatusResponse, len(statuses))

	for i, status := range statuses {
		r.Days[i].FromModel(status)
	}
}
