package dto

import (
	"stay/internal/domains/reservation/model"
	"stay/shared/calendar"
)

type DayRemainingResponse struct {
	Date      string `json:"date"`
	Remaining int    `json:"remaining"`
	Blocked   bool   `json:"blocked"`
}

type RemainingResponse struct {
	RoomID     string                 `json:"room_id"`
	TotalUnits int                    `json:"total_units"`
	Days       []DayRemainingResponse `json:"days"`
}

func (r *RemainingResponse) FromModels(roomID string, totalUnits int, days []model.DayRemaining) {
	r.RoomID = roomID
	r.TotalUnits = totalUnits
	r.Days = make([]DayRemainingResponse, len(days))

	for i, day := range days {
		r.Days[i] = DayRemainingResponse{
			Date:      calendar.Format(day.Date),
			Remaining: day.Remaining,
			Blocked:   day.Blocked,
		}
	}
}
