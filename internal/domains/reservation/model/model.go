package model

import (
	availModel "stay/internal/domains/availability/model"
	roomModel "stay/internal/domains/room/model"
	"stay/shared/calendar"
	"time"
)

// Line asks for Quantity units of a room over [CheckIn, CheckOut).
type Line struct {
	RoomID   string
	Quantity int
	CheckIn  time.Time
	CheckOut time.Time
}

type Request struct {
	Lines []Line
}

// Reservation is the proof that every line fits. It is only valid inside the lock window that produced it.
type Reservation struct {
	Lines []Line
	Rooms map[string]roomModel.Room
}

// Shortage names one day a line could not get.
type Shortage struct {
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// Usage is the quantity an active booking line holds on a room.
type Usage struct {
	BookingID string    `db:"booking_id"`
	RoomID    string    `db:"room_id"`
	Quantity  int       `db:"quantity"`
	CheckIn   time.Time `db:"check_in"`
	CheckOut  time.Time `db:"check_out"`
}

type DayRemaining struct {
	Date      time.Time
	Remaining int
	Blocked   bool
}

// DailyUsage sums the quantity held on every day of [start, end).
func DailyUsage(usages []Usage, start, end time.Time) map[time.Time]int {
	used := make(map[time.Time]int)

	for _, usage := range usages {
		for _, day := range calendar.Days(usage.CheckIn, usage.CheckOut) {
			if calendar.Contains(start, end, day) {
				used[day] += usage.Quantity
			}
		}
	}

	return used
}

// RemainingUnits is what a day can still sell: zero when closed, never below zero.
func RemainingUnits(total int, status availModel.DayStatus, used int) int {
	if !status.Open() {
		return 0
	}

	return max(0, total-used)
}

func Remaining(total int, statuses []availModel.DayStatus, used map[time.Time]int) []DayRemaining {
	days := make([]DayRemaining, len(statuses))

	for i, status := range statuses {
		days[i] = DayRemaining{
			Date:      status.Date,
			Remaining: RemainingUnits(total, status, used[status.Date]),
			Blocked:   !status.Open(),
		}
	}

	return days
}

// Window is the smallest range covering every line of the same room.
func Window(lines []Line) (start, end time.Time) {
	for i, line := range lines {
		if i == 0 || line.CheckIn.Before(start) {
			start = calendar.Day(line.CheckIn)
		}

		if i == 0 || line.CheckOut.After(end) {
			end = calendar.Day(line.CheckOut)
		}
	}

	return start, end
}
