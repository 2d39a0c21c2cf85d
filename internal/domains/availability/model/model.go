package model

import (
	"stay/shared"
	"stay/shared/calendar"
	"stay/shared/model"
	"time"
)

const (
	TableName  = "availability_days"
	EntityName = "availability_day"

	FieldRoomID  = "room_id"
	FieldDate    = "date"
	FieldBlocked = "blocked"

	// CacheRemainingPrefix namespaces the per-room remaining-units projection.
	CacheRemainingPrefix = "availability:remaining"
	// CacheRemainingGenerationPrefix counts invalidations per room. It must stay outside CacheRemainingPrefix.
	CacheRemainingGenerationPrefix = "availability:generation"
)

// AvailabilityDay records whether the tenant blocked a room for one calendar day.
type AvailabilityDay struct {
	RoomID  string    `db:"room_id"`
	Date    time.Time `db:"date"`
	Blocked bool      `db:"blocked"`
	model.Metadata
}

// DayStatus is the ledger view of a single day. Missing days have no row and count as unavailable.
type DayStatus struct {
	Date    time.Time
	Blocked bool
	Missing bool
}

func (d DayStatus) Open() bool {
	return !d.Blocked && !d.Missing
}

// StatusRange lists one DayStatus for every day in [start, end).
func StatusRange(rows []AvailabilityDay, start, end time.Time) []DayStatus {
	byDay := make(map[time.Time]AvailabilityDay, len(rows))
	for _, row := range rows {
		byDay[calendar.Day(row.Date)] = row
	}

	days := calendar.Days(start, end)
	statuses := make([]DayStatus, len(days))

	for i, day := range days {
		row, ok := byDay[day]
		statuses[i] = DayStatus{
			Date:    day,
			Blocked: !ok || row.Blocked,
			Missing: !ok,
		}
	}

	return statuses
}

// RemainingCacheKey is the cache prefix for one room; range keys extend it.
func RemainingCacheKey(roomID string, parts ...string) string {
	return shared.BuildCacheKey(CacheRemainingPrefix, append([]string{roomID}, parts...)...)
}

func RemainingGenerationKey(roomID string) string {
	return shared.BuildCacheKey(CacheRemainingGenerationPrefix, roomID)
}
