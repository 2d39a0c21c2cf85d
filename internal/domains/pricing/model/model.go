package model

import (
	"stay/shared"
	"stay/shared/calendar"
	"stay/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "peak_rates"
	EntityName = "peak_rate"

	FieldID             = "id"
	FieldRoomID         = "room_id"
	FieldKind           = "kind"
	FieldStartDate      = "start_date"
	FieldEndDate        = "end_date"
	FieldAdjustmentType = "adjustment_type"
	FieldValue          = "value"

	CacheQuotePrefix           = "pricing:quote"
	CacheQuoteGenerationPrefix = "pricing:generation"
)

type Kind string

const (
	KindCustom  Kind = "custom"
	KindWeekend Kind = "weekend"
)

type AdjustmentType string

const (
	AdjustmentPercentage AdjustmentType = "percentage"
	AdjustmentFixed      AdjustmentType = "fixed"
)

var hundred = decimal.NewFromInt(100)

// PeakRate overrides the base price. Custom rules cover [StartDate, EndDate] inclusive,
// weekend rules cover every Saturday and Sunday.
type PeakRate struct {
	ID             string          `db:"id"`
	RoomID         string          `db:"room_id"`
	Kind           Kind            `db:"kind"`
	StartDate      *time.Time      `db:"start_date"`
	EndDate        *time.Time      `db:"end_date"`
	AdjustmentType AdjustmentType  `db:"adjustment_type"`
	Value          decimal.Decimal `db:"value"`
	model.Metadata
}

func (p PeakRate) covers(day time.Time) bool {
	if p.StartDate == nil || p.EndDate == nil {
		return false
	}

	return calendar.ContainsInclusive(*p.StartDate, *p.EndDate, day)
}

func (p PeakRate) span() int {
	return calendar.Nights(*p.StartDate, *p.EndDate)
}

// precedes orders custom rules: narrowest range, then latest start, then lowest id.
func (p PeakRate) precedes(other PeakRate) bool {
	if p.span() != other.span() {
		return p.span() < other.span()
	}

	if !calendar.Day(*p.StartDate).Equal(calendar.Day(*other.StartDate)) {
		return p.StartDate.After(*other.StartDate)
	}

	return p.ID < other.ID
}

// Apply adjusts base by this rule. Adjustments never stack.
func (p PeakRate) Apply(base decimal.Decimal) decimal.Decimal {
	switch p.AdjustmentType {
	case AdjustmentPercentage:
		return base.Add(base.Mul(p.Value).Div(hundred))
	case AdjustmentFixed:
		return base.Add(p.Value)
	default:
		return base
	}
}

// SelectRate picks the single rule that prices day, or nil when the base price applies.
func SelectRate(rates []PeakRate, day time.Time) *PeakRate {
	var custom, weekend *PeakRate

	for i := range rates {
		rate := &rates[i]

		switch rate.Kind {
		case KindCustom:
			if rate.covers(day) && (custom == nil || rate.precedes(*custom)) {
				custom = rate
			}
		case KindWeekend:
			if weekend == nil || rate.ID < weekend.ID {
				weekend = rate
			}
		}
	}

	if custom != nil {
		return custom
	}

	if weekend != nil && calendar.IsWeekend(day) {
		return weekend
	}

	return nil
}

type DayPrice struct {
	Date       time.Time
	Price      decimal.Decimal
	PeakRateID string
}

// Quote prices every night of [CheckIn, CheckOut).
type Quote struct {
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
	PerDay   []DayPrice
	Total    decimal.Decimal
}

func Price(roomID string, base decimal.Decimal, rates []PeakRate, start, end time.Time) Quote {
	days := calendar.Days(start, end)
	quote := Quote{
		RoomID:   roomID,
		CheckIn:  calendar.Day(start),
		CheckOut: calendar.Day(end),
		Nights:   len(days),
		PerDay:   make([]DayPrice, len(days)),
		Total:    decimal.Zero,
	}

	for i, day := range days {
		price := DayPrice{Date: day, Price: base}

		if rate := SelectRate(rates, day); rate != nil {
			price.Price = rate.Apply(base)
			price.PeakRateID = rate.ID
		}

		price.Price = price.Price.Round(2)
		quote.PerDay[i] = price
		quote.Total = quote.Total.Add(price.Price)
	}

	return quote
}

func QuoteCacheKey(roomID string, parts ...string) string {
	return shared.BuildCacheKey(CacheQuotePrefix, append([]string{roomID}, parts...)...)
}

func QuoteGenerationKey(roomID string) string {
	return shared.BuildCacheKey(CacheQuoteGenerationPrefix, roomID)
}
