package dto

import (
	"stay/internal/domains/pricing/model"
	"stay/shared/calendar"
	"stay/shared/failure"
	gModel "stay/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PeakRateRequest struct {
	Kind           string          `json:"kind"            validate:"required,oneof=custom weekend"`
	StartDate      string          `json:"start_date"      validate:"omitempty,day"`
	EndDate        string          `json:"end_date"        validate:"omitempty,day"`
	AdjustmentType string          `json:"adjustment_type" validate:"required,oneof=percentage fixed"`
	Value          decimal.Decimal `json:"value"`
}

// ToModel converts the request. Custom rules need an inclusive range with start on or before end.
func (r *PeakRateRequest) ToModel(roomID, user string, now time.Time) (model.PeakRate, error) {
	rate := model.PeakRate{
		ID:             uuid.NewString(),
		RoomID:         roomID,
		Kind:           model.Kind(r.Kind),
		AdjustmentType: model.AdjustmentType(r.AdjustmentType),
		Value:          r.Value,
		Metadata:       gModel.NewMetadata(user, now),
	}

	if rate.Kind != model.KindCustom {
		return rate, nil
	}

	if r.StartDate == "" || r.EndDate == "" {
		return rate, failure.InvalidRange("custom peak rate needs start_date and end_date") //nolint:wrapcheck
	}

	start, err := calendar.ParseDay(r.StartDate)
	if err != nil {
		return rate, err //nolint:wrapcheck
	}

	end, err := calendar.ParseDay(r.EndDate)
	if err != nil {
		return rate, err //nolint:wrapcheck
	}

	if end.Before(start) {
		return rate, failure.InvalidRange("peak rate end_date must not be before start_date") //nolint:wrapcheck
	}

	rate.StartDate = &start
	rate.EndDate = &end

	return rate, nil
}

type ReplacePeakRatesRequest struct {
	PeakRates []PeakRateRequest `json:"peak_rates" validate:"omitempty,dive"`
}

func ToModels(roomID, user string, now time.Time, reqs []PeakRateRequest) ([]model.PeakRate, error) {
	rates := make([]model.PeakRate, 0, len(reqs))

	for i := range reqs {
		rate, err := reqs[i].ToModel(roomID, user, now)
		if err != nil {
			return nil, err
		}

		rates = append(rates, rate)
	}

	return rates, nil
}

type PeakRateResponse struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	StartDate      string          `json:"start_date,omitempty"`
	EndDate        string          `json:"end_date,omitempty"`
	AdjustmentType string          `json:"adjustment_type"`
	Value          decimal.Decimal `json:"value"`
}

func (r *PeakRateResponse) FromModel(rate model.PeakRate) {
	r.ID = rate.ID
	r.Kind = string(rate.Kind)
	r.AdjustmentType = string(rate.AdjustmentType)
	r.Value = rate.Value

	if rate.StartDate != nil {
		r.StartDate = calendar.Format(*rate.StartDate)
	}

	if rate.EndDate != nil {
		r.EndDate = calendar.Format(*rate.EndDate)
	}
}

type DayPriceResponse struct {
	Date       string          `json:"date"`
	Price      decimal.Decimal `json:"price"`
	PeakRateID string          `json:"peak_rate_id,omitempty"`
}

type QuoteResponse struct {
	RoomID   string             `json:"room_id"`
	CheckIn  string             `json:"check_in"`
	CheckOut string             `json:"check_out"`
	Nights   int                `json:"nights"`
	PerDay   []DayPriceResponse `json:"per_day"`
	Total    decimal.Decimal    `json:"total"`
}

func (r *QuoteResponse) FromModel(quote model.Quote) {
	r.RoomID = quote.RoomID
	r.CheckIn = calendar.Format(quote.CheckIn)
	r.CheckOut = calendar.Format(quote.CheckOut)
	r.Nights = quote.Nights
	r.Total = quote.Total
	r.PerDay = make([]DayPriceResponse, len(quote.PerDay))

	for i, day := range quote.PerDay {
		r.PerDay[i] = DayPriceResponse{
			Date:       calendar.Format(day.Date),
			Price:      day.Price,
			PeakRateID: day.PeakRateID,
		}
	}
}
