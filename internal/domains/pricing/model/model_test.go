package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stay/internal/domains/pricing/model"
)

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)

	return t
}

func ptr(t time.Time) *time.Time {
	return &t
}

func custom(id, start, end string, adj model.AdjustmentType, value int64) model.PeakRate {
	return model.PeakRate{
		ID:             id,
		Kind:           model.KindCustom,
		StartDate:      ptr(day(start)),
		EndDate:        ptr(day(end)),
		AdjustmentType: adj,
		Value:          decimal.NewFromInt(value),
	}
}

func weekend(id string, adj model.AdjustmentType, value int64) model.PeakRate {
	return model.PeakRate{ID: id, Kind: model.KindWeekend, AdjustmentType: adj, Value: decimal.NewFromInt(value)}
}

func TestPeakRate_Apply(t *testing.T) {
	base := decimal.NewFromInt(200)

	tests := []struct {
		name string
		rate model.PeakRate
		want string
	}{
		{name: "percentage increase", rate: model.PeakRate{AdjustmentType: model.AdjustmentPercentage, Value: decimal.NewFromInt(25)}, want: "250"},
		{name: "percentage discount", rate: model.PeakRate{AdjustmentType: model.AdjustmentPercentage, Value: decimal.NewFromInt(-10)}, want: "180"},
		{name: "fixed", rate: model.PeakRate{AdjustmentType: model.AdjustmentFixed, Value: decimal.NewFromInt(35)}, want: "235"},
		{name: "unknown type", rate: model.PeakRate{AdjustmentType: "other", Value: decimal.NewFromInt(35)}, want: "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rate.Apply(base).String())
		})
	}
}

func TestSelectRate(t *testing.T) {
	// 2025-03-01 is a Saturday.
	wide := custom("b", "2025-02-20", "2025-03-10", model.AdjustmentFixed, 10)
	narrow := custom("c", "2025-03-01", "2025-03-02", model.AdjustmentFixed, 20)
	later := custom("d", "2025-03-02", "2025-03-03", model.AdjustmentFixed, 30)
	twin := custom("a", "2025-03-02", "2025-03-03", model.AdjustmentFixed, 40)
	wk := weekend("w", model.AdjustmentPercentage, 50)

	tests := []struct {
		name   string
		rates  []model.PeakRate
		day    time.Time
		wantID string
	}{
		{name: "no rules", rates: nil, day: day("2025-03-01")},
		{name: "weekend only on saturday", rates: []model.PeakRate{wk}, day: day("2025-03-01"), wantID: "w"},
		{name: "weekend ignored on weekday", rates: []model.PeakRate{wk}, day: day("2025-03-04")},
		{name: "custom beats weekend", rates: []model.PeakRate{wk, wide}, day: day("2025-03-01"), wantID: "b"},
		{name: "narrowest custom wins", rates: []model.PeakRate{wide, narrow}, day: day("2025-03-01"), wantID: "c"},
		{name: "later start wins equal span", rates: []model.PeakRate{narrow, later}, day: day("2025-03-02"), wantID: "d"},
		{name: "lower id breaks full tie", rates: []model.PeakRate{later, twin}, day: day("2025-03-02"), wantID: "a"},
		{name: "inclusive end date", rates: []model.PeakRate{narrow}, day: day("2025-03-02"), wantID: "c"},
		{name: "outside custom range", rates: []model.PeakRate{narrow}, day: day("2025-03-03")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.SelectRate(tt.rates, tt.day)
			if tt.wantID == "" {
				assert.Nil(t, got)

				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestPrice(t *testing.T) {
	base := decimal.NewFromInt(100)

	t.Run("custom adjustment wins over weekend on saturday", func(t *testing.T) {
		rates := []model.PeakRate{
			weekend("w", model.AdjustmentPercentage, 50),
			custom("c", "2025-03-01", "2025-03-01", model.AdjustmentFixed, 20),
		}

		quote := model.Price("room-1", base, rates, day("2025-02-28"), day("2025-03-03"))
		require.Len(t, quote.PerDay, 3)
		assert.Equal(t, 3, quote.Nights)
		assert.Equal(t, "100", quote.PerDay[0].Price.String())
		assert.Equal(t, "120", quote.PerDay[1].Price.String())
		assert.Equal(t, "c", quote.PerDay[1].PeakRateID)
		assert.Equal(t, "150", quote.PerDay[2].Price.String())
		assert.Equal(t, "370", quote.Total.String())
	})

	t.Run("check-out day is not priced", func(t *testing.T) {
		quote := model.Price("room-1", base, nil, day("2025-03-03"), day("2025-03-04"))
		assert.Equal(t, 1, quote.Nights)
		assert.Equal(t, "100", quote.Total.String())
	})
}
