package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	availModel "stay/internal/domains/availability/model"
	availRepo "stay/internal/domains/availability/repository"
	pricingModel "stay/internal/domains/pricing/model"
	pricingRepo "stay/internal/domains/pricing/repository"
	roomModel "stay/internal/domains/room/model"
	roomRepo "stay/internal/domains/room/repository"
	"stay/shared/calendar"
	gDto "stay/shared/dto"
)

func (s *Store) Rooms() roomRepo.Room {
	return rooms{s}
}

type rooms struct {
	s *Store
}

func (r rooms) InsertTx(_ context.Context, _ *sqlx.Tx, room roomModel.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.rooms[room.ID] = room

	return nil
}

func (r rooms) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (roomModel.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, room := range r.s.rooms {
		if matches(room, filter) {
			return room, nil
		}
	}

	return roomModel.Room{}, nil
}

func (r rooms) GetTx(ctx context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (roomModel.Room, error) {
	return r.Get(ctx, filter, columns...)
}

func (r rooms) GetAll(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]roomModel.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []roomModel.Room

	for _, room := range r.s.rooms {
		if matches(room, filter) {
			out = append(out, room)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	from, to := page(len(out), params)

	return out[from:to], nil
}

func (r rooms) Update(_ context.Context, updates map[string]any, filter gDto.FilterGroup) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, room := range r.s.rooms {
		if !matches(room, filter) {
			continue
		}

		if err := apply(&room, updates); err != nil {
			return err
		}

		r.s.rooms[id] = room
	}

	return nil
}

func (s *Store) Availability() availRepo.Availability {
	return availability{s}
}

type availability struct {
	s *Store
}

func (a availability) GetRange(_ context.Context, roomID string, start, end time.Time) ([]availModel.AvailabilityDay, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	var out []availModel.AvailabilityDay

	for _, day := range calendar.Days(start, end) {
		if row, ok := a.s.days[roomID][day]; ok {
			out = append(out, row)
		}
	}

	return out, nil
}

func (a availability) GetRangeTx(ctx context.Context, _ *sqlx.Tx, roomID string, start, end time.Time) ([]availModel.AvailabilityDay, error) {
	return a.GetRange(ctx, roomID, start, end)
}

func (a availability) UpsertTx(_ context.Context, _ *sqlx.Tx, days []availModel.AvailabilityDay) error {
	a.write(days, true)

	return nil
}

func (a availability) InsertMissingTx(_ context.Context, _ *sqlx.Tx, days []availModel.AvailabilityDay) error {
	a.write(days, false)

	return nil
}

func (a availability) write(days []availModel.AvailabilityDay, overwrite bool) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	for _, row := range days {
		byDay, ok := a.s.days[row.RoomID]
		if !ok {
			byDay = make(map[time.Time]availModel.AvailabilityDay)
			a.s.days[row.RoomID] = byDay
		}

		day := calendar.Day(row.Date)
		if _, exists := byDay[day]; exists && !overwrite {
			continue
		}

		row.Date = day
		byDay[day] = row
	}
}

func (s *Store) PeakRates() pricingRepo.PeakRate {
	return peakRates{s}
}

type peakRates struct {
	s *Store
}

func (p peakRates) GetByRoom(_ context.Context, roomID string) ([]pricingModel.PeakRate, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	out := make([]pricingModel.PeakRate, len(p.s.rates[roomID]))
	copy(out, p.s.rates[roomID])

	return out, nil
}

func (p peakRates) GetByRoomTx(ctx context.Context, _ *sqlx.Tx, roomID string) ([]pricingModel.PeakRate, error) {
	return p.GetByRoom(ctx, roomID)
}

func (p peakRates) ReplaceTx(_ context.Context, _ *sqlx.Tx, roomID string, rates []pricingModel.PeakRate) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	stored := make([]pricingModel.PeakRate, len(rates))
	copy(stored, rates)
	sort.SliceStable(stored, func(i, j int) bool { return stored[i].ID < stored[j].ID })

	p.s.rates[roomID] = stored

	return nil
}
