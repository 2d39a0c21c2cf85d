package memstore

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	bookingModel "stay/internal/domains/booking/model"
	bookingRepo "stay/internal/domains/booking/repository"
	resModel "stay/internal/domains/reservation/model"
	resRepo "stay/internal/domains/reservation/repository"
	"stay/shared/calendar"
	gDto "stay/shared/dto"
)

func (s *Store) Bookings() bookingRepo.Booking {
	return bookings{s}
}

type bookings struct {
	s *Store
}

func (b bookings) InsertTx(_ context.Context, _ *sqlx.Tx, booking bookingModel.Booking) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	b.s.bookings[booking.ID] = booking

	return nil
}

func (b bookings) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (bookingModel.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	for _, booking := range b.s.bookings {
		if matches(booking, filter) {
			return booking, nil
		}
	}

	return bookingModel.Booking{}, nil
}

// GetForUpdateTx relies on the caller holding the room locks, which cover every writer of a booking.
func (b bookings) GetForUpdateTx(ctx context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (bookingModel.Booking, error) {
	return b.Get(ctx, filter, columns...)
}

func (b bookings) GetAll(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	var out []bookingModel.Booking

	for _, booking := range b.s.bookings {
		if matches(booking, filter) {
			out = append(out, booking)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	from, to := page(len(out), params)

	return out[from:to], nil
}

func (b bookings) Count(_ context.Context, filter gDto.FilterGroup) (int, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	n := 0

	for _, booking := range b.s.bookings {
		if matches(booking, filter) {
			n++
		}
	}

	return n, nil
}

func (b bookings) UpdateTx(_ context.Context, _ *sqlx.Tx, updates map[string]any, filter gDto.FilterGroup) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	for id, booking := range b.s.bookings {
		if !matches(booking, filter) {
			continue
		}

		if err := apply(&booking, updates); err != nil {
			return err
		}

		b.s.bookings[id] = booking
	}

	return nil
}

func (b bookings) OverdueIDs(_ context.Context, now time.Time, limit int) ([]string, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	var overdue []bookingModel.Booking

	for _, booking := range b.s.bookings {
		if booking.Status == bookingModel.StatusWaitingPayment && booking.PaymentDeadline != nil && booking.PaymentDeadline.Before(now) {
			overdue = append(overdue, booking)
		}
	}

	sort.Slice(overdue, func(i, j int) bool { return overdue[i].PaymentDeadline.Before(*overdue[j].PaymentDeadline) })

	ids := make([]string, 0, min(limit, len(overdue)))
	for _, booking := range overdue[:min(limit, len(overdue))] {
		ids = append(ids, booking.ID)
	}

	return ids, nil
}

func (s *Store) Lines() bookingRepo.Line {
	return lines{s}
}

type lines struct {
	s *Store
}

func (l lines) InsertBulkTx(_ context.Context, _ *sqlx.Tx, rows []bookingModel.Line) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	l.s.lines = append(l.s.lines, rows...)

	return nil
}

func (l lines) GetByBooking(_ context.Context, bookingID string) ([]bookingModel.Line, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	var out []bookingModel.Line

	for _, line := range l.s.lines {
		if line.BookingID == bookingID {
			out = append(out, line)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })

	return out, nil
}

func (s *Store) Usage() resRepo.Usage {
	return usage{s}
}

type usage struct {
	s *Store
}

func (u usage) ActiveOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]resModel.Usage, error) {
	return u.ActiveOverlappingTx(ctx, nil, roomID, start, end)
}

func (u usage) ActiveOverlappingTx(_ context.Context, _ *sqlx.Tx, roomID string, start, end time.Time) ([]resModel.Usage, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	var out []resModel.Usage

	for _, line := range u.s.lines {
		booking := u.s.bookings[line.BookingID]

		if line.RoomID != roomID {
			continue
		}

		if !slices.Contains(bookingModel.ActiveStatuses, booking.Status) {
			continue
		}

		if !calendar.Overlaps(line.CheckIn, line.CheckOut, start, end) {
			continue
		}

		out = append(out, resModel.Usage{
			BookingID: line.BookingID,
			RoomID:    line.RoomID,
			Quantity:  line.Quantity,
			CheckIn:   line.CheckIn,
			CheckOut:  line.CheckOut,
		})
	}

	return out, nil
}
