// Package memstore keeps every repository of the engine in process memory.
//
// It backs scenario and concurrency tests with the same contracts the postgres
// repositories satisfy. Room locks are real mutexes so check-and-commit is
// serialized exactly like the advisory locks. Writes are not rolled back when a
// transaction function fails; callers must fail before they write.
package memstore

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"stay/infras/postgres"
	availModel "stay/internal/domains/availability/model"
	bookingModel "stay/internal/domains/booking/model"
	pricingModel "stay/internal/domains/pricing/model"
	roomModel "stay/internal/domains/room/model"
	schedulerModel "stay/internal/domains/scheduler/model"
	gDto "stay/shared/dto"
)

type Store struct {
	mu       sync.Mutex
	rooms    map[string]roomModel.Room
	days     map[string]map[time.Time]availModel.AvailabilityDay
	rates    map[string][]pricingModel.PeakRate
	bookings map[string]bookingModel.Booking
	lines    []bookingModel.Line
	jobs     map[string]schedulerModel.Job
	jobOrder []string
	jobKeys  map[string]string

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func New() *Store {
	return &Store{
		rooms:    make(map[string]roomModel.Room),
		days:     make(map[string]map[time.Time]availModel.AvailabilityDay),
		rates:    make(map[string][]pricingModel.PeakRate),
		bookings: make(map[string]bookingModel.Booking),
		jobs:     make(map[string]schedulerModel.Job),
		jobKeys:  make(map[string]string),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Transactor serializes WithinRooms per room. WithinTx takes no lock.
func (s *Store) Transactor() postgres.Transactor {
	return transactor{s}
}

type transactor struct {
	s *Store
}

func (t transactor) WithinTx(ctx context.Context, fn postgres.TxFunc) error {
	return fn(ctx, nil)
}

func (t transactor) WithinRooms(ctx context.Context, roomIDs []string, fn postgres.TxFunc) error {
	for _, id := range postgres.LockOrder(roomIDs) {
		lock := t.s.roomLock(id)
		lock.Lock()

		defer lock.Unlock()
	}

	return fn(ctx, nil)
}

func (s *Store) roomLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}

	return lock
}

// column finds the field tagged db:"name" in v, looking through embedded structs.
func column(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Tag.Get("db") == name {
			return v.Field(i), true
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if found, ok := column(v.Field(i), name); ok {
				return found, true
			}
		}
	}

	return reflect.Value{}, false
}

// apply writes updates onto the struct pointed to by ptr, as an UPDATE ... SET would.
func apply(ptr any, updates map[string]any) error {
	v := reflect.ValueOf(ptr).Elem()

	for name, value := range updates {
		field, ok := column(v, name)
		if !ok {
			return fmt.Errorf("memstore: unknown column %q", name)
		}

		if value == nil {
			field.Set(reflect.Zero(field.Type()))

			continue
		}

		val := reflect.ValueOf(value)

		switch {
		case field.Kind() == reflect.Pointer && val.Type().ConvertibleTo(field.Type().Elem()):
			p := reflect.New(field.Type().Elem())
			p.Elem().Set(val.Convert(field.Type().Elem()))
			field.Set(p)
		case val.Type().ConvertibleTo(field.Type()):
			field.Set(val.Convert(field.Type()))
		default:
			return fmt.Errorf("memstore: cannot assign %T to column %q", value, name)
		}
	}

	return nil
}

// matches evaluates the equality subset of filter groups against a row.
func matches(row any, group gDto.FilterGroup) bool {
	if len(group.Filters) == 0 {
		return true
	}

	or := group.Operator == gDto.FilterGroupOperatorOr

	for _, f := range group.Filters {
		var ok bool

		switch f := f.(type) {
		case gDto.Filter:
			ok = matchFilter(row, f)
		case gDto.FilterGroup:
			ok = matches(row, f)
		}

		if ok && or {
			return true
		}

		if !ok && !or {
			return false
		}
	}

	return !or
}

func matchFilter(row any, f gDto.Filter) bool {
	field, ok := column(reflect.ValueOf(row), f.Field)
	if !ok {
		panic(fmt.Sprintf("memstore: unknown column %q", f.Field))
	}

	actual := fmt.Sprint(deref(field))

	switch f.Operator {
	case gDto.FilterOperatorEq:
		return actual == fmt.Sprint(f.Value)
	case gDto.FilterOperatorNotEq:
		return actual != fmt.Sprint(f.Value)
	case gDto.FilterOperatorIn:
		values := reflect.ValueOf(f.Value)
		for i := range values.Len() {
			if actual == fmt.Sprint(values.Index(i).Interface()) {
				return true
			}
		}

		return false
	default:
		panic(fmt.Sprintf("memstore: operator %q is not supported", f.Operator))
	}
}

func deref(v reflect.Value) any {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}

		return v.Elem().Interface()
	}

	return v.Interface()
}

// page applies QueryParams pagination to n rows and returns the bounds.
func page(n int, params gDto.QueryParams) (int, int) {
	if params.Limit <= 0 {
		return 0, n
	}

	start := max(0, (params.Page-1)*params.Limit)
	if start > n {
		return n, n
	}

	return start, min(n, start+params.Limit)
}
