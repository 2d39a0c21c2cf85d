package mocks

import (
	"context"
	"sync"

	"stay/infras/otel"
)

// Otel is an in-memory otel.Otel. Every scope it opens is kept for inspection.
type Otel struct {
	mu    sync.Mutex
	spans []*Span
}

func (o *Otel) NewScope(ctx context.Context, _, name string) (context.Context, otel.Scope) {
	o.mu.Lock()
	defer o.mu.Unlock()

	span := &Span{Name: name, Attributes: map[string]any{}}
	o.spans = append(o.spans, span)

	return ctx, &scopeImpl{mu: &o.mu, span: span}
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

// Span returns the first recorded span with the given name.
func (o *Otel) Span(name string) (Span, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, span := range o.spans {
		if span.Name == name {
			return *span, true
		}
	}

	return Span{}, false
}

func NewOtel() otel.Otel {
	return NewRecorder()
}

// NewRecorder is NewOtel with the concrete type, for tests that read spans back.
func NewRecorder() *Otel {
	return &Otel{}
}
