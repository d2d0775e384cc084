package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/lightspace/internal/storefront/domain"
)

var tracer = otel.Tracer("session-repository")

// TracingSessionRepository wraps a SessionRepository with spans
type TracingSessionRepository struct {
	next domain.SessionRepository
}

// NewTracingSessionRepository creates a new repository with tracing
func NewTracingSessionRepository(next domain.SessionRepository) *TracingSessionRepository {
	return &TracingSessionRepository{next: next}
}

// Create with tracing
func (r *TracingSessionRepository) Create(ctx context.Context, s *domain.Session) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(attribute.String("session.id", s.ID)),
	)
	defer span.End()

	if err := r.next.Create(ctx, s); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// Get with tracing
func (r *TracingSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	ctx, span := tracer.Start(ctx, "repository.Get",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	s, err := r.next.Get(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("session.view", string(s.Navigation.View)),
		attribute.Int("session.cart_count", s.Cart.Count()),
	)
	return s, nil
}

// Update with tracing
func (r *TracingSessionRepository) Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	s, err := r.next.Update(ctx, id, fn)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("session.view", string(s.Navigation.View)),
		attribute.Int("session.cart_count", s.Cart.Count()),
	)
	return s, nil
}

// Delete with tracing
func (r *TracingSessionRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	if err := r.next.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// Count with tracing
func (r *TracingSessionRepository) Count(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	defer span.End()

	n, err := r.next.Count(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int("result.count", n))
	return n, nil
}

// Ping with tracing
func (r *TracingSessionRepository) Ping(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "repository.Ping")
	defer span.End()

	if err := r.next.Ping(ctx); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
