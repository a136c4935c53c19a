package mocks

import (
	"context"

	"huddle/infras/otel"
)

// NewOtel returns a no-op Otel implementation for tests.
func NewOtel() otel.Otel {
	return &noopOtel{}
}

type noopOtel struct{}

func (n *noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, &noopScope{}
}

type noopScope struct{}

func (s *noopScope) End()                         {}
func (s *noopScope) TraceError(error)             {}
func (s *noopScope) TraceIfError(error)           {}
func (s *noopScope) AddEvent(string)              {}
func (s *noopScope) SetAttribute(string, any)     {}
func (s *noopScope) SetAttributes(map[string]any) {}
