package health

import (
	"context"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Status is the result of one checker.
type Status struct {
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) ([]Status, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

// Ready runs every checker and reports each one; the error names the first failure.
func (s *service) Ready(ctx context.Context) ([]Status, error) {
	out := make([]Status, 0, len(s.checkers))
	var first error
	for _, ch := range s.checkers {
		st := Status{Name: ch.Name(), Ready: true}
		if err := ch.Check(ctx); err != nil {
			st.Ready = false
			st.Error = err.Error()
			if first == nil {
				first = fmt.Errorf("%s: %w", ch.Name(), err)
			}
		}
		out = append(out, st)
	}
	return out, first
}
