// Package fallback runs ordered strategy chains where each strategy reports
// whether it applied, did not apply, or failed hard.
package fallback

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Outcome is the typed result of a single strategy.
type Outcome int

const (
	// Applied means the strategy produced the value; the chain stops.
	Applied Outcome = iota
	// NotApplicable means the strategy could not serve; the next one is tried.
	NotApplicable
	// Failed is a hard failure; the chain stops and returns the error.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case NotApplicable:
		return "not-applicable"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// ErrExhausted is returned when every strategy reported NotApplicable.
var ErrExhausted = errors.New("no strategy applied")

// Step is one named strategy.
type Step[T any] struct {
	Name string
	Try  func() (T, Outcome, error)
}

// Chain is an ordered list of strategies.
type Chain[T any] struct {
	steps []Step[T]
}

func New[T any](steps ...Step[T]) *Chain[T] {
	return &Chain[T]{steps: steps}
}

// Then appends a step and returns the chain.
func (c *Chain[T]) Then(name string, try func() (T, Outcome, error)) *Chain[T] {
	c.steps = append(c.steps, Step[T]{Name: name, Try: try})
	return c
}

// Run tries each step in order and returns the first applied value along with
// the name of the step that produced it.
func (c *Chain[T]) Run() (T, string, error) {
	var zero T
	var skipped []error

	for _, step := range c.steps {
		v, outcome, err := step.Try()
		switch outcome {
		case Applied:
			return v, step.Name, nil
		case Failed:
			if err == nil {
				err = errors.New("failed")
			}
			return zero, step.Name, fmt.Errorf("%s: %w", step.Name, err)
		default:
			entry := logrus.WithField("step", step.Name)
			if err != nil {
				entry = entry.WithError(err)
				skipped = append(skipped, fmt.Errorf("%s: %w", step.Name, err))
			}
			entry.Debugln("fallback step not applicable")
		}
	}

	return zero, "", errors.Join(append([]error{ErrExhausted}, skipped...)...)
}

// Value adapts a plain (T, error) call into a step that is NotApplicable on
// error.
func Value[T any](fn func() (T, error)) func() (T, Outcome, error) {
	return func() (T, Outcome, error) {
		v, err := fn()
		if err != nil {
			return v, NotApplicable, err
		}
		return v, Applied, nil
	}
}

// Const is a step that always applies with v.
func Const[T any](v T) func() (T, Outcome, error) {
	return func() (T, Outcome, error) {
		return v, Applied, nil
	}
}
