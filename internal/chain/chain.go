// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package chain

import (
	"context"

	"go.uber.org/multierr"
)

// Chain runs a sequence of steps and reports their errors.
// Steps are recorded when added and executed on Run, in order.
type Chain struct {
	failFast bool
	ctx      context.Context
	steps    []func(ctx context.Context) error
}

// Option configures a Chain
type Option func(*Chain)

// New creates a Chain. By default every step runs and the errors are combined.
func New(opts ...Option) *Chain {
	chain := &Chain{
		ctx:   context.Background(),
		steps: make([]func(ctx context.Context) error, 0),
	}

	for _, opt := range opts {
		opt(chain)
	}
	return chain
}

// AddStep adds a step that does not need the context
func (c *Chain) AddStep(fn func() error) *Chain {
	return c.AddContextStep(func(context.Context) error { return fn() })
}

// AddContextStep adds a step that receives the chain context
func (c *Chain) AddContextStep(fn func(ctx context.Context) error) *Chain {
	if fn != nil {
		c.steps = append(c.steps, fn)
	}
	return c
}

// AddContextStepIf adds the step only when the condition holds
func (c *Chain) AddContextStepIf(condition bool, fn func(ctx context.Context) error) *Chain {
	if condition {
		return c.AddContextStep(fn)
	}
	return c
}

// Run executes the steps. With WithFailFast it stops at the first error,
// otherwise all the steps run and their errors are combined.
func (c *Chain) Run() error {
	var err error
	for _, step := range c.steps {
		if stepErr := step(c.ctx); stepErr != nil {
			if c.failFast {
				return stepErr
			}
			err = multierr.Append(err, stepErr)
		}
	}
	return err
}

// WithFailFast stops the chain at the first failing step
func WithFailFast() Option {
	return func(c *Chain) { c.failFast = true }
}

// WithRunAll runs every step whatever their outcome
func WithRunAll() Option {
	return func(c *Chain) { c.failFast = false }
}

// WithContext sets the context handed to the steps
func WithContext(ctx context.Context) Option {
	return func(c *Chain) { c.ctx = ctx }
}
