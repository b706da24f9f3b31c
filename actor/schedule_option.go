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

package actor

import (
	"github.com/google/uuid"
)

// ScheduleOption is the interface that applies to a scheduled message
type ScheduleOption interface {
	// Apply sets the Option value of a config.
	Apply(config *scheduleConfig)
}

var _ ScheduleOption = scheduleOption(nil)

type scheduleOption func(config *scheduleConfig)

// Apply sets the Option value of a config.
func (f scheduleOption) Apply(c *scheduleConfig) {
	f(c)
}

type scheduleConfig struct {
	sender    *PID
	reference string
}

func newScheduleConfig(opts ...ScheduleOption) *scheduleConfig {
	config := &scheduleConfig{
		reference: uuid.NewString(),
	}
	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// Sender returns the configured sender
func (s *scheduleConfig) Sender() *PID {
	return s.sender
}

// Reference returns the reference used to cancel the scheduled message
func (s *scheduleConfig) Reference() string {
	return s.reference
}

// WithSender sets the sender of the scheduled message
func WithSender(sender *PID) ScheduleOption {
	return scheduleOption(func(config *scheduleConfig) {
		config.sender = sender
	})
}

// WithReference sets the reference of the scheduled message. It is the
// handle to pass to CancelSchedule. A random UUID is used otherwise.
func WithReference(reference string) ScheduleOption {
	return scheduleOption(func(config *scheduleConfig) {
		config.reference = reference
	})
}
