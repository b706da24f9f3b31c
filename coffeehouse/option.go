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

package coffeehouse

import (
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/coffeehouse/actor"
)

const (
	// DefaultGuestFinishCoffeeDuration is how long a guest takes to drink a coffee
	DefaultGuestFinishCoffeeDuration = 2 * time.Second
	// DefaultBaristaPrepareCoffeeDuration is how long the barista takes to prepare a coffee
	DefaultBaristaPrepareCoffeeDuration = 2 * time.Second
	// DefaultBaristaAccuracy is the percentage of orders the barista gets right
	DefaultBaristaAccuracy = 100
	// DefaultWaiterMaxComplaintCount is the number of complaints the waiter bears
	DefaultWaiterMaxComplaintCount = 2
)

// Option is the interface that applies a CoffeeHouse option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(house *CoffeeHouse)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(house *CoffeeHouse)

// Apply applies the CoffeeHouse option
func (f OptionFunc) Apply(house *CoffeeHouse) {
	f(house)
}

// WithLimitPolicy sets how the caffeine limit is enforced. PerGuestLimit is used by default.
func WithLimitPolicy(policy LimitPolicy) Option {
	return OptionFunc(func(house *CoffeeHouse) {
		house.limitPolicy = policy
	})
}

// WithGuestFinishCoffeeDuration sets how long guests take to drink a coffee
func WithGuestFinishCoffeeDuration(duration time.Duration) Option {
	return OptionFunc(func(house *CoffeeHouse) {
		house.guestFinishCoffeeDuration = duration
	})
}

// WithBaristaPrepareCoffeeDuration sets how long the barista takes to prepare a coffee
func WithBaristaPrepareCoffeeDuration(duration time.Duration) Option {
	return OptionFunc(func(house *CoffeeHouse) {
		house.baristaPrepareCoffeeDuration = duration
	})
}

// WithBaristaAccuracy sets the percentage, between 0 and 100, of orders the barista gets right
func WithBaristaAccuracy(accuracy int) Option {
	return OptionFunc(func(house *CoffeeHouse) {
		house.baristaAccuracy = min(max(accuracy, 0), 100)
	})
}

// WithWaiterMaxComplaintCount sets the number of complaints the waiter handles before getting frustrated
func WithWaiterMaxComplaintCount(count int) Option {
	return OptionFunc(func(house *CoffeeHouse) {
		house.waiterMaxComplaintCount = count
	})
}

// WithMeterProvider sets the OpenTelemetry meter provider used to record the house metrics.
// The global provider is used otherwise.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(house *CoffeeHouse) {
		house.meterProvider = provider
	})
}

// WithBarista replaces the barista behavior. The factory is called each time the house opens.
func WithBarista(factory func() actor.Actor) Option {
	return OptionFunc(func(house *CoffeeHouse) {
		house.newBarista = factory
	})
}

// WithWaiter replaces the waiter behavior. The factory is called each time the
// house opens with the reference of the barista.
func WithWaiter(factory func(barista *actor.PID) actor.Actor) Option {
	return OptionFunc(func(house *CoffeeHouse) {
		house.newWaiter = factory
	})
}
