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

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/tochemey/coffeehouse/coffeehouse"
	"github.com/tochemey/coffeehouse/internal/validation"
	"github.com/tochemey/coffeehouse/log"
)

var (
	ErrInvalidCaffeineLimit = errors.New("caffeine limit must be positive")
	ErrInvalidLimitPolicy   = errors.New("limit policy must be per-guest or shared")
	ErrInvalidDuration      = errors.New("duration must be positive")
	ErrInvalidAccuracy      = errors.New("barista accuracy must be between 0 and 100")
	ErrInvalidComplaints    = errors.New("waiter max complaint count must not be negative")
	ErrInvalidLogLevel      = errors.New("invalid log level")
)

// Config represents the coffee house configuration.
// It is read from the environment.
type Config struct {
	// Specifies the number of coffees a guest can be served, or "unlimited"
	CaffeineLimit coffeehouse.Limit `env:"COFFEE_HOUSE_CAFFEINE_LIMIT" envDefault:"1000"`
	// Specifies whether the caffeine limit applies to each guest or to all of them. The default is per-guest
	LimitPolicy coffeehouse.LimitPolicy `env:"COFFEE_HOUSE_LIMIT_POLICY" envDefault:"per-guest"`
	// Specifies how long guests take to drink a coffee
	GuestFinishCoffeeDuration time.Duration `env:"COFFEE_HOUSE_GUEST_FINISH_COFFEE_DURATION" envDefault:"2s"`
	// Specifies how long the barista takes to prepare a coffee
	BaristaPrepareCoffeeDuration time.Duration `env:"COFFEE_HOUSE_BARISTA_PREPARE_COFFEE_DURATION" envDefault:"2s"`
	// Specifies the percentage of orders the barista gets right
	BaristaAccuracy int `env:"COFFEE_HOUSE_BARISTA_ACCURACY" envDefault:"100"`
	// Specifies the number of complaints the waiter handles before getting frustrated
	WaiterMaxComplaintCount int `env:"COFFEE_HOUSE_WAITER_MAX_COMPLAINT_COUNT" envDefault:"2"`
	// Specifies the log level
	LogLevel log.Level `env:"COFFEE_HOUSE_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the process environment
func Load() (*Config, error) {
	return LoadWithOptions(env.Options{})
}

// LoadWithOptions reads the configuration with the given parsing options.
// Tests use it to provide the environment.
func LoadWithOptions(opts env.Options) (*Config, error) {
	config := new(Config)
	if err := env.ParseWithOptions(config, opts); err != nil {
		return nil, fmt.Errorf("failed to read the configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration values and reports all the violations
func (c *Config) Validate() error {
	return validation.New(validation.AllErrors()).
		AddAssertion(c.CaffeineLimit > 0, ErrInvalidCaffeineLimit).
		AddAssertion(c.LimitPolicy == coffeehouse.PerGuestLimit || c.LimitPolicy == coffeehouse.SharedLimit, ErrInvalidLimitPolicy).
		AddAssertion(c.GuestFinishCoffeeDuration > 0, fmt.Errorf("guest finish coffee duration: %w", ErrInvalidDuration)).
		AddAssertion(c.BaristaPrepareCoffeeDuration > 0, fmt.Errorf("barista prepare coffee duration: %w", ErrInvalidDuration)).
		AddAssertion(c.BaristaAccuracy >= 0 && c.BaristaAccuracy <= 100, ErrInvalidAccuracy).
		AddAssertion(c.WaiterMaxComplaintCount >= 0, ErrInvalidComplaints).
		AddAssertion(c.LogLevel >= log.InfoLevel && c.LogLevel < log.InvalidLevel, ErrInvalidLogLevel).
		Validate()
}

// CoffeeHouseOptions returns the CoffeeHouse options matching the configuration
func (c *Config) CoffeeHouseOptions() []coffeehouse.Option {
	return []coffeehouse.Option{
		coffeehouse.WithLimitPolicy(c.LimitPolicy),
		coffeehouse.WithGuestFinishCoffeeDuration(c.GuestFinishCoffeeDuration),
		coffeehouse.WithBaristaPrepareCoffeeDuration(c.BaristaPrepareCoffeeDuration),
		coffeehouse.WithBaristaAccuracy(c.BaristaAccuracy),
		coffeehouse.WithWaiterMaxComplaintCount(c.WaiterMaxComplaintCount),
	}
}
