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

package metric

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CoffeeKey is the attribute carrying the coffee name
const CoffeeKey = attribute.Key("coffee")

// CoffeeHouseMetric defines the coffee house instrumentation
type CoffeeHouseMetric struct {
	guestCount    metric.Int64UpDownCounter
	approvedCount metric.Int64Counter
	rejectedCount metric.Int64Counter
	replayCount   metric.Int64Counter
}

// NewCoffeeHouseMetric creates an instance of CoffeeHouseMetric
func NewCoffeeHouseMetric(meter metric.Meter) (*CoffeeHouseMetric, error) {
	m := new(CoffeeHouseMetric)
	var err error

	if m.guestCount, err = meter.Int64UpDownCounter(
		"coffeehouse_guest_count",
		metric.WithDescription("Number of guests currently in the coffee house"),
	); err != nil {
		return nil, fmt.Errorf("failed to create guestCount instrument, %w", err)
	}

	if m.approvedCount, err = meter.Int64Counter(
		"coffeehouse_approved_count",
		metric.WithDescription("Total number of coffee orders approved"),
	); err != nil {
		return nil, fmt.Errorf("failed to create approvedCount instrument, %w", err)
	}

	if m.rejectedCount, err = meter.Int64Counter(
		"coffeehouse_rejected_count",
		metric.WithDescription("Total number of coffee orders rejected"),
	); err != nil {
		return nil, fmt.Errorf("failed to create rejectedCount instrument, %w", err)
	}

	if m.replayCount, err = meter.Int64Counter(
		"coffeehouse_replay_count",
		metric.WithDescription("Total number of orders replayed to the barista after a waiter restart"),
	); err != nil {
		return nil, fmt.Errorf("failed to create replayCount instrument, %w", err)
	}
	return m, nil
}

// GuestArrived increments the number of guests
func (x *CoffeeHouseMetric) GuestArrived(ctx context.Context) {
	x.guestCount.Add(ctx, 1)
}

// GuestLeft decrements the number of guests
func (x *CoffeeHouseMetric) GuestLeft(ctx context.Context) {
	x.guestCount.Add(ctx, -1)
}

// Approved records an approved order
func (x *CoffeeHouseMetric) Approved(ctx context.Context, coffee string) {
	x.approvedCount.Add(ctx, 1, metric.WithAttributes(CoffeeKey.String(coffee)))
}

// Rejected records a rejected order
func (x *CoffeeHouseMetric) Rejected(ctx context.Context, coffee string) {
	x.rejectedCount.Add(ctx, 1, metric.WithAttributes(CoffeeKey.String(coffee)))
}

// Replayed records an order replayed to the barista
func (x *CoffeeHouseMetric) Replayed(ctx context.Context, coffee string) {
	x.replayCount.Add(ctx, 1, metric.WithAttributes(CoffeeKey.String(coffee)))
}
