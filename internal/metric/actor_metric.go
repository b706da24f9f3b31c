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
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ActorPathKey is the attribute carrying the actor path
const ActorPathKey = attribute.Key("actor.path")

// ActorMetric defines the actor runtime instrumentation
type ActorMetric struct {
	// Specifies the total number of messages processed
	processedCount metric.Int64Counter
	// Specifies the total number of failures reported to supervisors
	failureCount metric.Int64Counter
	// Specifies the total number of restarts
	restartCount metric.Int64Counter
	// Specifies the total number of dead letters
	deadletterCount metric.Int64Counter
	// Specifies the message processing latency in milliseconds
	receivedDuration metric.Int64Histogram
}

// NewActorMetric creates an instance of ActorMetric
func NewActorMetric(meter metric.Meter) (*ActorMetric, error) {
	actorMetric := new(ActorMetric)
	var err error

	if actorMetric.processedCount, err = meter.Int64Counter(
		"actor_processed_count",
		metric.WithDescription("Total number of messages processed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processedCount instrument, %w", err)
	}

	if actorMetric.failureCount, err = meter.Int64Counter(
		"actor_failure_count",
		metric.WithDescription("Total number of failures reported to a supervisor"),
	); err != nil {
		return nil, fmt.Errorf("failed to create failureCount instrument, %w", err)
	}

	if actorMetric.restartCount, err = meter.Int64Counter(
		"actor_restart_count",
		metric.WithDescription("Total number of restart"),
	); err != nil {
		return nil, fmt.Errorf("failed to create restartCount instrument, %w", err)
	}

	if actorMetric.deadletterCount, err = meter.Int64Counter(
		"actor_deadletter_count",
		metric.WithDescription("Total number of messages that could not be delivered"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deadletterCount instrument, %w", err)
	}

	if actorMetric.receivedDuration, err = meter.Int64Histogram(
		"actor_received_duration",
		metric.WithDescription("The latency of the messages processed in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create receivedDuration instrument, %w", err)
	}

	return actorMetric, nil
}

// RecordProcessed records a processed message and its latency
func (x *ActorMetric) RecordProcessed(ctx context.Context, path string, latency time.Duration) {
	attrs := metric.WithAttributes(ActorPathKey.String(path))
	x.processedCount.Add(ctx, 1, attrs)
	x.receivedDuration.Record(ctx, latency.Milliseconds(), attrs)
}

// RecordFailure records a failure reported by the given actor
func (x *ActorMetric) RecordFailure(ctx context.Context, path string) {
	x.failureCount.Add(ctx, 1, metric.WithAttributes(ActorPathKey.String(path)))
}

// RecordRestart records a restart of the given actor
func (x *ActorMetric) RecordRestart(ctx context.Context, path string) {
	x.restartCount.Add(ctx, 1, metric.WithAttributes(ActorPathKey.String(path)))
}

// RecordDeadletter records a message that could not reach the given actor
func (x *ActorMetric) RecordDeadletter(ctx context.Context, path string) {
	x.deadletterCount.Add(ctx, 1, metric.WithAttributes(ActorPathKey.String(path)))
}
