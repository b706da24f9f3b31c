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
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/coffeehouse/errors"
	"github.com/tochemey/coffeehouse/internal/chain"
	"github.com/tochemey/coffeehouse/internal/eventstream"
	"github.com/tochemey/coffeehouse/internal/metric"
	"github.com/tochemey/coffeehouse/internal/validation"
	"github.com/tochemey/coffeehouse/log"
	"github.com/tochemey/coffeehouse/supervisor"
)

var systemNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_]*$`)

// ActorSystem defines the contract of an actor system
//
//nolint:revive
type ActorSystem interface {
	// Name returns the actor system name
	Name() string
	// Start starts the actor system and its user guardian.
	// A stopped actor system cannot be started again.
	Start(ctx context.Context) error
	// Stop stops the actors top-down, the scheduler and the events stream.
	// Calling Stop more than once is safe.
	Stop(ctx context.Context) error
	// Running returns true when the actor system is running
	Running() bool
	// Spawn creates a top-level actor under the user guardian
	Spawn(ctx context.Context, name string, actor Actor, opts ...SpawnOption) (*PID, error)
	// ActorOf returns the running actor at the given path
	ActorOf(path string) (*PID, error)
	// Actors returns the running actors
	Actors() []*PID
	// ScheduleOnce delivers the message to the actor once, after the given delay
	ScheduleOnce(ctx context.Context, message any, pid *PID, delay time.Duration, opts ...ScheduleOption) error
	// CancelSchedule cancels a scheduled message given its reference
	CancelSchedule(reference string) error
	// Subscribe creates a subscriber to the lifecycle events and the dead letters
	Subscribe() (eventstream.Subscriber, error)
	// Unsubscribe removes the subscriber
	Unsubscribe(subscriber eventstream.Subscriber) error
	// Logger returns the actor system logger
	Logger() log.Logger
	// Terminated is closed once the actor system has stopped,
	// either on Stop or when the user guardian fails.
	Terminated() <-chan struct{}
}

// actorSystem defines the actor system
type actorSystem struct {
	name   string
	logger log.Logger

	actorInitMaxRetries int
	actorInitTimeout    time.Duration
	shutdownTimeout     time.Duration
	defaultSupervisor   *supervisor.Supervisor
	meterProvider       otelmetric.MeterProvider

	guardian     *PID
	registry     *pidMap
	scheduler    *scheduler
	eventsStream eventstream.Stream
	actorMetric  *metric.ActorMetric

	started    *atomic.Bool
	stopped    *atomic.Bool
	terminated chan struct{}
	stopOnce   sync.Once
}

var _ ActorSystem = (*actorSystem)(nil)

// NewActorSystem creates an instance of ActorSystem
func NewActorSystem(name string, opts ...Option) (ActorSystem, error) {
	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewPatternValidator(systemNamePattern, name, gerrors.ErrInvalidActorSystemName)).
		Validate(); err != nil {
		return nil, err
	}

	system := &actorSystem{
		name:                name,
		logger:              log.DefaultLogger,
		actorInitMaxRetries: DefaultInitMaxRetries,
		actorInitTimeout:    DefaultInitTimeout,
		shutdownTimeout:     DefaultShutdownTimeout,
		defaultSupervisor:   supervisor.NewSupervisor(),
		registry:            newPIDMap(),
		eventsStream:        eventstream.New(),
		started:             atomic.NewBool(false),
		stopped:             atomic.NewBool(false),
		terminated:          make(chan struct{}),
	}

	// apply the various options
	for _, opt := range opts {
		opt.Apply(system)
	}

	actorMetric, err := metric.NewActorMetric(metric.NewProvider(system.meterProvider).Meter())
	if err != nil {
		return nil, fmt.Errorf("failed to create the actor metrics: %w", err)
	}

	system.actorMetric = actorMetric
	system.scheduler = newScheduler(system.logger, system.shutdownTimeout)
	return system, nil
}

// Name returns the actor system name
func (x *actorSystem) Name() string {
	return x.name
}

// Logger returns the actor system logger
func (x *actorSystem) Logger() log.Logger {
	return x.logger
}

// Running returns true when the actor system is running
func (x *actorSystem) Running() bool {
	return x.started.Load() && !x.stopped.Load()
}

// Terminated is closed once the actor system has stopped
func (x *actorSystem) Terminated() <-chan struct{} {
	return x.terminated
}

// Start starts the actor system
func (x *actorSystem) Start(ctx context.Context) error {
	if x.stopped.Load() {
		return gerrors.ErrActorSystemNotStarted
	}

	if !x.started.CompareAndSwap(false, true) {
		return gerrors.ErrActorSystemAlreadyStarted
	}

	guardian := newPID(userGuardian, newRootPath(x.name), new(guardianActor), x, nil, newSpawnConfig())
	if err := guardian.init(ctx); err != nil {
		x.started.Store(false)
		return err
	}

	x.guardian = guardian
	x.scheduler.Start(ctx)
	x.logger.Infof("%s actor system started", x.name)
	return nil
}

// Stop stops the actor system
func (x *actorSystem) Stop(ctx context.Context) error {
	if !x.started.Load() {
		return gerrors.ErrActorSystemNotStarted
	}

	var err error
	x.stopOnce.Do(func() {
		x.stopped.Store(true)
		x.logger.Infof("%s actor system is shutting down...", x.name)

		ctx, cancel := context.WithTimeout(ctx, x.shutdownTimeout)
		defer cancel()

		err = chain.New(chain.WithRunAll(), chain.WithContext(ctx)).
			AddContextStep(x.guardian.Shutdown).
			AddContextStep(func(ctx context.Context) error {
				x.scheduler.Stop(ctx)
				return nil
			}).
			AddStep(func() error {
				x.eventsStream.Close()
				return nil
			}).
			AddStep(x.logger.Flush).
			Run()

		close(x.terminated)
		x.logger.Infof("%s actor system shutdown", x.name)
	})
	return err
}

// Spawn creates a top-level actor
func (x *actorSystem) Spawn(ctx context.Context, name string, actor Actor, opts ...SpawnOption) (*PID, error) {
	if !x.Running() {
		return nil, gerrors.ErrActorSystemNotStarted
	}
	return x.guardian.SpawnChild(ctx, name, actor, opts...)
}

// ActorOf returns the running actor at the given path
func (x *actorSystem) ActorOf(path string) (*PID, error) {
	if !x.Running() {
		return nil, gerrors.ErrActorSystemNotStarted
	}

	pid, ok := x.registry.get(path)
	if !ok || !pid.IsRunning() {
		return nil, gerrors.NewErrActorNotFound(path)
	}
	return pid, nil
}

// Actors returns the running actors
func (x *actorSystem) Actors() []*PID {
	pids := x.registry.pids()
	actors := make([]*PID, 0, len(pids))
	for _, pid := range pids {
		if pid.IsRunning() {
			actors = append(actors, pid)
		}
	}
	return actors
}

// ScheduleOnce delivers the message to the actor once, after the given delay
func (x *actorSystem) ScheduleOnce(_ context.Context, message any, pid *PID, delay time.Duration, opts ...ScheduleOption) error {
	if !x.Running() {
		return gerrors.ErrActorSystemNotStarted
	}
	return x.scheduler.ScheduleOnce(message, pid, delay, opts...)
}

// CancelSchedule cancels a scheduled message
func (x *actorSystem) CancelSchedule(reference string) error {
	if !x.Running() {
		return gerrors.ErrActorSystemNotStarted
	}
	return x.scheduler.Cancel(reference)
}

// Subscribe creates a subscriber to the lifecycle events and the dead letters
func (x *actorSystem) Subscribe() (eventstream.Subscriber, error) {
	if !x.Running() {
		return nil, gerrors.ErrActorSystemNotStarted
	}

	subscriber := x.eventsStream.AddSubscriber()
	x.eventsStream.Subscribe(subscriber, eventsTopic)
	x.eventsStream.Subscribe(subscriber, deadlettersTopic)
	return subscriber, nil
}

// Unsubscribe removes the subscriber
func (x *actorSystem) Unsubscribe(subscriber eventstream.Subscriber) error {
	if !x.Running() {
		return gerrors.ErrActorSystemNotStarted
	}
	x.eventsStream.RemoveSubscriber(subscriber)
	return nil
}

func (x *actorSystem) publish(event any) {
	x.eventsStream.Publish(eventsTopic, event)
}

// deadletter records a message that could not be delivered
func (x *actorSystem) deadletter(ctx context.Context, from, to *PID, message any, reason string) {
	var sender, receiver string
	if from != nil {
		sender = from.ID()
	}
	if to != nil {
		receiver = to.ID()
	}

	x.actorMetric.RecordDeadletter(ctx, receiver)
	x.eventsStream.Publish(deadlettersTopic, newDeadletter(sender, receiver, message, reason))
	x.logger.Debugf("dead letter message=(%T) to actor=(%s): %s", message, receiver, reason)
}

// escalateToRoot handles the failures the user guardian could not handle
func (x *actorSystem) escalateToRoot(err error) {
	x.logger.Errorf("%s actor system received an unhandled failure, stopping: %v", x.name, err)
	go func() {
		if err := x.Stop(context.Background()); err != nil {
			x.logger.Error(err)
		}
	}()
}

// guardianActor is the parent of the top-level actors
type guardianActor struct{}

var _ Actor = (*guardianActor)(nil)

func (*guardianActor) PreStart(*Context) error { return nil }

func (*guardianActor) Receive(*ReceiveContext) {}

func (*guardianActor) PostStop(*Context) error { return nil }
