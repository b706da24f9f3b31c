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

package testkit

import (
	"context"
	"testing"
	"time"

	"github.com/tochemey/coffeehouse/actor"
	"github.com/tochemey/coffeehouse/log"
)

// TestKit defines actor test kit
type TestKit struct {
	actorSystem   actor.ActorSystem
	kt            *testing.T
	logger        log.Logger
	systemOptions []actor.Option
}

// New creates an instance of TestKit
func New(ctx context.Context, t *testing.T, opts ...Option) *TestKit {
	// create the testkit instance
	testkit := &TestKit{
		kt:     t,
		logger: log.DiscardLogger,
	}
	// apply the various options
	for _, opt := range opts {
		opt.Apply(testkit)
	}

	options := append([]actor.Option{
		actor.WithLogger(testkit.logger),
		actor.WithActorInitTimeout(time.Second),
		actor.WithActorInitMaxRetries(5),
		actor.WithShutdownTimeout(10 * time.Second),
	}, testkit.systemOptions...)

	// create an actor system
	system, err := actor.NewActorSystem("testkit", options...)
	if err != nil {
		t.Fatal(err.Error())
	}

	// start the actor system
	if err := system.Start(ctx); err != nil {
		t.Fatal(err.Error())
	}

	testkit.actorSystem = system
	return testkit
}

// ActorSystem returns the testkit actor system
func (k *TestKit) ActorSystem() actor.ActorSystem {
	return k.actorSystem
}

// Spawn creates a top-level actor
func (k *TestKit) Spawn(ctx context.Context, name string, behavior actor.Actor, opts ...actor.SpawnOption) *actor.PID {
	pid, err := k.actorSystem.Spawn(ctx, name, behavior, opts...)
	if err != nil {
		k.kt.Fatal(err.Error())
	}
	return pid
}

// SpawnChild creates a child actor for an existing top-level actor
func (k *TestKit) SpawnChild(ctx context.Context, childName, parentName string, behavior actor.Actor, opts ...actor.SpawnOption) *actor.PID {
	// locate the parent actor
	parent, err := k.actorSystem.ActorOf(k.Path(parentName))
	if err != nil {
		k.kt.Fatal(err.Error())
	}

	pid, err := parent.SpawnChild(ctx, childName, behavior, opts...)
	if err != nil {
		k.kt.Fatal(err.Error())
	}
	return pid
}

// Path returns the path of an actor given the names from the top-level
// actor down to the actor itself.
func (k *TestKit) Path(names ...string) string {
	path := k.actorSystem.Name() + "/user"
	for _, name := range names {
		path += "/" + name
	}
	return path
}

// ExpectActor waits for the actor at the given path to be running and returns it
func (k *TestKit) ExpectActor(path string) *actor.PID {
	return k.ExpectActorWithin(DefaultTimeout, path)
}

// ExpectActorWithin waits at most the given duration for the actor at the given path
func (k *TestKit) ExpectActorWithin(duration time.Duration, path string) *actor.PID {
	k.kt.Helper()
	deadline := time.Now().Add(duration)
	for {
		pid, err := k.actorSystem.ActorOf(path)
		if err == nil {
			return pid
		}

		if time.Now().After(deadline) {
			k.kt.Fatalf("timeout (%v) while waiting for actor %s: %v", duration, path, err)
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// NewProbe create a test probe
func (k *TestKit) NewProbe(ctx context.Context) Probe {
	testProbe, err := newProbe(ctx, k.actorSystem, k.kt)
	if err != nil {
		k.kt.Fatal(err.Error())
	}
	return testProbe
}

// Shutdown stops the test kit
func (k *TestKit) Shutdown(ctx context.Context) {
	if err := k.actorSystem.Stop(ctx); err != nil {
		k.kt.Fatal(err.Error())
	}
}
