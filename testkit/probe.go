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
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/coffeehouse/actor"
)

const (
	// MessagesQueueMax is the number of messages a probe buffers
	MessagesQueueMax = 1000
	// DefaultTimeout is how long the Expect methods wait without an explicit duration
	DefaultTimeout = 3 * time.Second
	// DefaultNoMessageTimeout is how long ExpectNoMessage waits
	DefaultNoMessageTimeout = 500 * time.Millisecond
)

// Probe defines the probe interface that helps perform some assertions
// when implementing unit tests with actors
type Probe interface {
	// ExpectMessage asserts that the message received by the probe is the expected one
	ExpectMessage(message any)
	// ExpectMessageWithin asserts that the message received by the probe is the expected one within a time duration
	ExpectMessageWithin(duration time.Duration, message any)
	// ExpectNoMessage asserts that no message is received
	ExpectNoMessage()
	// ExpectNoMessageWithin asserts that no message is received within a time duration
	ExpectNoMessageWithin(duration time.Duration)
	// ExpectAnyMessage asserts that any message is received and returns it
	ExpectAnyMessage() any
	// ExpectAnyMessageWithin asserts that any message is received within a time duration
	ExpectAnyMessageWithin(duration time.Duration) any
	// ExpectMessageOfType asserts that the next message has the same type as the given sample and returns it
	ExpectMessageOfType(sample any) any
	// ExpectMessageOfTypeWithin asserts the expectation of a given message type within a time duration
	ExpectMessageOfTypeWithin(duration time.Duration, sample any) any
	// ExpectTerminated asserts that the next message is the termination of the given watched actor
	ExpectTerminated(pid *actor.PID)
	// Watch watches the given actor
	Watch(pid *actor.PID)
	// Send sends a message to the given actor with the probe as sender
	Send(to *actor.PID, message any)
	// SendSync sends a message to the given actor and expects a response within a time duration.
	// The response is queued and checked with the Expect methods.
	SendSync(to *actor.PID, message any, timeout time.Duration)
	// Sender returns the sender of last received message.
	Sender() *actor.PID
	// PID returns the pid of the probe
	PID() *actor.PID
	// Stop stops the test probe
	Stop()
}

type received struct {
	sender  *actor.PID
	message any
}

// probeActor pushes every user message it gets into the probe inbox
type probeActor struct {
	inbox chan<- received
}

var _ actor.Actor = (*probeActor)(nil)

func (x *probeActor) PreStart(*actor.Context) error { return nil }
func (x *probeActor) PostStop(*actor.Context) error { return nil }

func (x *probeActor) Receive(ctx *actor.ReceiveContext) {
	if _, ok := ctx.Message().(*actor.PostStart); ok {
		return
	}
	x.inbox <- received{sender: ctx.Sender(), message: ctx.Message()}
}

type probe struct {
	t          *testing.T
	ctx        context.Context
	pid        *actor.PID
	inbox      chan received
	lastSender *actor.PID
}

var _ Probe = (*probe)(nil)

func newProbe(ctx context.Context, system actor.ActorSystem, t *testing.T) (*probe, error) {
	inbox := make(chan received, MessagesQueueMax)
	pid, err := system.Spawn(ctx, "probe-"+uuid.NewString(), &probeActor{inbox: inbox})
	if err != nil {
		return nil, err
	}
	return &probe{t: t, ctx: ctx, pid: pid, inbox: inbox}, nil
}

func (x *probe) ExpectMessage(message any) {
	x.ExpectMessageWithin(DefaultTimeout, message)
}

func (x *probe) ExpectMessageWithin(duration time.Duration, message any) {
	got := x.mustReceive(duration, fmt.Sprintf("%v", message))
	require.Equal(x.t, message, got, "expected %v, found %v", message, got)
}

func (x *probe) ExpectNoMessage() {
	x.ExpectNoMessageWithin(DefaultNoMessageTimeout)
}

func (x *probe) ExpectNoMessageWithin(duration time.Duration) {
	if got, ok := x.receive(duration); ok {
		require.Fail(x.t, fmt.Sprintf("received unexpected message %v", got))
	}
}

func (x *probe) ExpectAnyMessage() any {
	return x.ExpectAnyMessageWithin(DefaultTimeout)
}

func (x *probe) ExpectAnyMessageWithin(duration time.Duration) any {
	return x.mustReceive(duration, "any message")
}

func (x *probe) ExpectMessageOfType(sample any) any {
	return x.ExpectMessageOfTypeWithin(DefaultTimeout, sample)
}

func (x *probe) ExpectMessageOfTypeWithin(duration time.Duration, sample any) any {
	expected := reflect.TypeOf(sample)
	got := x.mustReceive(duration, expected.String())
	require.Equal(x.t, expected, reflect.TypeOf(got), "expected a %v, found %T", expected, got)
	return got
}

// ExpectTerminated requires the probe to watch pid
func (x *probe) ExpectTerminated(pid *actor.PID) {
	terminated := x.ExpectMessageOfType(new(actor.Terminated)).(*actor.Terminated)
	require.True(x.t, terminated.PID().Equals(pid), "expected the termination of %s, found %s", pid.ID(), terminated.ActorPath())
}

func (x *probe) Watch(pid *actor.PID) {
	x.pid.Watch(pid)
}

func (x *probe) Send(to *actor.PID, message any) {
	require.NoError(x.t, x.pid.Tell(x.ctx, to, message))
}

// SendSync queues the response so the Expect methods can check it
func (x *probe) SendSync(to *actor.PID, message any, timeout time.Duration) {
	response, err := actor.Ask(x.ctx, to, message, timeout)
	require.NoError(x.t, err)
	x.inbox <- received{sender: to, message: response}
}

func (x *probe) Sender() *actor.PID { return x.lastSender }
func (x *probe) PID() *actor.PID    { return x.pid }

func (x *probe) Stop() {
	require.NoError(x.t, x.pid.Shutdown(x.ctx))
}

func (x *probe) receive(within time.Duration) (any, bool) {
	timer := time.NewTimer(within)
	defer timer.Stop()

	select {
	case r := <-x.inbox:
		x.lastSender = r.sender
		return r.message, true
	case <-timer.C:
		return nil, false
	}
}

func (x *probe) mustReceive(within time.Duration, waitingFor string) any {
	got, ok := x.receive(within)
	require.True(x.t, ok, "timeout (%v) while waiting for %s", within, waitingFor)
	return got
}
