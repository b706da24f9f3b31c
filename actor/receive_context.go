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
	"errors"
	"time"

	gerrors "github.com/tochemey/coffeehouse/errors"
	"github.com/tochemey/coffeehouse/log"
)

// ReceiveContext is the envelope of a message being processed. It carries
// the message, its sender and the receiving actor, and exposes the
// operations an actor performs while handling the message.
//
// A ReceiveContext must not be retained beyond the Receive call.
type ReceiveContext struct {
	ctx       context.Context
	message   any
	sender    *PID
	self      *PID
	err       error
	response  chan any
	enqueued  time.Time
	unhandled bool
}

func newReceiveContext(ctx context.Context, from, to *PID, message any) *ReceiveContext {
	return &ReceiveContext{
		ctx:      context.WithoutCancel(ctx),
		message:  message,
		sender:   from,
		self:     to,
		enqueued: time.Now(),
	}
}

// Self returns the receiver of the message.
func (rctx *ReceiveContext) Self() *PID {
	return rctx.self
}

// Sender returns the sender of the message. It is nil when the message was
// sent without a sender.
func (rctx *ReceiveContext) Sender() *PID {
	return rctx.sender
}

// Message returns the message being processed.
func (rctx *ReceiveContext) Message() any {
	return rctx.message
}

// Context returns the context associated with the current message.
func (rctx *ReceiveContext) Context() context.Context {
	return rctx.ctx
}

// Err records a failure observed during message handling.
//
// Once Receive returns, the actor is suspended and the failure is reported
// to its parent along with the message being processed.
//
//	if err != nil {
//	    ctx.Err(err)
//	    return
//	}
func (rctx *ReceiveContext) Err(err error) {
	rctx.err = err
}

// Unhandled reports the current message as not understood. It is treated as
// a failure carrying an UnhandledError.
func (rctx *ReceiveContext) Unhandled() {
	rctx.unhandled = true
	rctx.err = gerrors.NewUnhandledError(rctx.message)
}

// Response replies to the sender of the current message.
// When the message was sent with Ask, it completes the request instead.
func (rctx *ReceiveContext) Response(resp any) {
	if rctx.response != nil {
		select {
		case rctx.response <- resp:
		default:
		}
		return
	}

	if rctx.sender != nil {
		rctx.Tell(rctx.sender, resp)
	}
}

// Tell sends a message to the given actor with the current actor as sender.
// A message sent to a stopped actor becomes a dead letter.
func (rctx *ReceiveContext) Tell(to *PID, message any) {
	if err := rctx.self.Tell(rctx.ctx, to, message); err != nil && !errors.Is(err, gerrors.ErrDead) {
		rctx.Err(err)
	}
}

// Forward sends the current message to another actor keeping its sender.
func (rctx *ReceiveContext) Forward(to *PID) {
	if err := send(rctx.ctx, rctx.sender, to, rctx.message); err != nil && !errors.Is(err, gerrors.ErrDead) {
		rctx.Err(err)
	}
}

// Spawn creates a named child actor and returns its PID.
// On failure, Err is set and a nil PID is returned.
func (rctx *ReceiveContext) Spawn(name string, actor Actor, opts ...SpawnOption) *PID {
	pid, err := rctx.self.SpawnChild(rctx.ctx, name, actor, opts...)
	if err != nil {
		rctx.Err(err)
		return nil
	}
	return pid
}

// Children returns the running children of the current actor.
func (rctx *ReceiveContext) Children() []*PID {
	return rctx.self.Children()
}

// Child returns the running child with the given name.
func (rctx *ReceiveContext) Child(name string) (*PID, bool) {
	return rctx.self.Child(name)
}

// Stop asks the given actor to stop once it has processed its current message.
// It does not wait for the actor to terminate: watch it to be notified.
func (rctx *ReceiveContext) Stop(pid *PID) {
	pid.stop()
}

// Shutdown stops the current actor once the current message has been processed.
func (rctx *ReceiveContext) Shutdown() {
	rctx.self.stop()
}

// Watch subscribes the current actor to the termination of the given actor.
func (rctx *ReceiveContext) Watch(pid *PID) {
	rctx.self.Watch(pid)
}

// UnWatch cancels a previous Watch.
func (rctx *ReceiveContext) UnWatch(pid *PID) {
	rctx.self.UnWatch(pid)
}

// ScheduleOnce sends the message to the current actor after the given delay.
func (rctx *ReceiveContext) ScheduleOnce(message any, delay time.Duration, opts ...ScheduleOption) error {
	return rctx.self.ActorSystem().ScheduleOnce(rctx.ctx, message, rctx.self, delay, opts...)
}

// CancelSchedule cancels a scheduled message by its reference.
func (rctx *ReceiveContext) CancelSchedule(reference string) error {
	return rctx.self.ActorSystem().CancelSchedule(reference)
}

// Logger returns the logger of the current actor.
func (rctx *ReceiveContext) Logger() log.Logger {
	return rctx.self.Logger()
}

// ActorSystem returns the actor system of the current actor.
func (rctx *ReceiveContext) ActorSystem() ActorSystem {
	return rctx.self.ActorSystem()
}

func (rctx *ReceiveContext) getError() error {
	return rctx.err
}
