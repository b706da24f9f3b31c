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
	"time"

	gerrors "github.com/tochemey/coffeehouse/errors"
)

// Tell sends an asynchronous message to an actor without a sender.
// Messages sent to an actor that is not running become dead letters and
// ErrDead is returned.
func Tell(ctx context.Context, to *PID, message any) error {
	return send(ctx, nil, to, message)
}

// Ask sends a message to an actor and waits for its response.
// The actor answers with ReceiveContext.Response.
func Ask(ctx context.Context, to *PID, message any, timeout time.Duration) (any, error) {
	if timeout <= 0 {
		return nil, gerrors.ErrInvalidTimeout
	}

	if err := checkReceiver(ctx, nil, to, message); err != nil {
		return nil, err
	}

	received := newReceiveContext(ctx, nil, to, message)
	received.response = make(chan any, 1)
	to.doReceive(received)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case response := <-received.response:
		return response, nil
	case <-timer.C:
		return nil, gerrors.ErrRequestTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// send delivers the message into the receiver mailbox
func send(ctx context.Context, from, to *PID, message any) error {
	if err := checkReceiver(ctx, from, to, message); err != nil {
		return err
	}
	to.doReceive(newReceiveContext(ctx, from, to, message))
	return nil
}

func checkReceiver(ctx context.Context, from, to *PID, message any) error {
	if to == nil {
		return gerrors.ErrUndefinedActor
	}

	if !to.IsRunning() {
		to.system.deadletter(ctx, from, to, message, "actor not running")
		return gerrors.ErrDead
	}
	return nil
}
