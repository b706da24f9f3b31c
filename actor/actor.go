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

// Actor defines the core interface for an actor.
//
// Actors are isolated units of computation that communicate exclusively via
// message passing. Each actor owns a mailbox and processes its messages one at
// a time, so its state needs no synchronization.
//
// The lifecycle of an actor follows three phases:
//  1. PreStart: setup logic before message handling begins
//  2. Receive: message handling
//  3. PostStop: cleanup logic once the actor stops
//
// On restart the runtime calls PostStop then PreStart on the same instance,
// so PreStart must reset any state derived from previous messages.
type Actor interface {
	// PreStart is invoked before the actor processes any message and after each restart.
	// An error prevents the actor from starting.
	PreStart(ctx *Context) error

	// Receive handles the messages sent to the actor.
	//
	// Failures are reported through ReceiveContext.Err, ReceiveContext.Unhandled
	// or by panicking. The actor is then suspended and its parent decides
	// what happens next.
	Receive(ctx *ReceiveContext)

	// PostStop is invoked when the actor stops and before each restart.
	PostStop(ctx *Context) error
}
