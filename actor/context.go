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

	"github.com/tochemey/coffeehouse/log"
)

// Context is handed to the PreStart and PostStop hooks of an actor
type Context struct {
	ctx  context.Context
	self *PID
}

func newContext(ctx context.Context, self *PID) *Context {
	return &Context{
		ctx:  ctx,
		self: self,
	}
}

// Context returns the underlying context
func (x *Context) Context() context.Context {
	return x.ctx
}

// Self returns the reference of the actor being started or stopped
func (x *Context) Self() *PID {
	return x.self
}

// ActorName returns the actor name
func (x *Context) ActorName() string {
	return x.self.Name()
}

// ActorSystem returns the actor system the actor belongs to
func (x *Context) ActorSystem() ActorSystem {
	return x.self.ActorSystem()
}

// Logger returns the actor logger
func (x *Context) Logger() log.Logger {
	return x.self.Logger()
}

// Spawn creates a child actor. It can be called from PreStart, for instance
// to create the children an actor depends on.
func (x *Context) Spawn(name string, actor Actor, opts ...SpawnOption) (*PID, error) {
	return x.self.SpawnChild(x.ctx, name, actor, opts...)
}

// Watch subscribes the actor to the termination of the given actor
func (x *Context) Watch(pid *PID) {
	x.self.Watch(pid)
}
