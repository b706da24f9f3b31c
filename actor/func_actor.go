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

// ReceiveFunc is the behavior of a FuncActor
type ReceiveFunc = func(ctx *ReceiveContext)

// PreStartFunc is the PreStart hook of a FuncActor
type PreStartFunc = func(ctx *Context) error

// PostStopFunc is the PostStop hook of a FuncActor
type PostStopFunc = func(ctx *Context) error

// FuncOption configures a FuncActor
type FuncOption func(actor *FuncActor)

// WithPreStart sets the PreStart hook
func WithPreStart(fn PreStartFunc) FuncOption {
	return func(actor *FuncActor) {
		actor.preStart = fn
	}
}

// WithPostStop sets the PostStop hook
func WithPostStop(fn PostStopFunc) FuncOption {
	return func(actor *FuncActor) {
		actor.postStop = fn
	}
}

// FuncActor is an Actor built from functions.
// PostStart messages are not handed to the receive function.
type FuncActor struct {
	receive  ReceiveFunc
	preStart PreStartFunc
	postStop PostStopFunc
}

var _ Actor = (*FuncActor)(nil)

// NewFuncActor creates a FuncActor
func NewFuncActor(receive ReceiveFunc, opts ...FuncOption) *FuncActor {
	actor := &FuncActor{receive: receive}
	for _, opt := range opts {
		opt(actor)
	}
	return actor
}

// PreStart runs the PreStart hook when set
func (x *FuncActor) PreStart(ctx *Context) error {
	if x.preStart != nil {
		return x.preStart(ctx)
	}
	return nil
}

// Receive hands the messages to the receive function
func (x *FuncActor) Receive(ctx *ReceiveContext) {
	if _, ok := ctx.Message().(*PostStart); ok {
		return
	}
	if x.receive != nil {
		x.receive(ctx)
	}
}

// PostStop runs the PostStop hook when set
func (x *FuncActor) PostStop(ctx *Context) error {
	if x.postStop != nil {
		return x.postStop(ctx)
	}
	return nil
}
