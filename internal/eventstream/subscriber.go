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

package eventstream

import (
	"github.com/Workiva/go-datastructures/queue"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Subscriber receives the messages published on its topics.
// Messages are buffered until drained with Iterator.
type Subscriber interface {
	// ID returns the subscriber unique identifier
	ID() string
	// Active reports whether the subscriber still receives messages
	Active() bool
	// Topics returns the topics the subscriber listens to
	Topics() []string
	// Iterator drains the buffered messages into a closed channel
	Iterator() chan *Message
	// Shutdown stops the delivery and drops the buffered messages
	Shutdown()
}

type subscriber struct {
	id       string
	messages *queue.Queue
	topics   mapset.Set[string]
	active   *atomic.Bool
}

var _ Subscriber = (*subscriber)(nil)

func newSubscriber() *subscriber {
	return &subscriber{
		id:       uuid.NewString(),
		messages: queue.New(16),
		topics:   mapset.NewSet[string](),
		active:   atomic.NewBool(true),
	}
}

func (x *subscriber) ID() string {
	return x.id
}

func (x *subscriber) Active() bool {
	return x.active.Load()
}

func (x *subscriber) Topics() []string {
	return x.topics.ToSlice()
}

func (x *subscriber) Shutdown() {
	if x.active.CompareAndSwap(true, false) {
		x.topics.Clear()
		x.messages.Dispose()
	}
}

func (x *subscriber) Iterator() chan *Message {
	pending := x.messages.Len()
	out := make(chan *Message, pending)
	defer close(out)

	if !x.active.Load() || pending == 0 {
		return out
	}

	// does not block: at least pending items are queued
	items, err := x.messages.Get(pending)
	if err != nil {
		return out
	}

	for _, item := range items {
		if message, ok := item.(*Message); ok {
			out <- message
		}
	}
	return out
}

func (x *subscriber) deliver(message *Message) {
	if x.active.Load() {
		_ = x.messages.Put(message)
	}
}
