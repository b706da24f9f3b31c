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

import "sync/atomic"

type envelope struct {
	message *ReceiveContext
	next    atomic.Pointer[envelope]
}

// UnboundedMailbox is the default actor mailbox: a linked FIFO queue that
// accepts concurrent producers and a single consumer without locking.
// Enqueue always succeeds, so a slow actor lets its mailbox grow without bound.
type UnboundedMailbox struct {
	// read by the consumer only
	head *envelope
	// swapped by the producers
	tail  atomic.Pointer[envelope]
	count atomic.Int64
}

var _ Mailbox = (*UnboundedMailbox)(nil)

// NewUnboundedMailbox creates an empty UnboundedMailbox
func NewUnboundedMailbox() *UnboundedMailbox {
	stub := new(envelope)
	mailbox := &UnboundedMailbox{head: stub}
	mailbox.tail.Store(stub)
	return mailbox
}

// Enqueue appends the message at the tail of the mailbox
func (m *UnboundedMailbox) Enqueue(msg *ReceiveContext) error {
	next := &envelope{message: msg}
	m.count.Add(1)
	previous := m.tail.Swap(next)
	previous.next.Store(next)
	return nil
}

// Dequeue pops the oldest message or returns nil when there is none.
// A message whose producer has swapped the tail but not yet linked it
// is seen on the following call.
func (m *UnboundedMailbox) Dequeue() *ReceiveContext {
	next := m.head.next.Load()
	if next == nil {
		return nil
	}

	msg := next.message
	next.message = nil
	m.head = next
	m.count.Add(-1)
	return msg
}

// Len returns the number of queued messages
func (m *UnboundedMailbox) Len() int64 {
	return m.count.Load()
}

// IsEmpty reports whether no message is queued
func (m *UnboundedMailbox) IsEmpty() bool {
	return m.count.Load() == 0
}

// Dispose drops the queued messages
func (m *UnboundedMailbox) Dispose() {
	for m.Dequeue() != nil {
	}
}
