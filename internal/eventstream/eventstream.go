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
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// Stream is a topic based in-process publish/subscribe broker.
// The actor system publishes its lifecycle events and dead letters on it.
type Stream interface {
	// AddSubscriber creates a subscriber without any topic
	AddSubscriber() Subscriber
	// RemoveSubscriber unsubscribes the subscriber from all its topics and shuts it down
	RemoveSubscriber(sub Subscriber)
	// SubscribersCount returns the number of subscribers of a topic
	SubscribersCount(topic string) int
	// Subscribe adds the subscriber to a topic
	Subscribe(sub Subscriber, topic string)
	// Unsubscribe removes the subscriber from a topic
	Unsubscribe(sub Subscriber, topic string)
	// Publish delivers the payload to the subscribers of the topic
	Publish(topic string, payload any)
	// Close shuts every subscriber down
	Close()
}

type broker struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
	// topic -> subscriber ids
	topics map[string]mapset.Set[string]
}

var _ Stream = (*broker)(nil)

// New creates a Stream
func New() Stream {
	return &broker{
		subscribers: make(map[string]*subscriber),
		topics:      make(map[string]mapset.Set[string]),
	}
}

func (b *broker) AddSubscriber() Subscriber {
	sub := newSubscriber()
	b.mu.Lock()
	b.subscribers[sub.ID()] = sub
	b.mu.Unlock()
	return sub
}

func (b *broker) RemoveSubscriber(sub Subscriber) {
	b.mu.Lock()
	for _, topic := range sub.Topics() {
		b.unsubscribeLocked(sub, topic)
	}
	delete(b.subscribers, sub.ID())
	b.mu.Unlock()
	sub.Shutdown()
}

func (b *broker) SubscribersCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if ids, ok := b.topics[topic]; ok {
		return ids.Cardinality()
	}
	return 0
}

// Subscribe adds the subscriber to a topic. Subscribers that were shut down
// or that were not created by this broker are ignored.
func (b *broker) Subscribe(sub Subscriber, topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	known, ok := b.subscribers[sub.ID()]
	if !ok || !known.Active() {
		return
	}

	ids, ok := b.topics[topic]
	if !ok {
		ids = mapset.NewThreadUnsafeSet[string]()
		b.topics[topic] = ids
	}
	ids.Add(known.ID())
	known.topics.Add(topic)
}

func (b *broker) Unsubscribe(sub Subscriber, topic string) {
	b.mu.Lock()
	b.unsubscribeLocked(sub, topic)
	b.mu.Unlock()
}

// Publish enqueues the payload for every active subscriber of the topic
// without blocking. Events published from one goroutine keep their order.
func (b *broker) Publish(topic string, payload any) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids, ok := b.topics[topic]
	if !ok || ids.IsEmpty() {
		return
	}

	message := newMessage(topic, payload)
	ids.Each(func(id string) bool {
		if sub, ok := b.subscribers[id]; ok {
			sub.deliver(message)
		}
		return false
	})
}

func (b *broker) Close() {
	b.mu.Lock()
	subscribers := b.subscribers
	b.subscribers = make(map[string]*subscriber)
	clear(b.topics)
	b.mu.Unlock()

	for _, sub := range subscribers {
		sub.Shutdown()
	}
}

func (b *broker) unsubscribeLocked(sub Subscriber, topic string) {
	if known, ok := b.subscribers[sub.ID()]; ok {
		known.topics.Remove(topic)
	}

	if ids, ok := b.topics[topic]; ok {
		ids.Remove(sub.ID())
		if ids.IsEmpty() {
			delete(b.topics, topic)
		}
	}
}
