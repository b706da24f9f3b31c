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
	"time"

	"github.com/tochemey/coffeehouse/supervisor"
)

// PostStart is the first message every actor receives once it has started
// and after each restart.
type PostStart struct{}

// PoisonPill stops the receiving actor once the messages enqueued before it
// have been processed.
type PoisonPill struct{}

// Terminated is delivered to the watchers of an actor once it has fully stopped.
// It is delivered at most once per watcher.
type Terminated struct {
	pid *PID
}

// PID returns the reference of the stopped actor
func (t *Terminated) PID() *PID { return t.pid }

// ActorPath returns the path of the stopped actor
func (t *Terminated) ActorPath() string { return t.pid.Path().String() }

// Deadletter is published on the event stream for every message that
// could not be delivered
type Deadletter struct {
	sender   string
	receiver string
	message  any
	sendTime time.Time
	reason   string
}

func newDeadletter(sender, receiver string, message any, reason string) *Deadletter {
	return &Deadletter{
		sender:   sender,
		receiver: receiver,
		message:  message,
		sendTime: time.Now().UTC(),
		reason:   reason,
	}
}

// Sender is the path of the sender, empty for messages sent from outside any actor
func (d *Deadletter) Sender() string      { return d.sender }
func (d *Deadletter) Receiver() string    { return d.receiver }
func (d *Deadletter) Message() any        { return d.message }
func (d *Deadletter) SendTime() time.Time { return d.sendTime }
func (d *Deadletter) Reason() string      { return d.reason }

// lifecycle is shared by the actor lifecycle events
type lifecycle struct {
	address string
	at      time.Time
}

func newLifecycle(address string) lifecycle {
	return lifecycle{address: address, at: time.Now().UTC()}
}

// Address is the path of the actor the event is about
func (l lifecycle) Address() string { return l.address }

// At is when the event happened
func (l lifecycle) At() time.Time { return l.at }

type (
	// ActorStarted is published once a spawned actor is running
	ActorStarted struct{ lifecycle }
	// ActorStopped is published once an actor and its children are stopped
	ActorStopped struct{ lifecycle }
	// ActorRestarted is published after a supervisor restarted an actor
	ActorRestarted struct{ lifecycle }
	// ActorReinstated is published when a suspended actor resumes
	ActorReinstated struct{ lifecycle }
)

// ActorSuspended is published when a failed actor waits for its supervisor
type ActorSuspended struct {
	lifecycle
	reason string
}

// Reason is the failure that suspended the actor
func (a *ActorSuspended) Reason() string { return a.reason }

// failure is the signal a suspended child posts to its parent
type failure struct {
	child   *PID
	err     error
	message any
}

func (f *failure) toSupervisorFailure() *supervisor.Failure {
	return &supervisor.Failure{
		Name:    f.child.Name(),
		Path:    f.child.Path().String(),
		Err:     f.err,
		Message: f.message,
	}
}

// directive is the signal a parent posts to a failed child
type directive struct {
	value      supervisor.Directive
	maxRetries uint32
	timeout    time.Duration
}
