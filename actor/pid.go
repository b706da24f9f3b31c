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
	"fmt"
	"runtime"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/flowchartsman/retry"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/coffeehouse/errors"
	"github.com/tochemey/coffeehouse/log"
	"github.com/tochemey/coffeehouse/supervisor"
)

const (
	idle int32 = iota
	busy
)

// PID is the reference to a running actor. All interactions with an actor go
// through its PID; its identity is its path.
//
// A PID keeps its identity across restarts.
type PID struct {
	actor  Actor
	path   *path
	system *actorSystem
	parent *PID
	logger log.Logger

	// the supervisor the parent applies when this actor fails
	supervisor *supervisor.Supervisor

	mailbox Mailbox
	// signals exchanged with the parent and the children, processed
	// before any message, even while suspended
	systemBox  *UnboundedMailbox
	processing atomic.Int32

	started   *atomic.Bool
	running   *atomic.Bool
	stopping  *atomic.Bool
	suspended *atomic.Bool

	restartCount   *atomic.Int64
	processedCount *atomic.Int64

	childrenMu sync.RWMutex
	children   map[string]*PID

	watchMu    sync.Mutex
	terminated bool
	watchers   mapset.Set[*PID]
	watchees   mapset.Set[*PID]

	// the child whose failure this actor escalated.
	// only accessed from the actor goroutine
	escalated *PID

	stopped chan struct{}
}

func newPID(name string, path *path, actor Actor, system *actorSystem, parent *PID, config *spawnConfig) *PID {
	sup := config.supervisor
	if sup == nil {
		sup = system.defaultSupervisor
	}

	return &PID{
		actor:          actor,
		path:           path,
		system:         system,
		parent:         parent,
		logger:         system.logger.With("actor", path.String()),
		supervisor:     sup,
		mailbox:        config.mailbox,
		systemBox:      NewUnboundedMailbox(),
		started:        atomic.NewBool(false),
		running:        atomic.NewBool(false),
		stopping:       atomic.NewBool(false),
		suspended:      atomic.NewBool(false),
		restartCount:   atomic.NewInt64(0),
		processedCount: atomic.NewInt64(0),
		children:       make(map[string]*PID),
		watchers:       mapset.NewSet[*PID](),
		watchees:       mapset.NewSet[*PID](),
		stopped:        make(chan struct{}),
	}
}

// Name returns the actor name, unique among its siblings
func (pid *PID) Name() string {
	return pid.path.Name()
}

// Path returns the actor path
func (pid *PID) Path() Path {
	return pid.path
}

// ID returns the actor path as a string
func (pid *PID) ID() string {
	return pid.path.String()
}

// String implements fmt.Stringer
func (pid *PID) String() string {
	return pid.path.String()
}

// Equals reports whether both references point at the same actor
func (pid *PID) Equals(other *PID) bool {
	if pid == nil || other == nil {
		return pid == other
	}
	return pid.path.Equals(other.path)
}

// Parent returns the parent of the actor. Top-level actors return the user guardian.
func (pid *PID) Parent() *PID {
	return pid.parent
}

// ActorSystem returns the actor system of the actor
func (pid *PID) ActorSystem() ActorSystem {
	return pid.system
}

// Logger returns the actor logger. Its entries carry the actor path.
func (pid *PID) Logger() log.Logger {
	return pid.logger
}

// IsRunning reports whether the actor accepts messages
func (pid *PID) IsRunning() bool {
	return pid != nil && pid.running.Load() && !pid.stopping.Load()
}

// IsSuspended reports whether the actor is waiting for its supervisor decision
func (pid *PID) IsSuspended() bool {
	return pid.suspended.Load()
}

// RestartCount returns the number of times the actor has been restarted
func (pid *PID) RestartCount() int {
	return int(pid.restartCount.Load())
}

// ProcessedCount returns the number of messages the actor has processed
func (pid *PID) ProcessedCount() int {
	return int(pid.processedCount.Load())
}

// MailboxSize returns the number of messages waiting in the mailbox
func (pid *PID) MailboxSize() int64 {
	return pid.mailbox.Len()
}

// Children returns the running children of the actor
func (pid *PID) Children() []*PID {
	pid.childrenMu.RLock()
	defer pid.childrenMu.RUnlock()
	children := make([]*PID, 0, len(pid.children))
	for _, child := range pid.children {
		if child.IsRunning() {
			children = append(children, child)
		}
	}
	return children
}

// Child returns the running child with the given name
func (pid *PID) Child(name string) (*PID, bool) {
	pid.childrenMu.RLock()
	child, ok := pid.children[name]
	pid.childrenMu.RUnlock()
	if !ok || !child.IsRunning() {
		return nil, false
	}
	return child, true
}

// SpawnChild creates a child actor.
//
// The child PreStart hook runs on the calling goroutine and is retried
// according to the actor system init settings. Once started, the child
// receives a PostStart message.
func (pid *PID) SpawnChild(ctx context.Context, name string, actor Actor, opts ...SpawnOption) (*PID, error) {
	if actor == nil {
		return nil, gerrors.ErrUndefinedActor
	}

	if err := validateName(name); err != nil {
		return nil, err
	}

	if pid.stopping.Load() {
		return nil, gerrors.ErrDead
	}

	pid.childrenMu.Lock()
	if _, ok := pid.children[name]; ok {
		pid.childrenMu.Unlock()
		return nil, gerrors.NewErrActorAlreadyExists(name)
	}

	child := newPID(name, pid.path.child(name), actor, pid.system, pid, newSpawnConfig(opts...))
	// reserve the name while the child initializes
	pid.children[name] = child
	pid.childrenMu.Unlock()

	if err := child.init(ctx); err != nil {
		pid.removeChild(child)
		child.markTerminated()
		close(child.stopped)
		return nil, err
	}

	pid.system.registry.set(child)
	pid.system.publish(&ActorStarted{newLifecycle(child.ID())})
	child.doReceive(newReceiveContext(ctx, nil, child, new(PostStart)))
	return child, nil
}

// Tell sends a message to the given actor with this actor as sender
func (pid *PID) Tell(ctx context.Context, to *PID, message any) error {
	return send(ctx, pid, to, message)
}

// Watch subscribes this actor to the termination of the given actor. A
// Terminated message is delivered once the watched actor fully stopped, or
// right away when it already has.
func (pid *PID) Watch(target *PID) {
	if target == nil || target == pid {
		return
	}

	target.watchMu.Lock()
	if target.terminated {
		target.watchMu.Unlock()
		_ = send(context.Background(), nil, pid, &Terminated{pid: target})
		return
	}
	target.watchers.Add(pid)
	target.watchMu.Unlock()
	pid.watchees.Add(target)
}

// UnWatch cancels a previous Watch
func (pid *PID) UnWatch(target *PID) {
	if target == nil {
		return
	}
	target.removeWatcher(pid)
	pid.watchees.Remove(target)
}

// Shutdown stops the actor and waits until it has fully stopped, its
// children included. It must not be called from the actor's own Receive:
// use ReceiveContext.Shutdown there.
func (pid *PID) Shutdown(ctx context.Context) error {
	pid.stop()
	select {
	case <-pid.stopped:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to stop actor=(%s): %w", pid.ID(), ctx.Err())
	}
}

// stop asks the actor to stop without waiting. The current message
// completes first and the pending messages become dead letters.
func (pid *PID) stop() {
	if pid.stopping.CompareAndSwap(false, true) {
		pid.process()
	}
}

// init runs the PreStart hook with retries
func (pid *PID) init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pid.system.actorInitTimeout)
	defer cancel()

	retrier := retry.NewRetrier(max(pid.system.actorInitMaxRetries, 1), time.Millisecond, pid.system.actorInitTimeout)
	if err := retrier.RunContext(ctx, func(ctx context.Context) error {
		return pid.actor.PreStart(newContext(ctx, pid))
	}); err != nil {
		pid.logger.Errorf("failed to initialize actor=(%s): %v", pid.ID(), err)
		return gerrors.NewErrInitFailure(err)
	}

	pid.running.Store(true)
	pid.started.Store(true)
	pid.logger.Debugf("actor=(%s) started", pid.ID())
	return nil
}

// doReceive enqueues the message and wakes the actor up
func (pid *PID) doReceive(received *ReceiveContext) {
	if err := pid.mailbox.Enqueue(received); err != nil {
		pid.system.deadletter(received.ctx, received.sender, pid, received.message, err.Error())
		return
	}
	pid.process()
}

// signal enqueues a system signal and wakes the actor up
func (pid *PID) signal(message any) {
	_ = pid.systemBox.Enqueue(newReceiveContext(context.Background(), nil, pid, message))
	pid.process()
}

// process starts the processing loop when the actor is idle.
// At most one loop runs per actor at any time.
func (pid *PID) process() {
	if !pid.started.Load() {
		return
	}

	if !pid.processing.CompareAndSwap(idle, busy) {
		return
	}

	go pid.run()
}

func (pid *PID) run() {
	for {
		if signal := pid.systemBox.Dequeue(); signal != nil {
			pid.handleSignal(signal.Message())
			continue
		}

		if pid.stopping.Load() {
			// the loop never goes back to idle once the actor is finalized
			pid.finalize()
			return
		}

		if !pid.suspended.Load() {
			if received := pid.mailbox.Dequeue(); received != nil {
				pid.dispatch(received)
				continue
			}
		}

		pid.processing.Store(idle)

		// a message or a signal may have arrived after the last check
		if pid.hasWork() && pid.processing.CompareAndSwap(idle, busy) {
			continue
		}
		return
	}
}

func (pid *PID) hasWork() bool {
	return !pid.systemBox.IsEmpty() ||
		pid.stopping.Load() ||
		(!pid.suspended.Load() && !pid.mailbox.IsEmpty())
}

func (pid *PID) dispatch(received *ReceiveContext) {
	switch received.Message().(type) {
	case *PoisonPill:
		pid.stopping.Store(true)
	default:
		pid.handleReceived(received)
	}
}

// handleReceived runs the actor behavior and reports any failure
func (pid *PID) handleReceived(received *ReceiveContext) {
	start := time.Now()
	defer pid.recovery(received)
	pid.actor.Receive(received)
	pid.processedCount.Inc()
	pid.system.actorMetric.RecordProcessed(received.ctx, pid.ID(), time.Since(start))
}

func (pid *PID) recovery(received *ReceiveContext) {
	if r := recover(); r != nil {
		var pe *gerrors.PanicError
		if err, ok := r.(error); ok && errors.As(err, &pe) {
			pid.fail(pe, received.Message())
			return
		}

		// enrich the panic with its location for the logs
		pc, fn, line, _ := runtime.Caller(2)
		var cause error
		if err, ok := r.(error); ok {
			cause = fmt.Errorf("%w at %s[%s:%d]", err, runtime.FuncForPC(pc).Name(), fn, line)
		} else {
			cause = fmt.Errorf("%#v at %s[%s:%d]", r, runtime.FuncForPC(pc).Name(), fn, line)
		}
		pid.fail(gerrors.NewPanicError(cause), received.Message())
		return
	}

	if err := received.getError(); err != nil {
		if received.unhandled {
			pid.logger.Warnf("actor=(%s) could not handle message=(%T)", pid.ID(), received.Message())
		}
		pid.fail(err, received.Message())
	}
}

// fail suspends the actor and reports the failure to its parent.
// The user guardian has no parent: its failures stop the actor system.
func (pid *PID) fail(err error, message any) {
	pid.suspended.Store(true)
	pid.system.actorMetric.RecordFailure(context.Background(), pid.ID())
	pid.system.publish(&ActorSuspended{lifecycle: newLifecycle(pid.ID()), reason: err.Error()})
	pid.logger.Warnf("actor=(%s) failed: %v", pid.ID(), err)

	if pid.parent == nil {
		pid.system.escalateToRoot(err)
		return
	}
	pid.parent.signal(&failure{child: pid, err: err, message: message})
}

func (pid *PID) handleSignal(message any) {
	switch msg := message.(type) {
	case *failure:
		pid.supervise(msg)
	case *directive:
		pid.applyDirective(msg)
	}
}

// supervise decides on the failure of a child. It runs on this actor's goroutine.
func (pid *PID) supervise(f *failure) {
	child := f.child
	if !pid.isChild(child) || child.stopping.Load() {
		return
	}

	failure := f.toSupervisorFailure()
	decision, recovery := child.supervisor.Decide(failure)
	pid.logger.Debugf("supervisor=(%s) applies directive=(%s) to child=(%s) for %v", pid.ID(), decision, child.ID(), f.err)

	if recovery != nil {
		pid.runRecovery(recovery, failure)
	}

	switch decision {
	case supervisor.ResumeDirective:
		child.signal(&directive{value: supervisor.ResumeDirective})
	case supervisor.RestartDirective:
		for _, target := range pid.targets(child) {
			target.signal(&directive{
				value:      supervisor.RestartDirective,
				maxRetries: child.supervisor.MaxRetries(),
				timeout:    child.supervisor.Timeout(),
			})
		}
	case supervisor.StopDirective:
		for _, target := range pid.targets(child) {
			target.stop()
		}
	default:
		pid.escalated = child
		pid.fail(f.err, f.message)
	}
}

// targets returns the children affected by a directive given the child strategy
func (pid *PID) targets(child *PID) []*PID {
	if child.supervisor.Strategy() != supervisor.OneForAllStrategy {
		return []*PID{child}
	}

	pid.childrenMu.RLock()
	defer pid.childrenMu.RUnlock()
	targets := make([]*PID, 0, len(pid.children))
	for _, sibling := range pid.children {
		targets = append(targets, sibling)
	}
	return targets
}

func (pid *PID) runRecovery(recovery supervisor.Recovery, failure *supervisor.Failure) {
	defer func() {
		if r := recover(); r != nil {
			pid.logger.Errorf("supervisor=(%s) recovery for child=(%s) panicked: %v", pid.ID(), failure.Path, r)
		}
	}()
	recovery(failure)
}

func (pid *PID) applyDirective(d *directive) {
	switch d.value {
	case supervisor.ResumeDirective:
		pid.resume()
	case supervisor.RestartDirective:
		pid.restart(d)
	}
}

func (pid *PID) resume() {
	if !pid.suspended.Load() {
		return
	}

	pid.suspended.Store(false)
	pid.system.publish(&ActorReinstated{newLifecycle(pid.ID())})
	pid.logger.Debugf("actor=(%s) resumed", pid.ID())

	// the escalated child is still waiting for a decision
	if child := pid.escalated; child != nil {
		pid.escalated = nil
		if pid.isChild(child) {
			child.signal(&directive{value: supervisor.ResumeDirective})
		}
	}
}

// restart stops the children, runs PostStop then PreStart on the same
// actor instance and resumes processing with the mailbox untouched
func (pid *PID) restart(d *directive) {
	ctx, cancel := context.WithTimeout(context.Background(), pid.system.shutdownTimeout)
	defer cancel()

	pid.escalated = nil
	if err := pid.stopChildren(ctx); err != nil {
		pid.logger.Warnf("actor=(%s) failed to stop children before restart: %v", pid.ID(), err)
	}

	if err := pid.actor.PostStop(newContext(ctx, pid)); err != nil {
		pid.logger.Warnf("actor=(%s) PostStop failed during restart: %v", pid.ID(), err)
	}

	preStart := func(ctx context.Context) error {
		return pid.actor.PreStart(newContext(ctx, pid))
	}

	var err error
	if d.maxRetries == 0 {
		err = preStart(ctx)
	} else {
		timeout := max(d.timeout, 0)
		err = retry.NewRetrier(int(d.maxRetries), timeout, timeout).RunContext(ctx, preStart)
	}

	if err != nil {
		pid.logger.Errorf("actor=(%s) failed to restart, stopping it: %v", pid.ID(), err)
		pid.stopping.Store(true)
		return
	}

	pid.restartCount.Inc()
	pid.suspended.Store(false)
	pid.system.actorMetric.RecordRestart(ctx, pid.ID())
	pid.system.publish(&ActorRestarted{newLifecycle(pid.ID())})
	pid.logger.Debugf("actor=(%s) restarted", pid.ID())
}

// stopChildren stops all the children concurrently and waits for them
func (pid *PID) stopChildren(ctx context.Context) error {
	pid.childrenMu.RLock()
	children := make([]*PID, 0, len(pid.children))
	for _, child := range pid.children {
		children = append(children, child)
	}
	pid.childrenMu.RUnlock()

	eg, ctx := errgroup.WithContext(ctx)
	for _, child := range children {
		eg.Go(func() error {
			return child.Shutdown(ctx)
		})
	}
	return eg.Wait()
}

// finalize tears the actor down on its own goroutine. Watchers are notified
// once the children have stopped and PostStop has run.
func (pid *PID) finalize() {
	ctx, cancel := context.WithTimeout(context.Background(), pid.system.shutdownTimeout)
	defer cancel()

	pid.running.Store(false)
	if err := pid.stopChildren(ctx); err != nil {
		pid.logger.Warnf("actor=(%s) failed to stop its children: %v", pid.ID(), err)
	}

	if err := pid.actor.PostStop(newContext(ctx, pid)); err != nil {
		pid.logger.Warnf("actor=(%s) PostStop failed: %v", pid.ID(), err)
	}

	for received := pid.mailbox.Dequeue(); received != nil; received = pid.mailbox.Dequeue() {
		if _, ok := received.Message().(*PoisonPill); ok {
			continue
		}
		pid.system.deadletter(received.ctx, received.sender, pid, received.message, "actor stopped")
	}
	for pid.systemBox.Dequeue() != nil {
	}
	pid.mailbox.Dispose()

	for _, watchee := range pid.watchees.ToSlice() {
		watchee.removeWatcher(pid)
	}
	pid.watchees.Clear()

	for _, watcher := range pid.markTerminated() {
		_ = send(ctx, nil, watcher, &Terminated{pid: pid})
	}

	if pid.parent != nil {
		pid.parent.removeChild(pid)
	}
	pid.system.registry.delete(pid)
	pid.system.publish(&ActorStopped{newLifecycle(pid.ID())})
	pid.logger.Debugf("actor=(%s) stopped", pid.ID())
	close(pid.stopped)
}

// markTerminated flags the actor as terminated and returns the watchers to notify
func (pid *PID) markTerminated() []*PID {
	pid.watchMu.Lock()
	defer pid.watchMu.Unlock()
	pid.terminated = true
	watchers := pid.watchers.ToSlice()
	pid.watchers.Clear()
	return watchers
}

func (pid *PID) removeWatcher(watcher *PID) {
	pid.watchMu.Lock()
	pid.watchers.Remove(watcher)
	pid.watchMu.Unlock()
}

func (pid *PID) isChild(child *PID) bool {
	pid.childrenMu.RLock()
	current, ok := pid.children[child.Name()]
	pid.childrenMu.RUnlock()
	return ok && current == child
}

func (pid *PID) removeChild(child *PID) {
	pid.childrenMu.Lock()
	if current, ok := pid.children[child.Name()]; ok && current == child {
		delete(pid.children, child.Name())
	}
	pid.childrenMu.Unlock()
}
