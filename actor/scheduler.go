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
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/coffeehouse/errors"
	"github.com/tochemey/coffeehouse/log"
)

// scheduler delivers messages to actors in the future
type scheduler struct {
	mu              sync.Mutex
	quartzScheduler quartz.Scheduler
	started         *atomic.Bool
	logger          log.Logger
	stopTimeout     time.Duration
	// pending references, removed once the message fired or was cancelled
	references mapset.Set[string]
}

func newScheduler(logger log.Logger, stopTimeout time.Duration) *scheduler {
	// the error is only returned for invalid options
	quartzScheduler, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	return &scheduler{
		quartzScheduler: quartzScheduler,
		started:         atomic.NewBool(false),
		logger:          logger,
		stopTimeout:     stopTimeout,
		references:      mapset.NewSet[string](),
	}
}

// Start starts the scheduler
func (x *scheduler) Start(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.quartzScheduler.Start(ctx)
	x.started.Store(x.quartzScheduler.IsStarted())
	x.logger.Debug("messages scheduler started")
}

// Stop drops the pending messages and stops the scheduler
func (x *scheduler) Stop(ctx context.Context) {
	if !x.started.Load() {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	_ = x.quartzScheduler.Clear()
	x.quartzScheduler.Stop()
	x.started.Store(x.quartzScheduler.IsStarted())
	x.references.Clear()

	ctx, cancel := context.WithTimeout(ctx, x.stopTimeout)
	defer cancel()
	x.quartzScheduler.Wait(ctx)
	x.logger.Debug("messages scheduler stopped")
}

// ScheduleOnce sends the message to the actor once, after the given delay.
// A message firing after the actor stopped becomes a dead letter.
func (x *scheduler) ScheduleOnce(message any, pid *PID, delay time.Duration, opts ...ScheduleOption) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return gerrors.ErrSchedulerNotStarted
	}

	if pid == nil {
		return gerrors.ErrUndefinedActor
	}

	config := newScheduleConfig(opts...)
	reference := config.Reference()

	job := job.NewFunctionJob[bool](
		func(ctx context.Context) (bool, error) {
			x.references.Remove(reference)
			err := send(ctx, config.Sender(), pid, message)
			if errors.Is(err, gerrors.ErrDead) {
				// already routed to the dead letters
				return false, nil
			}
			return err == nil, err
		},
	)

	x.references.Add(reference)
	detail := quartz.NewJobDetail(job, quartz.NewJobKey(reference))
	if err := x.quartzScheduler.ScheduleJob(detail, quartz.NewRunOnceTrigger(delay)); err != nil {
		x.references.Remove(reference)
		return err
	}
	return nil
}

// Cancel cancels a scheduled message that has not fired yet
func (x *scheduler) Cancel(reference string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return gerrors.ErrSchedulerNotStarted
	}

	if !x.references.Contains(reference) {
		return gerrors.NewErrScheduledReferenceNotFound(reference)
	}

	x.references.Remove(reference)
	if err := x.quartzScheduler.DeleteJob(quartz.NewJobKey(reference)); err != nil {
		// the message fired in the meantime
		return gerrors.NewErrScheduledReferenceNotFound(reference)
	}
	return nil
}

// Pending returns the number of messages waiting to fire
func (x *scheduler) Pending() int {
	return x.references.Cardinality()
}
