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
	"github.com/tochemey/coffeehouse/supervisor"
)

// SpawnOption customizes a single spawned actor
type SpawnOption func(config *spawnConfig)

type spawnConfig struct {
	mailbox    Mailbox
	supervisor *supervisor.Supervisor
}

func newSpawnConfig(opts ...SpawnOption) *spawnConfig {
	config := &spawnConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.mailbox == nil {
		config.mailbox = NewUnboundedMailbox()
	}
	return config
}

// WithMailbox replaces the default UnboundedMailbox
func WithMailbox(mailbox Mailbox) SpawnOption {
	return func(config *spawnConfig) {
		config.mailbox = mailbox
	}
}

// WithSupervisor sets how the parent handles the failures of the spawned actor.
// The actor system default supervisor applies otherwise.
func WithSupervisor(supervisor *supervisor.Supervisor) SpawnOption {
	return func(config *spawnConfig) {
		config.supervisor = supervisor
	}
}
