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
	"sync"

	"github.com/zeebo/xxh3"
)

const pidMapShards = 32

type pidShard struct {
	sync.RWMutex
	pids map[string]*PID
}

// pidMap is the actor registry of a system, keyed by actor path.
// It is sharded by the xxh3 hash of the path to spread lock contention.
type pidMap struct {
	shards [pidMapShards]*pidShard
}

func newPIDMap() *pidMap {
	m := new(pidMap)
	for i := range m.shards {
		m.shards[i] = &pidShard{pids: make(map[string]*PID)}
	}
	return m
}

func (m *pidMap) shard(key string) *pidShard {
	return m.shards[xxh3.HashString(key)%pidMapShards]
}

// len returns the number of PIDs
func (m *pidMap) len() int {
	total := 0
	for _, shard := range m.shards {
		shard.RLock()
		total += len(shard.pids)
		shard.RUnlock()
	}
	return total
}

// get retrieves a pid by its path
func (m *pidMap) get(path string) (*PID, bool) {
	shard := m.shard(path)
	shard.RLock()
	pid, ok := shard.pids[path]
	shard.RUnlock()
	return pid, ok
}

// set sets a pid in the map
func (m *pidMap) set(pid *PID) {
	key := pid.Path().String()
	shard := m.shard(key)
	shard.Lock()
	shard.pids[key] = pid
	shard.Unlock()
}

// delete removes the given pid. It leaves an entry registered
// under the same path by another pid untouched.
func (m *pidMap) delete(pid *PID) {
	key := pid.Path().String()
	shard := m.shard(key)
	shard.Lock()
	if current, ok := shard.pids[key]; ok && current == pid {
		delete(shard.pids, key)
	}
	shard.Unlock()
}

// pids returns all actors as a slice
func (m *pidMap) pids() []*PID {
	out := make([]*PID, 0, m.len())
	for _, shard := range m.shards {
		shard.RLock()
		for _, pid := range shard.pids {
			out = append(out, pid)
		}
		shard.RUnlock()
	}
	return out
}
