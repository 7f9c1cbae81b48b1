// Copyright 2026 The Brandgate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package presence tracks which accounts currently hold live connections.
//
// The registry is process-local. Entries are keyed by account id, not by
// connection: an account with several tabs open is online once, and stays
// online until its last connection drops or expires. State is advisory and
// rebuilt from scratch on restart; it must never feed authorization
// decisions.
package presence

import (
	"log/slog"
	"sync"
	"time"
)

// Registry tracks live connections per account. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry

	ttl  time.Duration
	stop chan struct{}
	once sync.Once
}

type entry struct {
	conns    map[string]struct{}
	lastSeen time.Time
}

// NewRegistry creates a registry whose entries expire ttl after the last
// heartbeat. A sweep goroutine runs until Stop is called.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 90 * time.Second
	}
	r := &Registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go r.sweep()
	return r
}

// Connect records a connection for an account. The same connection id may be
// reported again as a heartbeat; it only refreshes lastSeen.
func (r *Registry) Connect(accountID, connID string) {
	if accountID == "" || connID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[accountID]
	if !ok {
		e = &entry{conns: make(map[string]struct{})}
		r.entries[accountID] = e
	}
	e.conns[connID] = struct{}{}
	e.lastSeen = time.Now()
}

// Disconnect removes a connection. The account stays online while other
// connections remain.
func (r *Registry) Disconnect(accountID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[accountID]
	if !ok {
		return
	}
	delete(e.conns, connID)
	if len(e.conns) == 0 {
		delete(r.entries, accountID)
	}
}

// Online reports whether the account has at least one live connection.
func (r *Registry) Online(accountID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[accountID]
	return ok
}

// OnlineAccounts returns the ids of all accounts currently online.
func (r *Registry) OnlineAccounts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}

// PurgeExpired drops accounts whose last heartbeat is older than the TTL and
// returns how many were dropped. The sweep goroutine calls this periodically;
// it is exported for tests and manual triggers.
func (r *Registry) PurgeExpired(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := now.Add(-r.ttl)
	purged := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			purged++
		}
	}
	return purged
}

// Stop terminates the sweep goroutine. Idempotent.
func (r *Registry) Stop() {
	r.once.Do(func() { close(r.stop) })
}

func (r *Registry) sweep() {
	ticker := time.NewTicker(r.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			if n := r.PurgeExpired(now); n > 0 {
				slog.Debug("purged stale presence entries", "count", n)
			}
		}
	}
}
