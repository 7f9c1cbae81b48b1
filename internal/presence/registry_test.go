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

package presence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_ConnectDisconnect(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Stop()

	assert.False(t, r.Online("a1"))

	r.Connect("a1", "c1")
	assert.True(t, r.Online("a1"))

	// Second connection keeps the account online after the first drops.
	r.Connect("a1", "c2")
	r.Disconnect("a1", "c1")
	assert.True(t, r.Online("a1"))

	r.Disconnect("a1", "c2")
	assert.False(t, r.Online("a1"))
}

func TestRegistry_DisconnectUnknown(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Stop()

	r.Disconnect("nobody", "c1")
	assert.False(t, r.Online("nobody"))
}

func TestRegistry_HeartbeatRefreshes(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Stop()

	r.Connect("a1", "c1")
	r.Connect("a1", "c1")
	assert.True(t, r.Online("a1"))
	assert.Equal(t, []string{"a1"}, r.OnlineAccounts())
}

func TestRegistry_PurgeExpired(t *testing.T) {
	r := NewRegistry(time.Minute)
	defer r.Stop()

	r.Connect("a1", "c1")
	r.Connect("a2", "c1")

	// Nothing is stale yet.
	assert.Zero(t, r.PurgeExpired(time.Now()))
	assert.True(t, r.Online("a1"))

	// Pretend the TTL elapsed.
	purged := r.PurgeExpired(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 2, purged)
	assert.False(t, r.Online("a1"))
	assert.False(t, r.Online("a2"))
	assert.Empty(t, r.OnlineAccounts())
}

func TestRegistry_StopIdempotent(t *testing.T) {
	r := NewRegistry(time.Minute)
	r.Stop()
	r.Stop()
}
