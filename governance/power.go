// Copyright 2026 Blink Labs Software
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

package governance

import (
	"context"
	"sync"
	"time"
)

// PowerSource provides base (non-delegated) voting power per
// participant and the total voting power across all participants. The
// total is a real computed figure, never a placeholder constant; it
// feeds the quorum check in status derivation.
type PowerSource interface {
	BasePower(ctx context.Context, address string) (uint64, error)
	TotalPower(ctx context.Context) (uint64, error)
}

// StaticPowerSource is a map-backed PowerSource for dev mode and tests
type StaticPowerSource struct {
	mu     sync.RWMutex
	powers map[string]uint64
}

func NewStaticPowerSource(powers map[string]uint64) *StaticPowerSource {
	s := &StaticPowerSource{
		powers: make(map[string]uint64, len(powers)),
	}
	for addr, power := range powers {
		s.powers[addr] = power
	}
	return s
}

func (s *StaticPowerSource) BasePower(
	_ context.Context,
	address string,
) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.powers[address], nil
}

func (s *StaticPowerSource) TotalPower(
	_ context.Context,
) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total uint64
	for _, power := range s.powers {
		total += power
	}
	return total, nil
}

// SetPower updates a participant's base power. Intended for tests and
// dev harnesses.
func (s *StaticPowerSource) SetPower(address string, power uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.powers[address] = power
}

// totalPowerCache memoizes the system total voting power with a
// bounded staleness. Quorum checks tolerate a slightly stale total;
// they never tolerate an unbounded one.
type totalPowerCache struct {
	source    PowerSource
	ttl       time.Duration
	mu        sync.Mutex
	value     uint64
	fetchedAt time.Time
}

func newTotalPowerCache(
	source PowerSource,
	ttl time.Duration,
) *totalPowerCache {
	return &totalPowerCache{
		source: source,
		ttl:    ttl,
	}
}

func (c *totalPowerCache) get(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl {
		return c.value, nil
	}
	total, err := c.source.TotalPower(ctx)
	if err != nil {
		// Serve the stale value rather than failing the read when we
		// have one
		if !c.fetchedAt.IsZero() {
			return c.value, nil
		}
		return 0, err
	}
	c.value = total
	c.fetchedAt = time.Now()
	return total, nil
}
