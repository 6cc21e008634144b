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
	"testing"
	"time"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/stretchr/testify/assert"
)

func testProposal(start, end time.Time) *models.Proposal {
	return &models.Proposal{
		ID:        "test-proposal",
		StartTime: start,
		EndTime:   end,
	}
}

func TestComputeStatusLifecycle(t *testing.T) {
	now := time.Now()
	start := now.Add(time.Hour)
	end := start.Add(time.Hour)
	proposal := testProposal(start, end)
	proposal.ForVotes = 500
	proposal.AgainstVotes = 100
	proposal.AbstainVotes = 50

	testDefs := []struct {
		name     string
		now      time.Time
		expected Status
	}{
		{"before start", now, StatusPending},
		{"at start", start, StatusActive},
		{"during window", start.Add(time.Minute), StatusActive},
		{"at end", end, StatusActive},
		{"after end", end.Add(time.Second), StatusSucceeded},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			status := ComputeStatus(proposal, testDef.now, 1000, 0.04, 0)
			assert.Equal(t, testDef.expected, status)
		})
	}
}

func TestComputeStatusQuorum(t *testing.T) {
	now := time.Now()
	end := now.Add(-time.Minute)
	start := end.Add(-time.Hour)

	// Turnout 650 of 1000 at 4% quorum, for > against
	proposal := testProposal(start, end)
	proposal.ForVotes = 500
	proposal.AgainstVotes = 100
	proposal.AbstainVotes = 50
	assert.Equal(
		t,
		StatusSucceeded,
		ComputeStatus(proposal, now, 1000, 0.04, 0),
	)

	// Turnout 10 of 1000 misses the 4% quorum
	proposal = testProposal(start, end)
	proposal.ForVotes = 10
	assert.Equal(
		t,
		StatusDefeated,
		ComputeStatus(proposal, now, 1000, 0.04, 0),
	)

	// Quorum met but for does not exceed against
	proposal = testProposal(start, end)
	proposal.ForVotes = 300
	proposal.AgainstVotes = 300
	assert.Equal(
		t,
		StatusDefeated,
		ComputeStatus(proposal, now, 1000, 0.04, 0),
	)

	// Turnout exactly at quorum counts
	proposal = testProposal(start, end)
	proposal.ForVotes = 40
	assert.Equal(
		t,
		StatusSucceeded,
		ComputeStatus(proposal, now, 1000, 0.04, 0),
	)
}

func TestComputeStatusMarkers(t *testing.T) {
	now := time.Now()
	start := now.Add(-2 * time.Hour)
	end := now.Add(-time.Hour)

	canceled := testProposal(start, end)
	canceledAt := now.Add(-90 * time.Minute)
	canceled.CanceledAt = &canceledAt
	assert.Equal(
		t,
		StatusCanceled,
		ComputeStatus(canceled, now, 1000, 0.04, 0),
	)

	queued := testProposal(start, end)
	queued.ForVotes = 500
	queuedAt := now.Add(-time.Minute)
	queued.QueuedAt = &queuedAt
	assert.Equal(
		t,
		StatusQueued,
		ComputeStatus(queued, now, 1000, 0.04, 0),
	)

	executed := testProposal(start, end)
	executed.QueuedAt = &queuedAt
	executedAt := now
	executed.ExecutedAt = &executedAt
	assert.Equal(
		t,
		StatusExecuted,
		ComputeStatus(executed, now, 1000, 0.04, 0),
	)
}

func TestComputeStatusStaleness(t *testing.T) {
	now := time.Now()
	end := now.Add(-2 * time.Hour)
	start := end.Add(-time.Hour)

	// Succeeded but never queued within the staleness window
	proposal := testProposal(start, end)
	proposal.ForVotes = 500
	assert.Equal(
		t,
		StatusSucceeded,
		ComputeStatus(proposal, now, 1000, 0.04, 0),
	)
	assert.Equal(
		t,
		StatusExpired,
		ComputeStatus(proposal, now, 1000, 0.04, time.Hour),
	)

	// Queued but never executed within the staleness window
	queued := testProposal(start, end)
	queued.ForVotes = 500
	queuedAt := now.Add(-90 * time.Minute)
	queued.QueuedAt = &queuedAt
	assert.Equal(
		t,
		StatusExpired,
		ComputeStatus(queued, now, 1000, 0.04, time.Hour),
	)

	// Defeated is terminal and never expires
	defeated := testProposal(start, end)
	assert.Equal(
		t,
		StatusDefeated,
		ComputeStatus(defeated, now, 1000, 0.04, time.Hour),
	)
}

func TestComputeStatusIdempotent(t *testing.T) {
	now := time.Now()
	proposal := testProposal(now.Add(-2*time.Hour), now.Add(-time.Hour))
	proposal.ForVotes = 500
	proposal.AgainstVotes = 100
	first := ComputeStatus(proposal, now, 1000, 0.04, 0)
	for range 10 {
		assert.Equal(
			t,
			first,
			ComputeStatus(proposal, now, 1000, 0.04, 0),
		)
	}
}

func TestStatusOrdering(t *testing.T) {
	// Repeated reads as time advances must be non-decreasing in the
	// ordering Pending < Active < Succeeded/Defeated
	assert.Less(t, StatusPending, StatusActive)
	assert.Less(t, StatusActive, StatusSucceeded)
	assert.Less(t, StatusActive, StatusDefeated)
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusExecuted.Terminal())
	assert.True(t, StatusCanceled.Terminal())
	assert.True(t, StatusExpired.Terminal())
	assert.True(t, StatusDefeated.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusActive.Terminal())
	assert.False(t, StatusSucceeded.Terminal())
	assert.False(t, StatusQueued.Terminal())
}
