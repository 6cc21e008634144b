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
	"time"

	"github.com/blinklabs-io/agora/database/models"
)

// Status represents the lifecycle status of a proposal. The numeric
// ordering Pending < Active < Succeeded/Defeated matters: repeated
// status reads for the same proposal are non-decreasing as time
// advances
type Status int

const (
	StatusPending Status = iota
	StatusActive
	StatusSucceeded
	StatusDefeated
	StatusQueued
	StatusExecuted
	StatusCanceled
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	case StatusSucceeded:
		return "succeeded"
	case StatusDefeated:
		return "defeated"
	case StatusQueued:
		return "queued"
	case StatusExecuted:
		return "executed"
	case StatusCanceled:
		return "canceled"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible from the
// status
func (s Status) Terminal() bool {
	switch s {
	case StatusExecuted, StatusCanceled, StatusExpired, StatusDefeated:
		return true
	default:
		return false
	}
}

// ComputeStatus derives a proposal's current status from its record,
// the wall-clock time, the total voting power in the system, and the
// quorum fraction. It is a pure function: recomputation from timestamps
// and counters is always authoritative, and a cached stored status is
// never trusted.
//
// A staleness window of zero disables the expiry fallback. When
// non-zero, a proposal that sits in Succeeded or Queued without
// progressing for longer than the window reads as Expired. The
// fallback applies only to those two states because they wait on an
// explicit queue or execute action that may never arrive; Pending and
// Active progress by time alone and cannot stall.
func ComputeStatus(
	proposal *models.Proposal,
	now time.Time,
	totalPower uint64,
	quorumFraction float64,
	stalenessWindow time.Duration,
) Status {
	// Explicit lifecycle markers take precedence over time-derived
	// states
	if proposal.CanceledAt != nil {
		return StatusCanceled
	}
	if proposal.ExecutedAt != nil {
		return StatusExecuted
	}
	if proposal.QueuedAt != nil {
		if stalenessWindow > 0 &&
			now.After(proposal.QueuedAt.Add(stalenessWindow)) {
			return StatusExpired
		}
		return StatusQueued
	}
	if now.Before(proposal.StartTime) {
		return StatusPending
	}
	if !now.After(proposal.EndTime) {
		return StatusActive
	}
	// Voting window has closed; decide the outcome
	turnout := proposal.ForVotes + proposal.AgainstVotes +
		proposal.AbstainVotes
	quorumMet := float64(turnout) >= float64(totalPower)*quorumFraction
	if quorumMet && proposal.ForVotes > proposal.AgainstVotes {
		if stalenessWindow > 0 &&
			now.After(proposal.EndTime.Add(stalenessWindow)) {
			// Succeeded but never queued within the staleness window
			return StatusExpired
		}
		return StatusSucceeded
	}
	return StatusDefeated
}
