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
	"errors"
	"fmt"
)

var (
	// ErrProposalNotFound is returned when a proposal id is unknown
	ErrProposalNotFound = errors.New("proposal not found")
	// ErrNoVotingPower is returned when a voter has zero effective power
	// at cast time
	ErrNoVotingPower = errors.New("no voting power")
	// ErrSelfDelegation is returned when a delegator names themselves as
	// delegatee. Undelegation is a dedicated operation, never expressed
	// as delegating to self.
	ErrSelfDelegation = errors.New("cannot delegate to self")
	// ErrAlreadyDelegated is returned when an identical active
	// delegation already exists
	ErrAlreadyDelegated = errors.New("already delegated to this delegatee")
	// ErrNoActiveDelegation is returned by undelegation when the
	// delegator has no active delegation
	ErrNoActiveDelegation = errors.New("no active delegation")
)

// InvalidAddressError is returned when an identifier fails address
// validation
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address: %s", e.Address)
}

// ValidationError is returned when proposal content constraints are
// violated
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotActiveError is returned when a vote is attempted outside the
// proposal's active voting window
type NotActiveError struct {
	ProposalId string
	Status     Status
}

func (e *NotActiveError) Error() string {
	return fmt.Sprintf(
		"proposal %s is not active for voting: status=%s",
		e.ProposalId,
		e.Status,
	)
}

// AlreadyVotedError is returned when a voter attempts a second vote on
// the same proposal
type AlreadyVotedError struct {
	ProposalId string
	Voter      string
}

func (e *AlreadyVotedError) Error() string {
	return fmt.Sprintf(
		"voter %s has already voted on proposal %s",
		e.Voter,
		e.ProposalId,
	)
}

// InsufficientProposalPowerError is returned when a non-emergency
// proposer is below the proposal threshold
type InsufficientProposalPowerError struct {
	Power     uint64
	Threshold uint64
}

func (e *InsufficientProposalPowerError) Error() string {
	return fmt.Sprintf(
		"insufficient voting power to propose: power=%d, threshold=%d",
		e.Power,
		e.Threshold,
	)
}

// NotAuthorizedError is returned when a lifecycle action is attempted
// by a caller other than the proposer
type NotAuthorizedError struct {
	ProposalId string
	Caller     string
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf(
		"caller %s is not authorized to modify proposal %s",
		e.Caller,
		e.ProposalId,
	)
}

// InvalidTransitionError is returned when an explicit lifecycle action
// (cancel/queue/execute) is attempted from an incompatible status
type InvalidTransitionError struct {
	ProposalId string
	From       Status
	To         Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf(
		"proposal %s cannot transition from %s to %s",
		e.ProposalId,
		e.From,
		e.To,
	)
}
