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

	"github.com/blinklabs-io/agora/event"
)

const (
	ProposalCreatedEventType  event.EventType = "governance.proposal_created"
	ProposalUpdatedEventType  event.EventType = "governance.proposal_updated"
	VoteCastEventType         event.EventType = "governance.vote_cast"
	DelegationChangeEventType event.EventType = "governance.delegation_change"
)

// ProposalCreatedEvent is the audit payload for a new proposal
type ProposalCreatedEvent struct {
	ProposalId string
	Proposer   string
	Title      string
	Emergency  bool
	StartTime  time.Time
	EndTime    time.Time
	TxId       string
	Verified   bool
}

// ProposalUpdatedEvent is the audit payload for an explicit lifecycle
// action (cancel/queue/execute)
type ProposalUpdatedEvent struct {
	ProposalId string
	Caller     string
	Status     string
}

// VoteCastEvent is the audit payload for a recorded vote
type VoteCastEvent struct {
	ProposalId string
	Voter      string
	Choice     string
	Power      uint64
	TxId       string
	Verified   bool
}

// DelegationChangeEvent is the audit payload for a delegation mutation
type DelegationChangeEvent struct {
	Delegator string
	Delegatee string
	Power     uint64
	Active    bool
	TxId      string
	Verified  bool
}
