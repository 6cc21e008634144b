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

// Package submitter provides the chain submission collaborator
// boundary. Submissions are best-effort: callers invoke them with a
// bounded timeout after the authoritative local commit, and a failed
// submission surfaces as an unverified flag on the record rather than
// an error on the operation.
package submitter

import "context"

// ProposalSubmission is the chain payload for a new proposal
type ProposalSubmission struct {
	Proposer    string   `json:"proposer"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Targets     []string `json:"targets"`
	Values      []uint64 `json:"values"`
	Calldatas   []string `json:"calldatas"`
	ContentHash string   `json:"contentHash"`
	Emergency   bool     `json:"emergency"`
}

// VoteSubmission is the chain payload for a cast vote
type VoteSubmission struct {
	ProposalId string `json:"proposalId"`
	Voter      string `json:"voter"`
	Choice     uint8  `json:"choice"`
	Power      uint64 `json:"power"`
	Reason     string `json:"reason,omitempty"`
}

// DelegationSubmission is the chain payload for a delegation change
type DelegationSubmission struct {
	Delegator string `json:"delegator"`
	Delegatee string `json:"delegatee,omitempty"`
	Power     uint64 `json:"power"`
	Active    bool   `json:"active"`
}

// Result is the chain's acknowledgement of a submission. AssignedId is
// only populated for proposal submissions when the chain assigns its
// own identifier.
type Result struct {
	Success    bool   `json:"success"`
	TxId       string `json:"txId"`
	AssignedId string `json:"assignedId,omitempty"`
}

// Submitter submits governance actions to the chain. Implementations
// must honor context cancellation; callers always pass a deadline.
type Submitter interface {
	SubmitProposal(
		ctx context.Context,
		submission ProposalSubmission,
	) (*Result, error)
	SubmitVote(
		ctx context.Context,
		submission VoteSubmission,
	) (*Result, error)
	SubmitDelegation(
		ctx context.Context,
		submission DelegationSubmission,
	) (*Result, error)
}
