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

package models

import "time"

// VoteChoice constants represent the vote cast on a proposal.
const (
	VoteChoiceAgainst = 0
	VoteChoiceFor     = 1
	VoteChoiceAbstain = 2
)

// Vote represents a single vote cast on a governance proposal. The
// (proposal_id, voter) pair is unique and the voting power is frozen at
// cast time; later delegation changes never alter a recorded vote.
type Vote struct {
	ID         uint      `gorm:"primarykey"`
	ProposalID string    `gorm:"index:idx_vote_proposal;uniqueIndex:idx_vote_unique,priority:1;size:64;not null"`
	Voter      string    `gorm:"uniqueIndex:idx_vote_unique,priority:2;size:64;not null"`
	Choice     uint8     `gorm:"not null"` // 0=Against, 1=For, 2=Abstain
	Power      uint64    `gorm:"not null"` // snapshotted at cast time
	Reason     string    `gorm:"size:1024"`
	Signature  string    `gorm:"size:256"`
	CastAt     time.Time `gorm:"index;not null"`
}

// TableName returns the table name
func (Vote) TableName() string {
	return "vote"
}
