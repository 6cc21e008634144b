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

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/models"
)

// VoteChoice is the direction of a cast vote
type VoteChoice uint8

const (
	VoteAgainst VoteChoice = models.VoteChoiceAgainst
	VoteFor     VoteChoice = models.VoteChoiceFor
	VoteAbstain VoteChoice = models.VoteChoiceAbstain
)

func (c VoteChoice) String() string {
	switch c {
	case VoteAgainst:
		return "against"
	case VoteFor:
		return "for"
	case VoteAbstain:
		return "abstain"
	default:
		return "unknown"
	}
}

// Valid reports whether the choice is one of the defined directions
func (c VoteChoice) Valid() bool {
	return c <= VoteAbstain
}

// VoteLedger owns cast votes and enforces one vote per (proposal,
// voter). Votes are immutable once recorded.
type VoteLedger struct {
	db *database.Database
}

func NewVoteLedger(db *database.Database) *VoteLedger {
	return &VoteLedger{db: db}
}

// HasVoted reports whether the voter has already voted on the proposal
func (l *VoteLedger) HasVoted(
	proposalId string,
	voter string,
	txn *database.Txn,
) (bool, error) {
	vote, err := l.db.GetVote(proposalId, voter, txn)
	if err != nil {
		return false, err
	}
	return vote != nil, nil
}

// Record writes a vote with its power snapshot. The caller holds the
// proposal lock and supplies the transaction that also carries the
// matching tally increment, making the two writes atomic.
func (l *VoteLedger) Record(
	proposalId string,
	voter string,
	choice VoteChoice,
	power uint64,
	reason string,
	txn *database.Txn,
) (*models.Vote, error) {
	vote := &models.Vote{
		ProposalID: proposalId,
		Voter:      voter,
		Choice:     uint8(choice),
		Power:      power,
		Reason:     reason,
		CastAt:     time.Now(),
	}
	if err := l.db.AddVote(vote, txn); err != nil {
		return nil, err
	}
	return vote, nil
}

// VotesFor returns all votes on a proposal ordered by cast time
func (l *VoteLedger) VotesFor(
	proposalId string,
) ([]*models.Vote, error) {
	return l.db.GetVotes(proposalId, nil)
}
