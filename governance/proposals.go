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

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/models"
)

// ProposalStore owns proposal records and their tallies. It is the
// unit of serialization for concurrent mutation: all writes touching a
// given proposal id go through WithLock.
type ProposalStore struct {
	db    *database.Database
	locks *keyedMutex
}

func NewProposalStore(db *database.Database) *ProposalStore {
	return &ProposalStore{
		db:    db,
		locks: newKeyedMutex(),
	}
}

// WithLock runs fn while holding the lock for the given proposal id
func (s *ProposalStore) WithLock(proposalId string, fn func() error) error {
	s.locks.Lock(proposalId)
	defer s.locks.Unlock(proposalId)
	return fn()
}

// Get returns a proposal record by id
func (s *ProposalStore) Get(
	proposalId string,
	txn *database.Txn,
) (*models.Proposal, error) {
	proposal, err := s.db.GetProposal(proposalId, txn)
	if err != nil {
		if errors.Is(err, models.ErrProposalNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return proposal, nil
}

// Put creates or updates a proposal record
func (s *ProposalStore) Put(
	proposal *models.Proposal,
	txn *database.Txn,
) error {
	return s.db.SetProposal(proposal, txn)
}

// List returns stored proposals matching the filter, most recent first
func (s *ProposalStore) List(
	filter models.ProposalFilter,
) ([]*models.Proposal, error) {
	return s.db.ListProposals(filter, nil)
}

// ApplyVote increments the tally counter matching the vote choice.
// Counters only ever increase.
func ApplyVote(proposal *models.Proposal, choice VoteChoice, power uint64) {
	switch choice {
	case VoteFor:
		proposal.ForVotes += power
	case VoteAgainst:
		proposal.AgainstVotes += power
	case VoteAbstain:
		proposal.AbstainVotes += power
	}
}
