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

package memory

import (
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/types"
)

// MetadataStoreMemory is a map-backed implementation of the metadata
// store. It is used when no persistence backend is configured and in
// tests. Records are copied on the way in and out so callers never
// share memory with the store.
type MetadataStoreMemory struct {
	logger      *slog.Logger
	proposals   map[string]*models.Proposal
	votes       map[string][]*models.Vote // keyed by proposal id, cast order
	delegations []*models.Delegation
	lastVoteId  uint
	lastDelegId uint
	mutex       sync.RWMutex
}

// memoryTxn implements types.Txn. The memory store applies writes
// immediately; transactions exist only to satisfy the store contract.
type memoryTxn struct{}

func (memoryTxn) Commit() error   { return nil }
func (memoryTxn) Rollback() error { return nil }

// New creates an empty in-memory metadata store.
func New(logger *slog.Logger) *MetadataStoreMemory {
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &MetadataStoreMemory{
		logger:    logger,
		proposals: make(map[string]*models.Proposal),
		votes:     make(map[string][]*models.Vote),
	}
}

// Close releases the store contents.
func (d *MetadataStoreMemory) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.proposals = make(map[string]*models.Proposal)
	d.votes = make(map[string][]*models.Vote)
	d.delegations = nil
	return nil
}

// Transaction returns a no-op transaction handle.
func (d *MetadataStoreMemory) Transaction() types.Txn {
	return memoryTxn{}
}

// GetProposal retrieves a proposal by id. Returns nil if not found.
func (d *MetadataStoreMemory) GetProposal(
	proposalId string,
	_ types.Txn,
) (*models.Proposal, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	proposal, ok := d.proposals[proposalId]
	if !ok {
		return nil, nil
	}
	ret := *proposal
	return &ret, nil
}

// SetProposal creates or updates a proposal.
func (d *MetadataStoreMemory) SetProposal(
	proposal *models.Proposal,
	_ types.Txn,
) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	tmp := *proposal
	d.proposals[proposal.ID] = &tmp
	return nil
}

// ListProposals retrieves proposals matching the filter, most recent first.
func (d *MetadataStoreMemory) ListProposals(
	filter models.ProposalFilter,
	_ types.Txn,
) ([]*models.Proposal, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	ret := []*models.Proposal{}
	for _, proposal := range d.proposals {
		if filter.Proposer != "" && proposal.Proposer != filter.Proposer {
			continue
		}
		if filter.Emergency != nil &&
			proposal.Emergency != *filter.Emergency {
			continue
		}
		tmp := *proposal
		ret = append(ret, &tmp)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].CreatedAt.After(ret[j].CreatedAt)
	})
	return ret, nil
}

// GetVote retrieves a vote by proposal id and voter. Returns nil if the
// voter has not voted on the proposal.
func (d *MetadataStoreMemory) GetVote(
	proposalId string,
	voter string,
	_ types.Txn,
) (*models.Vote, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	for _, vote := range d.votes[proposalId] {
		if vote.Voter == voter {
			ret := *vote
			return &ret, nil
		}
	}
	return nil, nil
}

// GetVotes retrieves all votes for a proposal ordered by cast time.
func (d *MetadataStoreMemory) GetVotes(
	proposalId string,
	_ types.Txn,
) ([]*models.Vote, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	votes := d.votes[proposalId]
	ret := make([]*models.Vote, 0, len(votes))
	for _, vote := range votes {
		tmp := *vote
		ret = append(ret, &tmp)
	}
	return ret, nil
}

// AddVote records a vote. Duplicate (proposal, voter) pairs are
// rejected to match the backed store's unique index.
func (d *MetadataStoreMemory) AddVote(
	vote *models.Vote,
	_ types.Txn,
) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	for _, existing := range d.votes[vote.ProposalID] {
		if existing.Voter == vote.Voter {
			return types.ErrDuplicateKey
		}
	}
	d.lastVoteId++
	tmp := *vote
	tmp.ID = d.lastVoteId
	vote.ID = tmp.ID
	d.votes[vote.ProposalID] = append(d.votes[vote.ProposalID], &tmp)
	return nil
}

// GetActiveDelegation retrieves the active delegation for a delegator.
// Returns nil if the delegator is not currently delegating.
func (d *MetadataStoreMemory) GetActiveDelegation(
	delegator string,
	_ types.Txn,
) (*models.Delegation, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	for _, delegation := range d.delegations {
		if delegation.Delegator == delegator && delegation.Active {
			ret := *delegation
			return &ret, nil
		}
	}
	return nil, nil
}

// GetActiveDelegationsTo retrieves all active inbound delegations for a
// delegatee.
func (d *MetadataStoreMemory) GetActiveDelegationsTo(
	delegatee string,
	_ types.Txn,
) ([]*models.Delegation, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	ret := []*models.Delegation{}
	for _, delegation := range d.delegations {
		if delegation.Delegatee == delegatee && delegation.Active {
			tmp := *delegation
			ret = append(ret, &tmp)
		}
	}
	return ret, nil
}

// AddDelegation records a new delegation edge.
func (d *MetadataStoreMemory) AddDelegation(
	delegation *models.Delegation,
	_ types.Txn,
) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.lastDelegId++
	tmp := *delegation
	tmp.ID = d.lastDelegId
	delegation.ID = tmp.ID
	d.delegations = append(d.delegations, &tmp)
	return nil
}

// UpdateDelegation saves changes to an existing delegation edge.
func (d *MetadataStoreMemory) UpdateDelegation(
	delegation *models.Delegation,
	_ types.Txn,
) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	for idx, existing := range d.delegations {
		if existing.ID == delegation.ID {
			tmp := *delegation
			d.delegations[idx] = &tmp
			return nil
		}
	}
	return types.ErrRecordNotFound
}
