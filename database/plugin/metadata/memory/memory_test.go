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
	"testing"
	"time"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProposal(t *testing.T) {
	store := New(nil)
	defer store.Close() //nolint:errcheck

	missing, err := store.GetProposal("nope", nil)
	require.NoError(t, err)
	assert.Nil(t, missing)

	proposal := &models.Proposal{
		ID:       "prop-1",
		Proposer: "0xabc",
		Status:   "pending",
	}
	require.NoError(t, store.SetProposal(proposal, nil))

	// The store holds a copy, not the caller's pointer
	proposal.Status = "active"
	fetched, err := store.GetProposal("prop-1", nil)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "pending", fetched.Status)

	require.NoError(t, store.SetProposal(proposal, nil))
	fetched, err = store.GetProposal("prop-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "active", fetched.Status)
}

func TestMemoryListProposals(t *testing.T) {
	store := New(nil)
	defer store.Close() //nolint:errcheck

	now := time.Now()
	emergency := true
	require.NoError(t, store.SetProposal(&models.Proposal{
		ID:        "prop-1",
		Proposer:  "0xaaa",
		CreatedAt: now.Add(-2 * time.Hour),
	}, nil))
	require.NoError(t, store.SetProposal(&models.Proposal{
		ID:        "prop-2",
		Proposer:  "0xbbb",
		Emergency: true,
		CreatedAt: now.Add(-time.Hour),
	}, nil))
	require.NoError(t, store.SetProposal(&models.Proposal{
		ID:        "prop-3",
		Proposer:  "0xaaa",
		CreatedAt: now,
	}, nil))

	proposals, err := store.ListProposals(models.ProposalFilter{}, nil)
	require.NoError(t, err)
	require.Len(t, proposals, 3)
	// Most recent first
	assert.Equal(t, "prop-3", proposals[0].ID)
	assert.Equal(t, "prop-1", proposals[2].ID)

	proposals, err = store.ListProposals(
		models.ProposalFilter{Proposer: "0xaaa"},
		nil,
	)
	require.NoError(t, err)
	assert.Len(t, proposals, 2)

	proposals, err = store.ListProposals(
		models.ProposalFilter{Emergency: &emergency},
		nil,
	)
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "prop-2", proposals[0].ID)
}

func TestMemoryVote(t *testing.T) {
	store := New(nil)
	defer store.Close() //nolint:errcheck

	vote := &models.Vote{
		ProposalID: "prop-1",
		Voter:      "0xabc",
		Choice:     models.VoteChoiceFor,
		Power:      100,
	}
	require.NoError(t, store.AddVote(vote, nil))
	err := store.AddVote(&models.Vote{
		ProposalID: "prop-1",
		Voter:      "0xabc",
		Choice:     models.VoteChoiceAgainst,
	}, nil)
	assert.ErrorIs(t, err, types.ErrDuplicateKey)

	fetched, err := store.GetVote("prop-1", "0xabc", nil)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, uint64(100), fetched.Power)

	votes, err := store.GetVotes("prop-1", nil)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
	votes, err = store.GetVotes("prop-2", nil)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestMemoryDelegation(t *testing.T) {
	store := New(nil)
	defer store.Close() //nolint:errcheck

	delegation := &models.Delegation{
		Delegator: "0xaaa",
		Delegatee: "0xbbb",
		Power:     500,
		Active:    true,
	}
	require.NoError(t, store.AddDelegation(delegation, nil))
	assert.NotZero(t, delegation.ID)

	active, err := store.GetActiveDelegation("0xaaa", nil)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "0xbbb", active.Delegatee)

	inbound, err := store.GetActiveDelegationsTo("0xbbb", nil)
	require.NoError(t, err)
	assert.Len(t, inbound, 1)

	now := time.Now()
	active.Active = false
	active.DeactivatedAt = &now
	require.NoError(t, store.UpdateDelegation(active, nil))

	none, err := store.GetActiveDelegation("0xaaa", nil)
	require.NoError(t, err)
	assert.Nil(t, none)

	err = store.UpdateDelegation(&models.Delegation{ID: 999}, nil)
	assert.ErrorIs(t, err, types.ErrRecordNotFound)
}
