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
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/submitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress(b byte) string {
	return "0x" + strings.Repeat(fmt.Sprintf("%02x", b), 20)
}

var (
	addrAlice   = testAddress(0xa1)
	addrBob     = testAddress(0xb2)
	addrCarol   = testAddress(0xc3)
	addrDave    = testAddress(0xd4)
	addrNobody  = testAddress(0xee)
	addrTarget  = testAddress(0x77)
	testReason  = "looks reasonable"
	longEnough  = strings.Repeat("a description that satisfies the minimum length ", 3)
	validTitle  = "A valid proposal title"
	testPowers  = map[string]uint64{
		addrAlice: 500,
		addrBob:   100,
		addrCarol: 50,
		addrDave:  350,
	}
)

func defaultTestParams() Params {
	return Params{
		VotingDelay:           0,
		VotingPeriod:          time.Hour,
		EmergencyVotingDelay:  0,
		EmergencyVotingPeriod: 30 * time.Minute,
		QuorumFraction:        0.04,
		ProposalThreshold:     100,
		SubmitTimeout:         time.Second,
		TotalPowerTTL:         time.Millisecond,
	}
}

func newTestService(
	t *testing.T,
	powers map[string]uint64,
	params Params,
) (*Service, *submitter.MockSubmitter) {
	t.Helper()
	db, err := database.New(&database.Config{
		MetadataPlugin: "memory",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	mock := submitter.NewMockSubmitter()
	service := NewService(Config{
		Database:    db,
		PowerSource: NewStaticPowerSource(powers),
		Submitter:   mock,
		Params:      params,
	})
	return service, mock
}

func createTestProposal(
	t *testing.T,
	service *Service,
	proposer string,
) string {
	t.Helper()
	receipt, err := service.CreateProposal(
		context.Background(),
		CreateProposalParams{
			Proposer:    proposer,
			Title:       validTitle,
			Description: longEnough,
			Targets:     []string{addrTarget},
			Values:      []uint64{0},
			Calldatas:   []string{"0xdeadbeef"},
		},
	)
	require.NoError(t, err)
	return receipt.ProposalId
}

// closeVoting moves a proposal's end time into the past so outcome
// derivation can be observed without waiting out the voting period
func closeVoting(t *testing.T, service *Service, proposalId string) {
	t.Helper()
	proposal, err := service.proposals.Get(proposalId, nil)
	require.NoError(t, err)
	proposal.EndTime = time.Now().Add(-time.Minute)
	require.NoError(t, service.proposals.Put(proposal, nil))
}

func TestCreateProposalValidation(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()

	_, err := service.CreateProposal(ctx, CreateProposalParams{
		Proposer:    "not-an-address",
		Title:       validTitle,
		Description: longEnough,
	})
	var invalidAddr *InvalidAddressError
	require.ErrorAs(t, err, &invalidAddr)

	_, err = service.CreateProposal(ctx, CreateProposalParams{
		Proposer:    addrAlice,
		Title:       "short",
		Description: longEnough,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)

	_, err = service.CreateProposal(ctx, CreateProposalParams{
		Proposer:    addrAlice,
		Title:       validTitle,
		Description: "too short",
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "description", validationErr.Field)

	_, err = service.CreateProposal(ctx, CreateProposalParams{
		Proposer:    addrAlice,
		Title:       validTitle,
		Description: longEnough,
		Targets:     []string{addrTarget},
		Values:      []uint64{0, 1},
		Calldatas:   []string{"0x00"},
	})
	require.ErrorAs(t, err, &validationErr)
}

func TestCreateProposalThreshold(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()

	// Carol's 50 is below the threshold of 100
	_, err := service.CreateProposal(ctx, CreateProposalParams{
		Proposer:    addrCarol,
		Title:       validTitle,
		Description: longEnough,
	})
	var insufficientErr *InsufficientProposalPowerError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, uint64(50), insufficientErr.Power)

	// Emergency proposals bypass the threshold
	receipt, err := service.CreateProposal(ctx, CreateProposalParams{
		Proposer:    addrCarol,
		Title:       validTitle,
		Description: longEnough,
		Emergency:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, receipt.Status)
}

func TestCreateProposalSubmission(t *testing.T) {
	service, mock := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()

	receipt, err := service.CreateProposal(ctx, CreateProposalParams{
		Proposer:    addrAlice,
		Title:       validTitle,
		Description: longEnough,
	})
	require.NoError(t, err)
	assert.True(t, receipt.BlockchainVerified)
	assert.NotEmpty(t, receipt.TxId)

	// Chain failure never blocks the logical proposal
	mock.SetFail(true)
	receipt, err = service.CreateProposal(ctx, CreateProposalParams{
		Proposer:    addrAlice,
		Title:       validTitle,
		Description: longEnough,
	})
	require.NoError(t, err)
	assert.False(t, receipt.BlockchainVerified)
	assert.Empty(t, receipt.TxId)
	detail, err := service.GetProposal(ctx, receipt.ProposalId)
	require.NoError(t, err)
	assert.False(t, detail.Proposal.BlockchainVerified)
}

func TestCastVoteScenarioSucceeded(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrAlice)

	for _, voteDef := range []struct {
		voter  string
		choice VoteChoice
	}{
		{addrAlice, VoteFor},
		{addrBob, VoteAgainst},
		{addrCarol, VoteAbstain},
	} {
		receipt, err := service.CastVote(
			ctx,
			proposalId,
			voteDef.voter,
			voteDef.choice,
			testReason,
		)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, receipt.Status)
	}

	closeVoting(t, service, proposalId)
	detail, err := service.GetProposal(ctx, proposalId)
	require.NoError(t, err)
	// Turnout 650 of 1000 clears the 4% quorum, for > against
	assert.Equal(t, StatusSucceeded, detail.Status)
	assert.Equal(t, uint64(500), detail.Proposal.ForVotes)
	assert.Equal(t, uint64(100), detail.Proposal.AgainstVotes)
	assert.Equal(t, uint64(50), detail.Proposal.AbstainVotes)

	// Vote conservation: tallies equal the sum of snapshotted powers
	var voteSum uint64
	for _, vote := range detail.Votes {
		voteSum += vote.Power
	}
	assert.Equal(
		t,
		detail.Proposal.ForVotes+detail.Proposal.AgainstVotes+
			detail.Proposal.AbstainVotes,
		voteSum,
	)
}

func TestCastVoteScenarioDefeated(t *testing.T) {
	powers := map[string]uint64{
		addrAlice: 10,
		addrDave:  990,
	}
	service, _ := newTestService(t, powers, defaultTestParams())
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrDave)

	_, err := service.CastVote(ctx, proposalId, addrAlice, VoteFor, "")
	require.NoError(t, err)

	closeVoting(t, service, proposalId)
	detail, err := service.GetProposal(ctx, proposalId)
	require.NoError(t, err)
	// Turnout 10 of 1000 misses the 4% quorum
	assert.Equal(t, StatusDefeated, detail.Status)
}

func TestCastVoteNoPower(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrAlice)

	_, err := service.CastVote(ctx, proposalId, addrNobody, VoteFor, "")
	require.ErrorIs(t, err, ErrNoVotingPower)

	// Tallies unchanged
	detail, err := service.GetProposal(ctx, proposalId)
	require.NoError(t, err)
	assert.Zero(t, detail.Proposal.ForVotes)
	assert.Empty(t, detail.Votes)
}

func TestCastVoteDouble(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrAlice)

	_, err := service.CastVote(ctx, proposalId, addrBob, VoteFor, "")
	require.NoError(t, err)
	_, err = service.CastVote(ctx, proposalId, addrBob, VoteAgainst, "")
	var alreadyVoted *AlreadyVotedError
	require.ErrorAs(t, err, &alreadyVoted)
	assert.Equal(t, addrBob, alreadyVoted.Voter)

	detail, err := service.GetProposal(ctx, proposalId)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), detail.Proposal.ForVotes)
	assert.Zero(t, detail.Proposal.AgainstVotes)
}

func TestCastVoteNotFound(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	_, err := service.CastVote(
		context.Background(),
		"no-such-proposal",
		addrBob,
		VoteFor,
		"",
	)
	require.ErrorIs(t, err, ErrProposalNotFound)
}

func TestCastVoteNotActive(t *testing.T) {
	params := defaultTestParams()
	params.VotingDelay = time.Hour
	service, _ := newTestService(t, testPowers, params)
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrAlice)

	// Proposal is still pending
	_, err := service.CastVote(ctx, proposalId, addrBob, VoteFor, "")
	var notActive *NotActiveError
	require.ErrorAs(t, err, &notActive)
	assert.Equal(t, StatusPending, notActive.Status)
}

func TestCastVoteAfterEnd(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrAlice)
	closeVoting(t, service, proposalId)

	_, err := service.CastVote(ctx, proposalId, addrBob, VoteFor, "")
	var notActive *NotActiveError
	require.ErrorAs(t, err, &notActive)
}

func TestCastVoteConcurrent(t *testing.T) {
	// Build a large voter set and cast all votes concurrently; the
	// tallies must exactly equal the sum of the recorded vote powers
	powers := make(map[string]uint64)
	voters := make([]string, 0, 50)
	for i := range 50 {
		addr := testAddress(byte(i + 1))
		powers[addr] = uint64(i + 1)
		voters = append(voters, addr)
	}
	powers[addrAlice] = 500
	service, _ := newTestService(t, powers, defaultTestParams())
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrAlice)

	var wg sync.WaitGroup
	for idx, voter := range voters {
		wg.Add(1)
		go func(idx int, voter string) {
			defer wg.Done()
			choice := VoteChoice(idx % 3) //nolint:gosec
			_, err := service.CastVote(ctx, proposalId, voter, choice, "")
			assert.NoError(t, err)
		}(idx, voter)
	}
	wg.Wait()

	detail, err := service.GetProposal(ctx, proposalId)
	require.NoError(t, err)
	require.Len(t, detail.Votes, len(voters))
	var voteSum uint64
	for _, vote := range detail.Votes {
		voteSum += vote.Power
	}
	assert.Equal(
		t,
		detail.Proposal.ForVotes+detail.Proposal.AgainstVotes+
			detail.Proposal.AbstainVotes,
		voteSum,
	)
}

func TestCastVoteConcurrentSameVoter(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrAlice)

	// Many concurrent attempts from one voter: exactly one succeeds
	const attempts = 10
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CastVote(ctx, proposalId, addrBob, VoteFor, "")
			results <- err
		}()
	}
	wg.Wait()
	close(results)
	var successes int
	for err := range results {
		if err == nil {
			successes++
		} else {
			var alreadyVoted *AlreadyVotedError
			assert.ErrorAs(t, err, &alreadyVoted)
		}
	}
	assert.Equal(t, 1, successes)

	detail, err := service.GetProposal(ctx, proposalId)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), detail.Proposal.ForVotes)
}

func TestVotePowerSnapshot(t *testing.T) {
	source := NewStaticPowerSource(testPowers)
	db, err := database.New(&database.Config{MetadataPlugin: "memory"})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	service := NewService(Config{
		Database:    db,
		PowerSource: source,
		Submitter:   submitter.NewMockSubmitter(),
		Params:      defaultTestParams(),
	})
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrAlice)

	receipt, err := service.CastVote(ctx, proposalId, addrBob, VoteFor, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), receipt.Power)

	// Later power changes never alter the recorded vote's weight
	source.SetPower(addrBob, 9999)
	detail, err := service.GetProposal(ctx, proposalId)
	require.NoError(t, err)
	require.Len(t, detail.Votes, 1)
	assert.Equal(t, uint64(100), detail.Votes[0].Power)
	assert.Equal(t, uint64(100), detail.Proposal.ForVotes)
}

func TestStatusMonotonicity(t *testing.T) {
	params := defaultTestParams()
	params.VotingDelay = 50 * time.Millisecond
	params.VotingPeriod = time.Hour
	service, _ := newTestService(t, testPowers, params)
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrAlice)

	detail, err := service.GetProposal(ctx, proposalId)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, detail.Status)

	time.Sleep(100 * time.Millisecond)
	detail, err = service.GetProposal(ctx, proposalId)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, detail.Status)

	_, err = service.CastVote(ctx, proposalId, addrAlice, VoteFor, "")
	require.NoError(t, err)
	closeVoting(t, service, proposalId)
	detail, err = service.GetProposal(ctx, proposalId)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, detail.Status)
}

func TestProposalLifecycleActions(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrAlice)

	// Queue requires a succeeded proposal
	_, err := service.QueueProposal(ctx, proposalId, addrAlice)
	var invalidTransition *InvalidTransitionError
	require.ErrorAs(t, err, &invalidTransition)

	_, err = service.CastVote(ctx, proposalId, addrAlice, VoteFor, "")
	require.NoError(t, err)
	closeVoting(t, service, proposalId)

	status, err := service.QueueProposal(ctx, proposalId, addrAlice)
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, status)

	status, err = service.ExecuteProposal(ctx, proposalId, addrAlice)
	require.NoError(t, err)
	assert.Equal(t, StatusExecuted, status)

	// Executed is terminal
	_, err = service.CancelProposal(ctx, proposalId, addrAlice)
	require.ErrorAs(t, err, &invalidTransition)
}

func TestCancelProposal(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()
	proposalId := createTestProposal(t, service, addrAlice)

	// Only the proposer may cancel
	_, err := service.CancelProposal(ctx, proposalId, addrBob)
	var notAuthorized *NotAuthorizedError
	require.ErrorAs(t, err, &notAuthorized)

	status, err := service.CancelProposal(ctx, proposalId, addrAlice)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, status)

	detail, err := service.GetProposal(ctx, proposalId)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, detail.Status)

	// Canceled is absorbing: no further votes
	_, err = service.CastVote(ctx, proposalId, addrBob, VoteFor, "")
	var notActive *NotActiveError
	require.ErrorAs(t, err, &notActive)
}

func TestListProposals(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()

	activeId := createTestProposal(t, service, addrAlice)
	closedId := createTestProposal(t, service, addrDave)
	_, err := service.CastVote(ctx, closedId, addrAlice, VoteFor, "")
	require.NoError(t, err)
	closeVoting(t, service, closedId)

	all, err := service.ListProposals(ctx, ListProposalsParams{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Status filter applies against the live status, not the stored
	// cache (the closed proposal still has "active" cached)
	active := StatusActive
	result, err := service.ListProposals(ctx, ListProposalsParams{
		Status: &active,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, activeId, result[0].Proposal.ID)

	succeeded := StatusSucceeded
	result, err = service.ListProposals(ctx, ListProposalsParams{
		Status: &succeeded,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, closedId, result[0].Proposal.ID)

	result, err = service.ListProposals(ctx, ListProposalsParams{
		Proposer: addrDave,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)

	result, err = service.ListProposals(ctx, ListProposalsParams{
		Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	result, err = service.ListProposals(ctx, ListProposalsParams{
		Limit:  10,
		Offset: 1,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)

	// Offset past the end yields an empty page, not an error
	result, err = service.ListProposals(ctx, ListProposalsParams{
		Offset: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestListProposalsInvalidPagination(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()
	createTestProposal(t, service, addrAlice)

	var validationErr *ValidationError
	_, err := service.ListProposals(ctx, ListProposalsParams{Offset: -1})
	require.Error(t, err)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "offset", validationErr.Field)

	_, err = service.ListProposals(ctx, ListProposalsParams{Limit: -5})
	require.Error(t, err)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "limit", validationErr.Field)
}

func TestProposalContentStorage(t *testing.T) {
	service, _ := newTestService(t, testPowers, defaultTestParams())
	ctx := context.Background()
	content := []byte("full proposal body with rationale and budget tables")

	receipt, err := service.CreateProposal(ctx, CreateProposalParams{
		Proposer:    addrAlice,
		Title:       validTitle,
		Description: longEnough,
		Content:     content,
	})
	require.NoError(t, err)

	detail, err := service.GetProposal(ctx, receipt.ProposalId)
	require.NoError(t, err)
	require.NotEmpty(t, detail.Proposal.ContentHash)
	stored, err := service.db.GetContent(detail.Proposal.ContentHash)
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}
