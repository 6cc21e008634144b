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

package database

import (
	"testing"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(&Config{
		MetadataPlugin: "memory",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	return db
}

func TestDatabaseProposalNotFound(t *testing.T) {
	db := newTestDatabase(t)
	_, err := db.GetProposal("missing", nil)
	assert.ErrorIs(t, err, models.ErrProposalNotFound)
}

func TestDatabaseProposalRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	require.NoError(t, db.SetProposal(
		&models.Proposal{ID: "prop-1", Proposer: "0xabc"},
		nil,
	))
	proposal, err := db.GetProposal("prop-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", proposal.Proposer)
}

func TestDatabaseContent(t *testing.T) {
	db := newTestDatabase(t)
	body := []byte("full proposal body with supporting documents")
	hash, err := db.PutContent(body)
	require.NoError(t, err)
	assert.Equal(t, ContentHash(body), hash)
	assert.Len(t, hash, 64)

	fetched, err := db.GetContent(hash)
	require.NoError(t, err)
	assert.Equal(t, body, fetched)

	// Content and analysis payloads are keyed in separate namespaces
	_, err = db.GetAnalysis(hash)
	assert.Error(t, err)

	analysisHash, err := db.PutAnalysis(body)
	require.NoError(t, err)
	assert.Equal(t, hash, analysisHash)
	fetched, err = db.GetAnalysis(analysisHash)
	require.NoError(t, err)
	assert.Equal(t, body, fetched)
}

func TestDatabaseTransaction(t *testing.T) {
	db := newTestDatabase(t)
	txn := db.Transaction()
	require.NoError(t, db.SetProposal(
		&models.Proposal{ID: "prop-1", Proposer: "0xabc"},
		txn,
	))
	require.NoError(t, db.AddVote(&models.Vote{
		ProposalID: "prop-1",
		Voter:      "0xabc",
		Choice:     models.VoteChoiceFor,
		Power:      100,
	}, txn))
	require.NoError(t, txn.Commit())

	votes, err := db.GetVotes("prop-1", nil)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}
