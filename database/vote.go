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
	"errors"
	"fmt"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/types"
)

// metadataTxn unwraps the metadata transaction handle from an optional
// database transaction
func metadataTxn(txn *Txn) types.Txn {
	if txn == nil {
		return nil
	}
	return txn.Metadata()
}

// GetVote returns the vote cast by a voter on a proposal, or nil when
// the voter has not voted
func (d *Database) GetVote(
	proposalId string,
	voter string,
	txn *Txn,
) (*models.Vote, error) {
	vote, err := d.metadata.GetVote(proposalId, voter, metadataTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return vote, nil
}

// GetVotes returns all votes for a proposal ordered by cast time
func (d *Database) GetVotes(
	proposalId string,
	txn *Txn,
) ([]*models.Vote, error) {
	votes, err := d.metadata.GetVotes(proposalId, metadataTxn(txn))
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	return votes, nil
}

// AddVote records a vote on a proposal
func (d *Database) AddVote(
	vote *models.Vote,
	txn *Txn,
) error {
	if vote == nil {
		return errors.New("vote cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.Transaction()
		owned = true
		defer txn.Rollback() //nolint:errcheck
	}
	if err := d.metadata.AddVote(vote, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to add vote: %w", err)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit vote: %w", err)
		}
	}
	return nil
}
