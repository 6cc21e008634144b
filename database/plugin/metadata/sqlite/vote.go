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

package sqlite

import (
	"errors"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/types"
	"gorm.io/gorm"
)

// GetVote retrieves a vote by proposal id and voter. Returns nil if the
// voter has not voted on the proposal.
func (d *MetadataStoreSqlite) GetVote(
	proposalId string,
	voter string,
	txn types.Txn,
) (*models.Vote, error) {
	var vote models.Vote
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"proposal_id = ? AND voter = ?",
		proposalId,
		voter,
	).First(&vote); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &vote, nil
}

// GetVotes retrieves all votes for a proposal ordered by cast time.
func (d *MetadataStoreSqlite) GetVotes(
	proposalId string,
	txn types.Txn,
) ([]*models.Vote, error) {
	var votes []*models.Vote
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"proposal_id = ?",
		proposalId,
	).Order("cast_at ASC").Find(&votes); result.Error != nil {
		return nil, result.Error
	}
	return votes, nil
}

// AddVote records a vote. Votes are immutable, so there is no upsert;
// the unique index on (proposal_id, voter) rejects duplicates.
func (d *MetadataStoreSqlite) AddVote(
	vote *models.Vote,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(vote); result.Error != nil {
		return result.Error
	}
	return nil
}
