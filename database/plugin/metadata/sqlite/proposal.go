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
	"gorm.io/gorm/clause"
)

// GetProposal retrieves a proposal by id. Returns nil if not found.
func (d *MetadataStoreSqlite) GetProposal(
	proposalId string,
	txn types.Txn,
) (*models.Proposal, error) {
	var proposal models.Proposal
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"id = ?",
		proposalId,
	).First(&proposal); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &proposal, nil
}

// SetProposal creates or updates a proposal.
func (d *MetadataStoreSqlite) SetProposal(
	proposal *models.Proposal,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	onConflict := clause.OnConflict{
		Columns: []clause.Column{
			{Name: "id"},
		},
		// Note: created_at and the voting window are NOT updated on
		// conflict. They are fixed at proposal creation; only tallies,
		// lifecycle markers, and chain submission results change.
		DoUpdates: clause.AssignmentColumns([]string{
			"for_votes",
			"against_votes",
			"abstain_votes",
			"status",
			"tx_id",
			"blockchain_verified",
			"analysis_hash",
			"canceled_at",
			"queued_at",
			"executed_at",
		}),
	}
	if result := db.Clauses(onConflict).Create(proposal); result.Error != nil {
		return result.Error
	}
	return nil
}

// ListProposals retrieves proposals matching the filter, most recent first.
func (d *MetadataStoreSqlite) ListProposals(
	filter models.ProposalFilter,
	txn types.Txn,
) ([]*models.Proposal, error) {
	var proposals []*models.Proposal
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	query := db.Order("created_at DESC")
	if filter.Proposer != "" {
		query = query.Where("proposer = ?", filter.Proposer)
	}
	if filter.Emergency != nil {
		query = query.Where("emergency = ?", *filter.Emergency)
	}
	if result := query.Find(&proposals); result.Error != nil {
		return nil, result.Error
	}
	return proposals, nil
}
