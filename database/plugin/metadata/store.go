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

package metadata

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/agora/database/models"
	"github.com/blinklabs-io/agora/database/plugin/metadata/memory"
	"github.com/blinklabs-io/agora/database/plugin/metadata/sqlite"
	"github.com/blinklabs-io/agora/database/types"
	"github.com/prometheus/client_golang/prometheus"
)

// MetadataStore is the repository boundary for governance records.
// Implementations must be safe for concurrent use; serialization of
// read-modify-write sequences is the caller's responsibility.
type MetadataStore interface {
	// Database
	Close() error
	Transaction() types.Txn

	// Proposals
	GetProposal(string, types.Txn) (*models.Proposal, error)
	SetProposal(*models.Proposal, types.Txn) error
	ListProposals(models.ProposalFilter, types.Txn) ([]*models.Proposal, error)

	// Votes
	GetVote(
		string, // proposalId
		string, // voter
		types.Txn,
	) (*models.Vote, error)
	GetVotes(
		string, // proposalId
		types.Txn,
	) ([]*models.Vote, error)
	AddVote(*models.Vote, types.Txn) error

	// Delegations
	GetActiveDelegation(
		string, // delegator
		types.Txn,
	) (*models.Delegation, error)
	GetActiveDelegationsTo(
		string, // delegatee
		types.Txn,
	) ([]*models.Delegation, error)
	AddDelegation(*models.Delegation, types.Txn) error
	UpdateDelegation(*models.Delegation, types.Txn) error
}

// New returns the named metadata store plugin. An empty dataDir selects
// in-memory storage for the sqlite plugin.
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	switch pluginName {
	case "sqlite", "":
		return sqlite.New(dataDir, logger, promRegistry)
	case "memory":
		return memory.New(logger), nil
	default:
		return nil, fmt.Errorf("unknown metadata plugin: %s", pluginName)
	}
}
