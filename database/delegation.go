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
)

// GetActiveDelegation returns the active delegation for a delegator, or
// nil when the delegator is not currently delegating
func (d *Database) GetActiveDelegation(
	delegator string,
	txn *Txn,
) (*models.Delegation, error) {
	delegation, err := d.metadata.GetActiveDelegation(
		delegator,
		metadataTxn(txn),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get active delegation: %w", err)
	}
	return delegation, nil
}

// GetActiveDelegationsTo returns all active inbound delegations for a
// delegatee
func (d *Database) GetActiveDelegationsTo(
	delegatee string,
	txn *Txn,
) ([]*models.Delegation, error) {
	delegations, err := d.metadata.GetActiveDelegationsTo(
		delegatee,
		metadataTxn(txn),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get inbound delegations: %w", err)
	}
	return delegations, nil
}

// AddDelegation records a new delegation edge
func (d *Database) AddDelegation(
	delegation *models.Delegation,
	txn *Txn,
) error {
	if delegation == nil {
		return errors.New("delegation cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.Transaction()
		owned = true
		defer txn.Rollback() //nolint:errcheck
	}
	if err := d.metadata.AddDelegation(delegation, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to add delegation: %w", err)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit delegation: %w", err)
		}
	}
	return nil
}

// UpdateDelegation saves changes to an existing delegation edge
func (d *Database) UpdateDelegation(
	delegation *models.Delegation,
	txn *Txn,
) error {
	if delegation == nil {
		return errors.New("delegation cannot be nil")
	}
	owned := false
	if txn == nil {
		txn = d.Transaction()
		owned = true
		defer txn.Rollback() //nolint:errcheck
	}
	if err := d.metadata.UpdateDelegation(delegation, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to update delegation: %w", err)
	}
	if owned {
		if err := txn.Commit(); err != nil {
			return fmt.Errorf("failed to commit delegation: %w", err)
		}
	}
	return nil
}
