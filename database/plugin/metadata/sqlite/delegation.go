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

// GetActiveDelegation retrieves the active delegation for a delegator.
// Returns nil if the delegator is not currently delegating.
func (d *MetadataStoreSqlite) GetActiveDelegation(
	delegator string,
	txn types.Txn,
) (*models.Delegation, error) {
	var delegation models.Delegation
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"delegator = ? AND active = ?",
		delegator,
		true,
	).First(&delegation); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &delegation, nil
}

// GetActiveDelegationsTo retrieves all active inbound delegations for a
// delegatee.
func (d *MetadataStoreSqlite) GetActiveDelegationsTo(
	delegatee string,
	txn types.Txn,
) ([]*models.Delegation, error) {
	var delegations []*models.Delegation
	db, err := d.resolveDB(txn)
	if err != nil {
		return nil, err
	}
	if result := db.Where(
		"delegatee = ? AND active = ?",
		delegatee,
		true,
	).Order("created_at ASC").Find(&delegations); result.Error != nil {
		return nil, result.Error
	}
	return delegations, nil
}

// AddDelegation records a new delegation edge.
func (d *MetadataStoreSqlite) AddDelegation(
	delegation *models.Delegation,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Create(delegation); result.Error != nil {
		return result.Error
	}
	return nil
}

// UpdateDelegation saves changes to an existing delegation edge. Used
// to deactivate a delegation; edges are never deleted.
func (d *MetadataStoreSqlite) UpdateDelegation(
	delegation *models.Delegation,
	txn types.Txn,
) error {
	db, err := d.resolveDB(txn)
	if err != nil {
		return err
	}
	if result := db.Save(delegation); result.Error != nil {
		return result.Error
	}
	return nil
}
