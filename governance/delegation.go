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
	"time"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/database/models"
)

// DelegationRegistry owns the delegation edges between participants.
// It enforces one active delegation per delegator and computes
// effective voting power. Power delegated to a participant who has
// themselves delegated away is not forwarded: delegation resolves at
// most one hop.
type DelegationRegistry struct {
	db    *database.Database
	power PowerSource
	locks *keyedMutex
}

func NewDelegationRegistry(
	db *database.Database,
	power PowerSource,
) *DelegationRegistry {
	return &DelegationRegistry{
		db:    db,
		power: power,
		locks: newKeyedMutex(),
	}
}

// Delegate deactivates any prior active delegation for the delegator,
// snapshots the delegator's current base power, and records a new
// active delegation. The snapshot is returned; it is frozen and does
// not track later changes to the delegator's base power.
func (r *DelegationRegistry) Delegate(
	ctx context.Context,
	delegator string,
	delegatee string,
) (*models.Delegation, error) {
	if !ValidAddress(delegator) {
		return nil, &InvalidAddressError{Address: delegator}
	}
	if !ValidAddress(delegatee) {
		return nil, &InvalidAddressError{Address: delegatee}
	}
	if delegator == delegatee {
		return nil, ErrSelfDelegation
	}
	r.locks.Lock(delegator)
	defer r.locks.Unlock(delegator)
	basePower, err := r.power.BasePower(ctx, delegator)
	if err != nil {
		return nil, fmt.Errorf("failed to get base power: %w", err)
	}
	txn := r.db.Transaction()
	defer txn.Rollback() //nolint:errcheck
	existing, err := r.db.GetActiveDelegation(delegator, txn)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Delegatee == delegatee {
			return nil, ErrAlreadyDelegated
		}
		// Replace: deactivate the prior edge, preserving history
		now := time.Now()
		existing.Active = false
		existing.DeactivatedAt = &now
		if err := r.db.UpdateDelegation(existing, txn); err != nil {
			return nil, err
		}
	}
	delegation := &models.Delegation{
		Delegator: delegator,
		Delegatee: delegatee,
		Power:     basePower,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := r.db.AddDelegation(delegation, txn); err != nil {
		return nil, err
	}
	if err := txn.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delegation: %w", err)
	}
	return delegation, nil
}

// Undelegate deactivates the delegator's active delegation and returns
// it, exposing the freed power snapshot and the former delegatee
func (r *DelegationRegistry) Undelegate(
	ctx context.Context,
	delegator string,
) (*models.Delegation, error) {
	if !ValidAddress(delegator) {
		return nil, &InvalidAddressError{Address: delegator}
	}
	r.locks.Lock(delegator)
	defer r.locks.Unlock(delegator)
	txn := r.db.Transaction()
	defer txn.Rollback() //nolint:errcheck
	existing, err := r.db.GetActiveDelegation(delegator, txn)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNoActiveDelegation
	}
	now := time.Now()
	existing.Active = false
	existing.DeactivatedAt = &now
	if err := r.db.UpdateDelegation(existing, txn); err != nil {
		return nil, err
	}
	if err := txn.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit undelegation: %w", err)
	}
	return existing, nil
}

// EffectivePower computes the power a participant can cast: zero while
// delegating away, otherwise their base power plus the snapshotted
// power of all active inbound delegations. The same figure gates
// proposal creation.
func (r *DelegationRegistry) EffectivePower(
	ctx context.Context,
	address string,
) (uint64, error) {
	if !ValidAddress(address) {
		return 0, &InvalidAddressError{Address: address}
	}
	outbound, err := r.db.GetActiveDelegation(address, nil)
	if err != nil {
		return 0, err
	}
	if outbound != nil {
		return 0, nil
	}
	basePower, err := r.power.BasePower(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("failed to get base power: %w", err)
	}
	inbound, err := r.inboundPower(address)
	if err != nil {
		return 0, err
	}
	return basePower + inbound, nil
}

// PowerBreakdown is the detailed voting power view for a participant
type PowerBreakdown struct {
	Address     string
	Base        uint64
	DelegatedIn uint64
	Effective   uint64
	// Delegatee is set when the participant is delegating away
	Delegatee string
}

// Power returns a participant's full voting power breakdown
func (r *DelegationRegistry) Power(
	ctx context.Context,
	address string,
) (*PowerBreakdown, error) {
	if !ValidAddress(address) {
		return nil, &InvalidAddressError{Address: address}
	}
	basePower, err := r.power.BasePower(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get base power: %w", err)
	}
	inbound, err := r.inboundPower(address)
	if err != nil {
		return nil, err
	}
	breakdown := &PowerBreakdown{
		Address:     address,
		Base:        basePower,
		DelegatedIn: inbound,
		Effective:   basePower + inbound,
	}
	outbound, err := r.db.GetActiveDelegation(address, nil)
	if err != nil {
		return nil, err
	}
	if outbound != nil {
		breakdown.Delegatee = outbound.Delegatee
		breakdown.Effective = 0
	}
	return breakdown, nil
}

func (r *DelegationRegistry) inboundPower(address string) (uint64, error) {
	inbound, err := r.db.GetActiveDelegationsTo(address, nil)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, delegation := range inbound {
		total += delegation.Power
	}
	return total, nil
}
