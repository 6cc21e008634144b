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

package models

import "time"

// Delegation represents a voting power delegation edge. A delegator has
// at most one active delegation at a time; replaced delegations are
// deactivated rather than deleted to preserve the audit trail.
type Delegation struct {
	ID            uint      `gorm:"primarykey"`
	Delegator     string    `gorm:"index:idx_delegation_delegator;size:64;not null"`
	Delegatee     string    `gorm:"index:idx_delegation_delegatee;size:64;not null"`
	Power         uint64    `gorm:"not null"` // snapshotted at delegation time
	Active        bool      `gorm:"index;not null"`
	TxID          string    `gorm:"size:80"`
	CreatedAt     time.Time `gorm:"not null"`
	DeactivatedAt *time.Time
}

// TableName returns the table name
func (Delegation) TableName() string {
	return "delegation"
}
