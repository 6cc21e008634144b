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

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrProposalNotFound = errors.New("proposal not found")

// Proposal represents a governance proposal and its vote tallies.
// Proposals have a lifecycle: pending -> active -> (succeeded) ->
// (queued) -> (executed) or defeated, with canceled and expired
// reachable from any non-terminal state. The stored status is a cached
// copy for query speed; the live status is always recomputed from
// timestamps and counters.
type Proposal struct {
	ID                 string `gorm:"primarykey;size:64"`
	Proposer           string `gorm:"index;size:64;not null"`
	Title              string `gorm:"size:256;not null"`
	Description        string `gorm:"not null"`
	Targets            string // JSON-encoded list of target addresses
	Values             string // JSON-encoded list of values
	Calldatas          string // JSON-encoded list of hex calldatas
	ContentHash        string `gorm:"size:64"`
	Emergency          bool   `gorm:"index;not null"`
	ForVotes           uint64 `gorm:"not null"`
	AgainstVotes       uint64 `gorm:"not null"`
	AbstainVotes       uint64 `gorm:"not null"`
	Status             string `gorm:"index;size:16;not null"` // cached, not authoritative
	TxID               string `gorm:"size:80"`
	BlockchainVerified bool   `gorm:"not null"`
	AnalysisHash       string `gorm:"size:64"`
	CreatedAt          time.Time
	StartTime          time.Time `gorm:"index;not null"`
	EndTime            time.Time `gorm:"index;not null"`
	CanceledAt         *time.Time
	QueuedAt           *time.Time
	ExecutedAt         *time.Time
}

// TableName returns the table name
func (Proposal) TableName() string {
	return "proposal"
}

// TargetList decodes the JSON-encoded target address list
func (p *Proposal) TargetList() ([]string, error) {
	return decodeStringList(p.Targets)
}

// ValueList decodes the JSON-encoded value list
func (p *Proposal) ValueList() ([]uint64, error) {
	if p.Values == "" {
		return nil, nil
	}
	var ret []uint64
	if err := json.Unmarshal([]byte(p.Values), &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// CalldataList decodes the JSON-encoded calldata list
func (p *Proposal) CalldataList() ([]string, error) {
	return decodeStringList(p.Calldatas)
}

func decodeStringList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var ret []string
	if err := json.Unmarshal([]byte(raw), &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// EncodeStringList encodes a string list for storage on a Proposal
func EncodeStringList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	buf, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// EncodeUint64List encodes a value list for storage on a Proposal
func EncodeUint64List(items []uint64) (string, error) {
	if items == nil {
		items = []uint64{}
	}
	buf, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
