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
	"sync"

	"github.com/blinklabs-io/agora/database/types"
)

// Txn wraps a metadata store transaction. Blob writes are
// content-addressed and idempotent, so they are not transactional.
type Txn struct {
	db          *Database
	metadataTxn types.Txn
	lock        sync.Mutex
	finished    bool
}

func NewTxn(db *Database) *Txn {
	t := &Txn{db: db}
	if ms := db.Metadata(); ms != nil {
		t.metadataTxn = ms.Transaction()
	}
	return t
}

func (t *Txn) DB() *Database {
	return t.db
}

// Metadata returns the underlying metadata transaction handle
func (t *Txn) Metadata() types.Txn {
	return t.metadataTxn
}

// Commit commits the wrapped transaction
func (t *Txn) Commit() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.finished {
		return nil
	}
	t.finished = true
	if t.metadataTxn != nil {
		return t.metadataTxn.Commit()
	}
	return nil
}

// Rollback aborts the wrapped transaction. Safe to call after Commit,
// which allows deferred rollback for early returns.
func (t *Txn) Rollback() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.finished {
		return nil
	}
	t.finished = true
	if t.metadataTxn != nil {
		return t.metadataTxn.Rollback()
	}
	return nil
}
