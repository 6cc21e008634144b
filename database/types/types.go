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

package types

import "errors"

// Txn represents a store transaction. Implementations wrap the backing
// store's native transaction type; callers treat it as opaque.
type Txn interface {
	Commit() error
	Rollback() error
}

// ErrNilTxn is returned when a nil transaction is passed to a store operation
var ErrNilTxn = errors.New("nil transaction")

// ErrTxnWrongType is returned when a transaction from a different store
// implementation is passed to a store operation
var ErrTxnWrongType = errors.New("transaction is wrong type for store")

// ErrBlobKeyNotFound is returned by blob operations when a key is missing
var ErrBlobKeyNotFound = errors.New("blob key not found")

// ErrDuplicateKey is returned when an insert violates a uniqueness
// constraint
var ErrDuplicateKey = errors.New("duplicate key")

// ErrRecordNotFound is returned when an update targets a record that
// does not exist
var ErrRecordNotFound = errors.New("record not found")
