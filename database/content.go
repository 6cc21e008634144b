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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Blob key prefixes
const (
	contentKeyPrefix  = "content/"
	analysisKeyPrefix = "analysis/"
)

// ContentHash returns the hex-encoded SHA-256 digest used to key a
// content payload in the blob store
func ContentHash(body []byte) string {
	digest := sha256.Sum256(body)
	return hex.EncodeToString(digest[:])
}

// PutContent stores a content payload under its hash and returns the hash
func (d *Database) PutContent(body []byte) (string, error) {
	hash := ContentHash(body)
	key := []byte(contentKeyPrefix + hash)
	if err := d.blob.Put(key, body); err != nil {
		return "", fmt.Errorf("failed to store content: %w", err)
	}
	return hash, nil
}

// GetContent retrieves a content payload by hash
func (d *Database) GetContent(hash string) ([]byte, error) {
	ret, err := d.blob.Get([]byte(contentKeyPrefix + hash))
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return ret, nil
}

// PutAnalysis stores an advisory analysis payload under its hash and
// returns the hash
func (d *Database) PutAnalysis(body []byte) (string, error) {
	hash := ContentHash(body)
	key := []byte(analysisKeyPrefix + hash)
	if err := d.blob.Put(key, body); err != nil {
		return "", fmt.Errorf("failed to store analysis: %w", err)
	}
	return hash, nil
}

// GetAnalysis retrieves an advisory analysis payload by hash
func (d *Database) GetAnalysis(hash string) ([]byte, error) {
	ret, err := d.blob.Get([]byte(analysisKeyPrefix + hash))
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return ret, nil
}
