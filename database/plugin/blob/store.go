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

package blob

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/agora/database/plugin/blob/badger"
	"github.com/prometheus/client_golang/prometheus"
)

// BlobStore is the storage boundary for content-addressed payloads:
// proposal content documents and advisory analysis blobs, keyed by
// content hash.
type BlobStore interface {
	Close() error
	Get([]byte) ([]byte, error)
	Put([]byte, []byte) error
}

// New returns the named blob store plugin. An empty dataDir selects
// in-memory storage.
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (BlobStore, error) {
	switch pluginName {
	case "badger", "":
		return badger.New(
			badger.WithDataDir(dataDir),
			badger.WithLogger(logger),
			badger.WithPromRegistry(promRegistry),
		)
	default:
		return nil, fmt.Errorf("unknown blob plugin: %s", pluginName)
	}
}
