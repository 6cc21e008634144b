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

// Package analysis provides the optional advisory analysis
// collaborator. An analyzer produces an opaque payload for a proposal;
// an absent or failed analysis never blocks proposal creation.
package analysis

import "context"

// Request carries the proposal content to analyze
type Request struct {
	Title       string
	Description string
	Targets     []string
	Calldatas   []string
}

// Analyzer produces an opaque advisory payload for a proposal. A nil
// payload with a nil error means no analysis is available.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) ([]byte, error)
}

// NoopAnalyzer is an Analyzer that never produces a payload
type NoopAnalyzer struct{}

func (NoopAnalyzer) Analyze(
	_ context.Context,
	_ Request,
) ([]byte, error) {
	return nil, nil
}
