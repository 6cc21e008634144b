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

package submitter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// MockSubmitter is an in-process Submitter for dev mode and tests. It
// acknowledges every submission with a synthetic transaction id unless
// failure mode is enabled.
type MockSubmitter struct {
	mu          sync.Mutex
	fail        bool
	txCounter   atomic.Uint64
	Proposals   []ProposalSubmission
	Votes       []VoteSubmission
	Delegations []DelegationSubmission
}

func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{}
}

// SetFail toggles failure mode: all subsequent submissions error
func (m *MockSubmitter) SetFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

func (m *MockSubmitter) SubmitProposal(
	ctx context.Context,
	submission ProposalSubmission,
) (*Result, error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.Proposals = append(m.Proposals, submission)
	m.mu.Unlock()
	return &Result{
		Success: true,
		TxId:    m.nextTxId(),
	}, nil
}

func (m *MockSubmitter) SubmitVote(
	ctx context.Context,
	submission VoteSubmission,
) (*Result, error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.Votes = append(m.Votes, submission)
	m.mu.Unlock()
	return &Result{
		Success: true,
		TxId:    m.nextTxId(),
	}, nil
}

func (m *MockSubmitter) SubmitDelegation(
	ctx context.Context,
	submission DelegationSubmission,
) (*Result, error) {
	if err := m.check(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.Delegations = append(m.Delegations, submission)
	m.mu.Unlock()
	return &Result{
		Success: true,
		TxId:    m.nextTxId(),
	}, nil
}

func (m *MockSubmitter) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("mock submitter failure")
	}
	return nil
}

func (m *MockSubmitter) nextTxId() string {
	return fmt.Sprintf("mock-tx-%d", m.txCounter.Add(1))
}
