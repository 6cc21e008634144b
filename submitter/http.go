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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HttpSubmitter submits governance actions to a chain gateway over
// HTTP JSON. The gateway exposes POST endpoints for proposals, votes,
// and delegations and acknowledges each with a Result payload.
type HttpSubmitter struct {
	baseURL    string
	httpClient *http.Client
}

// HttpSubmitterOption is a functional option for configuring an
// HttpSubmitter
type HttpSubmitterOption func(*HttpSubmitter)

// WithHTTPClient sets a custom *http.Client for the submitter
func WithHTTPClient(hc *http.Client) HttpSubmitterOption {
	return func(s *HttpSubmitter) {
		if hc != nil {
			s.httpClient = hc
		}
	}
}

// NewHttpSubmitter creates a submitter against the given gateway base
// URL (e.g. "https://chain-gateway.example.com/governance")
func NewHttpSubmitter(
	baseURL string,
	opts ...HttpSubmitterOption,
) *HttpSubmitter {
	s := &HttpSubmitter{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitProposal corresponds to POST /proposals
func (s *HttpSubmitter) SubmitProposal(
	ctx context.Context,
	submission ProposalSubmission,
) (*Result, error) {
	return s.doPost(ctx, s.baseURL+"/proposals", submission)
}

// SubmitVote corresponds to POST /votes
func (s *HttpSubmitter) SubmitVote(
	ctx context.Context,
	submission VoteSubmission,
) (*Result, error) {
	return s.doPost(ctx, s.baseURL+"/votes", submission)
}

// SubmitDelegation corresponds to POST /delegations
func (s *HttpSubmitter) SubmitDelegation(
	ctx context.Context,
	submission DelegationSubmission,
) (*Result, error) {
	return s.doPost(ctx, s.baseURL+"/delegations", submission)
}

// doPost performs an HTTP POST with a JSON body and decodes the
// gateway's acknowledgement
func (s *HttpSubmitter) doPost(
	ctx context.Context,
	reqURL string,
	payload any,
) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		reqURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	if resp == nil || resp.Body == nil {
		return nil, errors.New("nil response from gateway")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK &&
		resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(
			io.LimitReader(resp.Body, 1024),
		)
		return nil, fmt.Errorf(
			"unexpected status %d: %s",
			resp.StatusCode,
			string(bodyBytes),
		)
	}
	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &result, nil
}
