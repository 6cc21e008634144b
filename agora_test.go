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

package agora

import (
	"context"
	"testing"
	"time"

	"github.com/blinklabs-io/agora/governance"
	"github.com/blinklabs-io/agora/submitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestParams() governance.Params {
	return governance.Params{
		VotingPeriod:          time.Hour,
		EmergencyVotingPeriod: 30 * time.Minute,
		QuorumFraction:        0.04,
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	// No power source outside dev mode
	_, err := New(NewConfig(
		WithGovernanceParams(validTestParams()),
		WithSubmitter(submitter.NewMockSubmitter()),
	))
	require.Error(t, err)

	// No submitter or gateway outside dev mode
	_, err = New(NewConfig(
		WithGovernanceParams(validTestParams()),
		WithPowerSource(governance.NewStaticPowerSource(nil)),
	))
	require.Error(t, err)

	// Dev mode provides fallbacks for both
	a, err := New(NewConfig(
		WithGovernanceParams(validTestParams()),
		WithRunMode("dev"),
	))
	require.NoError(t, err)
	assert.NotNil(t, a)

	// Fully specified serve mode
	a, err = New(NewConfig(
		WithGovernanceParams(validTestParams()),
		WithPowerSource(governance.NewStaticPowerSource(nil)),
		WithChainGatewayURL("http://localhost:9999"),
	))
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestSetupTracing(t *testing.T) {
	a, err := New(NewConfig(
		WithGovernanceParams(validTestParams()),
		WithRunMode("dev"),
		WithTracing(true),
		WithTracingStdout(true),
	))
	require.NoError(t, err)

	// Exporters are lazy, so configuring the provider does not dial out
	require.NoError(t, a.setupTracing())
	require.NotNil(t, a.tracerProvider)
	assert.NoError(t, a.tracerProvider.Shutdown(context.Background()))
}

func TestNewValidatesParams(t *testing.T) {
	params := validTestParams()
	params.QuorumFraction = 1.5
	_, err := New(NewConfig(
		WithGovernanceParams(params),
		WithRunMode("dev"),
	))
	require.Error(t, err)

	params = validTestParams()
	params.VotingPeriod = 0
	_, err = New(NewConfig(
		WithGovernanceParams(params),
		WithRunMode("dev"),
	))
	require.Error(t, err)
}
