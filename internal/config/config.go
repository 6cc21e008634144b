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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blinklabs-io/agora/governance"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "agora.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

const (
	DefaultBlobPlugin     = "badger"
	DefaultMetadataPlugin = "sqlite"
)

// RunMode represents the operational mode of the agora service
type RunMode string

const (
	RunModeServe RunMode = "serve" // Full service with a real chain gateway (default)
	RunModeDev   RunMode = "dev"   // Development mode (mock chain, static powers)
)

// Valid returns true if the RunMode is a known valid mode
func (m RunMode) Valid() bool {
	switch m {
	case RunModeServe, RunModeDev, "":
		return true
	default:
		return false
	}
}

// GovernanceConfig holds the governance parameters. Durations are
// strings parsed with time.ParseDuration.
type GovernanceConfig struct {
	VotingDelay           string  `yaml:"votingDelay"           envconfig:"AGORA_VOTING_DELAY"`
	VotingPeriod          string  `yaml:"votingPeriod"          envconfig:"AGORA_VOTING_PERIOD"`
	EmergencyVotingDelay  string  `yaml:"emergencyVotingDelay"  envconfig:"AGORA_EMERGENCY_VOTING_DELAY"`
	EmergencyVotingPeriod string  `yaml:"emergencyVotingPeriod" envconfig:"AGORA_EMERGENCY_VOTING_PERIOD"`
	StalenessWindow       string  `yaml:"stalenessWindow"       envconfig:"AGORA_STALENESS_WINDOW"`
	SubmitTimeout         string  `yaml:"submitTimeout"         envconfig:"AGORA_SUBMIT_TIMEOUT"`
	TotalPowerTTL         string  `yaml:"totalPowerTtl"         envconfig:"AGORA_TOTAL_POWER_TTL"`
	QuorumFraction        float64 `yaml:"quorumFraction"        envconfig:"AGORA_QUORUM_FRACTION"`
	ProposalThreshold     uint64  `yaml:"proposalThreshold"     envconfig:"AGORA_PROPOSAL_THRESHOLD"`
}

type Config struct {
	MetadataPlugin  string           `yaml:"metadataPlugin"  envconfig:"AGORA_DATABASE_METADATA_PLUGIN"`
	BlobPlugin      string           `yaml:"blobPlugin"      envconfig:"AGORA_DATABASE_BLOB_PLUGIN"`
	DatabasePath    string           `yaml:"databasePath"                                              split_words:"true"`
	BindAddr        string           `yaml:"bindAddr"                                                  split_words:"true"`
	ChainGatewayURL string           `yaml:"chainGatewayUrl" envconfig:"AGORA_CHAIN_GATEWAY_URL"`
	ShutdownTimeout string           `yaml:"shutdownTimeout"                                           split_words:"true"`
	RunMode         RunMode          `yaml:"runMode"         envconfig:"AGORA_RUN_MODE"`
	MetricsPort     uint             `yaml:"metricsPort"                                               split_words:"true"`
	Tracing         bool             `yaml:"tracing"                                                   split_words:"true"`
	TracingStdout   bool             `yaml:"tracingStdout"   envconfig:"AGORA_TRACING_STDOUT"`
	Governance      GovernanceConfig `yaml:"governance"`
	// Static base power table used by dev mode
	DevPowers map[string]uint64 `yaml:"devPowers"`
}

var globalConfig = &Config{
	DatabasePath:    ".agora",
	BindAddr:        "0.0.0.0",
	MetricsPort:     12798,
	BlobPlugin:      DefaultBlobPlugin,
	MetadataPlugin:  DefaultMetadataPlugin,
	RunMode:         RunModeServe,
	ShutdownTimeout: "30s",
	Governance: GovernanceConfig{
		VotingDelay:           "24h",
		VotingPeriod:          "168h",
		EmergencyVotingDelay:  "1h",
		EmergencyVotingPeriod: "24h",
		StalenessWindow:       "336h",
		SubmitTimeout:         "5s",
		TotalPowerTTL:         "30s",
		QuorumFraction:        0.04,
		ProposalThreshold:     1000,
	},
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.agora/agora.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".agora", "agora.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try to check for /etc/agora/agora.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/agora/agora.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		err = yaml.Unmarshal(buf, globalConfig)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Load config values from environment variables
	// We use "dummy" as the app name to (mostly) prevent picking up env
	// vars that we hadn't explicitly specified in annotations above
	err := envconfig.Process("dummy", globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	if !globalConfig.RunMode.Valid() {
		return nil, fmt.Errorf("invalid run mode: %s", globalConfig.RunMode)
	}

	return globalConfig, nil
}

// GetConfig returns the global config instance
func GetConfig() *Config {
	return globalConfig
}

// GovernanceParams converts the config's governance section into
// runtime parameters, parsing all duration strings
func (c *Config) GovernanceParams() (governance.Params, error) {
	var params governance.Params
	var err error
	durations := []struct {
		dst  *time.Duration
		name string
		raw  string
	}{
		{&params.VotingDelay, "votingDelay", c.Governance.VotingDelay},
		{&params.VotingPeriod, "votingPeriod", c.Governance.VotingPeriod},
		{
			&params.EmergencyVotingDelay,
			"emergencyVotingDelay",
			c.Governance.EmergencyVotingDelay,
		},
		{
			&params.EmergencyVotingPeriod,
			"emergencyVotingPeriod",
			c.Governance.EmergencyVotingPeriod,
		},
		{
			&params.StalenessWindow,
			"stalenessWindow",
			c.Governance.StalenessWindow,
		},
		{&params.SubmitTimeout, "submitTimeout", c.Governance.SubmitTimeout},
		{&params.TotalPowerTTL, "totalPowerTtl", c.Governance.TotalPowerTTL},
	}
	for _, duration := range durations {
		if duration.raw == "" {
			continue
		}
		*duration.dst, err = time.ParseDuration(duration.raw)
		if err != nil {
			return params, fmt.Errorf(
				"invalid %s: %w",
				duration.name,
				err,
			)
		}
	}
	params.QuorumFraction = c.Governance.QuorumFraction
	params.ProposalThreshold = c.Governance.ProposalThreshold
	return params, nil
}
