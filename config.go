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
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/blinklabs-io/agora/analysis"
	"github.com/blinklabs-io/agora/governance"
	"github.com/blinklabs-io/agora/submitter"
	"github.com/prometheus/client_golang/prometheus"
)

// runMode constants for operational mode configuration
const (
	runModeServe = "serve"
	runModeDev   = "dev"
)

type Config struct {
	promRegistry    prometheus.Registerer
	logger          *slog.Logger
	powerSource     governance.PowerSource
	submitter       submitter.Submitter
	analyzer        analysis.Analyzer
	dataDir         string
	blobPlugin      string
	metadataPlugin  string
	chainGatewayURL string
	runMode         string
	staticPowers    map[string]uint64
	params          governance.Params
	tracing         bool
	tracingStdout   bool
}

// isDevMode returns true if running in development mode
func (c *Config) isDevMode() bool {
	return c.runMode == runModeDev
}

func (a *Agora) configValidate() error {
	cfg := &a.config
	if cfg.params.QuorumFraction < 0 || cfg.params.QuorumFraction > 1 {
		return fmt.Errorf(
			"invalid quorum fraction: %f",
			cfg.params.QuorumFraction,
		)
	}
	if cfg.params.VotingPeriod <= 0 {
		return errors.New("voting period must be positive")
	}
	if cfg.params.EmergencyVotingPeriod <= 0 {
		return errors.New("emergency voting period must be positive")
	}
	if cfg.powerSource == nil && !cfg.isDevMode() {
		return errors.New("no voting power source configured")
	}
	if cfg.submitter == nil && cfg.chainGatewayURL == "" &&
		!cfg.isDevMode() {
		return errors.New("no chain submitter or gateway URL configured")
	}
	return nil
}

// ConfigOptionFunc is a type that represents functions that modify the Agora config
type ConfigOptionFunc func(*Config)

// NewConfig creates a new agora config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		// Default logger will throw away logs
		// We do this so we don't have to add guards around every log operation
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		runMode: runModeServe,
	}
	// Apply options
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger specifies the logger to use. This defaults to discarding log output
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithDatabasePath specifies the persistent data directory to use. The default is to store everything in memory
func WithDatabasePath(dataDir string) ConfigOptionFunc {
	return func(c *Config) {
		c.dataDir = dataDir
	}
}

// WithBlobPlugin specifies the blob storage plugin to use.
func WithBlobPlugin(plugin string) ConfigOptionFunc {
	return func(c *Config) {
		c.blobPlugin = plugin
	}
}

// WithMetadataPlugin specifies the metadata storage plugin to use.
func WithMetadataPlugin(plugin string) ConfigOptionFunc {
	return func(c *Config) {
		c.metadataPlugin = plugin
	}
}

// WithPrometheusRegistry specifies a prometheus.Registerer instance to add metrics to. In most cases, prometheus.DefaultRegistry would be
// a good choice to get metrics working
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithPowerSource specifies the voting power source. Required outside
// of dev mode
func WithPowerSource(source governance.PowerSource) ConfigOptionFunc {
	return func(c *Config) {
		c.powerSource = source
	}
}

// WithStaticPowers specifies a fixed base power table. Used by dev mode
// when no external power source is configured
func WithStaticPowers(powers map[string]uint64) ConfigOptionFunc {
	return func(c *Config) {
		c.staticPowers = powers
	}
}

// WithSubmitter specifies the chain submission collaborator, overriding
// any configured gateway URL
func WithSubmitter(sub submitter.Submitter) ConfigOptionFunc {
	return func(c *Config) {
		c.submitter = sub
	}
}

// WithChainGatewayURL specifies the base URL of the chain gateway used
// for transaction submission
func WithChainGatewayURL(url string) ConfigOptionFunc {
	return func(c *Config) {
		c.chainGatewayURL = url
	}
}

// WithAnalyzer specifies the advisory analysis collaborator. Analysis
// is skipped when unset
func WithAnalyzer(analyzer analysis.Analyzer) ConfigOptionFunc {
	return func(c *Config) {
		c.analyzer = analyzer
	}
}

// WithGovernanceParams specifies the governance parameters (voting
// windows, quorum fraction, proposal threshold)
func WithGovernanceParams(params governance.Params) ConfigOptionFunc {
	return func(c *Config) {
		c.params = params
	}
}

// WithTracing enables tracing. By default, spans are submitted to a HTTP(s) endpoint using OTLP. This can be configured
// using the OTEL_EXPORTER_OTLP_* env vars documented in the README for [go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp]
func WithTracing(tracing bool) ConfigOptionFunc {
	return func(c *Config) {
		c.tracing = tracing
	}
}

// WithTracingStdout enables tracing output to stdout. This also requires tracing to enabled separately. This is mostly useful for debugging
func WithTracingStdout(stdout bool) ConfigOptionFunc {
	return func(c *Config) {
		c.tracingStdout = stdout
	}
}

// WithRunMode specifies the operational mode ("serve" or "dev")
func WithRunMode(mode string) ConfigOptionFunc {
	return func(c *Config) {
		c.runMode = mode
	}
}
