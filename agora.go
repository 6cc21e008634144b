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
	"errors"
	"fmt"
	"sync"

	"github.com/blinklabs-io/agora/database"
	"github.com/blinklabs-io/agora/event"
	"github.com/blinklabs-io/agora/governance"
	"github.com/blinklabs-io/agora/submitter"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Agora is a governance bookkeeping service: it records proposals,
// votes, and delegations, derives proposal outcomes, and mirrors each
// action to the chain on a best-effort basis
type Agora struct {
	config         Config
	eventBus       *event.EventBus
	db             *database.Database
	governance     *governance.Service
	tracerProvider *sdktrace.TracerProvider
	done           chan struct{}
	shutdownOnce   sync.Once
}

func New(cfg Config) (*Agora, error) {
	a := &Agora{
		config: cfg,
		done:   make(chan struct{}),
	}
	if err := a.configValidate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return a, nil
}

// Run starts the service and blocks until Stop is called
func (a *Agora) Run() error {
	// Configure tracing
	if a.config.tracing {
		if err := a.setupTracing(); err != nil {
			return err
		}
	}
	a.eventBus = event.NewEventBus(
		a.config.promRegistry,
		a.config.logger,
	)
	// Load database
	db, err := database.New(&database.Config{
		DataDir:        a.config.dataDir,
		Logger:         a.config.logger,
		PromRegistry:   a.config.promRegistry,
		BlobPlugin:     a.config.blobPlugin,
		MetadataPlugin: a.config.metadataPlugin,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.db = db
	// Resolve collaborators
	powerSource := a.config.powerSource
	if powerSource == nil {
		// Dev mode falls back to a static power table
		powerSource = governance.NewStaticPowerSource(a.config.staticPowers)
	}
	chainSubmitter := a.config.submitter
	if chainSubmitter == nil {
		if a.config.chainGatewayURL != "" {
			chainSubmitter = submitter.NewHttpSubmitter(
				a.config.chainGatewayURL,
			)
		} else {
			// Dev mode runs against a mock chain
			chainSubmitter = submitter.NewMockSubmitter()
		}
	}
	// Initialize governance service
	a.governance = governance.NewService(governance.Config{
		Logger:       a.config.logger,
		PromRegistry: a.config.promRegistry,
		EventBus:     a.eventBus,
		Database:     a.db,
		PowerSource:  powerSource,
		Submitter:    chainSubmitter,
		Analyzer:     a.config.analyzer,
		Params:       a.config.params,
	})
	a.config.logger.Info(
		"governance service started",
		"component", "agora",
		"run_mode", a.config.runMode,
		"data_dir", a.config.dataDir,
	)

	// Wait for shutdown signal
	<-a.done
	return nil
}

// Governance returns the governance service for use by a presentation
// layer. Only valid after Run has been called.
func (a *Agora) Governance() *governance.Service {
	return a.governance
}

// EventBus returns the audit event bus. Only valid after Run has been
// called.
func (a *Agora) EventBus() *event.EventBus {
	return a.eventBus
}

func (a *Agora) Stop() error {
	var err error
	a.shutdownOnce.Do(func() {
		err = a.shutdown()
	})
	return err
}

func (a *Agora) shutdown() error {
	var err error

	a.config.logger.Debug("starting graceful shutdown")

	// Stop delivering audit events before closing the stores so
	// subscribers drain cleanly
	if a.eventBus != nil {
		a.eventBus.Stop()
	}

	if a.db != nil {
		if closeErr := a.db.Close(); closeErr != nil {
			err = errors.Join(
				err,
				fmt.Errorf("database close: %w", closeErr),
			)
		}
	}

	// Flush any buffered trace spans
	if a.tracerProvider != nil {
		if shutdownErr := a.tracerProvider.Shutdown(
			context.Background(),
		); shutdownErr != nil {
			err = errors.Join(
				err,
				fmt.Errorf("tracer provider shutdown: %w", shutdownErr),
			)
		}
	}

	close(a.done)
	return err
}
