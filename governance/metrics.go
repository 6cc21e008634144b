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

package governance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type serviceMetrics struct {
	proposalsCreated  prometheus.Counter
	votesCast         prometheus.Counter
	delegationsActive prometheus.Gauge
	submitFailures    *prometheus.CounterVec
}

func newServiceMetrics(promRegistry prometheus.Registerer) *serviceMetrics {
	promautoFactory := promauto.With(promRegistry)
	return &serviceMetrics{
		proposalsCreated: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "agora_proposals_created_total",
				Help: "total governance proposals created",
			},
		),
		votesCast: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "agora_votes_cast_total",
				Help: "total votes cast across all proposals",
			},
		),
		delegationsActive: promautoFactory.NewGauge(
			prometheus.GaugeOpts{
				Name: "agora_delegations_active",
				Help: "currently active voting power delegations",
			},
		),
		submitFailures: promautoFactory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agora_chain_submit_failures_total",
				Help: "failed chain submissions by action",
			},
			[]string{"action"},
		),
	}
}
