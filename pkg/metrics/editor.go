// Copyright 2025 Corrigo Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EditorCollector tracks text-correction domain activity.
type EditorCollector struct {
	Submissions      *prometheus.CounterVec
	Corrections      *prometheus.CounterVec
	TokensCharged    prometheus.Counter
	TokensGranted    prometheus.Counter
	CorrectorErrors  prometheus.Counter
	CorrectorLatency prometheus.Histogram
}

// NewEditorCollector builds the domain collector set.
func NewEditorCollector() *EditorCollector {
	return &EditorCollector{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corrigo",
			Name:      "submissions_total",
			Help:      "Number of text submissions, by outcome",
		}, []string{"outcome"}),
		Corrections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corrigo",
			Name:      "corrections_total",
			Help:      "Number of settled corrections, by mode",
		}, []string{"mode"}),
		TokensCharged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corrigo",
			Name:      "tokens_charged_total",
			Help:      "Total tokens charged across all accounts",
		}),
		TokensGranted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corrigo",
			Name:      "tokens_granted_total",
			Help:      "Total tokens granted (purchases and bonuses)",
		}),
		CorrectorErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corrigo",
			Name:      "corrector_errors_total",
			Help:      "Failed calls to the external correction service",
		}),
		CorrectorLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "corrigo",
			Name:      "corrector_latency_seconds",
			Help:      "Latency of external correction service calls",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Collectors returns every collector for registration.
func (e *EditorCollector) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		e.Submissions,
		e.Corrections,
		e.TokensCharged,
		e.TokensGranted,
		e.CorrectorErrors,
		e.CorrectorLatency,
	}
}
