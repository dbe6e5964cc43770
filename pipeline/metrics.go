/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dimensionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rubricaf_dimension_runs_total",
			Help: "Total number of dimension agent runs by outcome",
		},
		[]string{"dimension", "status", "cause"},
	)

	metaVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rubricaf_meta_verdicts_total",
			Help: "Total number of meta-judgments by overall verdict",
		},
		[]string{"dimension", "overall"},
	)
)
