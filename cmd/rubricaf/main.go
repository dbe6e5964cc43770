/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main evaluates one evidence pack against the review rubric: every
// dimension agent runs over the pack, the meta-judge audits each judgment,
// and the combined report is written as JSON with a summary table on stderr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"chainguard.dev/rubricaf/dimension"
	"chainguard.dev/rubricaf/evidence"
	"chainguard.dev/rubricaf/laj"
	"chainguard.dev/rubricaf/pipeline"
	"chainguard.dev/rubricaf/reasoner"
	"chainguard.dev/rubricaf/reasoner/claudereasoner"
	"chainguard.dev/rubricaf/reasoner/geminireasoner"
	"chainguard.dev/rubricaf/reasoner/openaireasoner"
	"chainguard.dev/rubricaf/rubric"
	"chainguard.dev/rubricaf/schema"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/sethvargo/go-envconfig"
	"google.golang.org/genai"
)

type config struct {
	// EvidencePack is the path of the serialized pack for one report.
	EvidencePack string `env:"EVIDENCE_PACK,required"`

	// RubricConfig optionally overrides the built-in descriptors with a
	// YAML rubric file.
	RubricConfig string `env:"RUBRIC_CONFIG"`

	// Model selects the reasoning backend by prefix:
	// claude-*, gpt-*/o*, or gemini-*.
	Model string `env:"MODEL,default=claude-sonnet-4-5"`

	// Output is the report JSON destination; stdout when empty.
	Output string `env:"OUTPUT"`

	Concurrency      int           `env:"CONCURRENCY,default=4"`
	DimensionTimeout time.Duration `env:"DIMENSION_TIMEOUT,default=3m"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	pack, err := evidence.LoadPack(cfg.EvidencePack)
	if err != nil {
		clog.FatalContextf(ctx, "loading evidence pack: %v", err)
	}
	clog.InfoContextf(ctx, "Loaded pack %s with %d chunks", pack.ReportID(), pack.Len())

	descriptors := rubric.Builtin()
	if cfg.RubricConfig != "" {
		if descriptors, err = rubric.LoadFile(cfg.RubricConfig); err != nil {
			clog.FatalContextf(ctx, "loading rubric config: %v", err)
		}
	}

	agentEngine, judgeEngine, err := newEngines(ctx, cfg.Model)
	if err != nil {
		clog.FatalContextf(ctx, "creating reasoning backend: %v", err)
	}

	agents := make([]*dimension.Agent, 0, len(descriptors))
	for _, d := range descriptors {
		agent, err := dimension.New(*d, agentEngine)
		if err != nil {
			clog.FatalContextf(ctx, "creating agent for %s: %v", d.ID, err)
		}
		agents = append(agents, agent)
	}

	judge, err := laj.New(judgeEngine)
	if err != nil {
		clog.FatalContextf(ctx, "creating meta-judge: %v", err)
	}

	p, err := pipeline.New(agents, judge,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithDimensionTimeout(cfg.DimensionTimeout),
		pipeline.WithModelLabel(cfg.Model),
	)
	if err != nil {
		clog.FatalContextf(ctx, "creating pipeline: %v", err)
	}

	report, err := p.Run(ctx, pack)
	if err != nil {
		clog.FatalContextf(ctx, "running pipeline: %v", err)
	}

	out := os.Stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			clog.FatalContextf(ctx, "creating output file: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.Write(out); err != nil {
		clog.FatalContextf(ctx, "writing report: %v", err)
	}
	if err := pipeline.WriteSummary(os.Stderr, report); err != nil {
		clog.FatalContextf(ctx, "writing summary: %v", err)
	}

	if report.Failed() {
		clog.WarnContextf(ctx, "one or more dimensions ended in AGENT_ERROR")
		cancel()
		os.Exit(1)
	}
}

// newEngines builds the agent and meta-judge reasoning collaborators for
// the selected model. Both share one client; they differ only in prompt
// template and response type.
func newEngines(ctx context.Context, model string) (
	reasoner.Interface[*dimension.Request, *dimension.Draft],
	reasoner.Interface[*laj.Request, *laj.Draft],
	error,
) {
	switch {
	case strings.HasPrefix(model, "claude-"):
		client := anthropic.NewClient()
		agentEngine, err := claudereasoner.New[*dimension.Request, *dimension.Draft](
			client, dimension.Prompt(),
			claudereasoner.WithModel[*dimension.Request, *dimension.Draft](model),
		)
		if err != nil {
			return nil, nil, err
		}
		judgeEngine, err := claudereasoner.New[*laj.Request, *laj.Draft](
			client, laj.Prompt(),
			claudereasoner.WithModel[*laj.Request, *laj.Draft](model),
		)
		if err != nil {
			return nil, nil, err
		}
		return agentEngine, judgeEngine, nil

	case strings.HasPrefix(model, "gpt-"), strings.HasPrefix(model, "o"):
		client := openai.NewClient()
		agentEngine, err := openaireasoner.New[*dimension.Request, *dimension.Draft](
			client, dimension.Prompt(),
			openaireasoner.WithModel[*dimension.Request, *dimension.Draft](model),
		)
		if err != nil {
			return nil, nil, err
		}
		judgeEngine, err := openaireasoner.New[*laj.Request, *laj.Draft](
			client, laj.Prompt(),
			openaireasoner.WithModel[*laj.Request, *laj.Draft](model),
		)
		if err != nil {
			return nil, nil, err
		}
		return agentEngine, judgeEngine, nil

	case strings.HasPrefix(model, "gemini-"):
		client, err := genai.NewClient(ctx, &genai.ClientConfig{})
		if err != nil {
			return nil, nil, err
		}
		agentEngine, err := geminireasoner.New[*dimension.Request, *dimension.Draft](
			client, dimension.Prompt(),
			geminireasoner.WithModel[*dimension.Request, *dimension.Draft](model),
			geminireasoner.WithResponseSchema[*dimension.Request, *dimension.Draft](schema.Genai[dimension.Draft]()),
		)
		if err != nil {
			return nil, nil, err
		}
		judgeEngine, err := geminireasoner.New[*laj.Request, *laj.Draft](
			client, laj.Prompt(),
			geminireasoner.WithModel[*laj.Request, *laj.Draft](model),
			geminireasoner.WithResponseSchema[*laj.Request, *laj.Draft](schema.Genai[laj.Draft]()),
		)
		if err != nil {
			return nil, nil, err
		}
		return agentEngine, judgeEngine, nil

	default:
		return nil, nil, fmt.Errorf("unsupported model %q: expected a claude-*, gpt-*/o*, or gemini-* model", model)
	}
}
