// Package engine orchestrates the execution of compliance rules against
// a configuration snapshot and aggregates the outcomes into a scored
// evaluation result.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seclens/seclens/internal/catalog"
	"github.com/seclens/seclens/internal/errors"
	"github.com/seclens/seclens/internal/logger"
	"github.com/seclens/seclens/internal/scoring"
	"github.com/seclens/seclens/pkg/types"
)

// DefaultRuleTimeout bounds a single rule check. A runaway predicate is
// converted to an ERROR outcome instead of stalling the batch.
const DefaultRuleTimeout = 30 * time.Second

// Engine runs a filtered subset of the catalog's rules against one
// snapshot. It is safe for concurrent use: the catalog is read-only
// during evaluation and each call owns its result exclusively.
type Engine struct {
	catalog     *catalog.Catalog
	log         logger.Logger
	workers     int
	ruleTimeout time.Duration
}

// Option configures an Engine
type Option func(*Engine)

// WithWorkers sets the number of concurrent rule executors
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithRuleTimeout bounds each rule check. Zero disables the timeout.
func WithRuleTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.ruleTimeout = d
	}
}

// WithLogger sets the engine logger
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an engine bound to a catalog. Construct one per process
// at the composition root and inject it where evaluations run.
func New(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:     cat,
		log:         logger.NewSilent(),
		workers:     runtime.NumCPU(),
		ruleTimeout: DefaultRuleTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = 1
	}
	return e
}

// Evaluate runs every catalog rule matching the criteria against the
// snapshot and returns the aggregated result. Individual rule failures
// never abort the batch; only malformed input does.
func (e *Engine) Evaluate(ctx context.Context, snapshot *types.Snapshot, criteria types.Criteria) (*types.EvaluationResult, error) {
	if snapshot == nil {
		return nil, errors.New(errors.ErrorTypeValidation, "snapshot is required")
	}
	if err := criteria.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeValidation, "invalid criteria", err)
	}

	groups := e.selectRules(criteria)

	var selected []catalog.Rule
	for _, g := range groups {
		selected = append(selected, g.rules...)
	}

	log := e.log.WithFields(map[string]interface{}{
		"snapshot": snapshot.ID,
		"rules":    len(selected),
	})
	log.Info("starting compliance evaluation")

	outcomes := e.runRules(ctx, snapshot, selected)

	result := &types.EvaluationResult{
		SessionID:  uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Snapshot:   snapshot.Summary(),
		Frameworks: make(map[string]types.FrameworkResult),
		Outcomes:   outcomes,
	}

	// Per-framework aggregation; outcomes are already in framework
	// grouping order so each group is a contiguous slice.
	offset := 0
	for _, g := range groups {
		fwOutcomes := outcomes[offset : offset+len(g.rules)]
		offset += len(g.rules)

		fr := aggregateFramework(g.framework, fwOutcomes)
		result.Frameworks[g.framework.Code] = fr
		result.FrameworksTested = append(result.FrameworksTested, g.framework.Code)

		result.TotalRules += fr.Total
		result.PassedRules += fr.Passed
		result.FailedRules += fr.Failed
		result.SkippedRules += fr.Skipped
	}

	result.OverallRiskScore = scoring.OverallRisk(result.FailedRules, result.TotalRules, result.SkippedRules)

	log.WithFields(map[string]interface{}{
		"session":      result.SessionID,
		"passed":       result.PassedRules,
		"failed":       result.FailedRules,
		"overall_risk": result.OverallRiskScore,
	}).Info("evaluation complete")

	return result, nil
}

// ruleGroup is one framework's selected rules, in registration order
type ruleGroup struct {
	framework catalog.Framework
	rules     []catalog.Rule
}

// selectRules intersects the catalog with the criteria filters. A rule
// is selected only when it satisfies every non-empty filter. Frameworks
// with no selected rules are omitted entirely.
func (e *Engine) selectRules(criteria types.Criteria) []ruleGroup {
	fwFilter := toSet(criteria.Frameworks, false)
	catFilter := toSet(criteria.Categories, true)
	sevFilter := toSet(criteria.Severities, true)

	var groups []ruleGroup
	for _, fw := range e.catalog.Frameworks() {
		if fwFilter != nil {
			if _, ok := fwFilter[fw.Code]; !ok {
				continue
			}
		}
		var rules []catalog.Rule
		for _, rule := range e.catalog.Rules(fw.Code) {
			if catFilter != nil {
				if _, ok := catFilter[strings.ToLower(rule.Category)]; !ok {
					continue
				}
			}
			if sevFilter != nil {
				if _, ok := sevFilter[strings.ToLower(string(rule.Severity))]; !ok {
					continue
				}
			}
			rules = append(rules, rule)
		}
		if len(rules) > 0 {
			groups = append(groups, ruleGroup{framework: fw, rules: rules})
		}
	}
	return groups
}

func toSet(values []string, fold bool) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if fold {
			v = strings.ToLower(v)
		}
		set[v] = struct{}{}
	}
	return set
}

// aggregateFramework counts outcomes and derives the framework's
// compliance percentage and severity-weighted risk score.
func aggregateFramework(fw catalog.Framework, outcomes []types.RuleOutcome) types.FrameworkResult {
	fr := types.FrameworkResult{
		Framework: fw.Meta(),
		Total:     len(outcomes),
		Outcomes:  outcomes,
	}
	for _, o := range outcomes {
		switch {
		case o.Status == types.StatusPass:
			fr.Passed++
		case o.Status == types.StatusSkip:
			fr.Skipped++
		case o.Status.CountsAsFailed():
			fr.Failed++
		}
	}
	fr.CompliancePercentage = scoring.CompliancePercent(fr.Passed, fr.Total, fr.Skipped)
	fr.RiskScore = scoring.RiskScore(outcomes)
	return fr
}

// errorOutcome builds the outcome for a rule whose check failed to run
func errorOutcome(rule catalog.Rule, err error) types.RuleOutcome {
	return types.RuleOutcome{
		RuleCode:    rule.Code,
		RuleTitle:   rule.Title,
		Framework:   rule.Framework,
		Status:      types.StatusError,
		Message:     fmt.Sprintf("rule evaluation failed: %v", err),
		Findings:    []string{fmt.Sprintf("rule %s could not be evaluated: %v", rule.Code, err)},
		Severity:    rule.Severity,
		Category:    rule.Category,
		Remediation: rule.Remediation,
	}
}
