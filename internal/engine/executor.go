package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/seclens/seclens/internal/catalog"
	"github.com/seclens/seclens/pkg/types"
)

// runRules executes the selected rules against the snapshot using a
// bounded pool of workers. Execution order is unspecified but each
// outcome is written to the slot matching the rule's selection order,
// so the returned slice is deterministic.
func (e *Engine) runRules(ctx context.Context, snapshot *types.Snapshot, rules []catalog.Rule) []types.RuleOutcome {
	outcomes := make([]types.RuleOutcome, len(rules))
	if len(rules) == 0 {
		return outcomes
	}

	workers := e.workers
	if workers > len(rules) {
		workers = len(rules)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = e.runRule(ctx, rules[idx], snapshot)
			}
		}()
	}

	for idx := range rules {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

type checkReturn struct {
	result types.CheckResult
	err    error
}

// runRule executes a single rule check in isolation. Panics and errors
// are converted to an ERROR outcome; a timed-out or cancelled check is
// abandoned and reported the same way.
func (e *Engine) runRule(ctx context.Context, rule catalog.Rule, snapshot *types.Snapshot) types.RuleOutcome {
	checkCtx := ctx
	if e.ruleTimeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, e.ruleTimeout)
		defer cancel()
	}

	done := make(chan checkReturn, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- checkReturn{err: fmt.Errorf("rule panicked: %v", r)}
			}
		}()
		result, err := rule.Check(checkCtx, snapshot)
		done <- checkReturn{result: result, err: err}
	}()

	select {
	case ret := <-done:
		if ret.err != nil {
			e.log.WithField("rule", rule.Code).Error("rule evaluation failed", ret.err)
			return errorOutcome(rule, ret.err)
		}
		return buildOutcome(rule, ret.result)
	case <-checkCtx.Done():
		err := checkCtx.Err()
		if err == context.DeadlineExceeded {
			err = fmt.Errorf("evaluation timed out after %s", e.ruleTimeout)
		}
		e.log.WithField("rule", rule.Code).Error("rule evaluation abandoned", err)
		return errorOutcome(rule, err)
	}
}

// buildOutcome maps a completed check result onto a rule outcome
func buildOutcome(rule catalog.Rule, result types.CheckResult) types.RuleOutcome {
	outcome := types.RuleOutcome{
		RuleCode:    rule.Code,
		RuleTitle:   rule.Title,
		Framework:   rule.Framework,
		Message:     result.Message,
		Details:     result.Details,
		Findings:    result.Findings,
		Evidence:    result.Evidence,
		Severity:    rule.Severity,
		Category:    rule.Category,
		Remediation: rule.Remediation,
	}
	if result.Passed {
		outcome.Status = types.StatusPass
		if outcome.Message == "" {
			outcome.Message = "check passed"
		}
	} else {
		outcome.Status = types.StatusFail
		if outcome.Message == "" {
			outcome.Message = "check failed"
		}
		if len(outcome.Findings) == 0 {
			outcome.Findings = []string{outcome.Message}
		}
	}
	return outcome
}
