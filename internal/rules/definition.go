// Package rules supplies the built-in compliance rule packs and the
// declarative rule definitions they are built from. A definition
// compares one dotted snapshot field against an expected value; richer
// checks are written as plain predicate functions.
package rules

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/seclens/seclens/internal/catalog"
	"github.com/seclens/seclens/pkg/types"
)

// Supported comparison operators for declarative rules
const (
	OpEqual       = "=="
	OpNotEqual    = "!="
	OpGreaterEq   = ">="
	OpLessEq      = "<="
	OpContains    = "contains"
	OpNotContains = "not_contains"
)

// Definition is a declarative rule: one field, one operator, one
// expected value. Definitions come from the built-in packs or from
// YAML rule files.
type Definition struct {
	Code        string      `yaml:"code"`
	Framework   string      `yaml:"framework"`
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Category    string      `yaml:"category"`
	Severity    string      `yaml:"severity"`
	Remediation string      `yaml:"remediation"`
	Field       string      `yaml:"field"`
	Op          string      `yaml:"op"`
	Value       interface{} `yaml:"value"`
}

// Compile turns the definition into a registrable catalog rule
func (d Definition) Compile() (catalog.Rule, error) {
	if d.Code == "" || d.Framework == "" {
		return catalog.Rule{}, fmt.Errorf("rule definition needs code and framework (got code=%q framework=%q)", d.Code, d.Framework)
	}
	if d.Field == "" {
		return catalog.Rule{}, fmt.Errorf("rule %s: field is required", d.Code)
	}
	switch d.Op {
	case OpEqual, OpNotEqual, OpGreaterEq, OpLessEq, OpContains, OpNotContains:
	default:
		return catalog.Rule{}, fmt.Errorf("rule %s: unsupported op %q", d.Code, d.Op)
	}
	severity, ok := types.ParseSeverity(d.Severity)
	if !ok {
		return catalog.Rule{}, fmt.Errorf("rule %s: invalid severity %q", d.Code, d.Severity)
	}

	return catalog.Rule{
		Code:        d.Code,
		Framework:   d.Framework,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Severity:    severity,
		Remediation: d.Remediation,
		Check:       d.check,
	}, nil
}

// check evaluates the field comparison against the snapshot. A missing
// field fails the rule with a message saying so rather than producing a
// distinct inconclusive status.
func (d Definition) check(_ context.Context, snapshot *types.Snapshot) (types.CheckResult, error) {
	actual, ok := snapshot.Lookup(d.Field)
	if !ok {
		return types.CheckResult{
			Passed:   false,
			Message:  fmt.Sprintf("missing field %s", d.Field),
			Findings: []string{fmt.Sprintf("snapshot has no value at %s", d.Field)},
		}, nil
	}

	passed, err := compare(d.Op, actual, d.Value)
	if err != nil {
		return types.CheckResult{}, fmt.Errorf("rule %s: %w", d.Code, err)
	}

	result := types.CheckResult{
		Passed: passed,
		Evidence: map[string]interface{}{
			"field":    d.Field,
			"actual":   actual,
			"expected": d.Value,
			"op":       d.Op,
		},
	}
	if passed {
		result.Message = fmt.Sprintf("%s %s %v", d.Field, d.Op, d.Value)
	} else {
		result.Message = fmt.Sprintf("expected %s %s %v, got %v", d.Field, d.Op, d.Value, actual)
		result.Findings = []string{result.Message}
	}
	return result, nil
}

// compare applies an operator to actual and expected values
func compare(op string, actual, expected interface{}) (bool, error) {
	switch op {
	case OpEqual:
		return looseEqual(actual, expected), nil
	case OpNotEqual:
		return !looseEqual(actual, expected), nil
	case OpGreaterEq, OpLessEq:
		a, aok := toFloat(actual)
		b, bok := toFloat(expected)
		if !aok || !bok {
			return false, fmt.Errorf("op %s needs numeric operands, got %T and %T", op, actual, expected)
		}
		if op == OpGreaterEq {
			return a >= b, nil
		}
		return a <= b, nil
	case OpContains, OpNotContains:
		found, err := containsValue(actual, expected)
		if err != nil {
			return false, err
		}
		if op == OpContains {
			return found, nil
		}
		return !found, nil
	default:
		return false, fmt.Errorf("unsupported op %q", op)
	}
}

// looseEqual compares values across the numeric types JSON and YAML
// decoding produce (int vs float64).
func looseEqual(a, b interface{}) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
		return false
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return strings.EqualFold(as, bs)
		}
	}
	return reflect.DeepEqual(a, b)
}

// containsValue checks list or string membership
func containsValue(haystack, needle interface{}) (bool, error) {
	switch h := haystack.(type) {
	case []interface{}:
		for _, item := range h {
			if looseEqual(item, needle) {
				return true, nil
			}
		}
		return false, nil
	case string:
		s, ok := needle.(string)
		if !ok {
			return false, fmt.Errorf("contains on a string field needs a string value, got %T", needle)
		}
		return strings.Contains(strings.ToLower(h), strings.ToLower(s)), nil
	default:
		return false, fmt.Errorf("field is not a list or string (%T)", haystack)
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	default:
		return 0, false
	}
}
