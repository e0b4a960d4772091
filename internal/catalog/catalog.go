package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/seclens/seclens/pkg/types"
)

// CheckFunc is the evaluation predicate of a rule. Implementations must
// be pure functions of the snapshot; blocking work inside a check should
// honor ctx cancellation.
type CheckFunc func(ctx context.Context, snapshot *types.Snapshot) (types.CheckResult, error)

// Framework is a named, versioned grouping of rules (e.g. "CIS
// Benchmarks v8.0"). Immutable once registered.
type Framework struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Meta converts the framework to its result metadata form
func (f Framework) Meta() types.FrameworkMeta {
	return types.FrameworkMeta{
		Code:        f.Code,
		Name:        f.Name,
		Version:     f.Version,
		Description: f.Description,
	}
}

// Rule is one compliance check: metadata plus an evaluation predicate.
// Immutable once registered.
type Rule struct {
	Code        string
	Framework   string
	Title       string
	Description string
	Category    string
	Severity    types.Severity
	Remediation string
	Check       CheckFunc
}

// RuleKey uniquely identifies a rule within the catalog
type RuleKey struct {
	Framework string
	Code      string
}

// Key returns the composite identity of the rule
func (r Rule) Key() RuleKey {
	return RuleKey{Framework: r.Framework, Code: r.Code}
}

// UnknownFrameworkError is returned when a rule references a framework
// code that has not been registered.
type UnknownFrameworkError struct {
	Framework string
	RuleCode  string
}

func (e *UnknownFrameworkError) Error() string {
	return fmt.Sprintf("rule %q references unknown framework %q", e.RuleCode, e.Framework)
}

// Catalog is the process-wide registry of frameworks and rules. All
// registration happens at startup before evaluations begin; once the
// first evaluation runs the catalog is read-only.
type Catalog struct {
	mu         sync.RWMutex
	frameworks map[string]Framework
	fwOrder    []string
	rules      map[RuleKey]Rule
	ruleOrder  map[string][]RuleKey
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		frameworks: make(map[string]Framework),
		rules:      make(map[RuleKey]Rule),
		ruleOrder:  make(map[string][]RuleKey),
	}
}

// RegisterFramework adds or replaces the framework entry keyed by code.
// Re-registering an existing code is last-write-wins; the rules already
// registered under it are kept.
func (c *Catalog) RegisterFramework(fw Framework) error {
	if fw.Code == "" {
		return fmt.Errorf("framework code is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.frameworks[fw.Code]; !exists {
		c.fwOrder = append(c.fwOrder, fw.Code)
	}
	c.frameworks[fw.Code] = fw
	return nil
}

// RegisterRule registers a rule under its framework. The referenced
// framework must already be registered. Re-registering the same
// (framework, code) pair replaces the earlier rule in place, keeping
// its original position.
func (c *Catalog) RegisterRule(rule Rule) error {
	if rule.Code == "" {
		return fmt.Errorf("rule code is required")
	}
	if rule.Check == nil {
		return fmt.Errorf("rule %q has no check function", rule.Code)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.frameworks[rule.Framework]; !ok {
		return &UnknownFrameworkError{Framework: rule.Framework, RuleCode: rule.Code}
	}
	key := rule.Key()
	if _, exists := c.rules[key]; !exists {
		c.ruleOrder[rule.Framework] = append(c.ruleOrder[rule.Framework], key)
	}
	c.rules[key] = rule
	return nil
}

// Frameworks returns all registered frameworks in registration order
func (c *Catalog) Frameworks() []Framework {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Framework, 0, len(c.fwOrder))
	for _, code := range c.fwOrder {
		out = append(out, c.frameworks[code])
	}
	return out
}

// Framework looks up one framework by code
func (c *Catalog) Framework(code string) (Framework, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fw, ok := c.frameworks[code]
	return fw, ok
}

// Rules returns all registered rules in framework registration order,
// optionally filtered to the given framework codes.
func (c *Catalog) Rules(frameworkCodes ...string) []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	codes := c.fwOrder
	if len(frameworkCodes) > 0 {
		codes = frameworkCodes
	}

	var out []Rule
	for _, code := range codes {
		for _, key := range c.ruleOrder[code] {
			out = append(out, c.rules[key])
		}
	}
	return out
}

// Rule looks up one rule by its composite key
func (c *Catalog) Rule(key RuleKey) (Rule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rules[key]
	return r, ok
}

// Size returns the total number of registered rules
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}
