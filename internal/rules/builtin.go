package rules

import "github.com/seclens/seclens/internal/catalog"

// compileAll compiles a slice of definitions, failing on the first bad one
func compileAll(defs []Definition) ([]catalog.Rule, error) {
	rules := make([]catalog.Rule, 0, len(defs))
	for _, def := range defs {
		rule, err := def.Compile()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// RegisterBuiltin registers the built-in CIS, ISO 27001 and RBI rule
// packs. Called once at startup before any evaluation runs.
func RegisterBuiltin(cat *catalog.Catalog) error {
	packs := []struct {
		framework catalog.Framework
		rules     func() ([]catalog.Rule, error)
	}{
		{CISFramework, cisRules},
		{ISOFramework, isoRules},
		{RBIFramework, rbiRules},
	}

	for _, pack := range packs {
		if err := cat.RegisterFramework(pack.framework); err != nil {
			return err
		}
		rules, err := pack.rules()
		if err != nil {
			return err
		}
		for _, rule := range rules {
			if err := cat.RegisterRule(rule); err != nil {
				return err
			}
		}
	}
	return nil
}
