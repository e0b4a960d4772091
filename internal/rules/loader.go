package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/seclens/seclens/internal/catalog"
)

// Pack is a YAML rule file: one framework plus its declarative rules
type Pack struct {
	Framework catalog.Framework `yaml:"framework"`
	Rules     []Definition      `yaml:"rules"`
}

// LoadDir reads every .yaml/.yml rule pack from a directory
func LoadDir(dir string) ([]Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules directory: %w", err)
	}

	var packs []Pack
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read rule pack %s: %w", entry.Name(), err)
		}
		var pack Pack
		if err := yaml.Unmarshal(data, &pack); err != nil {
			return nil, fmt.Errorf("failed to parse rule pack %s: %w", entry.Name(), err)
		}
		if pack.Framework.Code == "" {
			return nil, fmt.Errorf("rule pack %s: framework.code is required", entry.Name())
		}
		packs = append(packs, pack)
	}
	return packs, nil
}

// RegisterPacks registers the frameworks and rules of the given packs.
// Rules inherit the pack's framework code when their own is empty.
func RegisterPacks(cat *catalog.Catalog, packs []Pack) error {
	for _, pack := range packs {
		if err := cat.RegisterFramework(pack.Framework); err != nil {
			return err
		}
		for _, def := range pack.Rules {
			if def.Framework == "" {
				def.Framework = pack.Framework.Code
			}
			rule, err := def.Compile()
			if err != nil {
				return err
			}
			if err := cat.RegisterRule(rule); err != nil {
				return err
			}
		}
	}
	return nil
}
