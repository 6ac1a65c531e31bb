package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dgallion1/doclint/internal/rules"
)

// LoadRules overlays the TOML file at path onto the default rule config. An
// empty path returns the defaults. Unknown keys are rejected.
func LoadRules(path string) (rules.Config, error) {
	cfg := rules.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	// Decoding merges table fields into existing elements, so sections start empty.
	sections := cfg.RequiredSections
	cfg.RequiredSections = nil
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return rules.Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("required_sections") {
		cfg.RequiredSections = sections
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return rules.Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return rules.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Rules loads the rule config named by RulesFile and applies process overrides.
func (c Config) Rules() (rules.Config, error) {
	rc, err := LoadRules(c.RulesFile)
	if err != nil {
		return rules.Config{}, err
	}
	rc.Parallel = rc.Parallel || c.ParallelRules
	return rc, nil
}
