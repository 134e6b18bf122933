// Package fixtures loads YAML-described lexing/parsing scenarios for
// table-driven tests shared across internal/parser and internal/lower,
// per SPEC_FULL.md §4.5.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// TokenSpec is one literal token in a scenario's input, matching the
// exact (kind, lexeme, start, end) shape of spec.md §8's scenario
// table.
type TokenSpec struct {
	Kind   string `yaml:"kind"`
	Lexeme string `yaml:"lexeme"`
	Start  int    `yaml:"start"`
	End    int    `yaml:"end"`
}

// Scenario is one worked example: either a literal token sequence or a
// source string, and the expected rendered tree shape.
type Scenario struct {
	Name   string      `yaml:"name"`
	Source string      `yaml:"source"`
	Tokens []TokenSpec `yaml:"tokens"`
	Want   string      `yaml:"want"`
}

// Load reads every *.yaml file in dir as a Scenario, sorted by
// filename for deterministic test ordering.
func Load(dir string) ([]Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fixtures: reading %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".yaml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	scenarios := make([]Scenario, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("fixtures: reading %s: %w", name, err)
		}
		var s Scenario
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("fixtures: parsing %s: %w", name, err)
		}
		if s.Name == "" {
			s.Name = name
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
