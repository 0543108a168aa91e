package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	if scenario.Name == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML and checks every step names a known action.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	for i, step := range scenario.Steps {
		if !knownActions[step.Action] {
			return nil, fmt.Errorf("step %d: unknown action %q", i+1, step.Action)
		}
	}
	return &scenario, nil
}

// ListScenarios lists all scenario files in a directory.
func ListScenarios(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios directory: %w", err)
	}

	var scenarios []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			scenarios = append(scenarios, filepath.Join(dir, entry.Name()))
		}
	}

	return scenarios, nil
}

// LoadAllScenarios loads all scenarios from a directory.
func LoadAllScenarios(dir string) ([]*Scenario, error) {
	paths, err := ListScenarios(dir)
	if err != nil {
		return nil, err
	}

	var scenarios []*Scenario
	for _, path := range paths {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		scenarios = append(scenarios, scenario)
	}

	return scenarios, nil
}

var knownActions = map[Action]bool{
	ActionSetIdentity: true, ActionSetCategory: true,
	ActionToggleStage: true, ActionMoveStage: true,
	ActionAddDocument: true, ActionToggleDocument: true, ActionUpdateDocument: true, ActionRemoveDocument: true,
	ActionAddExample: true, ActionUpdateExample: true, ActionRemoveExample: true,
	ActionAddTier: true, ActionUpdateTier: true, ActionRemoveTier: true,
	ActionAddCost: true, ActionUpdateCost: true, ActionRemoveCost: true, ActionSetVisaCost: true,
	ActionAddCriterion: true, ActionUpdateCriterion: true, ActionRemoveCriterion: true,
	ActionSetProcessingInfo: true, ActionSetMetadata: true,
	ActionNext: true, ActionBack: true, ActionSave: true, ActionReset: true,
}
