// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify drives a headless browser through a scripted scenario
// against the locally served site, checking page state and saving
// screenshots for review after a change.
package verify

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed event_page.yaml
var defaultScenario []byte

// Action names a scenario step.
type Action string

const (
	ActionGoto          Action = "goto"
	ActionClick         Action = "click"
	ActionWaitURL       Action = "wait_url"
	ActionExpectVisible Action = "expect_visible"
	ActionExpectText    Action = "expect_text"
	ActionExpectTitle   Action = "expect_title"
	ActionScreenshot    Action = "screenshot"
)

// Step is one browser action. Which fields are used depends on Action.
type Step struct {
	Action   Action `yaml:"action"`
	URL      string `yaml:"url,omitempty"`
	Selector string `yaml:"selector,omitempty"`
	Text     string `yaml:"text,omitempty"`
	File     string `yaml:"file,omitempty"`
}

func (s Step) String() string {
	switch s.Action {
	case ActionGoto, ActionWaitURL:
		return fmt.Sprintf("%s %s", s.Action, s.URL)
	case ActionClick, ActionExpectVisible:
		return fmt.Sprintf("%s %s", s.Action, s.Selector)
	case ActionExpectText:
		return fmt.Sprintf("%s %s %q", s.Action, s.Selector, s.Text)
	case ActionExpectTitle:
		return fmt.Sprintf("%s %q", s.Action, s.Text)
	case ActionScreenshot:
		return fmt.Sprintf("%s %s", s.Action, s.File)
	default:
		return string(s.Action)
	}
}

// Scenario is a named sequence of steps.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// DefaultScenario returns the embedded event-page scenario.
func DefaultScenario() (Scenario, error) {
	return ParseScenario(defaultScenario)
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks that every step carries the fields its action needs.
func (sc Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", sc.Name)
	}
	for i, s := range sc.Steps {
		var missing string
		switch s.Action {
		case ActionGoto, ActionWaitURL:
			if s.URL == "" {
				missing = "url"
			}
		case ActionClick, ActionExpectVisible:
			if s.Selector == "" {
				missing = "selector"
			}
		case ActionExpectText:
			if s.Selector == "" {
				missing = "selector"
			} else if s.Text == "" {
				missing = "text"
			}
		case ActionExpectTitle:
			if s.Text == "" {
				missing = "text"
			}
		case ActionScreenshot:
			if s.File == "" {
				missing = "file"
			} else if filepath.IsAbs(s.File) || strings.HasPrefix(filepath.Clean(s.File), "..") {
				return fmt.Errorf("step %d: screenshot file %q must stay inside the output directory", i+1, s.File)
			}
		default:
			return fmt.Errorf("step %d: unknown action %q", i+1, s.Action)
		}
		if missing != "" {
			return fmt.Errorf("step %d (%s): missing %s", i+1, s.Action, missing)
		}
	}
	return nil
}
