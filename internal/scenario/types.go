// Package scenario replays scripted builder sessions from YAML files.
package scenario

import (
	"visa-flow/internal/visa"
	"visa-flow/internal/wizard"
)

// Action names a builder operation a step performs.
type Action string

const (
	ActionSetIdentity       Action = "set-identity"
	ActionSetCategory       Action = "set-category"
	ActionToggleStage       Action = "toggle-stage"
	ActionMoveStage         Action = "move-stage"
	ActionAddDocument       Action = "add-document"
	ActionToggleDocument    Action = "toggle-document"
	ActionUpdateDocument    Action = "update-document"
	ActionRemoveDocument    Action = "remove-document"
	ActionAddExample        Action = "add-example"
	ActionUpdateExample     Action = "update-example"
	ActionRemoveExample     Action = "remove-example"
	ActionAddTier           Action = "add-tier"
	ActionUpdateTier        Action = "update-tier"
	ActionRemoveTier        Action = "remove-tier"
	ActionAddCost           Action = "add-cost"
	ActionUpdateCost        Action = "update-cost"
	ActionRemoveCost        Action = "remove-cost"
	ActionSetVisaCost       Action = "set-visa-cost"
	ActionAddCriterion      Action = "add-criterion"
	ActionUpdateCriterion   Action = "update-criterion"
	ActionRemoveCriterion   Action = "remove-criterion"
	ActionSetProcessingInfo Action = "set-processing-info"
	ActionSetMetadata       Action = "set-metadata"
	ActionNext              Action = "next"
	ActionBack              Action = "back"
	ActionSave              Action = "save"
	ActionReset             Action = "reset"
)

// LastAdded can stand in for a document id to mean the document added most
// recently in the run.
const LastAdded = "$last"

// Scenario is a scripted builder session.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Stop at the first failed step instead of running the rest
	StopOnError bool `yaml:"stop_on_error,omitempty"`

	Steps []Step `yaml:"steps"`
}

// Step is one action plus its arguments. Only the fields an action reads need
// to be set.
type Step struct {
	Action Action `yaml:"action"`

	// Document or stage ids
	ID string `yaml:"id,omitempty"`
	To string `yaml:"to,omitempty"`

	// List position for tiers, costs, criteria and examples. Omitted means
	// the item added most recently by this run.
	Index *int `yaml:"index,omitempty"`

	Field string `yaml:"field,omitempty"`
	Value string `yaml:"value,omitempty"`

	// set-identity
	Name        string `yaml:"name,omitempty"`
	TypeID      string `yaml:"type_id,omitempty"`
	Code        string `yaml:"code,omitempty"`
	Description string `yaml:"description,omitempty"`

	// set-category; also used by update-document with field "categories"
	Category   string   `yaml:"category,omitempty"`
	Categories []string `yaml:"categories,omitempty"`

	// set-visa-cost
	Amount   string `yaml:"amount,omitempty"`
	Currency string `yaml:"currency,omitempty"`

	// set-processing-info
	GeneralTimeframe string `yaml:"general_timeframe,omitempty"`
	AdditionalInfo   string `yaml:"additional_info,omitempty"`

	// set-metadata
	ValidityPeriod string `yaml:"validity_period,omitempty"`
	MaxExtensions  string `yaml:"max_extensions,omitempty"`

	// remove-document only goes ahead when confirmed
	Confirm bool `yaml:"confirm,omitempty"`

	// Validation
	ExpectStep  wizard.Step `yaml:"expect_step,omitempty"`
	ExpectValid *bool       `yaml:"expect_valid,omitempty"`
}

// StepResult captures the outcome of a single step.
type StepResult struct {
	StepIndex  int
	Action     Action
	Applied    bool
	WizardStep wizard.Step
	Validation wizard.ValidationResult
	Error      error
}

// Result summarizes the full run.
type Result struct {
	ScenarioName string
	Steps        []StepResult

	TotalSteps   int
	PassedSteps  int
	FailedSteps  int
	SkippedSteps int

	// Last configuration saved during the run
	Saved *visa.Configuration

	Success bool
}
