// Package wizard implements the three-step builder wizard:
//
//	FLOW_DEFINITION → COSTS_AND_PROCESSING → REVIEW_AND_CONFIRM → SAVED
//
// Only the first forward transition is guarded. Going back never changes data,
// and Reset returns to the first step from anywhere.
package wizard

import (
	"strings"
	"unicode/utf8"
)

// Step represents a wizard state.
type Step string

const (
	StepFlowDefinition     Step = "FLOW_DEFINITION"
	StepCostsAndProcessing Step = "COSTS_AND_PROCESSING"
	StepReviewAndConfirm   Step = "REVIEW_AND_CONFIRM"
	StepSaved              Step = "SAVED"
)

// Number returns the 1-based position of the step; SAVED is 4.
func (s Step) Number() int {
	switch s {
	case StepFlowDefinition:
		return 1
	case StepCostsAndProcessing:
		return 2
	case StepReviewAndConfirm:
		return 3
	case StepSaved:
		return 4
	}
	return 0
}

// MinIdentityLength is the minimum trimmed length of each identity field.
const MinIdentityLength = 2

// Identity holds the fields checked before leaving the first step.
type Identity struct {
	Name   string
	TypeID string
	Code   string
}

// FieldError explains why one field failed validation.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationResult is the outcome of the first-step guard.
type ValidationResult struct {
	Errors []FieldError `json:"errors,omitempty"`
}

// Valid reports whether no field failed.
func (r ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// Summary renders the failures on one line.
func (r ValidationResult) Summary() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = e.Field + ": " + e.Reason
	}
	return strings.Join(parts, "; ")
}

// ValidateIdentity checks that name, typeId and code are each non-empty and at
// least MinIdentityLength characters after trimming.
func ValidateIdentity(id Identity) ValidationResult {
	var res ValidationResult
	for _, f := range []FieldError{
		{Field: "name", Reason: IdentityFieldReason(id.Name)},
		{Field: "typeId", Reason: IdentityFieldReason(id.TypeID)},
		{Field: "code", Reason: IdentityFieldReason(id.Code)},
	} {
		if f.Reason != "" {
			res.Errors = append(res.Errors, f)
		}
	}
	return res
}

// IdentityFieldReason returns why a single identity value fails the guard,
// or "" when it passes.
func IdentityFieldReason(value string) string {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return "is required"
	case utf8.RuneCountInString(v) < MinIdentityLength:
		return "must be at least 2 characters"
	}
	return ""
}

// Machine tracks the current wizard step.
type Machine struct {
	step Step
}

// New returns a machine on the first step.
func New() *Machine {
	return &Machine{step: StepFlowDefinition}
}

// Step returns the current step.
func (m *Machine) Step() Step { return m.step }

// Next advances one step. Leaving FLOW_DEFINITION requires a valid identity;
// on failure the step is unchanged and the failures are returned. Leaving
// COSTS_AND_PROCESSING is unconditional. From REVIEW_AND_CONFIRM and SAVED,
// Next does nothing: saving goes through MarkSaved.
func (m *Machine) Next(id Identity) ValidationResult {
	switch m.step {
	case StepFlowDefinition:
		res := ValidateIdentity(id)
		if res.Valid() {
			m.step = StepCostsAndProcessing
		}
		return res
	case StepCostsAndProcessing:
		m.step = StepReviewAndConfirm
	}
	return ValidationResult{}
}

// Back returns to the previous step. It reports false on the first step and
// once saved.
func (m *Machine) Back() bool {
	switch m.step {
	case StepCostsAndProcessing:
		m.step = StepFlowDefinition
	case StepReviewAndConfirm:
		m.step = StepCostsAndProcessing
	default:
		return false
	}
	return true
}

// CanSave reports whether the machine is on the review step.
func (m *Machine) CanSave() bool { return m.step == StepReviewAndConfirm }

// MarkSaved moves from REVIEW_AND_CONFIRM to SAVED.
func (m *Machine) MarkSaved() bool {
	if m.step != StepReviewAndConfirm {
		return false
	}
	m.step = StepSaved
	return true
}

// Reset returns to the first step.
func (m *Machine) Reset() {
	m.step = StepFlowDefinition
}
