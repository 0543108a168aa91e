package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"visa-flow/internal/assembly"
	"visa-flow/internal/builder"
	"visa-flow/internal/catalog"
	"visa-flow/internal/costs"
	"visa-flow/internal/documents"
	"visa-flow/internal/wizard"
)

// Versioner allocates the version a save should carry.
type Versioner interface {
	NextVersion(ctx context.Context, typeID string) (int, error)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithVersioner makes every save ask v for the next version of its type id.
func WithVersioner(v Versioner) RunnerOption {
	return func(r *Runner) { r.versions = v }
}

// WithLogger sets the runner's logger.
func WithLogger(log *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// Runner replays scenarios against a builder.
type Runner struct {
	b        *builder.Builder
	versions Versioner
	log      *zap.Logger
	output   io.Writer

	lastDocument  string
	lastTier      int
	lastCost      int
	lastCriterion int
	lastExample   int
}

// NewRunner creates a runner driving b.
func NewRunner(b *builder.Builder, opts ...RunnerOption) *Runner {
	r := &Runner{b: b, log: zap.NewNop(), output: os.Stdout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetOutput sets the output writer (for testing).
func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

// Run executes every step of sc in order. A step fails when its action errors
// or its expectations are not met; with StopOnError the run ends there and the
// failure is also returned as an error.
func (r *Runner) Run(ctx context.Context, sc Scenario) (*Result, error) {
	result := &Result{ScenarioName: sc.Name, TotalSteps: len(sc.Steps)}
	r.printf("Scenario: %s\n", sc.Name)
	if sc.Description != "" {
		r.printf("  %s\n", sc.Description)
	}

	for i, step := range sc.Steps {
		sr := r.runStep(ctx, i, step)
		result.Steps = append(result.Steps, sr)

		if sr.Error != nil {
			result.FailedSteps++
			r.printf("  [%d] %-20s FAIL  %v\n", i+1, step.Action, sr.Error)
			r.log.Debug("scenario step failed", zap.Int("step", i+1), zap.String("action", string(step.Action)), zap.Error(sr.Error))
			if sc.StopOnError {
				result.SkippedSteps = len(sc.Steps) - i - 1
				return result, fmt.Errorf("step %d (%s): %w", i+1, step.Action, sr.Error)
			}
			continue
		}
		result.PassedSteps++
		status := "ok"
		if !sr.Applied {
			status = "no-op"
		}
		r.printf("  [%d] %-20s %-5s %s\n", i+1, step.Action, status, sr.WizardStep)
	}

	if saved, ok := r.b.LastSaved(); ok {
		cfg := saved.Configuration
		result.Saved = &cfg
	}
	result.Success = result.FailedSteps == 0
	return result, nil
}

func (r *Runner) runStep(ctx context.Context, index int, step Step) StepResult {
	sr := StepResult{StepIndex: index, Action: step.Action}
	sr.Applied, sr.Validation, sr.Error = r.apply(ctx, step)
	sr.WizardStep = r.b.Step()

	if sr.Error == nil && step.ExpectValid != nil && *step.ExpectValid != sr.Validation.Valid() {
		sr.Error = fmt.Errorf("expected valid=%t, got %t (%s)", *step.ExpectValid, sr.Validation.Valid(), sr.Validation.Summary())
	}
	if sr.Error == nil && step.ExpectStep != "" && step.ExpectStep != sr.WizardStep {
		sr.Error = fmt.Errorf("expected step %s, got %s", step.ExpectStep, sr.WizardStep)
	}
	return sr
}

func (r *Runner) apply(ctx context.Context, step Step) (bool, wizard.ValidationResult, error) {
	b := r.b
	none := wizard.ValidationResult{}

	switch step.Action {
	case ActionSetIdentity:
		b.SetName(step.Name)
		b.SetTypeID(step.TypeID)
		b.SetCode(ctx, step.Code)
		b.SetDescription(step.Description)
		return true, none, nil
	case ActionSetCategory:
		return b.SetCategory(step.Category), none, nil

	case ActionToggleStage:
		return b.ToggleStage(step.ID), none, nil
	case ActionMoveStage:
		before := b.ConditionalStages()
		b.MoveStage(step.ID, step.To)
		return !sameOrder(before, b.ConditionalStages()), none, nil

	case ActionAddDocument:
		r.lastDocument = b.AddDocument().ID
		return true, none, nil
	case ActionToggleDocument:
		return b.ToggleDocument(r.docID(step)), none, nil
	case ActionUpdateDocument:
		if step.Field == "categories" {
			return b.SetDocumentCategories(r.docID(step), step.Categories), none, nil
		}
		return b.UpdateDocument(r.docID(step), documents.Field(step.Field), step.Value), none, nil
	case ActionRemoveDocument:
		confirm := func(documents.Requirement) bool { return step.Confirm }
		return b.RemoveDocument(r.docID(step), confirm), none, nil
	case ActionAddExample:
		id := r.docID(step)
		if !b.AddExample(id) {
			return false, none, nil
		}
		for _, d := range b.AllDocuments() {
			if d.ID == id {
				r.lastExample = len(d.Examples) - 1
			}
		}
		return true, none, nil
	case ActionUpdateExample:
		return b.UpdateExample(r.docID(step), r.index(step, r.lastExample), step.Value), none, nil
	case ActionRemoveExample:
		return b.RemoveExample(r.docID(step), r.index(step, r.lastExample)), none, nil

	case ActionAddTier:
		r.lastTier = b.AddTier()
		return true, none, nil
	case ActionUpdateTier:
		return b.UpdateTier(r.index(step, r.lastTier), costs.TierField(step.Field), step.Value), none, nil
	case ActionRemoveTier:
		return b.RemoveTier(r.index(step, r.lastTier)), none, nil

	case ActionAddCost:
		r.lastCost = b.AddCost()
		return true, none, nil
	case ActionUpdateCost:
		return b.UpdateCost(r.index(step, r.lastCost), costs.CostField(step.Field), step.Value), none, nil
	case ActionRemoveCost:
		return b.RemoveCost(r.index(step, r.lastCost)), none, nil
	case ActionSetVisaCost:
		b.SetVisaCost(step.Amount, step.Currency)
		return true, none, nil

	case ActionAddCriterion:
		r.lastCriterion = b.AddCriterion()
		if step.Value != "" {
			b.UpdateCriterion(r.lastCriterion, step.Value)
		}
		return true, none, nil
	case ActionUpdateCriterion:
		return b.UpdateCriterion(r.index(step, r.lastCriterion), step.Value), none, nil
	case ActionRemoveCriterion:
		return b.RemoveCriterion(r.index(step, r.lastCriterion)), none, nil

	case ActionSetProcessingInfo:
		b.SetProcessingInfo(step.GeneralTimeframe, step.AdditionalInfo)
		return true, none, nil
	case ActionSetMetadata:
		b.SetMetadata(step.ValidityPeriod, step.MaxExtensions)
		return true, none, nil

	case ActionNext:
		from := b.Step()
		res := b.Next()
		return b.Step() != from, res, nil
	case ActionBack:
		return b.Back(), none, nil
	case ActionSave:
		if err := r.allocateVersion(ctx); err != nil {
			return false, none, err
		}
		if _, err := b.Save(ctx); err != nil {
			if errors.Is(err, builder.ErrNotInReview) {
				return false, none, nil
			}
			return true, none, err
		}
		return true, none, nil
	case ActionReset:
		b.Reset(ctx)
		return true, none, nil
	}
	return false, none, fmt.Errorf("unknown action %q", step.Action)
}

func (r *Runner) allocateVersion(ctx context.Context) error {
	if r.versions == nil || r.b.Step() != wizard.StepReviewAndConfirm {
		return nil
	}
	typeID := assembly.NormalizeTypeID(r.b.Identity().TypeID)
	v, err := r.versions.NextVersion(ctx, typeID)
	if err != nil {
		return fmt.Errorf("failed to allocate version for %q: %w", typeID, err)
	}
	r.b.SetVersion(v)
	return nil
}

func (r *Runner) docID(step Step) string {
	if step.ID == LastAdded {
		return r.lastDocument
	}
	return step.ID
}

func (r *Runner) index(step Step, last int) int {
	if step.Index != nil {
		return *step.Index
	}
	return last
}

func sameOrder(a, b []catalog.Stage) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func (r *Runner) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.output, format, args...)
}
