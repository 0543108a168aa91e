package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"visa-flow/internal/assembly"
	"visa-flow/internal/builder"
	"visa-flow/internal/catalog"
	"visa-flow/internal/costs"
	"visa-flow/internal/documents"
	"visa-flow/internal/scenario"
	"visa-flow/internal/visa"
	"visa-flow/internal/wizard"
)

func wizardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Build a visa configuration interactively",
		Long: `Walk through the three builder steps in the terminal:

  1. Flow definition: identity, category, stages, documents, eligibility
  2. Costs and processing: fees, processing tiers, validity settings
  3. Review and confirm: preview the document and save a new version

The visa code is remembered between sessions until the wizard is reset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.definition()
			if err != nil {
				return err
			}
			ds, err := a.dataStore()
			if err != nil {
				return err
			}
			defer ds.Close()

			ctx := cmd.Context()
			b, err := builder.New(ctx, def,
				builder.WithLogger(a.log),
				builder.WithValueStore(ds),
				builder.WithSaver(ds))
			if err != nil {
				return err
			}

			session := &wizardSession{b: b, d: a.newDriver(cmd), versions: ds, out: cmd.OutOrStdout()}
			saved, err := session.run(ctx)
			if err != nil {
				return err
			}
			if saved == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing saved.")
				return nil
			}
			res, _ := b.LastSaved()
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s version %d (%s)\n", saved.TypeID, saved.Version, res.ConfigurationID)
			return nil
		},
	}
}

// wizardSession drives a builder through the wizard steps with prompts.
type wizardSession struct {
	b        *builder.Builder
	d        PromptDriver
	versions scenario.Versioner
	out      io.Writer
}

// run loops over the wizard steps until the configuration is saved or the
// operator quits. A nil configuration means nothing was saved.
func (s *wizardSession) run(ctx context.Context) (*visa.Configuration, error) {
	for {
		switch s.b.Step() {
		case wizard.StepFlowDefinition:
			if err := s.flowDefinition(ctx); err != nil {
				return nil, err
			}
		case wizard.StepCostsAndProcessing:
			if err := s.costsAndProcessing(ctx); err != nil {
				return nil, err
			}
		case wizard.StepReviewAndConfirm:
			quit, err := s.review(ctx)
			if err != nil || quit {
				return nil, err
			}
		case wizard.StepSaved:
			res, _ := s.b.LastSaved()
			cfg := res.Configuration
			return &cfg, nil
		}
	}
}

func identityField(v string) error {
	if reason := wizard.IdentityFieldReason(v); reason != "" {
		return errors.New(reason)
	}
	return nil
}

func (s *wizardSession) flowDefinition(ctx context.Context) error {
	if err := s.d.Info(ctx, "Step 1 of 3: Flow definition"); err != nil {
		return err
	}
	id := s.b.Identity()

	name, err := s.d.Input(ctx, InputConfig{Message: "Visa name:", Default: id.Name, Validator: identityField})
	if err != nil {
		return err
	}
	typeID, err := s.d.Input(ctx, InputConfig{Message: "Visa type id:", Default: id.TypeID, Help: "Lower-cased with dashes on save", Validator: identityField})
	if err != nil {
		return err
	}
	code, err := s.d.Input(ctx, InputConfig{Message: "Visa code:", Default: id.Code, Help: "Upper-cased on save", Validator: identityField})
	if err != nil {
		return err
	}
	description, err := s.d.Input(ctx, InputConfig{Message: "Description:", Default: id.Description})
	if err != nil {
		return err
	}
	s.b.SetName(name)
	s.b.SetTypeID(typeID)
	if code != id.Code {
		s.b.SetCode(ctx, code)
	}
	s.b.SetDescription(description)

	categories := s.b.Categories()
	ci, err := s.d.Select(ctx, SelectConfig{
		Message:      "Category:",
		Options:      categories,
		DefaultIndex: max(slices.Index(categories, s.b.Category()), 0),
	})
	if err != nil {
		return err
	}
	if ci >= 0 && ci < len(categories) {
		s.b.SetCategory(categories[ci])
	}

	if err := s.chooseStages(ctx); err != nil {
		return err
	}
	if err := s.reorderStages(ctx); err != nil {
		return err
	}
	if err := s.chooseDocuments(ctx); err != nil {
		return err
	}
	if err := s.addDocuments(ctx); err != nil {
		return err
	}
	if err := s.addCriteria(ctx); err != nil {
		return err
	}

	if res := s.b.Next(); !res.Valid() {
		return s.d.Info(ctx, "Please fix: "+res.Summary())
	}
	return nil
}

func (s *wizardSession) chooseStages(ctx context.Context) error {
	visible := s.b.VisibleStages()
	if len(visible) == 0 {
		return nil
	}
	picked, err := s.d.MultiSelect(ctx, SelectConfig{
		Message:  "Conditional stages:",
		Options:  stageOptions(visible),
		Defaults: enabledStageIndices(visible),
	})
	if err != nil {
		return err
	}
	for i, st := range visible {
		if slices.Contains(picked, i) != st.Enabled {
			s.b.ToggleStage(st.ID)
		}
	}
	return nil
}

func (s *wizardSession) reorderStages(ctx context.Context) error {
	msg := "Reorder stages?"
	for {
		visible := s.b.VisibleStages()
		if len(visible) < 2 {
			return nil
		}
		again, err := s.d.Confirm(ctx, ConfirmConfig{Message: msg})
		if err != nil || !again {
			return err
		}
		options := stageOptions(visible)
		from, err := s.d.Select(ctx, SelectConfig{Message: "Move which stage?", Options: options})
		if err != nil {
			return err
		}
		to, err := s.d.Select(ctx, SelectConfig{Message: "To the position of:", Options: options})
		if err != nil {
			return err
		}
		if from >= 0 && from < len(visible) && to >= 0 && to < len(visible) {
			s.b.MoveStage(visible[from].ID, visible[to].ID)
		}
		msg = "Move another stage?"
	}
}

func (s *wizardSession) chooseDocuments(ctx context.Context) error {
	visible := s.b.Documents()
	if len(visible) == 0 {
		return nil
	}
	options := make([]string, len(visible))
	var defaults []int
	for i, d := range visible {
		options[i] = d.Name
		if d.Enabled {
			defaults = append(defaults, i)
		}
	}
	picked, err := s.d.MultiSelect(ctx, SelectConfig{Message: "Required documents:", Options: options, Defaults: defaults})
	if err != nil {
		return err
	}
	for i, d := range visible {
		if slices.Contains(picked, i) != d.Enabled {
			s.b.ToggleDocument(d.ID)
		}
	}
	return nil
}

func (s *wizardSession) addDocuments(ctx context.Context) error {
	msg := "Add a document?"
	for {
		again, err := s.d.Confirm(ctx, ConfirmConfig{Message: msg})
		if err != nil || !again {
			return err
		}
		doc := s.b.AddDocument()
		fields := []struct {
			field   documents.Field
			message string
		}{
			{documents.FieldName, "Document name:"},
			{documents.FieldDescription, "Description:"},
			{documents.FieldPurpose, "Purpose:"},
			{documents.FieldFormat, "Accepted format:"},
		}
		for _, f := range fields {
			v, err := s.d.Input(ctx, InputConfig{Message: f.message})
			if err != nil {
				return err
			}
			s.b.UpdateDocument(doc.ID, f.field, v)
		}
		s.b.ToggleDocument(doc.ID)
		msg = "Add another document?"
	}
}

func (s *wizardSession) addCriteria(ctx context.Context) error {
	if existing := s.b.Criteria(); len(existing) > 0 {
		if err := s.d.Info(ctx, "Eligibility criteria: "+strings.Join(existing, "; ")); err != nil {
			return err
		}
	}
	for {
		v, err := s.d.Input(ctx, InputConfig{Message: "Eligibility criterion (blank to finish):"})
		if err != nil {
			return err
		}
		if strings.TrimSpace(v) == "" {
			return nil
		}
		s.b.UpdateCriterion(s.b.AddCriterion(), v)
	}
}

func (s *wizardSession) costsAndProcessing(ctx context.Context) error {
	if err := s.d.Info(ctx, "Step 2 of 3: Costs and processing"); err != nil {
		return err
	}
	fee := s.b.VisaCost()
	amount, err := s.d.Input(ctx, InputConfig{Message: "Visa fee amount:", Default: fee.Amount})
	if err != nil {
		return err
	}
	currency, err := s.d.Input(ctx, InputConfig{Message: "Currency:", Default: fee.Currency})
	if err != nil {
		return err
	}
	s.b.SetVisaCost(amount, currency)

	if err := s.addTiers(ctx); err != nil {
		return err
	}
	if err := s.addCosts(ctx); err != nil {
		return err
	}

	info := s.b.ProcessingInfo()
	general, err := s.d.Input(ctx, InputConfig{Message: "General processing timeframe:", Default: info.GeneralTimeframe})
	if err != nil {
		return err
	}
	additional, err := s.d.Input(ctx, InputConfig{Message: "Additional processing info:", Default: info.AdditionalInfo})
	if err != nil {
		return err
	}
	s.b.SetProcessingInfo(general, additional)

	meta := s.b.Metadata()
	validity, err := s.d.Input(ctx, InputConfig{Message: "Validity period (days):", Default: meta.ValidityPeriod})
	if err != nil {
		return err
	}
	extensions, err := s.d.Input(ctx, InputConfig{Message: "Maximum extensions:", Default: meta.MaxExtensions})
	if err != nil {
		return err
	}
	s.b.SetMetadata(validity, extensions)

	choice, err := s.d.Select(ctx, SelectConfig{
		Message: "Next:",
		Options: []string{"Continue to review", "Back", "Start over"},
	})
	if err != nil {
		return err
	}
	return s.navigate(ctx, choice)
}

func (s *wizardSession) addTiers(ctx context.Context) error {
	var lines []string
	for _, t := range s.b.Tiers() {
		lines = append(lines, fmt.Sprintf("%s (%s)", t.Type, t.Timeframe))
	}
	if len(lines) > 0 {
		if err := s.d.Info(ctx, "Processing tiers: "+strings.Join(lines, ", ")); err != nil {
			return err
		}
	}

	msg := "Add a processing tier?"
	for {
		again, err := s.d.Confirm(ctx, ConfirmConfig{Message: msg})
		if err != nil || !again {
			return err
		}
		i := s.b.AddTier()
		fields := []struct {
			field   costs.TierField
			message string
		}{
			{costs.TierType, "Tier type:"},
			{costs.TierTimeframe, "Timeframe:"},
			{costs.TierTimeUnit, "Time unit:"},
			{costs.TierMinTime, "Minimum time:"},
			{costs.TierMaxTime, "Maximum time:"},
		}
		for _, f := range fields {
			v, err := s.d.Input(ctx, InputConfig{Message: f.message})
			if err != nil {
				return err
			}
			s.b.UpdateTier(i, f.field, v)
		}
		msg = "Add another tier?"
	}
}

func (s *wizardSession) addCosts(ctx context.Context) error {
	msg := "Add an additional cost?"
	for {
		again, err := s.d.Confirm(ctx, ConfirmConfig{Message: msg})
		if err != nil || !again {
			return err
		}
		i := s.b.AddCost()
		fields := []struct {
			field   costs.CostField
			message string
		}{
			{costs.CostDescription, "Cost description:"},
			{costs.CostAmount, "Amount:"},
			{costs.CostCurrency, "Currency:"},
		}
		for _, f := range fields {
			v, err := s.d.Input(ctx, InputConfig{Message: f.message})
			if err != nil {
				return err
			}
			s.b.UpdateCost(i, f.field, v)
		}
		msg = "Add another cost?"
	}
}

const (
	choiceForward = iota
	choiceBack
	choiceStartOver
	choiceQuit
)

func (s *wizardSession) navigate(ctx context.Context, choice int) error {
	switch choice {
	case choiceForward:
		s.b.Next()
	case choiceBack:
		s.b.Back()
	case choiceStartOver:
		ok, err := s.d.Confirm(ctx, ConfirmConfig{Message: "Discard everything and start over?"})
		if err != nil {
			return err
		}
		if ok {
			s.b.Reset(ctx)
		}
	}
	return nil
}

// review reports quit == true when the operator leaves without saving.
func (s *wizardSession) review(ctx context.Context) (bool, error) {
	raw, err := visa.MarshalIndent(s.b.Preview())
	if err != nil {
		return false, err
	}
	if err := s.d.Info(ctx, "Step 3 of 3: Review and confirm\n"+string(raw)); err != nil {
		return false, err
	}

	choice, err := s.d.Select(ctx, SelectConfig{
		Message: "Save this configuration?",
		Options: []string{"Save", "Back", "Start over", "Quit without saving"},
	})
	if err != nil {
		return false, err
	}
	switch choice {
	case choiceForward:
		return false, s.save(ctx)
	case choiceQuit:
		return true, nil
	}
	return false, s.navigate(ctx, choice)
}

func (s *wizardSession) save(ctx context.Context) error {
	if s.versions != nil {
		typeID := assembly.NormalizeTypeID(s.b.Identity().TypeID)
		v, err := s.versions.NextVersion(ctx, typeID)
		if err != nil {
			return fmt.Errorf("failed to allocate version for %q: %w", typeID, err)
		}
		s.b.SetVersion(v)
	}
	_, err := s.b.Save(ctx)
	return err
}

func stageOptions(stages []catalog.Stage) []string {
	out := make([]string, len(stages))
	for i, st := range stages {
		out[i] = fmt.Sprintf("%s - %s", st.ID, st.Name)
	}
	return out
}

func enabledStageIndices(stages []catalog.Stage) []int {
	var out []int
	for i, st := range stages {
		if st.Enabled {
			out = append(out, i)
		}
	}
	return out
}
