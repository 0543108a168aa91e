// Package assembly turns a snapshot of builder state into the canonical visa
// configuration document. Assemble is a pure function: the same snapshot and
// clock always produce the same document, and nothing in the snapshot is
// modified.
package assembly

import (
	"strings"
	"time"

	"visa-flow/internal/catalog"
	"visa-flow/internal/costs"
	"visa-flow/internal/documents"
	"visa-flow/internal/visa"
)

// DefaultCurrency is used when the visa cost currency is left empty.
const DefaultCurrency = "USD"

// Identity is the descriptive part of a configuration, as typed.
type Identity struct {
	Name        string
	TypeID      string
	Code        string
	Description string
	Category    string
}

// CostInput is the main visa fee, as typed.
type CostInput struct {
	Amount   string
	Currency string
}

// ProcessingInfoInput is the free processing text, as typed.
type ProcessingInfoInput struct {
	GeneralTimeframe string
	AdditionalInfo   string
}

// MetadataInput holds the numeric settings, as typed.
type MetadataInput struct {
	ValidityPeriod string
	MaxExtensions  string
}

// Snapshot is the full builder state consumed by Assemble.
type Snapshot struct {
	Identity            Identity
	EligibilityCriteria []string
	FixedStageIDs       []string
	ConditionalStages   []catalog.Stage
	FinalStageIDs       []string
	Documents           []documents.Requirement
	Tiers               []costs.Tier
	VisaCost            CostInput
	AdditionalCosts     []costs.Cost
	ProcessingInfo      ProcessingInfoInput
	Metadata            MetadataInput
	Version             int
	// FallbackCurrency replaces an empty visa cost currency; DefaultCurrency when empty.
	FallbackCurrency string
}

// Assemble builds the configuration document for snapshot. Both timestamps are
// set to now.
func Assemble(s Snapshot, now time.Time) visa.Configuration {
	category := strings.TrimSpace(s.Identity.Category)
	fallback := NormalizeCurrency(s.FallbackCurrency, DefaultCurrency)

	return visa.Configuration{
		Name:                strings.TrimSpace(s.Identity.Name),
		TypeID:              NormalizeTypeID(s.Identity.TypeID),
		Code:                NormalizeCode(s.Identity.Code),
		Description:         strings.TrimSpace(s.Identity.Description),
		Category:            category,
		EligibilityCriteria: criteria(s.EligibilityCriteria),
		ApplicationFlow:     ApplicationFlow(s.FixedStageIDs, s.ConditionalStages, s.FinalStageIDs, category),
		RequiredDocuments:   documents.RequiredIDs(s.Documents, category),
		ProcessingTier:      tiers(s.Tiers),
		VisaCost: visa.Cost{
			Amount:   Amount(s.VisaCost.Amount),
			Currency: NormalizeCurrency(s.VisaCost.Currency, fallback),
		},
		AdditionalCosts: additionalCosts(s.AdditionalCosts),
		ProcessingInfo: visa.ProcessingInfo{
			GeneralTimeframe: strings.TrimSpace(s.ProcessingInfo.GeneralTimeframe),
			AdditionalInfo:   strings.TrimSpace(s.ProcessingInfo.AdditionalInfo),
		},
		Metadata: visa.Metadata{
			ValidityPeriod: OptionalInt(s.Metadata.ValidityPeriod),
			MaxExtensions:  OptionalInt(s.Metadata.MaxExtensions),
		},
		Version:   s.Version,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplicationFlow returns fixed ids, then the enabled conditional stages visible
// for category in canonical order, then final ids.
func ApplicationFlow(fixed []string, conditional []catalog.Stage, final []string, category string) []string {
	flow := make([]string, 0, len(fixed)+len(conditional)+len(final))
	flow = append(flow, fixed...)
	for _, s := range conditional {
		if s.Enabled && catalog.IsVisible(s, category) {
			flow = append(flow, s.ID)
		}
	}
	return append(flow, final...)
}

func criteria(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func tiers(in []costs.Tier) []visa.ProcessingTier {
	out := make([]visa.ProcessingTier, 0, len(in))
	for _, t := range in {
		tier := visa.ProcessingTier{
			Type:      strings.TrimSpace(t.Type),
			Timeframe: strings.TrimSpace(t.Timeframe),
			TimeUnit:  strings.TrimSpace(t.TimeUnit),
			MinTime:   strings.TrimSpace(t.MinTime),
			MaxTime:   strings.TrimSpace(t.MaxTime),
		}
		if tier.Type == "" && tier.Timeframe == "" {
			continue
		}
		out = append(out, tier)
	}
	return out
}

// Additional cost currencies are trimmed and upper-cased but never defaulted:
// an empty currency means "same as the visa fee".
func additionalCosts(in []costs.Cost) []visa.AdditionalCost {
	out := make([]visa.AdditionalCost, 0, len(in))
	for _, c := range in {
		cost := visa.AdditionalCost{
			Description: strings.TrimSpace(c.Description),
			Amount:      Amount(c.Amount),
			Currency:    strings.ToUpper(strings.TrimSpace(c.Currency)),
		}
		if cost.Description == "" && cost.Amount == 0 {
			continue
		}
		out = append(out, cost)
	}
	return out
}
