package builder

import (
	"slices"

	"visa-flow/internal/assembly"
	"visa-flow/internal/catalog"
	"visa-flow/internal/costs"
	"visa-flow/internal/documents"
)

// FixedStages returns the stages every flow starts with.
func (b *Builder) FixedStages() []catalog.Stage { return b.catalog.Fixed() }

// FinalStages returns the stages every flow ends with.
func (b *Builder) FinalStages() []catalog.Stage { return b.catalog.Final() }

// ConditionalStages returns every conditional stage in canonical order.
func (b *Builder) ConditionalStages() []catalog.Stage { return b.catalog.Conditional() }

// VisibleStages returns the conditional stages shown for the active category.
func (b *Builder) VisibleStages() []catalog.Stage { return b.catalog.VisibleStages(b.category) }

// ToggleStage flips a conditional stage. Unknown ids are ignored.
func (b *Builder) ToggleStage(id string) bool { return b.catalog.Toggle(id) }

// MoveStage drags fromID onto toID in the active category's view. Both stages
// must be visible; otherwise nothing moves.
func (b *Builder) MoveStage(fromID, toID string) {
	b.catalog.MoveWithinView(b.category, fromID, toID)
}

// Documents returns the documents shown for the active category.
func (b *Builder) Documents() []documents.Requirement { return b.docs.Visible(b.category) }

// AllDocuments returns every document regardless of category.
func (b *Builder) AllDocuments() []documents.Requirement { return b.docs.All() }

// AddDocument appends a disabled document tagged with the active category.
func (b *Builder) AddDocument() documents.Requirement { return b.docs.Add(b.category) }

// RemoveDocument deletes a document once confirm approves it.
func (b *Builder) RemoveDocument(id string, confirm documents.ConfirmFunc) bool {
	return b.docs.Remove(id, confirm)
}

// ToggleDocument flips a document's enabled flag.
func (b *Builder) ToggleDocument(id string) bool { return b.docs.Toggle(id) }

// UpdateDocument replaces one text field of a document.
func (b *Builder) UpdateDocument(id string, field documents.Field, value string) bool {
	return b.docs.UpdateField(id, field, value)
}

// SetDocumentCategories replaces a document's category tags.
func (b *Builder) SetDocumentCategories(id string, categories []string) bool {
	return b.docs.SetCategories(id, categories)
}

// AddExample appends an empty example to a document.
func (b *Builder) AddExample(id string) bool { return b.docs.AddExample(id) }

// UpdateExample replaces one example of a document.
func (b *Builder) UpdateExample(id string, index int, value string) bool {
	return b.docs.UpdateExample(id, index, value)
}

// RemoveExample deletes one example of a document.
func (b *Builder) RemoveExample(id string, index int) bool {
	return b.docs.RemoveExample(id, index)
}

// Tiers returns the processing tiers.
func (b *Builder) Tiers() []costs.Tier { return b.tiers.All() }

// AddTier appends an empty tier and returns its index.
func (b *Builder) AddTier() int { return b.tiers.Add() }

// UpdateTier sets one field of a tier.
func (b *Builder) UpdateTier(index int, field costs.TierField, value string) bool {
	return b.tiers.Update(index, field, value)
}

// RemoveTier deletes a tier.
func (b *Builder) RemoveTier(index int) bool { return b.tiers.Remove(index) }

// AdditionalCosts returns the additional fee lines.
func (b *Builder) AdditionalCosts() []costs.Cost { return b.ledger.All() }

// AddCost appends an empty fee line and returns its index.
func (b *Builder) AddCost() int { return b.ledger.Add() }

// UpdateCost sets one field of a fee line.
func (b *Builder) UpdateCost(index int, field costs.CostField, value string) bool {
	return b.ledger.Update(index, field, value)
}

// RemoveCost deletes a fee line.
func (b *Builder) RemoveCost(index int) bool { return b.ledger.Remove(index) }

// VisaCost returns the main fee as typed.
func (b *Builder) VisaCost() assembly.CostInput { return b.visaCost }

// SetVisaCost sets the main fee as typed.
func (b *Builder) SetVisaCost(amount, currency string) {
	b.visaCost = assembly.CostInput{Amount: amount, Currency: currency}
}

// Criteria returns the eligibility criteria as typed.
func (b *Builder) Criteria() []string { return slices.Clone(b.criteria) }

// AddCriterion appends an empty criterion and returns its index.
func (b *Builder) AddCriterion() int {
	b.criteria = append(b.criteria, "")
	return len(b.criteria) - 1
}

// UpdateCriterion replaces one criterion.
func (b *Builder) UpdateCriterion(index int, value string) bool {
	if index < 0 || index >= len(b.criteria) {
		return false
	}
	b.criteria[index] = value
	return true
}

// RemoveCriterion deletes one criterion.
func (b *Builder) RemoveCriterion(index int) bool {
	if index < 0 || index >= len(b.criteria) {
		return false
	}
	b.criteria = slices.Delete(b.criteria, index, index+1)
	return true
}

// ProcessingInfo returns the processing text as typed.
func (b *Builder) ProcessingInfo() assembly.ProcessingInfoInput { return b.info }

// SetProcessingInfo sets the processing text.
func (b *Builder) SetProcessingInfo(generalTimeframe, additionalInfo string) {
	b.info = assembly.ProcessingInfoInput{GeneralTimeframe: generalTimeframe, AdditionalInfo: additionalInfo}
}

// Metadata returns the numeric settings as typed.
func (b *Builder) Metadata() assembly.MetadataInput { return b.metadata }

// SetMetadata sets the numeric settings as typed; they are coerced at assembly.
func (b *Builder) SetMetadata(validityPeriod, maxExtensions string) {
	b.metadata = assembly.MetadataInput{ValidityPeriod: validityPeriod, MaxExtensions: maxExtensions}
}
