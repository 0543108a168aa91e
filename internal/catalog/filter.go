package catalog

// Categorized is anything carrying a category tag set: stages and document
// requirements.
type Categorized interface {
	CategoryTags() Categories
}

// IsVisible reports whether item applies to category.
func IsVisible[T Categorized](item T, category string) bool {
	return item.CategoryTags().Contains(category)
}

// Visible returns, in their original order, the items that apply to category.
// The input is never modified.
func Visible[T Categorized](items []T, category string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if IsVisible(item, category) {
			out = append(out, item)
		}
	}
	return out
}

// VisibleStages is Visible for conditional stages.
func VisibleStages(conditional []Stage, category string) []Stage {
	return Visible(conditional, category)
}

// VisibleStages returns the conditional stages shown for category, in canonical order.
func (c *Catalog) VisibleStages(category string) []Stage {
	return VisibleStages(c.conditional, category)
}

// ActiveStageIDs returns the ids of conditional stages that are enabled and
// visible for category, in canonical order.
func (c *Catalog) ActiveStageIDs(category string) []string {
	out := make([]string, 0, len(c.conditional))
	for _, s := range c.conditional {
		if s.Enabled && IsVisible(s, category) {
			out = append(out, s.ID)
		}
	}
	return out
}
