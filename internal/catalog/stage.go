// Package catalog holds the stage catalog of an application workflow.
//
// A workflow is always made of three segments:
//
//	fixed stages → conditional stages → final stages
//
// Fixed and final stages are always present and keep the order they were defined
// in. Conditional stages carry an enable flag, a position in one canonical order
// and an optional set of category tags. A category view of the conditional
// stages is a projection of the canonical order, never an independent ordering.
package catalog

import (
	"fmt"
	"slices"
)

// Group identifies the segment a stage belongs to.
type Group string

const (
	GroupFixed       Group = "fixed"
	GroupConditional Group = "conditional"
	GroupFinal       Group = "final"
)

// Categories is a set of category labels. An empty set means the item applies
// to every category.
type Categories []string

// All reports whether the set applies to every category.
func (c Categories) All() bool { return len(c) == 0 }

// Contains reports whether the set applies to the given category.
func (c Categories) Contains(category string) bool {
	return c.All() || slices.Contains(c, category)
}

// Stage is one step of the application workflow.
type Stage struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Group      Group      `json:"group" yaml:"group"`
	Enabled    bool       `json:"enabled" yaml:"enabled"`
	Order      int        `json:"order" yaml:"order"`
	Categories Categories `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// CategoryTags implements Categorized.
func (s Stage) CategoryTags() Categories { return s.Categories }

// Catalog is the working stage catalog. Fixed and Final are immutable once the
// catalog is built; Conditional is the canonical, mutable order.
type Catalog struct {
	fixed       []Stage
	final       []Stage
	conditional []Stage
	defaults    map[string]bool
}

// New builds a catalog from the three stage segments. Stage ids must be unique
// across the whole catalog. Fixed and final stages are forced enabled, and
// Order fields are renumbered from the slice positions.
func New(fixed, conditional, final []Stage) (*Catalog, error) {
	seen := make(map[string]struct{}, len(fixed)+len(conditional)+len(final))
	check := func(stages []Stage) error {
		for _, s := range stages {
			if s.ID == "" {
				return fmt.Errorf("stage %q has an empty id", s.Name)
			}
			if _, dup := seen[s.ID]; dup {
				return fmt.Errorf("duplicate stage id: %s", s.ID)
			}
			seen[s.ID] = struct{}{}
		}
		return nil
	}
	for _, segment := range [][]Stage{fixed, conditional, final} {
		if err := check(segment); err != nil {
			return nil, err
		}
	}

	c := &Catalog{
		fixed:       normalize(fixed, GroupFixed, true),
		final:       normalize(final, GroupFinal, true),
		conditional: normalize(conditional, GroupConditional, false),
		defaults:    make(map[string]bool, len(conditional)),
	}
	for _, s := range c.conditional {
		c.defaults[s.ID] = s.Enabled
	}
	return c, nil
}

// MustNew is New for catalogs defined in code.
func MustNew(fixed, conditional, final []Stage) *Catalog {
	c, err := New(fixed, conditional, final)
	if err != nil {
		panic(err)
	}
	return c
}

func normalize(stages []Stage, group Group, forceEnabled bool) []Stage {
	out := make([]Stage, len(stages))
	for i, s := range stages {
		s.Group = group
		s.Order = i
		if forceEnabled {
			s.Enabled = true
		}
		s.Categories = slices.Clone(s.Categories)
		out[i] = s
	}
	return out
}

// Fixed returns a copy of the fixed stages in catalog order.
func (c *Catalog) Fixed() []Stage { return slices.Clone(c.fixed) }

// Final returns a copy of the final stages in catalog order.
func (c *Catalog) Final() []Stage { return slices.Clone(c.final) }

// Conditional returns a copy of the conditional stages in canonical order.
func (c *Catalog) Conditional() []Stage { return slices.Clone(c.conditional) }

// FixedIDs returns the fixed stage ids in catalog order.
func (c *Catalog) FixedIDs() []string { return ids(c.fixed) }

// FinalIDs returns the final stage ids in catalog order.
func (c *Catalog) FinalIDs() []string { return ids(c.final) }

func ids(stages []Stage) []string {
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = s.ID
	}
	return out
}

// Toggle flips the enabled flag of a conditional stage. Unknown ids are ignored.
func (c *Catalog) Toggle(id string) bool {
	i := indexOf(c.conditional, id)
	if i < 0 {
		return false
	}
	c.conditional[i].Enabled = !c.conditional[i].Enabled
	return true
}

// SetEnabled sets the enabled flag of a conditional stage. Unknown ids are ignored.
func (c *Catalog) SetEnabled(id string, enabled bool) bool {
	i := indexOf(c.conditional, id)
	if i < 0 {
		return false
	}
	c.conditional[i].Enabled = enabled
	return true
}

// Move repositions a conditional stage in the canonical order; see Reorder.
func (c *Catalog) Move(fromID, toID string) {
	c.conditional = Reorder(c.conditional, fromID, toID)
}

// MoveWithinView repositions a conditional stage while only the stages visible
// for category are shown; see MoveWithinView.
func (c *Catalog) MoveWithinView(category, fromID, toID string) {
	c.conditional = MoveWithinView(c.conditional, category, fromID, toID)
}

// ResetEnabled restores every conditional stage's enabled flag to its catalog
// default. The canonical order is left as it is.
func (c *Catalog) ResetEnabled() {
	for i := range c.conditional {
		c.conditional[i].Enabled = c.defaults[c.conditional[i].ID]
	}
}

// Clone returns an independent copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		fixed:       normalize(c.fixed, GroupFixed, true),
		final:       normalize(c.final, GroupFinal, true),
		conditional: make([]Stage, len(c.conditional)),
		defaults:    make(map[string]bool, len(c.defaults)),
	}
	for i, s := range c.conditional {
		s.Categories = slices.Clone(s.Categories)
		out.conditional[i] = s
	}
	for k, v := range c.defaults {
		out.defaults[k] = v
	}
	return out
}

func indexOf(stages []Stage, id string) int {
	return slices.IndexFunc(stages, func(s Stage) bool { return s.ID == id })
}
