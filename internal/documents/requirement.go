// Package documents manages the document requirements of a workflow: which
// supporting documents an applicant must upload, and for which categories.
package documents

import (
	"slices"

	"visa-flow/internal/catalog"
)

// Requirement describes one document type an applicant may have to provide.
type Requirement struct {
	ID          string             `json:"id" yaml:"id"`
	Name        string             `json:"name" yaml:"name"`
	Enabled     bool               `json:"enabled" yaml:"enabled"`
	Description string             `json:"description" yaml:"description"`
	Purpose     string             `json:"purpose" yaml:"purpose"`
	Format      string             `json:"format" yaml:"format"`
	Examples    []string           `json:"examples" yaml:"examples"`
	Categories  catalog.Categories `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// CategoryTags implements catalog.Categorized.
func (r Requirement) CategoryTags() catalog.Categories { return r.Categories }

func (r Requirement) clone() Requirement {
	r.Examples = slices.Clone(r.Examples)
	r.Categories = slices.Clone(r.Categories)
	if r.Examples == nil {
		r.Examples = []string{}
	}
	return r
}

// Field names a scalar field that UpdateField can replace.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldPurpose     Field = "purpose"
	FieldFormat      Field = "format"
)

// Visible returns the requirements shown for category, in set order.
func Visible(reqs []Requirement, category string) []Requirement {
	return catalog.Visible(reqs, category)
}

// RequiredIDs returns the ids of requirements that are enabled and visible for
// category, in set order.
func RequiredIDs(reqs []Requirement, category string) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if r.Enabled && catalog.IsVisible(r, category) {
			out = append(out, r.ID)
		}
	}
	return out
}
