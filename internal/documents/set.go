package documents

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"visa-flow/internal/catalog"
)

// ConfirmFunc is asked before a requirement is removed. Removal only happens
// when it returns true.
type ConfirmFunc func(Requirement) bool

// Set is the working collection of document requirements. Operations that
// reference an unknown id or example index are no-ops and report false.
type Set struct {
	items []Requirement
	newID func() string
}

// Option configures a Set.
type Option func(*Set)

// WithIDGenerator replaces the uuid generator used by Add.
func WithIDGenerator(fn func() string) Option {
	return func(s *Set) { s.newID = fn }
}

// NewSet builds a set from initial requirements. Ids must be unique.
func NewSet(initial []Requirement, opts ...Option) (*Set, error) {
	s := &Set{
		items: make([]Requirement, 0, len(initial)),
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	seen := make(map[string]struct{}, len(initial))
	for _, r := range initial {
		if r.ID == "" {
			return nil, fmt.Errorf("document %q has an empty id", r.Name)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate document id: %s", r.ID)
		}
		seen[r.ID] = struct{}{}
		s.items = append(s.items, r.clone())
	}
	return s, nil
}

// Len returns the number of requirements.
func (s *Set) Len() int { return len(s.items) }

// All returns a copy of every requirement in set order.
func (s *Set) All() []Requirement {
	out := make([]Requirement, len(s.items))
	for i, r := range s.items {
		out[i] = r.clone()
	}
	return out
}

// Get returns a copy of the requirement with the given id.
func (s *Set) Get(id string) (Requirement, bool) {
	i := s.index(id)
	if i < 0 {
		return Requirement{}, false
	}
	return s.items[i].clone(), true
}

// Add appends a new, disabled requirement with a generated id. Its categories
// default to the active category; with no active category it applies to all.
func (s *Set) Add(activeCategory string) Requirement {
	id := s.newID()
	for s.index(id) >= 0 {
		id = s.newID()
	}
	r := Requirement{
		ID:       id,
		Examples: []string{},
	}
	if activeCategory != "" {
		r.Categories = catalog.Categories{activeCategory}
	}
	s.items = append(s.items, r)
	return r.clone()
}

// Remove deletes a requirement once confirm approves it. A nil confirm never
// approves.
func (s *Set) Remove(id string, confirm ConfirmFunc) bool {
	i := s.index(id)
	if i < 0 || confirm == nil || !confirm(s.items[i].clone()) {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Toggle flips the enabled flag of a requirement.
func (s *Set) Toggle(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items[i].Enabled = !s.items[i].Enabled
	return true
}

// UpdateField replaces one scalar field of a requirement.
func (s *Set) UpdateField(id string, field Field, value string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	r := &s.items[i]
	switch field {
	case FieldName:
		r.Name = value
	case FieldDescription:
		r.Description = value
	case FieldPurpose:
		r.Purpose = value
	case FieldFormat:
		r.Format = value
	default:
		return false
	}
	return true
}

// SetCategories replaces the category tags of a requirement. An empty list
// makes it apply to every category.
func (s *Set) SetCategories(id string, categories []string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items[i].Categories = slices.Clone(catalog.Categories(categories))
	return true
}

// AddExample appends an empty example to a requirement.
func (s *Set) AddExample(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items[i].Examples = append(s.items[i].Examples, "")
	return true
}

// UpdateExample replaces the example at index.
func (s *Set) UpdateExample(id string, index int, value string) bool {
	i := s.index(id)
	if i < 0 || index < 0 || index >= len(s.items[i].Examples) {
		return false
	}
	s.items[i].Examples[index] = value
	return true
}

// RemoveExample deletes the example at index.
func (s *Set) RemoveExample(id string, index int) bool {
	i := s.index(id)
	if i < 0 || index < 0 || index >= len(s.items[i].Examples) {
		return false
	}
	s.items[i].Examples = slices.Delete(s.items[i].Examples, index, index+1)
	return true
}

// Visible returns the requirements shown for category.
func (s *Set) Visible(category string) []Requirement {
	return Visible(s.All(), category)
}

func (s *Set) index(id string) int {
	return slices.IndexFunc(s.items, func(r Requirement) bool { return r.ID == id })
}
