package documents

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("doc-%d", n)
	})
}

func approve(Requirement) bool { return true }

func newTestSet(t *testing.T) *Set {
	t.Helper()
	s, err := NewSet(DefaultRequirements(), sequentialIDs())
	require.NoError(t, err)
	return s
}

func TestNewSet_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewSet([]Requirement{{ID: "a"}, {ID: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate document id")
}

func TestAdd_DefaultsToActiveCategory(t *testing.T) {
	s := newTestSet(t)
	r := s.Add("Work")

	assert.Equal(t, "doc-1", r.ID)
	assert.False(t, r.Enabled)
	assert.Empty(t, r.Examples)
	assert.NotNil(t, r.Examples)
	assert.Equal(t, []string{"Work"}, []string(r.Categories))
	assert.Equal(t, len(DefaultRequirements())+1, s.Len())
}

func TestAdd_WithoutCategoryAppliesToAll(t *testing.T) {
	s := newTestSet(t)
	r := s.Add("")
	assert.True(t, r.Categories.All())
}

func TestAdd_SkipsCollidingIDs(t *testing.T) {
	calls := 0
	s, err := NewSet([]Requirement{{ID: "x"}}, WithIDGenerator(func() string {
		calls++
		if calls == 1 {
			return "x"
		}
		return "y"
	}))
	require.NoError(t, err)
	assert.Equal(t, "y", s.Add("").ID)
}

func TestAdd_UUIDByDefault(t *testing.T) {
	s, err := NewSet(nil)
	require.NoError(t, err)
	assert.Len(t, s.Add("").ID, 36)
}

func TestRemove_RequiresConfirmation(t *testing.T) {
	s := newTestSet(t)

	assert.False(t, s.Remove("passport_copy", nil))
	assert.False(t, s.Remove("passport_copy", func(Requirement) bool { return false }))
	_, ok := s.Get("passport_copy")
	assert.True(t, ok)

	var asked string
	assert.True(t, s.Remove("passport_copy", func(r Requirement) bool {
		asked = r.Name
		return true
	}))
	assert.Equal(t, "Passport Copy", asked)
	_, ok = s.Get("passport_copy")
	assert.False(t, ok)

	assert.False(t, s.Remove("passport_copy", approve), "second removal is a no-op")
}

func TestToggleAndUpdateField(t *testing.T) {
	s := newTestSet(t)

	require.True(t, s.Toggle("bank_statement"))
	r, _ := s.Get("bank_statement")
	assert.True(t, r.Enabled)

	require.True(t, s.UpdateField("bank_statement", FieldName, "Bank Statements"))
	require.True(t, s.UpdateField("bank_statement", FieldDescription, "Twelve months"))
	require.True(t, s.UpdateField("bank_statement", FieldPurpose, "Funds"))
	require.True(t, s.UpdateField("bank_statement", FieldFormat, "PDF only"))
	r, _ = s.Get("bank_statement")
	assert.Equal(t, "Bank Statements", r.Name)
	assert.Equal(t, "Twelve months", r.Description)
	assert.Equal(t, "Funds", r.Purpose)
	assert.Equal(t, "PDF only", r.Format)

	assert.False(t, s.UpdateField("bank_statement", Field("enabled"), "x"))
	assert.False(t, s.UpdateField("missing", FieldName, "x"))
	assert.False(t, s.Toggle("missing"))
}

func TestExamples(t *testing.T) {
	s := newTestSet(t)
	id := "photograph"

	require.True(t, s.AddExample(id))
	require.True(t, s.AddExample(id))
	require.True(t, s.UpdateExample(id, 0, "Front"))
	require.True(t, s.UpdateExample(id, 1, "Side"))
	r, _ := s.Get(id)
	assert.Equal(t, []string{"Front", "Side"}, r.Examples)

	require.True(t, s.RemoveExample(id, 0))
	r, _ = s.Get(id)
	assert.Equal(t, []string{"Side"}, r.Examples)

	assert.False(t, s.UpdateExample(id, 5, "x"))
	assert.False(t, s.UpdateExample(id, -1, "x"))
	assert.False(t, s.RemoveExample(id, 1))
	assert.False(t, s.AddExample("missing"))
	r, _ = s.Get(id)
	assert.Equal(t, []string{"Side"}, r.Examples)
}

func TestAll_ReturnsCopies(t *testing.T) {
	s := newTestSet(t)
	all := s.All()
	all[0].Examples[0] = "mutated"
	all[0].Name = "mutated"

	r, _ := s.Get(all[0].ID)
	assert.NotEqual(t, "mutated", r.Name)
	assert.NotEqual(t, "mutated", r.Examples[0])
}

func TestRequiredIDs_CategoryAndEnabled(t *testing.T) {
	s := newTestSet(t)
	added := s.Add("Work")

	work := RequiredIDs(s.All(), "Work")
	assert.Equal(t, []string{"passport_copy", "photograph", "employment_contract"}, work)
	assert.NotContains(t, work, added.ID, "new documents start disabled")

	s.Toggle(added.ID)
	assert.Contains(t, RequiredIDs(s.All(), "Work"), added.ID)
	assert.NotContains(t, RequiredIDs(s.All(), "Tourist"), added.ID)

	assert.Equal(t, []string{"passport_copy", "photograph", "admission_letter"}, RequiredIDs(s.All(), "Student"))
}

func TestSetCategories(t *testing.T) {
	s := newTestSet(t)
	require.True(t, s.SetCategories("bank_statement", []string{"Student", "Work"}))
	assert.Len(t, s.Visible("Tourist"), 3)

	require.True(t, s.SetCategories("bank_statement", nil))
	r, _ := s.Get("bank_statement")
	assert.True(t, r.Categories.All())
	assert.False(t, s.SetCategories("missing", nil))
}
