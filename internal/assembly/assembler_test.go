package assembly

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visa-flow/internal/catalog"
	"visa-flow/internal/costs"
	"visa-flow/internal/documents"
	"visa-flow/internal/visa"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

func baseSnapshot() Snapshot {
	c := catalog.DefaultCatalog()
	return Snapshot{
		Identity: Identity{
			Name:        "  Student Visa ",
			TypeID:      " Student   Long\tTerm ",
			Code:        " st-1 ",
			Description: " For full-time study ",
			Category:    "Student",
		},
		EligibilityCriteria: []string{" Enrolled in an accredited course ", "", "  "},
		FixedStageIDs:       c.FixedIDs(),
		ConditionalStages:   c.Conditional(),
		FinalStageIDs:       c.FinalIDs(),
		Documents:           documents.DefaultRequirements(),
		Tiers:               costs.DefaultTiers(),
		VisaCost:            CostInput{Amount: "490", Currency: " gbp "},
		ProcessingInfo:      ProcessingInfoInput{GeneralTimeframe: " 3 weeks ", AdditionalInfo: ""},
		Metadata:            MetadataInput{ValidityPeriod: "365", MaxExtensions: "two"},
		Version:             visa.FirstVersion,
	}
}

func TestAssemble_NormalizesIdentity(t *testing.T) {
	cfg := Assemble(baseSnapshot(), fixedNow)

	assert.Equal(t, "Student Visa", cfg.Name)
	assert.Equal(t, "student-long-term", cfg.TypeID)
	assert.Equal(t, "ST-1", cfg.Code)
	assert.Equal(t, "For full-time study", cfg.Description)
	assert.Equal(t, "Student", cfg.Category)
	assert.Equal(t, []string{"Enrolled in an accredited course"}, cfg.EligibilityCriteria)
	assert.Equal(t, fixedNow, cfg.CreatedAt)
	assert.Equal(t, fixedNow, cfg.UpdatedAt)
	assert.Equal(t, 1, cfg.Version)
}

func TestAssemble_StudentScenario(t *testing.T) {
	s := baseSnapshot()
	for i := range s.ConditionalStages {
		id := s.ConditionalStages[i].ID
		s.ConditionalStages[i].Enabled = id == catalog.StageStudentInfo || id == catalog.StageDocumentsUpload
	}
	// Enabled but not tagged for Student: must stay out.
	for i := range s.ConditionalStages {
		if s.ConditionalStages[i].ID == catalog.StageBusinessInfo {
			s.ConditionalStages[i].Enabled = true
		}
	}

	cfg := Assemble(s, fixedNow)

	var want []string
	want = append(want, s.FixedStageIDs...)
	want = append(want, catalog.StageStudentInfo, catalog.StageDocumentsUpload)
	want = append(want, s.FinalStageIDs...)
	if diff := cmp.Diff(want, cfg.ApplicationFlow); diff != "" {
		t.Errorf("application flow mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_FlowFollowsCanonicalOrder(t *testing.T) {
	s := baseSnapshot()
	s.ConditionalStages = catalog.Reorder(s.ConditionalStages, catalog.StageDocumentsUpload, catalog.StageTravelInfo)
	for i := range s.ConditionalStages {
		s.ConditionalStages[i].Enabled = true
	}

	cfg := Assemble(s, fixedNow)
	middle := cfg.ApplicationFlow[len(s.FixedStageIDs) : len(cfg.ApplicationFlow)-len(s.FinalStageIDs)]
	assert.Equal(t, []string{
		catalog.StageDocumentsUpload,
		catalog.StageStudentInfo,
		catalog.StageAccommodationInfo,
		catalog.StageFinancialInfo,
		catalog.StageSponsorInfo,
	}, middle)
}

func TestAssemble_FixedPrefixFinalSuffix(t *testing.T) {
	categories := append([]string{"", "Nobody"}, catalog.DefaultCategories...)
	base := baseSnapshot()
	n := len(base.ConditionalStages)

	// Walk a spread of toggle masks rather than all 2^n.
	for mask := 0; mask < 1<<n; mask += 37 {
		for _, category := range categories {
			s := baseSnapshot()
			s.Identity.Category = category
			for i := range s.ConditionalStages {
				s.ConditionalStages[i].Enabled = mask&(1<<i) != 0
			}
			flow := Assemble(s, fixedNow).ApplicationFlow

			require.GreaterOrEqual(t, len(flow), len(s.FixedStageIDs)+len(s.FinalStageIDs))
			assert.Equal(t, s.FixedStageIDs, flow[:len(s.FixedStageIDs)])
			assert.Equal(t, s.FinalStageIDs, flow[len(flow)-len(s.FinalStageIDs):])
		}
	}
}

func TestAssemble_RequiredDocuments(t *testing.T) {
	s := baseSnapshot()
	set, err := documents.NewSet(s.Documents, documents.WithIDGenerator(func() string { return "work-permit" }))
	require.NoError(t, err)
	set.Add("Work")
	s.Documents = set.All()

	s.Identity.Category = "Tourist"
	assert.Equal(t, []string{"passport_copy", "photograph"}, Assemble(s, fixedNow).RequiredDocuments)

	s.Identity.Category = "Work"
	assert.NotContains(t, Assemble(s, fixedNow).RequiredDocuments, "work-permit", "still disabled")
}

func TestAssemble_TiersDroppedWhenTypeAndTimeframeEmpty(t *testing.T) {
	s := baseSnapshot()
	s.Tiers = []costs.Tier{
		{Type: "  ", Timeframe: " ", MinTime: "3"},
		{Type: " Express ", Timeframe: "", TimeUnit: " days "},
		{Type: "", Timeframe: " 1 week "},
	}

	got := Assemble(s, fixedNow).ProcessingTier
	want := []visa.ProcessingTier{
		{Type: "Express", TimeUnit: "days"},
		{Timeframe: "1 week"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tiers mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_AdditionalCosts(t *testing.T) {
	s := baseSnapshot()
	s.AdditionalCosts = []costs.Cost{
		{Description: "", Amount: "abc", Currency: "gbp"},
		{Description: " Biometrics ", Amount: "oops", Currency: " eur "},
		{Description: "", Amount: " 12.5 ", Currency: ""},
		{Description: "  ", Amount: "0", Currency: "usd"},
	}

	got := Assemble(s, fixedNow).AdditionalCosts
	want := []visa.AdditionalCost{
		{Description: "Biometrics", Amount: 0, Currency: "EUR"},
		{Description: "", Amount: 12.5, Currency: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("costs mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_AdditionalCostsAllDropped(t *testing.T) {
	s := baseSnapshot()
	s.AdditionalCosts = []costs.Cost{{Description: "", Amount: "abc", Currency: "gbp"}}

	var cfg visa.Configuration
	require.NotPanics(t, func() { cfg = Assemble(s, fixedNow) })
	assert.Empty(t, cfg.AdditionalCosts)
	assert.NotNil(t, cfg.AdditionalCosts)
}

func TestAssemble_VisaCostAndMetadata(t *testing.T) {
	s := baseSnapshot()
	cfg := Assemble(s, fixedNow)
	assert.Equal(t, visa.Cost{Amount: 490, Currency: "GBP"}, cfg.VisaCost)
	assert.Equal(t, intPtr(365), cfg.Metadata.ValidityPeriod)
	assert.Nil(t, cfg.Metadata.MaxExtensions)

	s.VisaCost = CostInput{Amount: "ten", Currency: "  "}
	cfg = Assemble(s, fixedNow)
	assert.Equal(t, visa.Cost{Amount: 0, Currency: DefaultCurrency}, cfg.VisaCost)

	s.FallbackCurrency = "aed"
	assert.Equal(t, "AED", Assemble(s, fixedNow).VisaCost.Currency)
}

func TestAssemble_Deterministic(t *testing.T) {
	s := baseSnapshot()
	a := Assemble(s, fixedNow)
	b := Assemble(s, fixedNow.Add(time.Hour))

	b.CreatedAt, b.UpdatedAt = a.CreatedAt, a.UpdatedAt
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("assembly not deterministic (-first +second):\n%s", diff)
	}

	ja, err := visa.Marshal(a)
	require.NoError(t, err)
	jb, err := visa.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}

func TestAssemble_DoesNotMutateSnapshot(t *testing.T) {
	s := baseSnapshot()
	before := baseSnapshot()
	_ = Assemble(s, fixedNow)
	if diff := cmp.Diff(before, s); diff != "" {
		t.Errorf("snapshot mutated (-before +after):\n%s", diff)
	}
}

func TestAssemble_CanonicalJSONShape(t *testing.T) {
	s := baseSnapshot()
	s.Tiers = nil
	s.Metadata = MetadataInput{}
	raw, err := visa.Marshal(Assemble(s, fixedNow))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{
		"name", "typeId", "code", "description", "category", "eligibilityCriteria",
		"applicationFlow", "requiredDocuments", "processingTier", "visaCost",
		"additionalCosts", "processingInfo", "metadata", "version", "createdAt", "updatedAt",
	}, keys)
	assert.Equal(t, []any{}, doc["processingTier"])
	assert.Equal(t, map[string]any{"validityPeriod": nil, "maxExtensions": nil}, doc["metadata"])
	assert.Equal(t, "2026-03-14T09:30:00Z", doc["createdAt"])
}

func TestNormalizeTypeID(t *testing.T) {
	assert.Equal(t, "e-visa-tourist", NormalizeTypeID("  E-Visa \n Tourist "))
	assert.Equal(t, "", NormalizeTypeID("   "))
}

func TestOptionalInt(t *testing.T) {
	assert.Equal(t, intPtr(90), OptionalInt(" 90 "))
	assert.Equal(t, intPtr(2), OptionalInt("2.9"))
	assert.Nil(t, OptionalInt(""))
	assert.Nil(t, OptionalInt("NaN"))
	assert.Nil(t, OptionalInt("1e20"))
	assert.Nil(t, OptionalInt("x"))
	assert.Equal(t, intPtr(-2), OptionalInt("-2.9"))
}

func TestOptionalInt_SameRangeForEveryForm(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("needs 64-bit int")
	}
	for _, in := range []string{"3000000000", "3000000000.0", "3e9", "3000000000.5"} {
		assert.Equal(t, intPtr(3000000000), OptionalInt(in), in)
	}
	assert.Equal(t, intPtr(2147483648), OptionalInt("2147483648.5"))
	assert.Nil(t, OptionalInt("9223372036854775808"))
	assert.Nil(t, OptionalInt("9.3e18"))
}

func TestAmount(t *testing.T) {
	assert.Equal(t, 12.75, Amount(" 12.75"))
	assert.Equal(t, 0.0, Amount("12abc"))
	assert.Equal(t, 0.0, Amount("Inf"))
	assert.Equal(t, 0.0, Amount(""))
}
