package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visa-flow/internal/catalog"
	"visa-flow/internal/datastore"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	infoMessages []string
	inputConfigs []InputConfig
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted for " + cfg.Message)
	}
	s.inputConfigs = append(s.inputConfigs, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted for " + cfg.Message)
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted for " + cfg.Message)
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted for " + cfg.Message)
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func runCLI(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mockArgs(dir string, args ...string) []string {
	return append(args, "--store", "mock", "--mock-data", dir)
}

func TestCategoriesCommand(t *testing.T) {
	out, err := runCLI(t, &app{}, "categories")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(catalog.DefaultCategories, "\n")+"\n", out)
}

func TestCategoriesCommand_CatalogFlag(t *testing.T) {
	out, err := runCLI(t, &app{}, "categories", "--catalog", filepath.Join("..", "..", "configs", "catalog.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Transit")
}

func TestStagesCommand_FiltersByCategory(t *testing.T) {
	out, err := runCLI(t, &app{}, "stages", "--category", "Student")
	require.NoError(t, err)
	assert.Contains(t, out, catalog.StageStudentInfo)
	assert.Contains(t, out, catalog.StagePersonalInfo)
	assert.Contains(t, out, "admission_letter")
	assert.NotContains(t, out, catalog.StageBusinessInfo)
	assert.NotContains(t, out, "employment_contract")
}

func TestBuildShowHistoryList(t *testing.T) {
	dir := t.TempDir()
	scenarioFile := filepath.Join("..", "..", "scenarios", "tourist.yaml")

	out, err := runCLI(t, &app{}, mockArgs(dir, "init-db")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Database initialized successfully.")

	out, err = runCLI(t, &app{}, mockArgs(dir, "build", "--scenario", scenarioFile)...)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Saved tourist version 1")

	out, err = runCLI(t, &app{}, mockArgs(dir, "build", "--scenario", scenarioFile)...)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Saved tourist version 2")

	out, err = runCLI(t, &app{}, mockArgs(dir, "show", "--type-id", "tourist")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"typeId": "tourist"`)
	assert.Contains(t, out, `"version": 2`)

	out, err = runCLI(t, &app{}, mockArgs(dir, "show", "--type-id", "tourist", "--version", "1")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"version": 1`)

	_, err = runCLI(t, &app{}, mockArgs(dir, "show", "--type-id", "ghost")...)
	assert.Error(t, err)

	out, err = runCLI(t, &app{}, mockArgs(dir, "history", "--type-id", "tourist")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 versions.")

	out, err = runCLI(t, &app{}, mockArgs(dir, "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "tourist")
	assert.Contains(t, out, "v2")
}

func TestBuild_FailingScenarioReturnsError(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, &app{}, mockArgs(dir, "build", "--dir", filepath.Join(dir, "missing"))...)
	assert.Error(t, err, out)
}

func TestUnsupportedStore(t *testing.T) {
	_, err := runCLI(t, &app{}, "list", "--store", "redis")
	require.Error(t, err)
	var unsupported *datastore.UnsupportedStoreTypeError
	assert.ErrorAs(t, err, &unsupported)
}

func TestWizardCommand_SavesConfiguration(t *testing.T) {
	dir := t.TempDir()
	driver := &stubDriver{
		inputs: []string{
			"Tourist Visa", "Tourist Short Stay", "tr", "", // identity
			"",            // no criteria
			"80", "usd",   // visa fee
			"Service fee", "15", "usd", // one additional cost
			"5 days", "", "30", "0",
		},
		selectIdx: []int{1, 0, 0}, // Tourist, continue, save
		multiIdx:  [][]int{{0, 1, 3}, {0, 1, 3}},
		confirm:   []bool{false, false, false, true, false},
	}
	a := &app{newDriver: func(*cobra.Command) PromptDriver { return driver }}

	out, err := runCLI(t, a, mockArgs(dir, "wizard")...)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Saved tourist-short-stay version 1")

	out, err = runCLI(t, &app{}, mockArgs(dir, "show", "--type-id", "tourist-short-stay")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"code": "TR"`)
	assert.Contains(t, out, `"travel_itinerary"`)
	assert.Contains(t, out, `"Service fee"`)
	assert.Contains(t, out, `"maxExtensions": 0`)

	ds, err := datastore.NewDataStore(datastore.Config{Type: datastore.MockStore, MockDataPath: dir})
	require.NoError(t, err)
	rec, err := ds.GetLatestVisaConfiguration(context.Background(), "tourist-short-stay")
	require.NoError(t, err)
	fixed := len(catalog.DefaultCatalog().FixedIDs())
	final := len(catalog.DefaultCatalog().FinalIDs())
	assert.Equal(t, []string{
		catalog.StageTravelInfo, catalog.StageAccommodationInfo, catalog.StageDocumentsUpload,
	}, []string(rec.ApplicationFlow[fixed:len(rec.ApplicationFlow)-final]))

	code, found, err := ds.GetValue(context.Background(), "visa-builder/code")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tr", code)
}

func TestWizardCommand_ValidationLoopAndQuit(t *testing.T) {
	dir := t.TempDir()
	driver := &stubDriver{
		inputs: []string{
			"A", "work", "WK", "", "",
			"Work Visa", "work", "WK", "", "",
			"200", "eur", "", "", "", "",
		},
		selectIdx: []int{3, 3, 0, 3}, // Work twice, continue, quit
		multiIdx:  [][]int{{}, {}, {}, {}},
		confirm:   []bool{false, false, false, false, false, false},
	}
	a := &app{newDriver: func(*cobra.Command) PromptDriver { return driver }}

	out, err := runCLI(t, a, mockArgs(dir, "wizard")...)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Nothing saved.")

	var fix string
	for _, m := range driver.infoMessages {
		if strings.HasPrefix(m, "Please fix:") {
			fix = m
		}
	}
	assert.Contains(t, fix, "name: must be at least 2 characters")

	out, err = runCLI(t, &app{}, mockArgs(dir, "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "No saved configurations.")
}

func TestWizardCommand_IdentityPromptsValidateEachField(t *testing.T) {
	dir := t.TempDir()
	driver := &stubDriver{inputs: []string{"Work Visa", "work", "WK", ""}}
	a := &app{newDriver: func(*cobra.Command) PromptDriver { return driver }}

	// The script stops at the category select; only the identity prompts matter here.
	_, err := runCLI(t, a, mockArgs(dir, "wizard")...)
	require.Error(t, err)
	require.Len(t, driver.inputConfigs, 4)

	for _, cfg := range driver.inputConfigs[:3] {
		require.NotNil(t, cfg.Validator, cfg.Message)
		assert.EqualError(t, cfg.Validator(" A "), "must be at least 2 characters", cfg.Message)
		assert.EqualError(t, cfg.Validator(""), "is required", cfg.Message)
		assert.NoError(t, cfg.Validator("WK"), cfg.Message)
	}
	assert.Nil(t, driver.inputConfigs[3].Validator, "description is optional")
}

func TestWizardCommand_AbortIsReturned(t *testing.T) {
	dir := t.TempDir()
	driver := &stubDriver{}
	a := &app{newDriver: func(*cobra.Command) PromptDriver { return driver }}

	_, err := runCLI(t, a, mockArgs(dir, "wizard")...)
	assert.Error(t, err)
}

func TestIndicesHelpers(t *testing.T) {
	options := []string{"a", "b", "c"}
	assert.Equal(t, 1, indexOf(options, "b"))
	assert.Equal(t, -1, indexOf(options, "z"))
	assert.Equal(t, []int{0, 2}, indicesOf(options, []string{"c", "a"}))
	assert.Equal(t, []string{"a", "c"}, defaultsFromIndices(options, []int{0, 2, 9}))
}

func TestMaskConnectionString(t *testing.T) {
	assert.Equal(t, "***", maskConnectionString("short"))
	assert.Equal(t, "postgres:/...le=disable", maskConnectionString("postgres://visa:secret@db:5432/visa?sslmode=disable"))
}

func TestMigrateMockCommand(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	scenarioFile := filepath.Join("..", "..", "scenarios", "tourist.yaml")

	_, err := runCLI(t, &app{}, mockArgs(src, "build", "--scenario", scenarioFile)...)
	require.NoError(t, err)

	out, err := runCLI(t, &app{}, mockArgs(dst, "migrate-mock", "--from", src)...)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Configurations copied:   1")
	assert.Contains(t, out, "Visa code copied:        true")

	out, err = runCLI(t, &app{}, mockArgs(dst, "show", "--type-id", "tourist")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"code": "TR"`)
}
