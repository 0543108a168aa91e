package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"visa-flow/internal/store"
	"visa-flow/internal/visa"
)

// MockDataFile is the file name the mock store keeps under its data path.
const MockDataFile = "visa_flow.json"

type mockData struct {
	Values         map[string]string           `json:"values"`
	Configurations []store.ConfigurationRecord `json:"configurations"`
}

// mockStore keeps everything in memory and rewrites a JSON file on every
// write. An empty data path keeps it purely in memory.
type mockStore struct {
	mu   sync.Mutex
	path string
	data mockData
}

func newMockStore(mockDataPath string) (*mockStore, error) {
	m := &mockStore{data: mockData{Values: map[string]string{}}}
	if mockDataPath == "" {
		return m, nil
	}
	m.path = filepath.Join(mockDataPath, MockDataFile)

	raw, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("failed to read mock data: %w", err)
	}
	if err := json.Unmarshal(raw, &m.data); err != nil {
		return nil, fmt.Errorf("failed to parse mock data %s: %w", m.path, err)
	}
	if m.data.Values == nil {
		m.data.Values = map[string]string{}
	}
	return m, nil
}

func (m *mockStore) Close() error {
	return nil
}

// InitDB writes the data file so the directory exists before the first save.
func (m *mockStore) InitDB(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flush()
}

func (m *mockStore) GetValue(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data.Values[key]
	return v, ok, nil
}

func (m *mockStore) SetValue(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, had := m.data.Values[key]
	m.data.Values[key] = value
	if err := m.flush(); err != nil {
		if had {
			m.data.Values[key] = prev
		} else {
			delete(m.data.Values, key)
		}
		return err
	}
	return nil
}

func (m *mockStore) DeleteValue(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.data.Values[key]
	if !ok {
		return nil
	}
	delete(m.data.Values, key)
	if err := m.flush(); err != nil {
		m.data.Values[key] = prev
		return err
	}
	return nil
}

func (m *mockStore) SaveVisaConfiguration(ctx context.Context, cfg visa.Configuration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.data.Configurations {
		if rec.TypeID == cfg.TypeID && rec.Version == cfg.Version {
			return "", fmt.Errorf("%w: type %q version %d", store.ErrVersionExists, cfg.TypeID, cfg.Version)
		}
	}

	rec := store.ConfigurationRecord{
		ConfigurationID:   uuid.NewString(),
		TypeID:            cfg.TypeID,
		Code:              cfg.Code,
		Name:              cfg.Name,
		Category:          cfg.Category,
		Version:           cfg.Version,
		ApplicationFlow:   append([]string{}, cfg.ApplicationFlow...),
		RequiredDocuments: append([]string{}, cfg.RequiredDocuments...),
		Document:          store.JSONBConfiguration{Configuration: cfg},
		CreatedAt:         cfg.CreatedAt,
		UpdatedAt:         cfg.UpdatedAt,
	}
	m.data.Configurations = append(m.data.Configurations, rec)
	if err := m.flush(); err != nil {
		m.data.Configurations = m.data.Configurations[:len(m.data.Configurations)-1]
		return "", err
	}
	return rec.ConfigurationID, nil
}

func (m *mockStore) GetLatestVisaConfiguration(ctx context.Context, typeID string) (*store.ConfigurationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *store.ConfigurationRecord
	for i := range m.data.Configurations {
		rec := &m.data.Configurations[i]
		if rec.TypeID == typeID && (latest == nil || rec.Version > latest.Version) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: type %q", store.ErrConfigurationNotFound, typeID)
	}
	out := *latest
	return &out, nil
}

func (m *mockStore) GetVisaConfiguration(ctx context.Context, typeID string, version int) (*store.ConfigurationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.data.Configurations {
		if rec.TypeID == typeID && rec.Version == version {
			out := rec
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: type %q version %d", store.ErrConfigurationNotFound, typeID, version)
}

func (m *mockStore) GetVisaConfigurationHistory(ctx context.Context, typeID string) ([]store.ConfigurationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var history []store.ConfigurationRecord
	for _, rec := range m.data.Configurations {
		if rec.TypeID == typeID {
			history = append(history, rec)
		}
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Version < history[j].Version })
	return history, nil
}

func (m *mockStore) ListVisaConfigurations(ctx context.Context) ([]store.ConfigurationSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	latest := map[string]store.ConfigurationRecord{}
	for _, rec := range m.data.Configurations {
		if cur, ok := latest[rec.TypeID]; !ok || rec.Version > cur.Version {
			latest[rec.TypeID] = rec
		}
	}

	summaries := make([]store.ConfigurationSummary, 0, len(latest))
	for _, rec := range latest {
		summaries = append(summaries, store.ConfigurationSummary{
			ConfigurationID: rec.ConfigurationID,
			TypeID:          rec.TypeID,
			Code:            rec.Code,
			Name:            rec.Name,
			Category:        rec.Category,
			Version:         rec.Version,
			UpdatedAt:       rec.UpdatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].TypeID < summaries[j].TypeID })
	return summaries, nil
}

func (m *mockStore) NextVersion(ctx context.Context, typeID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := visa.FirstVersion
	for _, rec := range m.data.Configurations {
		if rec.TypeID == typeID && rec.Version >= next {
			next = rec.Version + 1
		}
	}
	return next, nil
}

// flush must be called with mu held.
func (m *mockStore) flush() error {
	if m.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("failed to create mock data directory: %w", err)
	}
	raw, err := json.MarshalIndent(m.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mock data: %w", err)
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write mock data: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("failed to replace mock data: %w", err)
	}
	return nil
}
