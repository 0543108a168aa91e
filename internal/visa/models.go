// Package visa defines the persisted visa configuration document and its
// canonical JSON encoding.
package visa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FirstVersion is the version of a newly created configuration.
const FirstVersion = 1

// ProcessingTier is an assembled processing option.
type ProcessingTier struct {
	Type      string `json:"type"`
	Timeframe string `json:"timeframe"`
	TimeUnit  string `json:"timeUnit"`
	MinTime   string `json:"minTime"`
	MaxTime   string `json:"maxTime"`
}

// Cost is the main visa fee.
type Cost struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// AdditionalCost is an assembled additional fee line.
type AdditionalCost struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// ProcessingInfo is free text shown alongside the tiers.
type ProcessingInfo struct {
	GeneralTimeframe string `json:"generalTimeframe"`
	AdditionalInfo   string `json:"additionalInfo"`
}

// Metadata holds the numeric validity settings; nil means not set.
type Metadata struct {
	ValidityPeriod *int `json:"validityPeriod"`
	MaxExtensions  *int `json:"maxExtensions"`
}

// Configuration is the assembled workflow definition handed to persistence.
type Configuration struct {
	Name                string           `json:"name"`
	TypeID              string           `json:"typeId"`
	Code                string           `json:"code"`
	Description         string           `json:"description"`
	Category            string           `json:"category"`
	EligibilityCriteria []string         `json:"eligibilityCriteria"`
	ApplicationFlow     []string         `json:"applicationFlow"`
	RequiredDocuments   []string         `json:"requiredDocuments"`
	ProcessingTier      []ProcessingTier `json:"processingTier"`
	VisaCost            Cost             `json:"visaCost"`
	AdditionalCosts     []AdditionalCost `json:"additionalCosts"`
	ProcessingInfo      ProcessingInfo   `json:"processingInfo"`
	Metadata            Metadata         `json:"metadata"`
	Version             int              `json:"version"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// Marshal encodes a configuration as canonical JSON: fixed field order, UTC
// timestamps, empty lists as [] and no HTML escaping.
func Marshal(cfg Configuration) ([]byte, error) {
	cfg = cfg.normalized()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode visa configuration: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalIndent is Marshal with two-space indentation, for display.
func MarshalIndent(cfg Configuration) ([]byte, error) {
	raw, err := Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent visa configuration: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a configuration document.
func Unmarshal(data []byte) (Configuration, error) {
	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("failed to decode visa configuration: %w", err)
	}
	return cfg.normalized(), nil
}

func (c Configuration) normalized() Configuration {
	c.EligibilityCriteria = nonNil(c.EligibilityCriteria)
	c.ApplicationFlow = nonNil(c.ApplicationFlow)
	c.RequiredDocuments = nonNil(c.RequiredDocuments)
	if c.ProcessingTier == nil {
		c.ProcessingTier = []ProcessingTier{}
	}
	if c.AdditionalCosts == nil {
		c.AdditionalCosts = []AdditionalCost{}
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
