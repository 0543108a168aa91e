// Package costs holds the free-form processing tiers and additional cost
// entries edited in the costs step. Values are kept exactly as typed; numeric
// coercion and empty-entry filtering happen at assembly time.
package costs

import "slices"

// Tier is one processing option, for example "Standard, 10-15 working days".
type Tier struct {
	Type      string `json:"type" yaml:"type"`
	Timeframe string `json:"timeframe" yaml:"timeframe"`
	TimeUnit  string `json:"timeUnit" yaml:"timeUnit"`
	MinTime   string `json:"minTime" yaml:"minTime"`
	MaxTime   string `json:"maxTime" yaml:"maxTime"`
}

// TierField names a field of a Tier.
type TierField string

const (
	TierType      TierField = "type"
	TierTimeframe TierField = "timeframe"
	TierTimeUnit  TierField = "timeUnit"
	TierMinTime   TierField = "minTime"
	TierMaxTime   TierField = "maxTime"
)

// Cost is one additional fee line. Amount is the raw input.
type Cost struct {
	Description string `json:"description" yaml:"description"`
	Amount      string `json:"amount" yaml:"amount"`
	Currency    string `json:"currency" yaml:"currency"`
}

// CostField names a field of a Cost.
type CostField string

const (
	CostDescription CostField = "description"
	CostAmount      CostField = "amount"
	CostCurrency    CostField = "currency"
)

// TierList is the ordered list of processing tiers.
type TierList struct {
	items []Tier
}

// NewTierList copies initial into a new list.
func NewTierList(initial []Tier) *TierList {
	return &TierList{items: slices.Clone(initial)}
}

// All returns a copy of the tiers in order.
func (l *TierList) All() []Tier { return slices.Clone(l.items) }

// Len returns the number of tiers.
func (l *TierList) Len() int { return len(l.items) }

// Add appends an empty tier and returns its index.
func (l *TierList) Add() int {
	l.items = append(l.items, Tier{})
	return len(l.items) - 1
}

// Remove deletes the tier at index. Out of range indexes are ignored.
func (l *TierList) Remove(index int) bool {
	if index < 0 || index >= len(l.items) {
		return false
	}
	l.items = slices.Delete(l.items, index, index+1)
	return true
}

// Update replaces one field of the tier at index.
func (l *TierList) Update(index int, field TierField, value string) bool {
	if index < 0 || index >= len(l.items) {
		return false
	}
	t := &l.items[index]
	switch field {
	case TierType:
		t.Type = value
	case TierTimeframe:
		t.Timeframe = value
	case TierTimeUnit:
		t.TimeUnit = value
	case TierMinTime:
		t.MinTime = value
	case TierMaxTime:
		t.MaxTime = value
	default:
		return false
	}
	return true
}

// Ledger is the ordered list of additional costs.
type Ledger struct {
	items []Cost
}

// NewLedger copies initial into a new ledger.
func NewLedger(initial []Cost) *Ledger {
	return &Ledger{items: slices.Clone(initial)}
}

// All returns a copy of the costs in order.
func (l *Ledger) All() []Cost { return slices.Clone(l.items) }

// Len returns the number of cost lines.
func (l *Ledger) Len() int { return len(l.items) }

// Add appends an empty cost line and returns its index.
func (l *Ledger) Add() int {
	l.items = append(l.items, Cost{})
	return len(l.items) - 1
}

// Remove deletes the cost line at index. Out of range indexes are ignored.
func (l *Ledger) Remove(index int) bool {
	if index < 0 || index >= len(l.items) {
		return false
	}
	l.items = slices.Delete(l.items, index, index+1)
	return true
}

// Update replaces one field of the cost line at index.
func (l *Ledger) Update(index int, field CostField, value string) bool {
	if index < 0 || index >= len(l.items) {
		return false
	}
	c := &l.items[index]
	switch field {
	case CostDescription:
		c.Description = value
	case CostAmount:
		c.Amount = value
	case CostCurrency:
		c.Currency = value
	default:
		return false
	}
	return true
}

// DefaultTiers is the tier list a new builder starts with.
func DefaultTiers() []Tier {
	return []Tier{
		{Type: "Standard", Timeframe: "10-15 working days", TimeUnit: "days", MinTime: "10", MaxTime: "15"},
		{Type: "Express", Timeframe: "3-5 working days", TimeUnit: "days", MinTime: "3", MaxTime: "5"},
	}
}
