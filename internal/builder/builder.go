// Package builder holds the working state of one visa configuration while an
// operator edits it, and drives the wizard from the first step to Save.
//
// A Builder is not safe for concurrent use.
package builder

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"visa-flow/internal/assembly"
	"visa-flow/internal/catalog"
	"visa-flow/internal/config"
	"visa-flow/internal/costs"
	"visa-flow/internal/documents"
	"visa-flow/internal/visa"
	"visa-flow/internal/wizard"
)

// CodeKey is the value-store key holding the in-progress visa code.
const CodeKey = "visa-builder/code"

// ErrNotInReview is returned by Save outside the review step.
var ErrNotInReview = errors.New("configuration can only be saved from the review step")

// ValueStore persists the resumable code between sessions.
type ValueStore interface {
	GetValue(ctx context.Context, key string) (string, bool, error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error
}

// Saver receives the assembled configuration at Save.
type Saver interface {
	SaveVisaConfiguration(ctx context.Context, cfg visa.Configuration) (string, error)
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// WithValueStore sets where the resumable code is kept.
func WithValueStore(v ValueStore) Option {
	return func(b *Builder) { b.values = v }
}

// WithSaver sets the collaborator that persists saved configurations.
func WithSaver(s Saver) Option {
	return func(b *Builder) { b.saver = s }
}

// WithClock overrides time.Now for assembly timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDGenerator overrides the id generator used for new documents.
func WithIDGenerator(fn func() string) Option {
	return func(b *Builder) { b.newID = fn }
}

// Builder is the working configuration.
type Builder struct {
	def    *config.Definition
	log    *zap.Logger
	values ValueStore
	saver  Saver
	now    func() time.Time
	newID  func() string

	machine  *wizard.Machine
	catalog  *catalog.Catalog
	docs     *documents.Set
	tiers    *costs.TierList
	ledger   *costs.Ledger
	category string
	identity assembly.Identity
	criteria []string
	visaCost assembly.CostInput
	info     assembly.ProcessingInfoInput
	metadata assembly.MetadataInput
	version  int

	lastSaved *SaveResult
}

// SaveResult describes the last successful Save.
type SaveResult struct {
	ConfigurationID string
	Configuration   visa.Configuration
}

// New creates a builder with every field at its default and restores the
// resumable code from the value store, if one is configured.
func New(ctx context.Context, def *config.Definition, opts ...Option) (*Builder, error) {
	if def == nil {
		def = config.DefaultDefinition()
	}
	if def.Catalog == nil {
		d := *def
		d.Catalog = catalog.DefaultCatalog()
		def = &d
	}
	b := &Builder{
		def:     def,
		log:     zap.NewNop(),
		now:     time.Now,
		machine: wizard.New(),
	}
	for _, opt := range opts {
		opt(b)
	}

	var setOpts []documents.Option
	if b.newID != nil {
		setOpts = append(setOpts, documents.WithIDGenerator(b.newID))
	}
	docs, err := documents.NewSet(def.Documents, setOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build document set: %w", err)
	}
	b.docs = docs
	b.catalog = def.Catalog.Clone()
	b.resetFields()

	if b.values != nil {
		code, found, err := b.values.GetValue(ctx, CodeKey)
		switch {
		case err != nil:
			b.log.Warn("failed to restore visa code", zap.Error(err))
		case found:
			b.identity.Code = code
			b.log.Debug("restored visa code", zap.String("code", code))
		}
	}
	return b, nil
}

func (b *Builder) resetFields() {
	b.category = ""
	b.identity = assembly.Identity{}
	b.criteria = nil
	b.tiers = costs.NewTierList(costs.DefaultTiers())
	b.ledger = costs.NewLedger(nil)
	b.visaCost = assembly.CostInput{Currency: b.def.FallbackCurrency}
	b.info = assembly.ProcessingInfoInput{}
	b.metadata = assembly.MetadataInput{}
	b.version = visa.FirstVersion
	b.lastSaved = nil
}

// Step returns the current wizard step.
func (b *Builder) Step() wizard.Step { return b.machine.Step() }

// Categories returns the selectable category labels.
func (b *Builder) Categories() []string { return slices.Clone(b.def.Categories) }

// Category returns the active category, or "" when none is selected.
func (b *Builder) Category() string { return b.category }

// SetCategory selects the active category. Labels outside the category list
// are rejected; "" clears the selection.
func (b *Builder) SetCategory(category string) bool {
	if category != "" && !slices.Contains(b.def.Categories, category) {
		return false
	}
	b.category = category
	return true
}

// Identity returns the identity fields as typed.
func (b *Builder) Identity() assembly.Identity {
	id := b.identity
	id.Category = b.category
	return id
}

// SetName sets the configuration name.
func (b *Builder) SetName(name string) { b.identity.Name = name }

// SetTypeID sets the type id as typed; it is normalized at assembly.
func (b *Builder) SetTypeID(typeID string) { b.identity.TypeID = typeID }

// SetDescription sets the free-text description.
func (b *Builder) SetDescription(description string) { b.identity.Description = description }

// SetCode sets the visa code and writes it through to the value store.
// A failed write is logged and otherwise ignored.
func (b *Builder) SetCode(ctx context.Context, code string) {
	b.identity.Code = code
	if b.values == nil {
		return
	}
	if err := b.values.SetValue(ctx, CodeKey, code); err != nil {
		b.log.Warn("failed to persist visa code", zap.String("code", code), zap.Error(err))
	}
}

// Version returns the version the next Save will carry.
func (b *Builder) Version() int { return b.version }

// SetVersion sets the version the next Save will carry.
func (b *Builder) SetVersion(v int) { b.version = v }

// Next advances the wizard. From the first step the identity is validated and
// any failures are returned without advancing.
func (b *Builder) Next() wizard.ValidationResult {
	from := b.machine.Step()
	res := b.machine.Next(wizard.Identity{
		Name:   b.identity.Name,
		TypeID: b.identity.TypeID,
		Code:   b.identity.Code,
	})
	if !res.Valid() {
		b.log.Debug("identity validation failed", zap.String("errors", res.Summary()))
		return res
	}
	b.log.Debug("wizard step", zap.String("from", string(from)), zap.String("to", string(b.machine.Step())))
	return res
}

// Back returns to the previous step without touching any data.
func (b *Builder) Back() bool {
	from := b.machine.Step()
	if !b.machine.Back() {
		return false
	}
	b.log.Debug("wizard step", zap.String("from", string(from)), zap.String("to", string(b.machine.Step())))
	return true
}

// Reset discards the working state and returns to the first step. Conditional
// stages get their default enabled flags back in their current order, the
// resumable code is cleared, and the document list is kept as it is.
func (b *Builder) Reset(ctx context.Context) {
	b.machine.Reset()
	b.catalog.ResetEnabled()
	b.resetFields()
	if b.values != nil {
		if err := b.values.DeleteValue(ctx, CodeKey); err != nil {
			b.log.Warn("failed to clear visa code", zap.Error(err))
		}
	}
	b.log.Debug("builder reset")
}

// Snapshot returns the state Assemble consumes.
func (b *Builder) Snapshot() assembly.Snapshot {
	return assembly.Snapshot{
		Identity:            b.Identity(),
		EligibilityCriteria: slices.Clone(b.criteria),
		FixedStageIDs:       b.catalog.FixedIDs(),
		ConditionalStages:   b.catalog.Conditional(),
		FinalStageIDs:       b.catalog.FinalIDs(),
		Documents:           b.docs.All(),
		Tiers:               b.tiers.All(),
		VisaCost:            b.visaCost,
		AdditionalCosts:     b.ledger.All(),
		ProcessingInfo:      b.info,
		Metadata:            b.metadata,
		Version:             b.version,
		FallbackCurrency:    b.def.FallbackCurrency,
	}
}

// Preview assembles the configuration as it would be saved now.
func (b *Builder) Preview() visa.Configuration {
	return assembly.Assemble(b.Snapshot(), b.now())
}

// Save assembles the configuration and hands it to the saver. It is only
// allowed on the review step. The wizard moves to SAVED even when the saver
// fails; that failure is logged and returned.
func (b *Builder) Save(ctx context.Context) (visa.Configuration, error) {
	if !b.machine.CanSave() {
		return visa.Configuration{}, fmt.Errorf("%w (current step %s)", ErrNotInReview, b.machine.Step())
	}
	cfg := assembly.Assemble(b.Snapshot(), b.now())
	b.machine.MarkSaved()

	if b.saver == nil {
		b.lastSaved = &SaveResult{Configuration: cfg}
		return cfg, nil
	}
	id, err := b.saver.SaveVisaConfiguration(ctx, cfg)
	if err != nil {
		b.log.Warn("failed to persist visa configuration",
			zap.String("type_id", cfg.TypeID), zap.Int("version", cfg.Version), zap.Error(err))
		return cfg, fmt.Errorf("failed to persist visa configuration: %w", err)
	}
	b.lastSaved = &SaveResult{ConfigurationID: id, Configuration: cfg}
	b.log.Info("saved visa configuration",
		zap.String("configuration_id", id), zap.String("type_id", cfg.TypeID), zap.Int("version", cfg.Version))
	return cfg, nil
}

// LastSaved returns the result of the last successful Save since the last reset.
func (b *Builder) LastSaved() (SaveResult, bool) {
	if b.lastSaved == nil {
		return SaveResult{}, false
	}
	return *b.lastSaved, true
}
