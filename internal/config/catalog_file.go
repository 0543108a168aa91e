package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"visa-flow/internal/assembly"
	"visa-flow/internal/catalog"
	"visa-flow/internal/documents"
)

// StageSpec is one stage entry of a catalog file.
type StageSpec struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Enabled    bool     `yaml:"enabled"`
	Categories []string `yaml:"categories"`
}

// DocumentSpec is one default document entry of a catalog file.
type DocumentSpec struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Enabled     bool     `yaml:"enabled"`
	Description string   `yaml:"description"`
	Purpose     string   `yaml:"purpose"`
	Format      string   `yaml:"format"`
	Examples    []string `yaml:"examples"`
	Categories  []string `yaml:"categories"`
}

// CatalogFile is the YAML layout of a catalog file. Omitted sections keep
// the built-in defaults.
type CatalogFile struct {
	Categories       []string `yaml:"categories"`
	FallbackCurrency string   `yaml:"fallback_currency"`
	Stages           struct {
		Fixed       []StageSpec `yaml:"fixed"`
		Conditional []StageSpec `yaml:"conditional"`
		Final       []StageSpec `yaml:"final"`
	} `yaml:"stages"`
	Documents []DocumentSpec `yaml:"documents"`
}

// Definition is everything a builder needs to start from defaults.
type Definition struct {
	Categories       []string
	FallbackCurrency string
	Catalog          *catalog.Catalog
	Documents        []documents.Requirement
}

// DefaultDefinition returns the built-in categories, catalog and documents.
func DefaultDefinition() *Definition {
	return &Definition{
		Categories:       append([]string{}, catalog.DefaultCategories...),
		FallbackCurrency: assembly.DefaultCurrency,
		Catalog:          catalog.DefaultCatalog(),
		Documents:        documents.DefaultRequirements(),
	}
}

// LoadDefinition loads a catalog file, or the built-in definition when path is empty.
func LoadDefinition(path string) (*Definition, error) {
	if path == "" {
		return DefaultDefinition(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return def, nil
}

// ParseDefinition parses catalog YAML on top of the built-in definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	def := DefaultDefinition()
	if len(file.Categories) > 0 {
		def.Categories = trimAll(file.Categories)
	}
	if c := strings.TrimSpace(file.FallbackCurrency); c != "" {
		def.FallbackCurrency = strings.ToUpper(c)
	}

	if len(file.Stages.Fixed) > 0 || len(file.Stages.Conditional) > 0 || len(file.Stages.Final) > 0 {
		fixed, conditional, final := def.Catalog.Fixed(), def.Catalog.Conditional(), def.Catalog.Final()
		if len(file.Stages.Fixed) > 0 {
			fixed = stages(file.Stages.Fixed)
		}
		if len(file.Stages.Conditional) > 0 {
			conditional = stages(file.Stages.Conditional)
		}
		if len(file.Stages.Final) > 0 {
			final = stages(file.Stages.Final)
		}
		c, err := catalog.New(fixed, conditional, final)
		if err != nil {
			return nil, fmt.Errorf("invalid stage catalog: %w", err)
		}
		def.Catalog = c
	}

	if len(file.Documents) > 0 {
		def.Documents = make([]documents.Requirement, 0, len(file.Documents))
		for _, d := range file.Documents {
			def.Documents = append(def.Documents, documents.Requirement{
				ID:          strings.TrimSpace(d.ID),
				Name:        d.Name,
				Enabled:     d.Enabled,
				Description: d.Description,
				Purpose:     d.Purpose,
				Format:      d.Format,
				Examples:    append([]string{}, d.Examples...),
				Categories:  trimAll(d.Categories),
			})
		}
		if _, err := documents.NewSet(def.Documents); err != nil {
			return nil, fmt.Errorf("invalid documents: %w", err)
		}
	}

	return def, nil
}

func stages(specs []StageSpec) []catalog.Stage {
	out := make([]catalog.Stage, 0, len(specs))
	for _, s := range specs {
		out = append(out, catalog.Stage{
			ID:         strings.TrimSpace(s.ID),
			Name:       s.Name,
			Enabled:    s.Enabled,
			Categories: trimAll(s.Categories),
		})
	}
	return out
}

func trimAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
