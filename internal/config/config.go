// Package config builds the hypothesis model, either the built-in cookie
// bowls or a table read from a YAML file.
//
// Model file layout:
//
//	hypotheses:
//	  - name: bowl1
//	    vanilla: 0.75
//	  - name: bowl2
//	    vanilla: 0.5
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/trknhr/diachronic/internal/bayes"
	"github.com/trknhr/diachronic/internal/logger"
	"gopkg.in/yaml.v3"
)

// HypothesisConfig is one row of the likelihood table.
type HypothesisConfig struct {
	Name    string  `yaml:"name"`
	Vanilla float64 `yaml:"vanilla"`
}

// ModelConfig models a model file.
type ModelConfig struct {
	Hypotheses []HypothesisConfig `yaml:"hypotheses"`
}

// Default is the two-bowl cookie problem: bowl1 holds 30 vanilla and 10
// chocolate cookies, bowl2 holds 20 of each.
func Default() ModelConfig {
	return ModelConfig{
		Hypotheses: []HypothesisConfig{
			{Name: "bowl1", Vanilla: 0.75},
			{Name: "bowl2", Vanilla: 0.5},
		},
	}
}

func Parse(data []byte) (ModelConfig, error) {
	var cfg ModelConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("%w: empty model file", bayes.ErrInvalidModel)
		}
		return cfg, err
	}
	return cfg, nil
}

func Load(path string) (ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ModelConfig{}, fmt.Errorf("failed to read model file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return ModelConfig{}, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadModel builds the model from path, or the default model when path is
// empty.
func LoadModel(path string) (*bayes.Model, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
		logger.Debug("loaded %d hypotheses from %s", len(cfg.Hypotheses), path)
	}
	return cfg.Build()
}

// Build validates the table and returns the model. Hypotheses that make an
// observation impossible are accepted but reported once.
func (c ModelConfig) Build() (*bayes.Model, error) {
	entries := make([]bayes.Entry, len(c.Hypotheses))
	for i, h := range c.Hypotheses {
		entries[i] = bayes.Entry{Hypothesis: bayes.Hypothesis(h.Name), Vanilla: h.Vanilla}
	}
	m, err := bayes.NewModel(entries...)
	if err != nil {
		return nil, err
	}
	for _, h := range m.Degenerate() {
		logger.WarnOnce("degenerate:"+string(h),
			"hypothesis %q rules out one flavor entirely; observing it under no other bowl fails the run", h)
	}
	return m, nil
}

// FromModel is the inverse of Build.
func FromModel(m *bayes.Model) ModelConfig {
	entries := m.Entries()
	cfg := ModelConfig{Hypotheses: make([]HypothesisConfig, len(entries))}
	for i, e := range entries {
		cfg.Hypotheses[i] = HypothesisConfig{Name: string(e.Hypothesis), Vanilla: e.Vanilla}
	}
	return cfg
}

func (c ModelConfig) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
