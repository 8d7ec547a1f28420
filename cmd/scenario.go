package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/catalog"
	"github.com/theirongolddev/agentcost/internal/config"
	"github.com/theirongolddev/agentcost/internal/model"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// scenario is an estimate input on disk. MainModel and AuxiliaryModel name
// catalog models (or hold numeric ids) and win over the id fields.
type scenario struct {
	model.DetailedInput `yaml:",inline"`

	MainModel      string                `json:"mainModel,omitempty" yaml:"main_model,omitempty" toml:"main_model,omitempty"`
	AuxiliaryModel string                `json:"auxiliaryModel,omitempty" yaml:"auxiliary_model,omitempty" toml:"auxiliary_model,omitempty"`
	Growth         *model.GrowthScenario `json:"growth,omitempty" yaml:"growth,omitempty" toml:"growth,omitempty"`
}

// applyConfigPresets seeds the simple-mode defaults from the config.
func applyConfigPresets(p *calc.Presets, cfg config.Config) {
	d := &p.Defaults
	d.Language = model.Language(cfg.Defaults.Language)
	if cfg.Defaults.MonthlyWorkingDays > 0 {
		d.MonthlyWorkingDays = cfg.Defaults.MonthlyWorkingDays
	}
	d.SafetyMargin = cfg.Defaults.SafetyMarginPercent
	if cfg.Defaults.ExchangeRate > 0 {
		d.ExchangeRate = cfg.Defaults.ExchangeRate
	}
	d.PromptCaching = cfg.Defaults.PromptCaching
}

// baseInput is the detailed input a scenario or flag set starts from:
// the simple-mode defaults with every optional stage off.
func baseInput(p calc.Presets, cfg config.Config) model.DetailedInput {
	d := p.Defaults
	return model.DetailedInput{
		DailyRequests:              100,
		MonthlyWorkingDays:         d.MonthlyWorkingDays,
		MaxInputChars:              p.InputLengths[model.LengthMedium],
		MaxOutputChars:             p.OutputLengths[model.LengthMedium],
		Language:                   d.Language,
		SystemPromptChars:          d.SystemPromptChars,
		AvgTurnsPerSession:         d.AvgTurnsPerSession,
		ClassificationFallbackRate: d.ClassificationFallbackRate,
		SearchChunkCount:           d.SearchChunkCount,
		SearchChunkSize:            d.SearchChunkSize,
		MaxHistoryTurns:            d.MaxHistoryTurns,
		CompressionFrequency:       d.CompressionFrequency,
		WebSearchCalls:             d.WebSearchCalls,
		WebSearchResultCount:       d.WebSearchResultCount,
		PromptCaching:              d.PromptCaching,
		SafetyMargin:               d.SafetyMargin,
		Currency:                   model.Currency(cfg.Defaults.Currency),
		ExchangeRate:               d.ExchangeRate,
	}
}

// decodeScenario decodes data over base. The format follows the file
// extension: .toml, .yaml/.yml or .json.
func decodeScenario(name string, data []byte, base model.DetailedInput) (scenario, error) {
	sc := scenario{DetailedInput: base}

	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		_, err = toml.Decode(string(data), &sc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sc)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&sc)
	default:
		return sc, fmt.Errorf("unsupported scenario format %q (want .toml, .yaml or .json)", filepath.Ext(name))
	}
	if err != nil {
		return sc, fmt.Errorf("parsing scenario %s: %w", name, err)
	}
	return sc, nil
}

// loadScenario reads a scenario file and binds its model names.
func loadScenario(path string, base model.DetailedInput, c *catalog.Catalog) (scenario, error) {
	data, err := os.ReadFile(path) //nolint:gosec // scenario path is supplied by the local user
	if err != nil {
		return scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := decodeScenario(path, data, base)
	if err != nil {
		return sc, err
	}
	if err := sc.bindModels(c); err != nil {
		return sc, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

func (sc *scenario) bindModels(c *catalog.Catalog) error {
	if sc.MainModel != "" {
		m, err := lookupModel(c, sc.MainModel)
		if err != nil {
			return err
		}
		sc.MainModelID = m.ID
	}
	if sc.AuxiliaryModel != "" {
		m, err := lookupModel(c, sc.AuxiliaryModel)
		if err != nil {
			return err
		}
		id := m.ID
		sc.AuxiliaryModelID = &id
	}
	return nil
}

// lookupModel resolves a model by numeric id, exact name, or
// case-insensitive name.
func lookupModel(c *catalog.Catalog, ref string) (model.Model, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		if m, ok := c.Model(id); ok {
			return m, nil
		}
		return model.Model{}, fmt.Errorf("%w: id %d", calc.ErrUnknownModel, id)
	}
	if m, ok := c.ModelByName(ref); ok {
		return m, nil
	}
	for _, m := range c.AllModels() {
		if strings.EqualFold(m.Name, ref) {
			return m, nil
		}
	}
	return model.Model{}, fmt.Errorf("%w: %q (see `agentcost models --all`)", calc.ErrUnknownModel, ref)
}

// parseMultipliers parses "1,1.2,1.5". Missing months count as 1.
func parseMultipliers(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) > calc.ProjectionMonths {
		return nil, fmt.Errorf("at most %d multipliers, got %d", calc.ProjectionMonths, len(parts))
	}
	out := make([]float64, 0, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("multiplier %d: %q is not a number", i+1, p)
		}
		if v < 0 {
			return nil, fmt.Errorf("multiplier %d must be >= 0", i+1)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseFactorLevels parses "a1Guardrails=high" pairs.
func parseFactorLevels(pairs []string) (model.SystemPromptEstimation, error) {
	known := make(map[model.Factor]bool)
	for _, f := range model.Factors() {
		known[f] = true
	}

	est := make(model.SystemPromptEstimation, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("%q: want factor=level", p)
		}
		f := model.Factor(strings.TrimSpace(k))
		if !known[f] {
			return nil, fmt.Errorf("unknown factor %q", k)
		}
		lvl, err := model.ParseLevel(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		est[f] = lvl
	}
	return est, nil
}
