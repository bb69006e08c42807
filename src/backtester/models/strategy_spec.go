package models

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// StrategySpec identifies a strategy plus its parameter record. It is the
// unit of work for the comparator and the parameter sweep.
type StrategySpec struct {
	ID     string             `json:"id" yaml:"id"`
	Params map[string]float64 `json:"params,omitempty" yaml:"params,omitempty"`
}

func (s StrategySpec) GetParam(name string) (float64, error) {
	val, found := s.Params[name]
	if !found {
		return 0, fmt.Errorf("StrategySpec %s: param %s: %w", s.ID, name, ErrMissingParameter)
	}

	if math.IsNaN(val) {
		return 0, fmt.Errorf("StrategySpec %s: param %s is NaN: %w", s.ID, name, ErrInvalidParameter)
	}

	return val, nil
}

func (s StrategySpec) GetIntParam(name string) (int, error) {
	val, err := s.GetParam(name)
	if err != nil {
		return 0, err
	}

	if val != math.Trunc(val) || val <= 0 {
		return 0, fmt.Errorf("StrategySpec %s: param %s must be a positive integer, found %v: %w", s.ID, name, val, ErrInvalidParameter)
	}

	return int(val), nil
}

func (s StrategySpec) GetParamOrDefault(name string, fallback float64) float64 {
	val, found := s.Params[name]
	if !found || math.IsNaN(val) {
		return fallback
	}

	return val
}

// Label renders the spec as a stable, human-readable key, with params in
// sorted order so equal specs always produce equal labels.
func (s StrategySpec) Label() string {
	if len(s.Params) == 0 {
		return s.ID
	}

	keys := make([]string, 0, len(s.Params))
	for k := range s.Params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, s.Params[k]))
	}

	return fmt.Sprintf("%s(%s)", s.ID, strings.Join(parts, ","))
}

func NewStrategySpec(id string, params map[string]float64) StrategySpec {
	return StrategySpec{
		ID:     id,
		Params: params,
	}
}
