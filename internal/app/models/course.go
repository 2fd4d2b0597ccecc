package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultSeniorStandingCredits applies when a course requires senior standing
// without naming its own threshold.
const DefaultSeniorStandingCredits = 90

// Course represents a catalog course together with its constraint metadata.
type Course struct {
	Code                   string      `json:"code" yaml:"code"`
	Title                  string      `json:"title" yaml:"title"`
	Credits                CreditValue `json:"credits" yaml:"credits"`
	Category               string      `json:"category,omitempty" yaml:"category,omitempty"`
	Prerequisites          []string    `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	Corequisites           []string    `json:"corequisites,omitempty" yaml:"corequisites,omitempty"`
	BannedWith             []string    `json:"bannedWith,omitempty" yaml:"bannedWith,omitempty"`
	RequiresPermission     bool        `json:"requiresPermission" yaml:"requiresPermission"`
	SummerOnly             bool        `json:"summerOnly" yaml:"summerOnly"`
	RequiresSeniorStanding bool        `json:"requiresSeniorStanding" yaml:"requiresSeniorStanding"`
	MinCreditThreshold     *float64    `json:"minCreditThreshold,omitempty" yaml:"minCreditThreshold,omitempty"`
}

// SeniorStandingThreshold returns the course's own threshold or the given fallback.
func (c Course) SeniorStandingThreshold(fallback float64) float64 {
	if c.MinCreditThreshold != nil {
		return *c.MinCreditThreshold
	}
	return fallback
}

// CreditValue is a credit count as catalogs ship it: either a plain number
// or an "L-T-S" string such as "3-0-6". The raw form is kept so that the
// credit aggregator decides how to read it.
type CreditValue struct {
	raw interface{}
}

// NumericCredits wraps a plain number.
func NumericCredits(n float64) CreditValue {
	return CreditValue{raw: n}
}

// TextCredits wraps a formatted credit string.
func TextCredits(s string) CreditValue {
	return CreditValue{raw: s}
}

// Raw returns the underlying float64, string or nil.
func (v CreditValue) Raw() interface{} {
	return v.raw
}

// String renders the value the way it was supplied.
func (v CreditValue) String() string {
	switch r := v.raw.(type) {
	case float64:
		return strconv.FormatFloat(r, 'f', -1, 64)
	case string:
		return r
	default:
		return ""
	}
}

// MarshalJSON writes numbers as numbers and formatted strings as strings.
func (v CreditValue) MarshalJSON() ([]byte, error) {
	if v.raw == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}

// UnmarshalJSON accepts a number, a string or null.
func (v *CreditValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		v.raw = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v.raw = s
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("credits must be a number or string: %w", err)
	}
	v.raw = n
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (v CreditValue) MarshalYAML() (interface{}, error) {
	return v.raw, nil
}

// UnmarshalYAML keeps quoted and non-numeric scalars as text.
func (v *CreditValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("credits must be a scalar, got yaml kind %d", node.Kind)
	}
	if node.Tag == "!!null" {
		v.raw = nil
		return nil
	}
	if node.Tag == "!!int" || node.Tag == "!!float" {
		n, err := strconv.ParseFloat(node.Value, 64)
		if err == nil {
			v.raw = n
			return nil
		}
	}
	v.raw = node.Value
	return nil
}
