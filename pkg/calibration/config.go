// Package calibration loads the on-disk description of a POET session: the
// pre-characterised configuration table and the session parameters that
// would otherwise be threaded through as Init arguments (spec.md 3, 9).
package calibration

import (
	"errors"
	"fmt"
	"os"

	"github.com/wattctl/poet/pkg/control"
	"github.com/wattctl/poet/pkg/numeric"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk session description (YAML).
type Config struct {
	Goal           float64       `yaml:"goal"`
	ConstraintType string        `yaml:"constraint_type"`
	Period         int           `yaml:"period"`
	BufferDepth    int           `yaml:"buffer_depth"`
	LogPath        string        `yaml:"log_path"`
	States         []StateConfig `yaml:"states"`
}

// StateConfig is one pre-characterised configuration entry.
type StateConfig struct {
	Speedup       float64 `yaml:"speedup"`
	Cost          float64 `yaml:"cost"`
	IdlePartnerID int     `yaml:"idle_partner_id"`
}

// Load reads and validates a calibration file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads a calibration file without validating it, useful for
// inspecting a file that fails Validate.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the parts of the calibration file Init itself cannot
// catch without first building a control.Config: constraint_type spelling
// and the idle-partner invariant (spec.md 3, "a non-idle entry").
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("calibration: config is nil")
	}
	if len(c.States) == 0 {
		return errors.New("calibration: states must be non-empty")
	}
	if c.ConstraintType != "PERFORMANCE" && c.ConstraintType != "POWER" {
		return fmt.Errorf("calibration: constraint_type must be PERFORMANCE or POWER, got %q", c.ConstraintType)
	}
	for i, s := range c.States {
		if s.Speedup >= 1 {
			continue
		}
		if s.IdlePartnerID < 0 || s.IdlePartnerID >= len(c.States) {
			return fmt.Errorf("calibration: states[%d].idle_partner_id %d out of range", i, s.IdlePartnerID)
		}
		if c.States[s.IdlePartnerID].Speedup < 1 {
			return fmt.Errorf("calibration: states[%d].idle_partner_id %d names another idle entry", i, s.IdlePartnerID)
		}
	}
	return nil
}

// Constraint converts the YAML spelling to a control.ConstraintType.
func (c *Config) Constraint() control.ConstraintType {
	if c.ConstraintType == "POWER" {
		return control.Power
	}
	return control.Performance
}

// Table converts the YAML entries to the table shape control.Init expects.
func (c *Config) Table() []control.SystemState {
	out := make([]control.SystemState, len(c.States))
	for i, s := range c.States {
		out[i] = control.SystemState{
			Speedup:       numeric.Const(s.Speedup),
			Cost:          numeric.Const(s.Cost),
			IdlePartnerID: s.IdlePartnerID,
		}
	}
	return out
}
