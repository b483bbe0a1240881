// Package config holds the runtime configuration of mv2.
package config

import (
	"errors"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/benjaminwoods/mv2/internal/keys"
	"github.com/benjaminwoods/mv2/internal/vigenere"
)

// ErrNoShiftKey is returned when a transform is requested without a shift key.
var ErrNoShiftKey = errors.New("a shift key is required (--shift-key or --shift-key-file)")

// Config is populated from flags and MV2_* environment variables.
type Config struct {
	// Key sources
	ShiftKey     string `mapstructure:"shift-key"      mask:"filled" label:"--shift-key"      validate:"exclusive=ShiftKeyFile"`
	ShiftKeyFile string `mapstructure:"shift-key-file" label:"--shift-key-file"`
	Hex          bool   `mapstructure:"hex"`
	BlockKey     string `mapstructure:"block-key"      mask:"filled" label:"--block-key"      validate:"exclusive=BlockKeyFile"`
	BlockKeyFile string `mapstructure:"block-key-file" label:"--block-key-file"`
	Partial      string `mapstructure:"partial"        label:"--partial"        validate:"omitempty,oneof=reject truncate"`

	// Common flags
	Parallel           int    `mapstructure:"parallel" label:"--parallel" validate:"min=1"`
	Quiet              bool   `mapstructure:"quiet"`
	Delete             bool   `mapstructure:"delete"`
	Dry                bool   `mapstructure:"dry"`
	Stats              bool   `mapstructure:"stats"`
	PreserveTimestamps bool   `mapstructure:"preserve-timestamps"`
	Show               bool   `mapstructure:"show"`
	EncodeSuffix       string `mapstructure:"encode-ext" label:"--encode-ext" validate:"required"`
	DecodeSuffix       string `mapstructure:"decode-ext"`

	// Selection
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	IncludeFrom string   `mapstructure:"include-from"`
	ExcludeFrom string   `mapstructure:"exclude-from"`

	// Command-specific
	Direction vigenere.Direction `mapstructure:"-"`

	Generate `mapstructure:",squash"`

	// Positional arguments
	Files []string `mapstructure:"-"`
}

// Generate holds the options of the generate command.
type Generate struct {
	Kind   string `mapstructure:"kind"   label:"--kind"   validate:"omitempty,oneof=letters bytes blocks"`
	Length int    `mapstructure:"length" label:"--length" validate:"omitempty,min=1"`
	Seed   string `mapstructure:"seed"   mask:"filled"`
}

// Display reports whether the configuration should be printed instead of run.
func (c *Config) Display() bool {
	return c.Show
}

// Validate checks config against its struct tags.
// Every failing rule is reported with a human-readable message.
func (c *Config) Validate(config any) error {
	validator := validator.NewValidator()

	if err := registerExclusive(validator); err != nil {
		return err
	}

	if errs := validator.Validate(config); len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// ValidateKeys checks that a shift key was configured.
func (c *Config) ValidateKeys() error {
	if c.ShiftSource().IsZero() {
		return ErrNoShiftKey
	}

	return nil
}

// ShiftSource describes the configured shift key.
func (c *Config) ShiftSource() keys.Source {
	return keys.Source{Literal: c.ShiftKey, File: c.ShiftKeyFile, Hex: c.Hex}
}

// BlockSource describes the configured block-size key. It is empty in ASCII mode.
func (c *Config) BlockSource() keys.Source {
	return keys.Source{Literal: c.BlockKey, File: c.BlockKeyFile}
}

// PartialPolicy returns the parsed final-block policy.
func (c *Config) PartialPolicy() (vigenere.PartialPolicy, error) {
	return vigenere.ParsePartialPolicy(c.Partial)
}
