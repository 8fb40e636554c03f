package manifest

import "errors"

// Manifest represents the root of a YAML declaration file.
// This is the authoritative, human-reviewed conversion configuration.
type Manifest struct {
	// Version of the manifest schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Interfaces lists interface types to include in ancestor chains.
	Interfaces StringArray `yaml:"interfaces,omitempty"`

	// Types declares types together with their conversion metadata.
	Types []TypeDecl `yaml:"types,omitempty"`

	// Operators names standalone conversion functions to register.
	Operators []OperatorDecl `yaml:"operators,omitempty"`
}

// TypeDecl declares one type and the conversions rooted at it.
type TypeDecl struct {
	// Type is the dotted display name (e.g., "units.Celsius").
	Type string `yaml:"type"`

	// Converters lists zero-argument method names declared as converters.
	Converters StringArray `yaml:"converters,omitempty"`

	// Intermediates lists bridge types conversions may pass through.
	Intermediates []IntermediateDecl `yaml:"intermediates,omitempty"`
}

// IntermediateDecl names a bridge type, optionally restricted to one
// destination. YAML formats supported:
//   - Simple string: "units.Kelvin"
//   - With restriction: {bridge: units.Kelvin, target: units.Rankine}
type IntermediateDecl struct {
	Bridge string `yaml:"bridge"`
	Target string `yaml:"target,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *IntermediateDecl) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		d.Bridge = single
		d.Target = ""

		return nil
	}

	type plain IntermediateDecl

	var p plain
	if err := unmarshal(&p); err == nil && p.Bridge != "" {
		*d = IntermediateDecl(p)
		return nil
	}

	return errors.New("expected bridge name or {bridge, target} mapping")
}

// OperatorDecl names one registered conversion function. YAML formats
// supported:
//   - Simple string: "CelsiusFromKelvin"
//   - Mapping: {func: CelsiusFromKelvin}
type OperatorDecl struct {
	Func string `yaml:"func"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *OperatorDecl) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		d.Func = single
		return nil
	}

	type plain OperatorDecl

	var p plain
	if err := unmarshal(&p); err == nil && p.Func != "" {
		*d = OperatorDecl(p)
		return nil
	}

	return errors.New("expected function name or {func} mapping")
}

// StringArray is a string slice that can be unmarshaled from a single string or a list.
type StringArray []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringArray) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*s = []string{single}
		return nil
	}

	var multi []string
	if err := unmarshal(&multi); err == nil {
		*s = multi
		return nil
	}

	return errors.New("expected string or list of strings")
}
