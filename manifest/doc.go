// Package manifest provides YAML schema definitions, parsing, and
// registration of conversion declarations.
//
// A manifest turns a registry setup that would otherwise be a wall of
// Register calls into a reviewable document. Names are bound to runtime
// types and functions through a Symbols table supplied by the caller;
// reflection cannot conjure a type from a string, so the table is the one
// piece that stays in code.
//
// # Schema Overview
//
// The manifest file has the following structure:
//
//	version: "1"
//	interfaces:
//	  - units.Temperature
//	types:
//	  - type: units.Celsius
//	    converters:
//	      - ToFahrenheit
//	      - ToKelvin
//	    intermediates:
//	      - units.Kelvin                             # any destination
//	      - {bridge: units.Kelvin, target: units.Rankine} # one destination
//	operators:
//	  - CelsiusFromKelvin
//	  - MetersFromFeet
//
// # Application
//
// Apply walks the declarations in order and accumulates diagnostics instead
// of stopping at the first problem. Unknown names carry closest-match
// suggestions; rejected declarations carry the registry's reason. The
// summary error is nil only when every declaration applied.
package manifest
