package manifest_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caster/engine"
	"caster/examples/units"
	"caster/manifest"
	"caster/registry"
)

func exampleSymbols() manifest.Symbols {
	types := manifest.TypesOf(
		units.Celsius(0),
		units.Fahrenheit(0),
		units.Kelvin(0),
		units.Rankine(0),
		units.Meters(0),
		units.Feet(0),
	)
	types["units.Temperature"] = reflect.TypeFor[units.Temperature]()

	return manifest.Symbols{
		Types: types,
		Funcs: map[string]any{
			"CelsiusFromKelvin": units.CelsiusFromKelvin,
			"RankineFromKelvin": units.RankineFromKelvin,
			"MetersFromFeet":    units.MetersFromFeet,
		},
	}
}

func TestApply(t *testing.T) {
	mf, err := manifest.Parse([]byte(`
interfaces: units.Temperature
types:
  - type: units.Celsius
    converters:
      - ToFahrenheit
      - ToKelvin
    intermediates:
      - bridge: units.Kelvin
        target: units.Rankine
operators:
  - CelsiusFromKelvin
  - RankineFromKelvin
`))
	require.NoError(t, err)

	reg := registry.New()
	diags, err := manifest.Apply(mf, reg, exampleSymbols())
	require.NoError(t, err)
	assert.True(t, diags.IsValid())

	eng := engine.New(engine.Config{Registry: reg})

	out, ok := eng.Cast(units.Celsius(0), reflect.TypeFor[units.Fahrenheit]())
	require.True(t, ok)
	assert.Equal(t, units.Fahrenheit(32), out)

	bridged := eng.Resolve(reflect.TypeFor[units.Celsius](), reflect.TypeFor[units.Rankine]())
	assert.True(t, bridged.Valid)
	assert.Equal(t, engine.StrategyIntermediate, bridged.Strategy)
}

func TestApplyDiagnostics(t *testing.T) {
	t.Run("unknown type suggests close names", func(t *testing.T) {
		mf, err := manifest.Parse([]byte("types:\n  - type: units.Celsuis\n"))
		require.NoError(t, err)

		diags, err := manifest.Apply(mf, registry.New(), exampleSymbols())
		require.Error(t, err)
		require.Len(t, diags.Errors, 1)

		diag := diags.Errors[0]
		assert.Equal(t, "unknown_type", diag.Code)
		assert.Equal(t, "types[0]", diag.Decl)
		require.NotEmpty(t, diag.Suggestions)
		assert.Equal(t, "units.Celsius", diag.Suggestions[0])
		assert.Contains(t, diag.String(), "did you mean")
	})

	t.Run("unknown function suggests close names", func(t *testing.T) {
		mf, err := manifest.Parse([]byte("operators:\n  - CelsiusFromKelvn\n"))
		require.NoError(t, err)

		diags, err := manifest.Apply(mf, registry.New(), exampleSymbols())
		require.Error(t, err)
		require.Len(t, diags.Errors, 1)

		diag := diags.Errors[0]
		assert.Equal(t, "unknown_func", diag.Code)
		assert.Contains(t, diag.Suggestions, "CelsiusFromKelvin")
	})

	t.Run("unknown converter method", func(t *testing.T) {
		mf, err := manifest.Parse([]byte(`
types:
  - type: units.Celsius
    converters: Boil
`))
		require.NoError(t, err)

		diags, err := manifest.Apply(mf, registry.New(), exampleSymbols())
		require.Error(t, err)
		require.Len(t, diags.Errors, 1)
		assert.Equal(t, "bad_converter", diags.Errors[0].Code)
		assert.Equal(t, "Boil", diags.Errors[0].Name)
	})

	t.Run("interface name bound to a concrete type", func(t *testing.T) {
		mf, err := manifest.Parse([]byte("interfaces: units.Celsius\n"))
		require.NoError(t, err)

		diags, err := manifest.Apply(mf, registry.New(), exampleSymbols())
		require.Error(t, err)
		require.Len(t, diags.Errors, 1)
		assert.Equal(t, "bad_interface", diags.Errors[0].Code)
	})

	t.Run("application continues past failures", func(t *testing.T) {
		mf, err := manifest.Parse([]byte(`
types:
  - type: units.Celsuis
  - type: units.Celsius
    converters: ToFahrenheit
`))
		require.NoError(t, err)

		reg := registry.New()
		diags, err := manifest.Apply(mf, reg, exampleSymbols())
		require.Error(t, err)
		assert.Len(t, diags.Errors, 1)

		eng := engine.New(engine.Config{Registry: reg})

		out, ok := eng.Cast(units.Celsius(100), reflect.TypeFor[units.Fahrenheit]())
		require.True(t, ok)
		assert.Equal(t, units.Fahrenheit(212), out)
	})
}

func TestTypesOf(t *testing.T) {
	types := manifest.TypesOf(units.Celsius(0), units.Meters(0))

	assert.Equal(t, reflect.TypeFor[units.Celsius](), types["units.Celsius"])
	assert.Equal(t, reflect.TypeFor[units.Meters](), types["units.Meters"])
	assert.Len(t, types, 2)
}

func Example() {
	mf, err := manifest.Parse([]byte(`
types:
  - type: units.Celsius
    converters: ToFahrenheit
`))
	if err != nil {
		panic(err)
	}

	reg := registry.New()
	if _, err := manifest.Apply(mf, reg, exampleSymbols()); err != nil {
		panic(err)
	}

	eng := engine.New(engine.Config{Registry: reg})

	out, ok := eng.Cast(units.Celsius(0), reflect.TypeFor[units.Fahrenheit]())
	fmt.Println(out, ok)
	// Output: 32 true
}
