package registry_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caster/examples/units"
	"caster/registry"
)

func ExampleParseOperator() {
	decl, err := registry.ParseOperator(units.MetersFromFeet)
	fmt.Println(decl.Pkg, decl.Name, decl.In, decl.Out, decl.HasOK, decl.HasErr, err)

	decl, err = registry.ParseOperator(units.FeetFromMeters)
	fmt.Println(decl.Pkg, decl.Name, decl.In, decl.Out, decl.HasOK, decl.HasErr, err)

	_, err = registry.ParseOperator(42)
	fmt.Println(err)

	// Output:
	// units MetersFromFeet units.Feet units.Meters false false <nil>
	// units FeetFromMeters units.Meters units.Feet false true <nil>
	// operator is not a function: int
}

func plain(int) string                      { panic("not implemented") }
func withOK(int) (string, bool)             { panic("not implemented") }
func withErr(int) (string, error)           { panic("not implemented") }
func withBoth(int) (string, bool, error)    { panic("not implemented") }
func twoParams(int, int) string             { panic("not implemented") }
func noResults(int)                         { panic("not implemented") }
func badTail(int) (string, int)             { panic("not implemented") }
func swappedTail(int) (string, error, bool) { panic("not implemented") }
func doublePtr(**int) string                { panic("not implemented") }

func TestParseOperator(t *testing.T) {
	tests := []struct {
		name    string
		fn      any
		wantOK  bool
		wantErr bool
		err     error
	}{
		{name: "plain", fn: plain},
		{name: "with ok", fn: withOK, wantOK: true},
		{name: "with error", fn: withErr, wantErr: true},
		{name: "with both", fn: withBoth, wantOK: true, wantErr: true},
		{name: "two params", fn: twoParams, err: registry.ErrBadOperatorShape},
		{name: "no results", fn: noResults, err: registry.ErrBadOperatorShape},
		{name: "bad tail", fn: badTail, err: registry.ErrBadOperatorShape},
		{name: "swapped tail", fn: swappedTail, err: registry.ErrBadOperatorShape},
		{name: "double pointer", fn: doublePtr, err: registry.ErrDoublePointer},
		{name: "not a function", fn: "nope", err: registry.ErrNotAFunction},
		{name: "nil", fn: nil, err: registry.ErrNotAFunction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl, err := registry.ParseOperator(tt.fn)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, decl.HasOK)
			assert.Equal(t, tt.wantErr, decl.HasErr)
			assert.Equal(t, reflect.TypeOf(0), decl.In)
			assert.Equal(t, reflect.TypeOf(""), decl.Out)
		})
	}
}

func TestParseConverterMethod(t *testing.T) {
	celsius := reflect.TypeFor[units.Celsius]()

	t.Run("plain result", func(t *testing.T) {
		decl, err := registry.ParseConverterMethod(celsius, "ToFahrenheit")
		require.NoError(t, err)
		assert.Equal(t, "ToFahrenheit", decl.Name)
		assert.Equal(t, reflect.TypeFor[units.Fahrenheit](), decl.Result)
		assert.False(t, decl.HasOK)
		assert.False(t, decl.HasErr)
	})

	t.Run("ok tail", func(t *testing.T) {
		decl, err := registry.ParseConverterMethod(celsius, "ToKelvin")
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeFor[units.Kelvin](), decl.Result)
		assert.True(t, decl.HasOK)
		assert.False(t, decl.HasErr)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := registry.ParseConverterMethod(celsius, "ToPascal")
		require.ErrorIs(t, err, registry.ErrUnknownMethod)
		assert.Contains(t, err.Error(), "units.Celsius.ToPascal")
	})
}
