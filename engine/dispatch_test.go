package engine_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caster/engine"
	"caster/examples/menagerie"
	"caster/examples/units"
	"caster/registry"
)

type fuse struct{}

func (fuse) Blow() string { panic("blown fuse") }

func newFuseEngine(t *testing.T) *engine.Engine {
	t.Helper()

	reg := registry.New()
	require.NoError(t, reg.RegisterConverter(reflect.TypeFor[fuse](), "Blow"))

	return engine.New(engine.Config{Registry: reg})
}

func TestTryCastReasons(t *testing.T) {
	t.Run("nil value", func(t *testing.T) {
		eng := newExampleEngine(t)

		res := eng.TryCast(nil, reflect.TypeFor[units.Celsius]())
		assert.Equal(t, engine.ReasonNilValue, res.Reason)
		assert.Equal(t, units.Celsius(0), res.Value)
		assert.NoError(t, res.Err)
		assert.False(t, res.OK())
	})

	t.Run("genuine conversion", func(t *testing.T) {
		eng := newExampleEngine(t)

		res := eng.TryCast(units.Celsius(100), reflect.TypeFor[units.Fahrenheit]())
		assert.Equal(t, engine.ReasonOK, res.Reason)
		assert.Equal(t, units.Fahrenheit(212), res.Value)
		assert.True(t, res.OK())
	})

	t.Run("no conversion", func(t *testing.T) {
		eng := newExampleEngine(t)

		res := eng.TryCast(units.Fahrenheit(1), reflect.TypeFor[units.Meters]())
		assert.Equal(t, engine.ReasonNoConversion, res.Reason)
		assert.Equal(t, units.Meters(0), res.Value)
		require.ErrorIs(t, res.Err, engine.ErrNoConversion)
	})

	t.Run("panic becomes fault", func(t *testing.T) {
		eng := newFuseEngine(t)

		res := eng.TryCast(fuse{}, reflect.TypeFor[string]())
		assert.Equal(t, engine.ReasonFault, res.Reason)
		assert.Equal(t, "", res.Value)
		require.ErrorContains(t, res.Err, "blown fuse")

		assert.Equal(t, int64(1), eng.Stats().Faults)
	})

	t.Run("strict surface lets the panic escape", func(t *testing.T) {
		eng := newFuseEngine(t)

		assert.Panics(t, func() {
			_, _ = eng.Convert(reflect.ValueOf(fuse{}), reflect.TypeFor[string]())
		})
	})

	t.Run("dispatch rescues assignable values under a restricted chain", func(t *testing.T) {
		eng := engine.New(engine.Config{
			Registry: newExampleRegistry(t),
			Enabled:  engine.EnableUniversal,
		})

		ent := eng.Resolve(reflect.TypeFor[units.Celsius](), reflect.TypeFor[units.Temperature]())
		require.False(t, ent.Valid)

		res := eng.TryCast(units.Celsius(4), reflect.TypeFor[units.Temperature]())
		assert.Equal(t, engine.ReasonOK, res.Reason)
		assert.Equal(t, units.Celsius(4), res.Value)
	})
}

func TestCastableFrom(t *testing.T) {
	eng := newExampleEngine(t)

	dog := reflect.TypeFor[menagerie.Dog]()
	animal := reflect.TypeFor[menagerie.Animal]()

	t.Run("genuine conversions count", func(t *testing.T) {
		assert.True(t, eng.CastableFrom(reflect.TypeFor[units.Fahrenheit](), reflect.TypeFor[units.Celsius](), false))
		assert.False(t, eng.CastableFrom(reflect.TypeFor[units.Meters](), reflect.TypeFor[units.Fahrenheit](), false))
	})

	t.Run("downcast probe needs the flag", func(t *testing.T) {
		// A value statically typed Animal may well hold a Dog, but no genuine
		// conversion exists. The flag admits the possibility; without it only
		// resolved conversions count.
		assert.True(t, eng.CastableFrom(dog, animal, true))
		assert.False(t, eng.CastableFrom(dog, animal, false))
	})

	t.Run("upcast counts either way", func(t *testing.T) {
		assert.True(t, eng.CastableFrom(animal, dog, true))
		assert.True(t, eng.CastableFrom(animal, dog, false))
	})
}

func TestConverters(t *testing.T) {
	eng := newExampleEngine(t)

	t.Run("own conversions listed, producers excluded", func(t *testing.T) {
		infos := eng.Converters(reflect.TypeFor[units.Celsius]())
		require.Len(t, infos, 2)

		names := []string{infos[0].Name, infos[1].Name}
		assert.ElementsMatch(t, []string{"ToFahrenheit", "ToKelvin"}, names)

		for _, info := range infos {
			assert.Equal(t, engine.StrategyConverter, info.Kind)
			assert.NotEqual(t, reflect.TypeFor[units.Celsius](), info.Result)
		}
	})

	t.Run("operators attached to the parameter side listed", func(t *testing.T) {
		infos := eng.Converters(reflect.TypeFor[units.Kelvin]())
		require.Len(t, infos, 2)

		results := []reflect.Type{infos[0].Result, infos[1].Result}
		assert.ElementsMatch(t, []reflect.Type{
			reflect.TypeFor[units.Celsius](),
			reflect.TypeFor[units.Rankine](),
		}, results)

		for _, info := range infos {
			assert.Equal(t, engine.StrategyOperator, info.Kind)
		}
	})

	t.Run("generic declarations keep a nil result", func(t *testing.T) {
		reg := registry.New()
		factory := func(target reflect.Type) (func(reflect.Value) (reflect.Value, error), error) {
			return func(v reflect.Value) (reflect.Value, error) { return v, nil }, nil
		}
		require.NoError(t, reg.RegisterGenericConverter(reflect.TypeFor[menagerie.Dog](), "AsAnything", factory))

		eng := engine.New(engine.Config{Registry: reg})

		infos := eng.Converters(reflect.TypeFor[menagerie.Dog]())
		require.Len(t, infos, 1)
		assert.Equal(t, "AsAnything", infos[0].Name)
		assert.Nil(t, infos[0].Result)
	})
}

func TestPackageLevelSurface(t *testing.T) {
	t.Run("cast to type parameter", func(t *testing.T) {
		out, ok := engine.CastTo[int64](int32(7))
		require.True(t, ok)
		assert.Equal(t, int64(7), out)
	})

	t.Run("failed cast yields zero", func(t *testing.T) {
		out, ok := engine.CastTo[string](42)
		assert.False(t, ok)
		assert.Equal(t, "", out)
	})

	t.Run("try cast reports the reason", func(t *testing.T) {
		res := engine.TryCastTo[int](int16(3))
		assert.Equal(t, engine.ReasonOK, res.Reason)
		assert.Equal(t, 3, res.Value)

		res = engine.TryCastTo[string](nil)
		assert.Equal(t, engine.ReasonNilValue, res.Reason)

		// Crossing numeric families is not a representation the engine
		// reinterprets on its own.
		res = engine.TryCastTo[float64](int32(3))
		assert.Equal(t, engine.ReasonNoConversion, res.Reason)
	})

	t.Run("bare helpers delegate to the default engine", func(t *testing.T) {
		out, ok := engine.Cast(uint8(9), reflect.TypeFor[uint64]())
		require.True(t, ok)
		assert.Equal(t, uint64(9), out)

		assert.True(t, engine.CastableFrom(reflect.TypeFor[int64](), reflect.TypeFor[int32](), false))
		assert.Empty(t, engine.Converters(reflect.TypeFor[uint8]()))
	})
}
