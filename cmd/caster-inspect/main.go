// Package main provides the CLI entrypoint for caster-inspect.
//
// caster-inspect is a small diagnostic tool that:
//   - Loads a YAML conversion manifest (or falls back to a built-in demo one)
//   - Applies it against the bundled example types
//   - Resolves the requested type pairs and reports the winning strategy
//   - Optionally dumps the raw resolution entries
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"caster/engine"
	"caster/examples/menagerie"
	"caster/examples/palette"
	"caster/examples/units"
	"caster/manifest"
	"caster/registry"
	"caster/utils"
)

const defaultManifest = `
version: "1"
interfaces:
  - units.Temperature
  - menagerie.Animal
types:
  - type: units.Celsius
    converters:
      - ToFahrenheit
      - ToKelvin
    intermediates:
      - units.Kelvin
operators:
  - CelsiusFromKelvin
  - RankineFromKelvin
  - MetersFromFeet
  - FeetFromMeters
`

const defaultPairs = "units.Celsius:units.Fahrenheit," +
	"units.Celsius:units.Rankine," +
	"palette.Color:palette.Paint," +
	"units.Fahrenheit:units.Meters"

func main() {
	manifestPath := flag.String("manifest", "", "path to a YAML conversion manifest (empty: built-in demo)")
	pairs := flag.String("pairs", defaultPairs, "comma separated src:dst pairs to resolve")
	dump := flag.Bool("dump", false, "dump the raw resolution entries")
	verbosity := flag.Int("v", 0, "resolution trace verbosity (1: strategies, 2: candidates)")
	flag.Parse()

	if err := run(*manifestPath, *pairs, *dump, *verbosity); err != nil {
		fmt.Fprintln(os.Stderr, "caster-inspect:", err)
		os.Exit(1)
	}
}

func run(manifestPath, pairs string, dump bool, verbosity int) error {
	mf, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	sym := exampleSymbols()

	reg := registry.New()
	diags, err := manifest.Apply(mf, reg, sym)
	for _, d := range diags.Errors {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if err != nil {
		return errors.New("manifest did not apply cleanly")
	}

	eng := engine.New(engine.Config{
		Registry: reg,
		Logger:   traceLogger(verbosity),
	})

	for _, pair := range strings.Split(pairs, ",") {
		src, dst, err := resolvePair(sym, pair)
		if err != nil {
			return err
		}

		ent := eng.Resolve(src, dst)
		fmt.Printf("%-48s strategy=%-14s valid=%v\n", ent.Key.String(), ent.Strategy, ent.Valid)

		if dump {
			spew.Dump(ent)
		}
	}

	st := eng.Stats()
	fmt.Printf("cache holds %d entries after %d misses\n", st.Entries, st.Misses)

	return nil
}

func loadManifest(path string) (*manifest.Manifest, error) {
	if path == "" {
		return manifest.Parse([]byte(defaultManifest))
	}

	return manifest.LoadFile(path)
}

func resolvePair(sym manifest.Symbols, pair string) (src, dst reflect.Type, err error) {
	names := strings.SplitN(strings.TrimSpace(pair), ":", 2)
	if len(names) != 2 {
		return nil, nil, fmt.Errorf("pair %q is not of the form src:dst", pair)
	}

	srcName, dstName := utils.Unpack2(names)

	src, ok := sym.Types[srcName]
	if !ok {
		return nil, nil, fmt.Errorf("unknown type %q (see -pairs)", srcName)
	}

	if dst, ok = sym.Types[dstName]; !ok {
		return nil, nil, fmt.Errorf("unknown type %q (see -pairs)", dstName)
	}

	return src, dst, nil
}

// traceLogger writes resolution traces to stderr so piped stdout stays
// machine readable.
func traceLogger(verbosity int) logr.Logger {
	if verbosity <= 0 {
		return logr.Discard()
	}

	return funcr.New(
		func(prefix, args string) {
			if prefix != "" {
				fmt.Fprintln(os.Stderr, prefix, args)
			} else {
				fmt.Fprintln(os.Stderr, args)
			}
		},
		funcr.Options{Verbosity: verbosity},
	)
}

func exampleSymbols() manifest.Symbols {
	types := manifest.TypesOf(
		units.Celsius(0),
		units.Fahrenheit(0),
		units.Kelvin(0),
		units.Rankine(0),
		units.Meters(0),
		units.Feet(0),
		palette.Color(0),
		palette.Paint(0),
		palette.Dye(""),
		menagerie.Mammal{},
		menagerie.Dog{},
		menagerie.Robot{},
	)
	types["units.Temperature"] = reflect.TypeFor[units.Temperature]()
	types["menagerie.Animal"] = reflect.TypeFor[menagerie.Animal]()

	return manifest.Symbols{
		Types: types,
		Funcs: map[string]any{
			"CelsiusFromKelvin": units.CelsiusFromKelvin,
			"RankineFromKelvin": units.RankineFromKelvin,
			"MetersFromFeet":    units.MetersFromFeet,
			"FeetFromMeters":    units.FeetFromMeters,
		},
	}
}
