package service

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type unitKind string

const (
	unitKindMass   unitKind = "mass"
	unitKindLength unitKind = "length"
)

type unitDef struct {
	kind       unitKind
	toBaseUnit float64
}

var unitTable = map[string]unitDef{
	// mass (base = g)
	"mg": {kind: unitKindMass, toBaseUnit: 0.001},
	"g":  {kind: unitKindMass, toBaseUnit: 1},
	"kg": {kind: unitKindMass, toBaseUnit: 1000},
	"oz": {kind: unitKindMass, toBaseUnit: 28.349523125},
	"lb": {kind: unitKindMass, toBaseUnit: 453.59237},
	"lbs": {
		kind:       unitKindMass,
		toBaseUnit: 453.59237,
	},

	// length (base = cm)
	"mm": {kind: unitKindLength, toBaseUnit: 0.1},
	"cm": {kind: unitKindLength, toBaseUnit: 1},
	"m":  {kind: unitKindLength, toBaseUnit: 100},
	"in": {kind: unitKindLength, toBaseUnit: 2.54},
	"ft": {kind: unitKindLength, toBaseUnit: 30.48},
}

// ConvertUnit converts between two units of the same kind.
func ConvertUnit(value float64, fromUnit, toUnit string) (float64, error) {
	from, ok := resolveUnit(fromUnit)
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q", fromUnit)
	}
	to, ok := resolveUnit(toUnit)
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q", toUnit)
	}
	if from.kind != to.kind {
		return 0, fmt.Errorf("cannot convert %s (%s) to %s (%s)", fromUnit, from.kind, toUnit, to.kind)
	}
	return value * from.toBaseUnit / to.toBaseUnit, nil
}

// WeightKG converts a body weight in unit to kilograms.
func WeightKG(value float64, unit string) (float64, error) {
	if strings.TrimSpace(unit) == "" {
		return value, nil
	}
	return ConvertUnit(value, unit, "kg")
}

// LengthCM converts a height or body measurement in unit to centimetres.
func LengthCM(value float64, unit string) (float64, error) {
	if strings.TrimSpace(unit) == "" {
		return value, nil
	}
	return ConvertUnit(value, unit, "cm")
}

// ParseGrams reads an amount such as "200", "200g" or "0.5 lb" and returns
// it in grams. A bare number is grams.
func ParseGrams(amount string) (float64, error) {
	amount = strings.TrimSpace(amount)
	split := strings.IndexFunc(amount, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	numPart, unitPart := amount, "g"
	if split >= 0 {
		numPart = amount[:split]
		unitPart = strings.TrimSpace(amount[split:])
	}
	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", amount)
	}
	if err := validateNonNegativeFloat("amount", value); err != nil {
		return 0, err
	}
	return ConvertUnit(value, unitPart, "g")
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func resolveUnit(unit string) (unitDef, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	def, ok := unitTable[u]
	return def, ok
}
