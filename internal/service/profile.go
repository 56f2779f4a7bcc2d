package service

import (
	"math"

	"github.com/PradipLalpura/RexOS/internal/model"
)

// BMI uses weight in kg and height in cm, rounded to one decimal. It is 0
// when either is missing.
func BMI(p model.Profile) float64 {
	if p.Weight <= 0 || p.Height <= 0 {
		return 0
	}
	h := p.Height / 100
	return math.Round(p.Weight/(h*h)*10) / 10
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

type MeasurementRow struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Measurements lists the recorded body measurements in a fixed order,
// skipping those never set.
func Measurements(m *model.BodyMeasurements) []MeasurementRow {
	out := make([]MeasurementRow, 0, 6)
	if m == nil {
		return out
	}
	for _, row := range []struct {
		name string
		v    *float64
	}{
		{"biceps", m.Biceps},
		{"chest", m.Chest},
		{"waist", m.Waist},
		{"abs", m.Abs},
		{"thighs", m.Thighs},
		{"calves", m.Calves},
	} {
		if row.v != nil {
			out = append(out, MeasurementRow{Name: row.name, Value: *row.v})
		}
	}
	return out
}
