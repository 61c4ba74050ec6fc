// Package health computes BMI, verdict classification, and aggregate
// statistics for patient records. All functions are pure and safe for
// concurrent use.
package health

import (
	"errors"
	"math"
)

// ErrInvalidMeasurement is returned when a height or weight is non-positive
// or non-finite. Validation upstream should make this unreachable; seeing it
// means a record bypassed the service's checks.
var ErrInvalidMeasurement = errors.New("invalid measurement: height and weight must be positive, finite numbers")

// Verdict is a BMI health category.
type Verdict string

const (
	Underweight Verdict = "Underweight"
	Normal      Verdict = "Normal"
	Overweight  Verdict = "Overweight"
	Obese       Verdict = "Obese"
)

// Verdicts lists every category, in ascending BMI order.
func Verdicts() []Verdict {
	return []Verdict{Underweight, Normal, Overweight, Obese}
}

// Round2 rounds to two decimal places, half away from zero. This is the
// rounding rule for every BMI value the service reports.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeBMI returns weight(kg) / height(m)², rounded to two decimals.
func ComputeBMI(height, weight float64) (float64, error) {
	if height <= 0 || weight <= 0 || math.IsNaN(height) || math.IsNaN(weight) ||
		math.IsInf(height, 0) || math.IsInf(weight, 0) {
		return 0, ErrInvalidMeasurement
	}
	return Round2(weight / (height * height)), nil
}

// Classify maps a BMI to its category. Band lower bounds are inclusive:
// [18.5, 25) is Normal, [25, 30) is Overweight, 30 and above is Obese.
func Classify(bmi float64) Verdict {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// Badge returns the dashboard severity level for a verdict.
func (v Verdict) Badge() string {
	switch v {
	case Normal:
		return "ok"
	case Underweight, Overweight:
		return "warn"
	case Obese:
		return "danger"
	}
	return "warn"
}
