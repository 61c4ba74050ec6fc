package patient

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotFound is returned for any operation on an absent patient id.
	ErrNotFound = errors.New("patient not found")
	// ErrDuplicateID is returned when creating a patient whose id already exists.
	ErrDuplicateID = errors.New("patient already exists")
)

// ValidationError reports which field failed validation and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

var validGenders = map[string]bool{
	"male": true, "female": true, "others": true,
}

// Validate checks every record invariant. It is run before any persistence
// mutation so a failed operation leaves the store untouched.
func Validate(p *Patient) error {
	if p.ID == "" {
		return invalid("id", "must not be empty")
	}
	if p.Name == "" {
		return invalid("name", "must not be empty")
	}
	if p.City == "" {
		return invalid("city", "must not be empty")
	}
	if p.Age <= 0 || p.Age >= 120 {
		return invalid("age", "must be between 1 and 119")
	}
	if !validGenders[p.Gender] {
		return invalid("gender", "must be one of male, female, others")
	}
	if p.Height <= 0 || math.IsNaN(p.Height) || math.IsInf(p.Height, 0) {
		return invalid("height", "must be a positive number of meters")
	}
	if p.Weight <= 0 || math.IsNaN(p.Weight) || math.IsInf(p.Weight, 0) {
		return invalid("weight", "must be a positive number of kilograms")
	}
	return nil
}
