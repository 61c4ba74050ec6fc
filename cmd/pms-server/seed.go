package main

import (
	"context"
	"errors"

	"github.com/pms/pms/internal/domain/patient"
)

// seedPatients inserts a small demo data set. Records that already exist are
// skipped so the command is safe to run repeatedly.
func seedPatients(ctx context.Context, svc *patient.Service) (int, error) {
	samples := []patient.Patient{
		{ID: "P001", Name: "Ananya Sharma", City: "Pune", Age: 28, Gender: "female", Height: 1.62, Weight: 48},
		{ID: "P002", Name: "Rahul Verma", City: "Delhi", Age: 35, Gender: "male", Height: 1.75, Weight: 70},
		{ID: "P003", Name: "Meera Iyer", City: "Chennai", Age: 42, Gender: "female", Height: 1.58, Weight: 65},
		{ID: "P004", Name: "Arjun Patel", City: "Mumbai", Age: 51, Gender: "male", Height: 1.8, Weight: 99},
		{ID: "P005", Name: "Sneha Kulkarni", City: "Pune", Age: 23, Gender: "female", Height: 1.68, Weight: 54},
	}

	created := 0
	for i := range samples {
		p := samples[i]
		err := svc.Create(ctx, &p)
		if errors.Is(err, patient.ErrDuplicateID) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
