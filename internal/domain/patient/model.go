package patient

import (
	"time"

	"github.com/pms/pms/internal/health"
)

// Patient maps to the patients table. BMI and Verdict are derived from
// height/weight and never persisted; the service recomputes them on every
// read and after any write.
type Patient struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	City      string         `db:"city" json:"city"`
	Age       int            `db:"age" json:"age"`
	Gender    string         `db:"gender" json:"gender"`
	Height    float64        `db:"height" json:"height"` // meters
	Weight    float64        `db:"weight" json:"weight"` // kilograms
	BMI       float64        `db:"-" json:"bmi"`
	Verdict   health.Verdict `db:"-" json:"verdict"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// Derive recomputes BMI and Verdict from the current height and weight.
func (p *Patient) Derive() error {
	bmi, err := health.ComputeBMI(p.Height, p.Weight)
	if err != nil {
		return err
	}
	p.BMI = bmi
	p.Verdict = health.Classify(bmi)
	return nil
}

// Update carries a partial patient mutation. Nil fields are left unchanged.
// Derived fields are deliberately absent: callers cannot write bmi or verdict.
type Update struct {
	Name   *string  `json:"name"`
	City   *string  `json:"city"`
	Age    *int     `json:"age"`
	Gender *string  `json:"gender"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

// Apply copies the set fields onto p.
func (u *Update) Apply(p *Patient) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.Height != nil {
		p.Height = *u.Height
	}
	if u.Weight != nil {
		p.Weight = *u.Weight
	}
}
