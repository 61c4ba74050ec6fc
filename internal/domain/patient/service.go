package patient

import (
	"context"
	"sort"
	"strings"

	"github.com/pms/pms/internal/health"
)

// Service enforces record invariants and keeps derived fields consistent
// with stored height/weight. All validation happens before the repository
// is touched, so a failed operation never mutates the store.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new record. Caller-supplied bmi/verdict
// values are discarded; Derive recomputes them.
func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := Validate(p); err != nil {
		return err
	}
	if _, err := s.repo.Get(ctx, p.ID); err == nil {
		return ErrDuplicateID
	}
	if err := p.Derive(); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Derive(); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial mutation, recomputes derived fields when height
// or weight changed, and re-validates before committing.
func (s *Service) Update(ctx context.Context, id string, upd *Update) (*Patient, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	upd.Apply(p)
	if err := Validate(p); err != nil {
		return nil, err
	}
	if err := p.Derive(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns one page of records plus the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	items, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if err := deriveAll(items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAll returns every record in stable insertion order.
func (s *Service) ListAll(ctx context.Context) ([]*Patient, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := deriveAll(items); err != nil {
		return nil, err
	}
	return items, nil
}

// SortFields are the numeric fields records can be ordered by.
var SortFields = map[string]func(*Patient) float64{
	"height": func(p *Patient) float64 { return p.Height },
	"weight": func(p *Patient) float64 { return p.Weight },
	"bmi":    func(p *Patient) float64 { return p.BMI },
}

// Sort returns all records ordered by field. Equal keys keep their stored
// relative order.
func (s *Service) Sort(ctx context.Context, field, order string) ([]*Patient, error) {
	key, ok := SortFields[field]
	if !ok {
		return nil, invalid("sort_by", "must be one of height, weight, bmi")
	}
	if order != "asc" && order != "desc" {
		return nil, invalid("order", "must be asc or desc")
	}
	items, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if order == "desc" {
			return key(items[i]) > key(items[j])
		}
		return key(items[i]) < key(items[j])
	})
	return items, nil
}

// Search returns records whose name, city, or verdict contains q,
// case-insensitively.
func (s *Service) Search(ctx context.Context, q string) ([]*Patient, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(q)
	var matched []*Patient
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.City), q) ||
			strings.Contains(strings.ToLower(string(p.Verdict)), q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Stats aggregates the whole store through the health engine.
func (s *Service) Stats(ctx context.Context) (health.Stats, error) {
	items, err := s.ListAll(ctx)
	if err != nil {
		return health.Stats{}, err
	}
	samples := make([]health.Sample, len(items))
	for i, p := range items {
		samples[i] = health.Sample{City: p.City, BMI: p.BMI, Verdict: p.Verdict}
	}
	return health.ComputeStats(samples), nil
}

func deriveAll(items []*Patient) error {
	for _, p := range items {
		if err := p.Derive(); err != nil {
			return err
		}
	}
	return nil
}
