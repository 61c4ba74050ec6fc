package patient

import "context"

// Repository is the record store. Implementations must surface ErrNotFound
// and ErrDuplicateID, and must return records from List/ListAll in stable
// insertion order so that sort ties keep their original relative order.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	Get(ctx context.Context, id string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListAll(ctx context.Context) ([]*Patient, error)
}
