package dayoff

import "context"

type Repository interface {
	Create(ctx context.Context, req CreatePeriodRequest) (*Period, error)
	GetByID(ctx context.Context, id int) (*Period, error)
	GetAll(ctx context.Context) ([]Period, error)
	GetCovering(ctx context.Context, date string) ([]Period, error)
	Update(ctx context.Context, id int, req CreatePeriodRequest) (*Period, error)
	Delete(ctx context.Context, id int) error
}
