package customer

import "context"

type Repository interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	GetByID(ctx context.Context, id int) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	List(ctx context.Context, page, limit int, search string) ([]Customer, int, error)
	Update(ctx context.Context, id int, req UpdateCustomerRequest) (*Customer, error)
	Delete(ctx context.Context, id int) error
}
