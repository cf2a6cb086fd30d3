package customer

import (
	"context"
	"database/sql"
	"errors"
)

var ErrVATRequiresCompany = errors.New("vat_number is only valid for company customers")

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	GetByID(ctx context.Context, id int) (*Customer, error)
	List(ctx context.Context, page, limit int, search string) ([]Customer, int, error)
	Update(ctx context.Context, id int, req UpdateCustomerRequest) (*Customer, error)
	Delete(ctx context.Context, id int) error

	// Resolve finds the customer for an inbound booking by email, creating
	// one when unknown. Bookings always carry a hard customer reference;
	// identity is never re-derived at read time.
	Resolve(ctx context.Context, name, email, phone, address string) (*Customer, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if req.Type == TypeIndividual && req.VATNumber != nil {
		return nil, ErrVATRequiresCompany
	}
	return s.repo.Create(ctx, req)
}

func (s *service) GetByID(ctx context.Context, id int) (*Customer, error) {
	cust, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return cust, nil
}

func (s *service) List(ctx context.Context, page, limit int, search string) ([]Customer, int, error) {
	return s.repo.List(ctx, page, limit, search)
}

func (s *service) Update(ctx context.Context, id int, req UpdateCustomerRequest) (*Customer, error) {
	cust, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return cust, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Resolve(ctx context.Context, name, email, phone, address string) (*Customer, error) {
	cust, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return cust, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return s.repo.Create(ctx, CreateCustomerRequest{
		Type:    TypeIndividual,
		Name:    name,
		Email:   email,
		Phone:   phone,
		Address: address,
	})
}
