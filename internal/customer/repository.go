package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var ErrCustomerNotFound = errors.New("customer not found")

const customerColumns = `id, type, name, email, phone, address, vat_number, contact_person, notes, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	query := `
		INSERT INTO customers (type, name, email, phone, address, vat_number, contact_person, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + customerColumns

	var cust Customer
	err := r.db.GetContext(ctx, &cust, query,
		req.Type, req.Name, strings.ToLower(req.Email), req.Phone, req.Address,
		req.VATNumber, req.ContactPerson, req.Notes)
	if err != nil {
		return nil, err
	}

	return &cust, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	var cust Customer
	if err := r.db.GetContext(ctx, &cust, query, id); err != nil {
		return nil, err
	}

	return &cust, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`

	var cust Customer
	if err := r.db.GetContext(ctx, &cust, query, strings.ToLower(email)); err != nil {
		return nil, err
	}

	return &cust, nil
}

func (r *repository) List(ctx context.Context, page, limit int, search string) ([]Customer, int, error) {
	where := ""
	args := []interface{}{}

	if search != "" {
		where = `WHERE name ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM customers ` + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	listQuery := fmt.Sprintf(`
		SELECT `+customerColumns+`
		FROM customers %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var customers []Customer
	if err := r.db.SelectContext(ctx, &customers, listQuery, args...); err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *repository) Update(ctx context.Context, id int, req UpdateCustomerRequest) (*Customer, error) {
	query := `
		UPDATE customers
		SET type = COALESCE($1, type),
		    name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    phone = COALESCE($4, phone),
		    address = COALESCE($5, address),
		    vat_number = COALESCE($6, vat_number),
		    contact_person = COALESCE($7, contact_person),
		    notes = COALESCE($8, notes),
		    updated_at = NOW()
		WHERE id = $9
		RETURNING ` + customerColumns

	var email *string
	if req.Email != nil {
		lowered := strings.ToLower(*req.Email)
		email = &lowered
	}

	var cust Customer
	err := r.db.GetContext(ctx, &cust, query,
		req.Type, req.Name, email, req.Phone, req.Address,
		req.VATNumber, req.ContactPerson, req.Notes, id)
	if err != nil {
		return nil, err
	}

	return &cust, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}
