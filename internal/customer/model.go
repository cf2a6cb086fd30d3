package customer

import "time"

const (
	TypeIndividual = "individual"
	TypeCompany    = "company"
)

type Customer struct {
	ID      int    `db:"id" json:"id"`
	Type    string `db:"type" json:"type"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone"`
	Address string `db:"address" json:"address"`

	// Company-only fields.
	VATNumber     *string `db:"vat_number" json:"vat_number,omitempty"`
	ContactPerson *string `db:"contact_person" json:"contact_person,omitempty"`

	Notes *string `db:"notes" json:"notes,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateCustomerRequest struct {
	Type    string `json:"type" binding:"required,oneof=individual company"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	VATNumber     *string `json:"vat_number"`
	ContactPerson *string `json:"contact_person"`
	Notes         *string `json:"notes"`
}

type UpdateCustomerRequest struct {
	Type    *string `json:"type" binding:"omitempty,oneof=individual company"`
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`

	VATNumber     *string `json:"vat_number"`
	ContactPerson *string `json:"contact_person"`
	Notes         *string `json:"notes"`
}
