package area

import (
	"time"

	"github.com/lib/pq"
)

// Area is the marketing content for a service area landing page, addressed
// by slug ("/areas/clapham").
type Area struct {
	ID       int    `db:"id" json:"id"`
	Slug     string `db:"slug" json:"slug"`
	Name     string `db:"name" json:"name"`
	Headline string `db:"headline" json:"headline"`
	Body     string `db:"body" json:"body"`

	PostcodePrefixes pq.StringArray `db:"postcode_prefixes" json:"postcode_prefixes"`
	Active           bool           `db:"active" json:"active"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateAreaRequest struct {
	Slug     string `json:"slug" binding:"required,lowercase"`
	Name     string `json:"name" binding:"required"`
	Headline string `json:"headline"`
	Body     string `json:"body"`

	PostcodePrefixes []string `json:"postcode_prefixes"`
	Active           *bool    `json:"active"`
}

type UpdateAreaRequest struct {
	Name     *string `json:"name"`
	Headline *string `json:"headline"`
	Body     *string `json:"body"`

	PostcodePrefixes []string `json:"postcode_prefixes"`
	Active           *bool    `json:"active"`
}
