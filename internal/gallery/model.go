package gallery

import "time"

// Image is metadata for a portfolio photo. The file itself lives in object
// storage; only the URL is kept here.
type Image struct {
	ID          int     `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description,omitempty"`
	URL         string  `db:"url" json:"url"`
	Category    string  `db:"category" json:"category"`
	SortOrder   int     `db:"sort_order" json:"sort_order"`
	Published   bool    `db:"published" json:"published"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateImageRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	URL         string  `json:"url" binding:"required,url"`
	Category    string  `json:"category" binding:"required"`
	SortOrder   int     `json:"sort_order"`
	Published   *bool   `json:"published"`
}

type UpdateImageRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url" binding:"omitempty,url"`
	Category    *string `json:"category"`
	SortOrder   *int    `json:"sort_order"`
	Published   *bool   `json:"published"`
}
