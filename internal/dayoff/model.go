package dayoff

import (
	"time"
)

// DateLayout is the wire format for all calendar dates in the API.
const DateLayout = "2006-01-02"

// Period is a closure window for the business (holiday, vacation).
// Both endpoints are inclusive.
type Period struct {
	ID            int     `db:"id" json:"id"`
	StartDate     string  `db:"start_date" json:"start_date"`
	EndDate       string  `db:"end_date" json:"end_date"`
	Title         string  `db:"title" json:"title"`
	Description   *string `db:"description" json:"description,omitempty"`
	BannerMessage *string `db:"banner_message" json:"banner_message,omitempty"`
	ShowBanner    bool    `db:"show_banner" json:"show_banner"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreatePeriodRequest struct {
	StartDate     string  `json:"start_date" binding:"required"`
	EndDate       string  `json:"end_date" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Description   *string `json:"description"`
	BannerMessage *string `json:"banner_message"`
	ShowBanner    bool    `json:"show_banner"`
}

// ParseDate constructs the date at midnight UTC. Zeroing the time of day
// keeps inclusive range checks free of timezone off-by-one errors.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Covers reports whether the given date falls inside the period,
// inclusive of both endpoints.
func (p *Period) Covers(date string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	start, err := ParseDate(p.StartDate)
	if err != nil {
		return false
	}
	end, err := ParseDate(p.EndDate)
	if err != nil {
		return false
	}
	return !d.Before(start) && !d.After(end)
}

// Match scans all periods for one covering the date. Overlapping periods are
// not merged; the first match wins.
func Match(periods []Period, date string) (*Period, bool) {
	for i := range periods {
		if periods[i].Covers(date) {
			return &periods[i], true
		}
	}
	return nil, false
}
