package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// ConflictResponse is returned when a booking request collides with an
// existing booking for the same slot.
type ConflictResponse struct {
	Error    string `json:"error" example:"slot already booked"`
	Conflict bool   `json:"conflict" example:"true"`
	Message  string `json:"message" example:"This time slot is already booked by John Smith"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type Pagination struct {
	Page        int  `json:"page" example:"1"`
	Limit       int  `json:"limit" example:"20"`
	TotalCount  int  `json:"totalCount" example:"53"`
	TotalPages  int  `json:"totalPages" example:"3"`
	HasNextPage bool `json:"hasNextPage" example:"true"`
	HasPrevPage bool `json:"hasPrevPage" example:"false"`
}

type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

func NewPagination(page, limit, totalCount int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}
	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && totalCount > 0,
	}
}
