package models

// CarsResponse is the JSON body of GET /cars.
type CarsResponse struct {
	Run        RunSummary  `json:"run"`
	Data       []CarRecord `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// RunSummary describes one stored snapshot.
type RunSummary struct {
	ID          string `json:"id"`
	Day         string `json:"day"`
	StartedAt   string `json:"started_at"`
	UpdatedAt   string `json:"updated_at"`
	RecordCount int    `json:"record_count"`
}

type Pagination struct {
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

// CarFilters holds the query parameters for reading a snapshot.
type CarFilters struct {
	RunID string
	// For Pagination
	Limit  int
	Offset int
}
