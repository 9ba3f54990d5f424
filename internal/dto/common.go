package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Driver    string `json:"driver"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// ListQuery carries the pagination and ordering parameters shared by every
// list endpoint. Zero values are replaced by per-entity defaults.
type ListQuery struct {
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
	SortBy string `json:"sort_by"`
	Order  string `json:"order"`
}

type ListResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}
