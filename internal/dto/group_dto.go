package dto

type GroupInput struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

type GroupStats struct {
	Members   int64 `json:"members"`
	Documents int64 `json:"documents"`
}
