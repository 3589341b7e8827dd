package dto

type NavigateInput struct {
	Page    string            `json:"page" binding:"required"`
	Filters map[string]string `json:"filters"`
}

// NavigationResponse names the view the client should render. Filters is only
// populated on the first resolution after a Navigate that carried them.
type NavigationResponse struct {
	Page    string            `json:"page"`
	Filters map[string]string `json:"filters,omitempty"`
}
