package model

// Category groups transactions.
type Category struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	TransactionCount int    `json:"transaction_count"`
}

// CategoryInput is the body of POST and PUT /api/categories.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
