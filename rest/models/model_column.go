package models

// Column is a column that can be used to sort a table
type Column struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}
