package models

// Filter is a filter of a table. A request enables it by passing a value in the Param query parameter
type Filter struct {
	Name     string   `json:"name"`
	Param    string   `json:"param"`
	Operator string   `json:"operator"`
	Columns  []string `json:"columns"`
}
