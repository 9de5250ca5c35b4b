package models

// Table describes a table served by the API and the request parameters it accepts
type Table struct {
	Name         string   `json:"name"`
	Backend      string   `json:"backend"`
	Capabilities []string `json:"capabilities"`
	Columns      []Column `json:"columns,omitempty"`
	Filters      []Filter `json:"filters,omitempty"`
	PageSize     int      `json:"pageSize"`
}
