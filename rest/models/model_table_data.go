package models

// TableData is a page of rows of a table
type TableData struct {
	Rows       []map[string]interface{} `json:"rows"`
	CountItems *int                     `json:"countItems,omitempty"`
	CountPages *int                     `json:"countPages,omitempty"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"pageSize"`
}
