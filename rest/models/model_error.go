package models

// A description of an error state
type ModelError struct {

	// A human readable description of the error state
	Description string `json:"description,omitempty"`

	// The request id, to be matched with the server logs
	RequestId string `json:"requestId,omitempty"`
}
